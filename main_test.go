//go:build !(js && wasm)

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.lc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", stdout)
}

func TestParseCommand(t *testing.T) {
	path := writeSource(t, "# church two\n\\f.\\x.f (f x)\n\na b\n")

	stdout, stderr, err := execute(t, "parse", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, stdout,
		`   2: [FunctionDefinition(Identifier("f"), FunctionDefinition(Identifier("x"), FunctionApplication(Identifier("f"), ExpressionGroup(FunctionApplication(Identifier("f"), Identifier("x"))))))]`)
	assert.Contains(t, stdout, `   4: [FunctionApplication(Identifier("a"), Identifier("b"))]`)
	assert.NotContains(t, stderr, "error[")
}

func TestParseCommandReportsErrors(t *testing.T) {
	path := writeSource(t, "a\n\\x\nb)\n")

	stdout, stderr, err := execute(t, "parse", "--color", "never", path)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stdout, `   1: [Identifier("a")]`)
	assert.Contains(t, stderr, "error[P0003]: unexpected end of input")
	assert.Contains(t, stderr, "error[P0002]: unexpected ')'")
	assert.Contains(t, stderr, "Parsing failed with 2 error(s)")
}

func TestTokensCommand(t *testing.T) {
	path := writeSource(t, "(a)\n")

	stdout, _, err := execute(t, "tokens", "--color", "never", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `   1: [Punctuation("("), Identifier("a"), Punctuation(")"), EOF]`)
}

func TestParseCommandRequiresFiles(t *testing.T) {
	_, _, err := execute(t, "parse")
	assert.Error(t, err)
}

func TestInvalidColorFlag(t *testing.T) {
	path := writeSource(t, "a\n")
	_, _, err := execute(t, "parse", "--color", "sometimes", path)
	assert.Error(t, err)
}
