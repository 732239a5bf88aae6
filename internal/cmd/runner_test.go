package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lambda/internal/context"
	"lambda/internal/frontend/ast"
)

func writeFiles(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		paths = append(paths, path)
	}
	return paths
}

func TestRunManyFiles(t *testing.T) {
	files := make(map[string]string)
	for i := 0; i < 3*MaxParallelFiles; i++ {
		files[fmt.Sprintf("f%02d.lc", i)] = fmt.Sprintf("f%d x\n\\y.y\n", i)
	}
	paths := writeFiles(t, files)

	ctx := context.New(nil)
	require.NoError(t, Run(ctx, paths))

	assert.False(t, ctx.HasErrors())
	assert.Equal(t, context.PhaseComplete, ctx.CurrentPhase)
	require.Len(t, ctx.GetAllFiles(), len(paths))

	for _, file := range ctx.GetAllFiles() {
		nodes := file.Nodes()
		require.Len(t, nodes, 2, file.Path)
		assert.IsType(t, &ast.FunctionApplication{}, nodes[0])
		assert.Equal(t, ast.Lambda("y", ast.Ident("y")), nodes[1])
	}
}

func TestRunSyntaxErrorsGoToDiagnostics(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"good.lc": "a b\n",
		"bad.lc":  "(a\n\\x.\n",
	})

	ctx := context.New(nil)
	require.NoError(t, Run(ctx, paths))
	assert.Equal(t, 2, ctx.Diagnostics.ErrorCount())
}

func TestRunFailFastCollectsPerFileErrors(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"one.lc": "a 1\n",
		"two.lc": ")\n",
		"ok.lc":  "ok\n",
	})

	ctx := context.New(&context.CompilerOptions{FailFast: true})
	err := Run(ctx, paths)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
}

func TestRunMissingFile(t *testing.T) {
	paths := writeFiles(t, map[string]string{"ok.lc": "ok\n"})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.lc"))

	ctx := context.New(nil)
	err := Run(ctx, paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	// the readable file was still processed
	require.Len(t, ctx.GetAllFiles(), 1)
	assert.Len(t, ctx.GetAllFiles()[0].Nodes(), 1)
}

func TestRunDiagnosticsFollowArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 2*MaxParallelFiles; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%02d.lc", i))
		require.NoError(t, os.WriteFile(path, []byte("ok\n\\x\n"), 0644))
		paths = append(paths, path)
	}
	// reverse so argument order differs from name order
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}

	ctx := context.New(nil)
	require.NoError(t, Run(ctx, paths))

	var out bytes.Buffer
	ctx.EmitDiagnostics(&out, false)
	rendered := out.String()

	last := -1
	for _, path := range paths {
		at := strings.Index(rendered, "--> "+path+":2")
		require.True(t, at >= 0, "missing diagnostic for %s", path)
		assert.Greater(t, at, last, path)
		last = at
	}
}
