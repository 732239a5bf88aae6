package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err, "source: %q", src)
	return tokens
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "empty input",
			src:  "",
			want: []Token{EOF()},
		},
		{
			name: "single identifier",
			src:  "x",
			want: []Token{Identifier("x"), EOF()},
		},
		{
			name: "identifier with digits",
			src:  "x1y2",
			want: []Token{Identifier("x1y2"), EOF()},
		},
		{
			name: "lambda",
			src:  `\x.x`,
			want: []Token{Punctuation(LAMBDA), Identifier("x"), Punctuation(DOT), Identifier("x"), EOF()},
		},
		{
			name: "punctuation runs are not merged",
			src:  `\.()`,
			want: []Token{Punctuation(LAMBDA), Punctuation(DOT), Punctuation(OPEN_PAREN), Punctuation(CLOSE_PAREN), EOF()},
		},
		{
			name: "group",
			src:  "(a b)",
			want: []Token{Punctuation(OPEN_PAREN), Identifier("a"), Identifier("b"), Punctuation(CLOSE_PAREN), EOF()},
		},
		{
			name: "whitespace skipped",
			src:  " \t a \r\t b  ",
			want: []Token{Identifier("a"), Identifier("b"), EOF()},
		},
		{
			name: "newlines",
			src:  "a\n\nb\n",
			want: []Token{Identifier("a"), Newline(), Newline(), Identifier("b"), Newline(), EOF()},
		},
		{
			name: "comment",
			src:  "a # comment\nb",
			want: []Token{Identifier("a"), Comment(" comment"), Newline(), Identifier("b"), EOF()},
		},
		{
			name: "comment at end of input",
			src:  "#only",
			want: []Token{Comment("only"), EOF()},
		},
		{
			name: "empty comment",
			src:  "#\n",
			want: []Token{Comment(""), Newline(), EOF()},
		},
		{
			name: "unicode identifier",
			src:  "λx.ünï",
			want: []Token{Identifier("λx"), Punctuation(DOT), Identifier("ünï"), EOF()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex(t, tt.src))
		})
	}
}

func TestTokenizeEndsWithSingleEOF(t *testing.T) {
	inputs := []string{"", "a", `\x.x y`, "(a)\n", "a # c", "\n\n", "  \t", `\\..))((`}

	for _, src := range inputs {
		tokens := lex(t, src)
		require.NotEmpty(t, tokens)
		assert.Equal(t, EOF(), tokens[len(tokens)-1], "source: %q", src)

		eofs := 0
		for _, tok := range tokens {
			if tok.Kind == EOF_TOKEN {
				eofs++
			}
			assert.NotContains(t, []string{" ", "\t", "\r"}, tok.Value, "source: %q", src)
		}
		assert.Equal(t, 1, eofs, "source: %q", src)
	}
}

func TestTokenTextReconstructsInput(t *testing.T) {
	inputs := []string{`\x.x y`, "(a  b) c", `\f.\x. f (f x)`, "a\tb\rc"}

	for _, src := range inputs {
		var sb strings.Builder
		for _, tok := range lex(t, src) {
			switch tok.Kind {
			case IDENTIFIER_TOKEN, PUNCTUATION_TOKEN, COMMENT_TOKEN:
				sb.WriteString(tok.Value)
			}
		}

		stripped := strings.NewReplacer(" ", "", "\t", "", "\r", "").Replace(src)
		assert.Equal(t, stripped, sb.String())
	}
}

func TestLexNextIsIncremental(t *testing.T) {
	l := New("  ab (")

	tok, err := l.LexNext()
	require.NoError(t, err)
	assert.Equal(t, Identifier("ab"), tok)
	assert.Equal(t, 4, l.Offset())

	tok, err = l.LexNext()
	require.NoError(t, err)
	assert.Equal(t, Punctuation(OPEN_PAREN), tok)

	// EOF is sticky
	for i := 0; i < 2; i++ {
		tok, err = l.LexNext()
		require.NoError(t, err)
		assert.Equal(t, EOF(), tok)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		src    string
		char   rune
		offset int
		before []Token
	}{
		{src: "1", char: '1', offset: 0, before: []Token{}},
		{src: "a + b", char: '+', offset: 2, before: []Token{Identifier("a")}},
		{src: `\x.x;`, char: ';', offset: 4, before: []Token{Punctuation(LAMBDA), Identifier("x"), Punctuation(DOT), Identifier("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, err := Tokenize(tt.src)
			require.Error(t, err)

			var charErr *UnexpectedCharacterError
			require.True(t, errors.As(err, &charErr))
			assert.Equal(t, tt.char, charErr.Char)
			assert.Equal(t, tt.offset, charErr.Offset)
			assert.Equal(t, tt.before, tokens)
		})
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `Identifier("x")`, Identifier("x").String())
	assert.Equal(t, `Punctuation("\\")`, Punctuation(LAMBDA).String())
	assert.Equal(t, `Comment(" hi")`, Comment(" hi").String())
	assert.Equal(t, "Newline", Newline().String())
	assert.Equal(t, "EOF", EOF().String())

	assert.Equal(t, "identifier 'x'", Identifier("x").Describe())
	assert.Equal(t, "identifier", Identifier("").Describe())
	assert.Equal(t, "'.'", Punctuation(DOT).Describe())
	assert.Equal(t, "end of input", EOF().Describe())
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "[]", FormatTokens(nil))
	assert.Equal(t, `[Identifier("a"), Comment(" c"), Newline, EOF]`,
		FormatTokens(lex(t, "a # c\n")))
}
