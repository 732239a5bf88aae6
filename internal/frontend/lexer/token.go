package lexer

import (
	"fmt"
	"strings"
)

// TOKEN is the kind of a lexical token
type TOKEN int

const (
	IDENTIFIER_TOKEN TOKEN = iota
	PUNCTUATION_TOKEN
	NEWLINE_TOKEN
	COMMENT_TOKEN
	EOF_TOKEN
)

func (k TOKEN) String() string {
	switch k {
	case IDENTIFIER_TOKEN:
		return "Identifier"
	case PUNCTUATION_TOKEN:
		return "Punctuation"
	case NEWLINE_TOKEN:
		return "Newline"
	case COMMENT_TOKEN:
		return "Comment"
	case EOF_TOKEN:
		return "EOF"
	default:
		return "unknown"
	}
}

// Punctuation characters. Each one is emitted as its own token.
const (
	LAMBDA      = "\\"
	DOT         = "."
	OPEN_PAREN  = "("
	CLOSE_PAREN = ")"
)

// Token is a classified lexical unit. Tokens are plain values and compare
// with ==; Value is empty for Newline and EOF.
type Token struct {
	Kind  TOKEN
	Value string
}

// Identifier returns an identifier token with the given text
func Identifier(name string) Token {
	return Token{Kind: IDENTIFIER_TOKEN, Value: name}
}

// Punctuation returns a punctuation token for one of LAMBDA, DOT,
// OPEN_PAREN or CLOSE_PAREN
func Punctuation(p string) Token {
	return Token{Kind: PUNCTUATION_TOKEN, Value: p}
}

// Comment returns a comment token; text excludes the leading '#'
func Comment(text string) Token {
	return Token{Kind: COMMENT_TOKEN, Value: text}
}

// Newline returns the newline token
func Newline() Token {
	return Token{Kind: NEWLINE_TOKEN}
}

// EOF returns the end-of-input sentinel
func EOF() Token {
	return Token{Kind: EOF_TOKEN}
}

// Is reports whether t is a punctuation token for p
func (t Token) Is(p string) bool {
	return t.Kind == PUNCTUATION_TOKEN && t.Value == p
}

// String renders the token in its debug form, e.g. Identifier("x")
func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER_TOKEN, PUNCTUATION_TOKEN, COMMENT_TOKEN:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}

// Describe renders the token the way diagnostics quote it
func (t Token) Describe() string {
	switch t.Kind {
	case IDENTIFIER_TOKEN:
		if t.Value == "" {
			return "identifier"
		}
		return fmt.Sprintf("identifier '%s'", t.Value)
	case PUNCTUATION_TOKEN:
		return fmt.Sprintf("'%s'", t.Value)
	case NEWLINE_TOKEN:
		return "newline"
	case COMMENT_TOKEN:
		return "comment"
	case EOF_TOKEN:
		return "end of input"
	default:
		return "unknown token"
	}
}

// FormatTokens renders a token list in debug form
func FormatTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
