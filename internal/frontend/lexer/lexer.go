package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// UnexpectedCharacterError reports a character outside every class the
// lexer knows about. Offset is the rune index into the input.
type UnexpectedCharacterError struct {
	Char   rune
	Offset int
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Offset)
}

// Lexer turns a character sequence into tokens. A Lexer owns its cursor
// and must not be shared between goroutines.
type Lexer struct {
	src []rune
	pos int
}

// New creates a lexer over text
func New(text string) *Lexer {
	return &Lexer{src: []rune(text)}
}

// Tokenize lexes all of text, returning the tokens up to and including EOF
func Tokenize(text string) ([]Token, error) {
	return New(text).LexAll()
}

// LexAll calls LexNext until it produces EOF and returns every token.
// On error the tokens lexed so far are returned alongside it.
func (l *Lexer) LexAll() ([]Token, error) {
	tokens := make([]Token, 0, len(l.src)/2+1)
	for {
		tok, err := l.LexNext()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF_TOKEN {
			return tokens, nil
		}
	}
}

// LexNext returns exactly one token and advances the cursor past it.
// Whitespace is consumed silently.
func (l *Lexer) LexNext() (Token, error) {
	for {
		if l.isAtEnd() {
			return EOF(), nil
		}

		ch := l.peek()
		switch {
		case isPunctuation(ch):
			l.advance()
			return Punctuation(string(ch)), nil
		case ch == '\n':
			l.advance()
			return Newline(), nil
		case unicode.IsLetter(ch):
			return l.lexIdentifier(), nil
		case isWhitespace(ch):
			l.advance()
		case ch == '#':
			return l.lexComment(), nil
		default:
			return Token{}, &UnexpectedCharacterError{Char: ch, Offset: l.pos}
		}
	}
}

// Offset returns the index of the next unconsumed rune
func (l *Lexer) Offset() int {
	return l.pos
}

func (l *Lexer) lexIdentifier() Token {
	var sb strings.Builder
	for !l.isAtEnd() && isAlphanumeric(l.peek()) {
		sb.WriteRune(l.advance())
	}
	return Identifier(sb.String())
}

func (l *Lexer) lexComment() Token {
	l.advance() // '#'

	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != '\n' {
		sb.WriteRune(l.advance())
	}
	return Comment(sb.String())
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek() rune {
	return l.src[l.pos]
}

func (l *Lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	return ch
}

func isPunctuation(ch rune) bool {
	return ch == '\\' || ch == '.' || ch == '(' || ch == ')'
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isAlphanumeric(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsNumber(ch)
}
