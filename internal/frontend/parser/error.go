package parser

import (
	"fmt"

	"lambda/internal/frontend/lexer"
)

// ParserError reports that Expected was required where Found was seen.
// A nil Found means the token stream ran out first.
type ParserError struct {
	Expected lexer.Token
	Found    *lexer.Token
}

// NewParserError creates a ParserError. found may be nil.
func NewParserError(expected lexer.Token, found *lexer.Token) *ParserError {
	return &ParserError{Expected: expected, Found: found}
}

func (e *ParserError) Error() string {
	if e.Found == nil {
		return fmt.Sprintf("expected %s, found nothing (token stream exhausted)", e.Expected.Describe())
	}
	return fmt.Sprintf("expected %s, found %s", e.Expected.Describe(), e.Found.Describe())
}

// AtEnd reports whether the error was caused by running out of input,
// either an exhausted stream or a premature EOF token.
func (e *ParserError) AtEnd() bool {
	return e.Found == nil || e.Found.Kind == lexer.EOF_TOKEN
}

// firstError returns the first non-nil error in positional order
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
