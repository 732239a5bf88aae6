package diagnostics

import (
	"errors"
	"fmt"

	"lambda/internal/frontend/lexer"
	"lambda/internal/frontend/parser"
)

// Common diagnostic builders for the lexer

// UnexpectedCharacter creates a diagnostic for a character outside every
// token class. err.Offset is relative to the start of the line.
func UnexpectedCharacter(filepath string, line int, err *lexer.UnexpectedCharacterError) *Diagnostic {
	loc := &Location{Line: line, Column: err.Offset + 1, Length: 1}
	return NewError(fmt.Sprintf("unexpected character %q", err.Char)).
		WithCode(ErrUnexpectedCharacter).
		WithPrimaryLabel(filepath, loc, "not part of any token").
		WithNote(`valid input is identifiers, '\', '.', '(', ')', '#' comments and whitespace`).
		WithHelp("remove this character or check if it's a typo")
}

// Common diagnostic builders for the parser

// ExpectedToken creates a diagnostic for a ParserError. The parser does not
// know columns, so the label covers the whole line.
func ExpectedToken(filepath string, line int, err *parser.ParserError) *Diagnostic {
	loc := &Location{Line: line}

	var d *Diagnostic
	switch {
	case err.AtEnd():
		d = NewError("unexpected end of input").
			WithCode(ErrUnexpectedEOF).
			WithPrimaryLabel(filepath, loc, "input ends before "+err.Expected.Describe()).
			WithNote(err.Error())
	case err.Expected.Kind == lexer.NEWLINE_TOKEN:
		d = NewError("unexpected " + err.Found.Describe()).
			WithCode(ErrUnexpectedToken).
			WithPrimaryLabel(filepath, loc, "expression should end here")
	default:
		d = NewError(err.Error()).
			WithCode(ErrExpectedToken).
			WithPrimaryLabel(filepath, loc, "expected "+err.Expected.Describe()+" on this line")
	}

	if help := helpFor(err); help != "" {
		d.WithHelp(help)
	}
	return d
}

func helpFor(err *parser.ParserError) string {
	switch {
	case err.Expected.Is(lexer.DOT):
		return `a function definition is written \x.body`
	case err.Expected.Is(lexer.CLOSE_PAREN):
		return "close the group with ')'"
	case err.Expected.Kind == lexer.NEWLINE_TOKEN:
		return "remove the unmatched ')'"
	case err.Expected.Kind == lexer.IDENTIFIER_TOKEN:
		return `an element is an identifier, a group (...) or a function definition \x.body`
	default:
		return ""
	}
}

// ReadFailure creates a diagnostic for a source that could not be read
func ReadFailure(filepath string, err error) *Diagnostic {
	return NewError(fmt.Sprintf("cannot read %s: %v", filepath, err)).
		WithCode(ErrReadFailure)
}

// FromError converts an error returned by the lexer or parser into a
// diagnostic for the given line.
func FromError(filepath string, line int, err error) *Diagnostic {
	var charErr *lexer.UnexpectedCharacterError
	if errors.As(err, &charErr) {
		return UnexpectedCharacter(filepath, line, charErr)
	}

	var parseErr *parser.ParserError
	if errors.As(err, &parseErr) {
		return ExpectedToken(filepath, line, parseErr)
	}

	return NewError(err.Error()).
		WithPrimaryLabel(filepath, &Location{Line: line}, "")
}
