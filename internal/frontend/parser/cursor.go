package parser

import "lambda/internal/frontend/lexer"

// cursor is a multi-lookahead view over a token slice. Peek walks forward
// one token per call without consuming; ResetPeek rewinds the peek
// position back to the read position. Next consumes one token and also
// resets the peek position.
type cursor struct {
	tokens  []lexer.Token
	pos     int
	peekPos int
}

func newCursor(tokens []lexer.Token) *cursor {
	return &cursor{tokens: tokens}
}

// Peek returns the next not-yet-peeked token. ok is false once the peek
// position runs past the end of the slice.
func (c *cursor) Peek() (tok lexer.Token, ok bool) {
	idx := c.pos + c.peekPos
	if idx >= len(c.tokens) {
		return lexer.Token{}, false
	}
	c.peekPos++
	return c.tokens[idx], true
}

// ResetPeek rewinds peeking to the first unconsumed token
func (c *cursor) ResetPeek() {
	c.peekPos = 0
}

// Next consumes one token
func (c *cursor) Next() (tok lexer.Token, ok bool) {
	c.peekPos = 0
	if c.pos >= len(c.tokens) {
		return lexer.Token{}, false
	}
	tok = c.tokens[c.pos]
	c.pos++
	return tok, true
}

// Current resets the peek position and returns the first unconsumed token
// without consuming it.
func (c *cursor) Current() (lexer.Token, bool) {
	c.ResetPeek()
	tok, ok := c.Peek()
	c.ResetPeek()
	return tok, ok
}

// Remaining is the number of unconsumed tokens
func (c *cursor) Remaining() int {
	return len(c.tokens) - c.pos
}
