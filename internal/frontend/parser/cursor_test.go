package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lambda/internal/frontend/lexer"
)

func TestCursorMultiPeek(t *testing.T) {
	c := newCursor([]lexer.Token{lexer.Identifier("a"), lexer.Newline(), lexer.EOF()})

	// peeking walks forward without consuming
	tok, ok := c.Peek()
	assert.True(t, ok)
	assert.Equal(t, lexer.Identifier("a"), tok)
	tok, _ = c.Peek()
	assert.Equal(t, lexer.Newline(), tok)
	tok, _ = c.Peek()
	assert.Equal(t, lexer.EOF(), tok)
	_, ok = c.Peek()
	assert.False(t, ok)
	assert.Equal(t, 3, c.Remaining())

	c.ResetPeek()
	tok, _ = c.Peek()
	assert.Equal(t, lexer.Identifier("a"), tok)

	// Next consumes and resets the peek position
	tok, ok = c.Next()
	assert.True(t, ok)
	assert.Equal(t, lexer.Identifier("a"), tok)
	tok, _ = c.Peek()
	assert.Equal(t, lexer.Newline(), tok)

	tok, ok = c.Current()
	assert.True(t, ok)
	assert.Equal(t, lexer.Newline(), tok)
	assert.Equal(t, 2, c.Remaining())

	c.Next()
	c.Next()
	_, ok = c.Next()
	assert.False(t, ok)
	_, ok = c.Current()
	assert.False(t, ok)
}
