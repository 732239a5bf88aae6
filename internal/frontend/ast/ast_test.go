package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{Ident("a"), `Identifier("a")`},
		{Lambda("x", Ident("x")), `FunctionDefinition(Identifier("x"), Identifier("x"))`},
		{
			Apply(Apply(Ident("a"), Ident("b")), Ident("c")),
			`FunctionApplication(FunctionApplication(Identifier("a"), Identifier("b")), Identifier("c"))`,
		},
		{Group(Ident("a")), `ExpressionGroup(Identifier("a"))`},
		{&Empty{}, "Empty"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.expr.String())
	}
}

func TestSource(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{Ident("a"), "a"},
		{Apply(Lambda("x", Ident("a")), Ident("b")), `\x.a b`},
		{Lambda("x", Group(Apply(Ident("a"), Ident("b")))), `\x.(a b)`},
		{Lambda("f", Lambda("x", Group(Apply(Ident("f"), Ident("x"))))), `\f.\x.(f x)`},
		{Apply(Apply(Ident("a"), Ident("b")), Ident("c")), "a b c"},
		{Apply(Ident("a"), Group(Apply(Ident("b"), Ident("c")))), "a (b c)"},
		{&Empty{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Source(tt.expr))
	}
}

func TestFormatAll(t *testing.T) {
	assert.Equal(t, "[]", FormatAll(nil))
	assert.Equal(t, `[Identifier("a"), Identifier("b")]`, FormatAll([]Expression{Ident("a"), Ident("b")}))
}

func TestInspect(t *testing.T) {
	tree := Apply(Lambda("x", Group(Ident("x"))), Ident("y"))

	var names []string
	Inspect(tree, func(e Expression) bool {
		if id, ok := e.(*Identifier); ok {
			names = append(names, id.Name)
		}
		return true
	})
	assert.Equal(t, []string{"x", "x", "y"}, names)
	assert.Equal(t, 6, CountNodes(tree))

	// returning false prunes the subtree
	visited := 0
	Inspect(tree, func(e Expression) bool {
		visited++
		_, isDef := e.(*FunctionDefinition)
		return !isDef
	})
	assert.Equal(t, 3, visited)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(&Empty{}))
	assert.False(t, IsEmpty(Ident("a")))
}

func TestDump(t *testing.T) {
	out := Dump(Ident("abc"))
	assert.Contains(t, out, "Identifier")
	assert.Contains(t, out, `"abc"`)
}
