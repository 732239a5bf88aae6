// Package ast defines the syntax tree produced by the parser.
//
// Expression is a closed sum type: the unexported marker method keeps other
// packages from adding variants, so a type switch over the five node types
// below is exhaustive.
package ast

import "fmt"

// Expression is any node of the tree
type Expression interface {
	INode()
	String() string
	expr()
}

// Identifier is a bound or free variable reference
type Identifier struct {
	Name string
}

// FunctionDefinition is a lambda abstraction binding Parameter over Body
type FunctionDefinition struct {
	Parameter *Identifier
	Body      Expression
}

// FunctionApplication applies Function to Argument
type FunctionApplication struct {
	Function Expression
	Argument Expression
}

// ExpressionGroup is a parenthesized expression, kept so grouping is
// visible in the tree
type ExpressionGroup struct {
	Inner Expression
}

// Empty marks "no element parsed yet". It never appears in a tree handed
// back by the parser.
type Empty struct{}

func (i *Identifier) INode()          {} // Implements Node interface
func (f *FunctionDefinition) INode()  {}
func (f *FunctionApplication) INode() {}
func (g *ExpressionGroup) INode()     {}
func (e *Empty) INode()               {}

func (i *Identifier) expr()          {}
func (f *FunctionDefinition) expr()  {}
func (f *FunctionApplication) expr() {}
func (g *ExpressionGroup) expr()     {}
func (e *Empty) expr()               {}

func (i *Identifier) String() string {
	return fmt.Sprintf("Identifier(%q)", i.Name)
}

func (f *FunctionDefinition) String() string {
	return fmt.Sprintf("FunctionDefinition(%s, %s)", f.Parameter, f.Body)
}

func (f *FunctionApplication) String() string {
	return fmt.Sprintf("FunctionApplication(%s, %s)", f.Function, f.Argument)
}

func (g *ExpressionGroup) String() string {
	return fmt.Sprintf("ExpressionGroup(%s)", g.Inner)
}

func (e *Empty) String() string {
	return "Empty"
}

// Convenience constructors, mostly for tests and tooling

func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func Lambda(param string, body Expression) *FunctionDefinition {
	return &FunctionDefinition{Parameter: Ident(param), Body: body}
}

func Apply(fn, arg Expression) *FunctionApplication {
	return &FunctionApplication{Function: fn, Argument: arg}
}

func Group(inner Expression) *ExpressionGroup {
	return &ExpressionGroup{Inner: inner}
}

// IsEmpty reports whether e is nil or the Empty placeholder
func IsEmpty(e Expression) bool {
	if e == nil {
		return true
	}
	_, ok := e.(*Empty)
	return ok
}
