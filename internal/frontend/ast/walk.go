package ast

// Inspect traverses e in pre-order, calling fn for each node. If fn returns
// false the children of that node are skipped.
func Inspect(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}

	switch n := e.(type) {
	case *FunctionDefinition:
		if n.Parameter != nil {
			Inspect(n.Parameter, fn)
		}
		Inspect(n.Body, fn)
	case *FunctionApplication:
		Inspect(n.Function, fn)
		Inspect(n.Argument, fn)
	case *ExpressionGroup:
		Inspect(n.Inner, fn)
	case *Identifier, *Empty:
	}
}

// CountNodes returns the number of nodes in e
func CountNodes(e Expression) int {
	count := 0
	Inspect(e, func(Expression) bool {
		count++
		return true
	})
	return count
}
