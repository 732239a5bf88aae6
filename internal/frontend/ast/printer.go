package ast

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Source renders e back into surface syntax. For trees built by the parser,
// parsing the result yields an identical tree.
func Source(e Expression) string {
	var sb strings.Builder
	writeSource(&sb, e)
	return sb.String()
}

func writeSource(sb *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *Identifier:
		sb.WriteString(n.Name)
	case *FunctionDefinition:
		sb.WriteString(`\`)
		sb.WriteString(n.Parameter.Name)
		sb.WriteString(".")
		writeSource(sb, n.Body)
	case *FunctionApplication:
		writeSource(sb, n.Function)
		sb.WriteString(" ")
		writeSource(sb, n.Argument)
	case *ExpressionGroup:
		sb.WriteString("(")
		writeSource(sb, n.Inner)
		sb.WriteString(")")
	case *Empty, nil:
	}
}

// FormatAll renders a program in the debug form, one bracketed list
func FormatAll(nodes []Expression) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump returns a structural dump of v (a tree, a program or a token list)
func Dump(v interface{}) string {
	return dumper.Sdump(v)
}
