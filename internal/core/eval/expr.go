package eval

import (
	"strconv"
	"strings"

	"firestige.xyz/bitpacket/internal/core"
)

// Expression renders p as an infix expression, e.g. "((1 + 3) == (2 * 2))".
// Minimum and maximum render as function calls.
func Expression(p *core.Packet) string {
	var sb strings.Builder
	writeExpression(&sb, p)
	return sb.String()
}

func writeExpression(sb *strings.Builder, p *core.Packet) {
	if p.IsLiteral() {
		sb.WriteString(strconv.FormatUint(p.Literal, 10))
		return
	}

	sep := " " + p.Type.Symbol() + " "
	if p.Type == core.TypeMinimum || p.Type == core.TypeMaximum {
		sb.WriteString(p.Type.Symbol())
		sep = ", "
	}
	sb.WriteByte('(')
	for i, child := range p.Children {
		if i > 0 {
			sb.WriteString(sep)
		}
		writeExpression(sb, child)
	}
	sb.WriteByte(')')
}
