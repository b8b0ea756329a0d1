// Package eval computes results over decoded packet trees. Trees are never
// modified.
package eval

import (
	"fmt"
	"strconv"
	"strings"

	"firestige.xyz/bitpacket/internal/core"
)

// Walk visits p and its sub-packets in pre-order. Returning false from fn
// skips the sub-packets of the packet just visited.
func Walk(p *core.Packet, fn func(p *core.Packet, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p *core.Packet, depth int, fn func(*core.Packet, int) bool) {
	if !fn(p, depth) {
		return
	}
	for _, child := range p.Children {
		walk(child, depth+1, fn)
	}
}

// VersionSum adds up the version field of every packet in the tree.
func VersionSum(p *core.Packet) uint64 {
	var sum uint64
	Walk(p, func(p *core.Packet, _ int) bool {
		sum += uint64(p.Version)
		return true
	})
	return sum
}

// Value evaluates the expression p encodes. Sums and products wrap on
// uint64 overflow. Operand counts are not checked here beyond failing
// loudly; run Validate first on untrusted trees.
func Value(p *core.Packet) uint64 {
	switch p.Type {
	case core.TypeLiteral:
		return p.LiteralValue()
	case core.TypeSum:
		var v uint64
		for _, child := range p.SubPackets() {
			v += Value(child)
		}
		return v
	case core.TypeProduct:
		v := uint64(1)
		for _, child := range p.SubPackets() {
			v *= Value(child)
		}
		return v
	case core.TypeMinimum, core.TypeMaximum:
		children := p.SubPackets()
		if len(children) == 0 {
			panic(fmt.Sprintf("eval: %s packet without operands", p.Type))
		}
		v := Value(children[0])
		for _, child := range children[1:] {
			c := Value(child)
			if (p.Type == core.TypeMinimum && c < v) || (p.Type == core.TypeMaximum && c > v) {
				v = c
			}
		}
		return v
	case core.TypeGreaterThan, core.TypeLessThan, core.TypeEqual:
		children := p.SubPackets()
		if len(children) != 2 {
			panic(fmt.Sprintf("eval: %s packet with %d operands", p.Type, len(children)))
		}
		a, b := Value(children[0]), Value(children[1])
		var holds bool
		switch p.Type {
		case core.TypeGreaterThan:
			holds = a > b
		case core.TypeLessThan:
			holds = a < b
		default:
			holds = a == b
		}
		if holds {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("eval: unknown packet type %d", uint8(p.Type)))
	}
}

// Validate reports the first packet whose operand count Value cannot
// evaluate: comparisons need exactly two operands, other operators at
// least one.
func Validate(p *core.Packet) error {
	var err error
	path := make([]int, 0, 8)
	var visit func(p *core.Packet)
	visit = func(p *core.Packet) {
		if err != nil || p.IsLiteral() {
			return
		}
		n := len(p.Children)
		switch {
		case p.Type.IsComparison() && n != 2:
			err = fmt.Errorf("%w: %s packet at %s has %d operands, want 2", core.ErrArity, p.Type, formatPath(path), n)
		case n == 0:
			err = fmt.Errorf("%w: %s packet at %s has no operands", core.ErrArity, p.Type, formatPath(path))
		}
		for i, child := range p.Children {
			path = append(path, i)
			visit(child)
			path = path[:len(path)-1]
		}
	}
	visit(p)
	return err
}

func formatPath(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return "root/" + strings.Join(parts, "/")
}

// Summary describes the shape of a packet tree.
type Summary struct {
	Packets   int
	Literals  int
	Operators int
	MaxDepth  int
}

// Summarize counts packets by kind and the deepest nesting level.
func Summarize(p *core.Packet) Summary {
	var s Summary
	Walk(p, func(p *core.Packet, depth int) bool {
		s.Packets++
		if p.IsLiteral() {
			s.Literals++
		} else {
			s.Operators++
		}
		s.MaxDepth = max(s.MaxDepth, depth)
		return true
	})
	return s
}
