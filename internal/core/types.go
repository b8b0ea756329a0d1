// Package core defines the packet data model with zero external dependencies.
package core

import "fmt"

// PacketType is the 3-bit type id carried in every packet header.
type PacketType uint8

const (
	TypeSum         PacketType = 0
	TypeProduct     PacketType = 1
	TypeMinimum     PacketType = 2
	TypeMaximum     PacketType = 3
	TypeLiteral     PacketType = 4
	TypeGreaterThan PacketType = 5
	TypeLessThan    PacketType = 6
	TypeEqual       PacketType = 7
)

var packetTypeNames = [...]string{
	TypeSum:         "sum",
	TypeProduct:     "product",
	TypeMinimum:     "minimum",
	TypeMaximum:     "maximum",
	TypeLiteral:     "literal",
	TypeGreaterThan: "greater_than",
	TypeLessThan:    "less_than",
	TypeEqual:       "equal",
}

var packetTypeSymbols = [...]string{
	TypeSum:         "+",
	TypeProduct:     "*",
	TypeMinimum:     "min",
	TypeMaximum:     "max",
	TypeLiteral:     "lit",
	TypeGreaterThan: ">",
	TypeLessThan:    "<",
	TypeEqual:       "==",
}

// PacketTypeFromID maps a decoded type id. The field is 3 bits wide, so an
// id above 7 means the caller handed over a corrupted value.
func PacketTypeFromID(id uint32) PacketType {
	if id > uint32(TypeEqual) {
		panic(fmt.Sprintf("core: invalid packet type id %d", id))
	}
	return PacketType(id)
}

func (t PacketType) String() string {
	if int(t) < len(packetTypeNames) {
		return packetTypeNames[t]
	}
	return fmt.Sprintf("PacketType(%d)", uint8(t))
}

// Symbol returns the operator glyph used when rendering expressions.
func (t PacketType) Symbol() string {
	if int(t) < len(packetTypeSymbols) {
		return packetTypeSymbols[t]
	}
	return "?"
}

// IsComparison reports whether t is one of the binary comparison operators.
func (t PacketType) IsComparison() bool {
	return t == TypeGreaterThan || t == TypeLessThan || t == TypeEqual
}

// Framing describes how an operator packet bounds its sub-packets.
type Framing uint8

const (
	FramingNone   Framing = iota // literal packets carry no sub-packets
	FramingLength                // length type id 0: 15-bit total bit length
	FramingCount                 // length type id 1: 11-bit sub-packet count
)

func (f Framing) String() string {
	switch f {
	case FramingNone:
		return "none"
	case FramingLength:
		return "length"
	case FramingCount:
		return "count"
	default:
		return fmt.Sprintf("Framing(%d)", uint8(f))
	}
}
