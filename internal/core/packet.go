// Package core defines core data structures with zero external dependencies.
package core

// Packet is one decoded unit of the stream. Literal packets carry Literal,
// every other type carries Children. A Packet owns its children exclusively
// and is not modified after decoding.
type Packet struct {
	Version  uint8
	Type     PacketType
	Literal  uint64    // only meaningful when Type == TypeLiteral
	Children []*Packet // ordered sub-packets, nil for literals
	Framing  Framing   // how Children were bounded on the wire
	BitLen   int       // bits consumed on the wire, header and sub-packets included
}

// IsLiteral reports whether p is a leaf literal packet.
func (p *Packet) IsLiteral() bool {
	return p.Type == TypeLiteral
}

// LiteralValue returns the literal payload. Calling it on an operator
// packet is a programming error.
func (p *Packet) LiteralValue() uint64 {
	if !p.IsLiteral() {
		panic("core: LiteralValue called on " + p.Type.String() + " packet")
	}
	return p.Literal
}

// SubPackets returns the operator operands. Calling it on a literal packet
// is a programming error.
func (p *Packet) SubPackets() []*Packet {
	if p.IsLiteral() {
		panic("core: SubPackets called on literal packet")
	}
	return p.Children
}
