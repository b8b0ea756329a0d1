// Package models re-exports core types for external use.
package models

import "firestige.xyz/bitpacket/internal/core"

// Re-export core packet types for library users
type (
	Packet     = core.Packet
	PacketType = core.PacketType
	Framing    = core.Framing
)

// PacketView is the serialisable form of a packet tree.
type PacketView struct {
	Version  uint8        `json:"version" yaml:"version"`
	Type     string       `json:"type" yaml:"type"`
	Framing  string       `json:"framing,omitempty" yaml:"framing,omitempty"`
	BitLen   int          `json:"bit_len" yaml:"bit_len"`
	Literal  *uint64      `json:"literal,omitempty" yaml:"literal,omitempty"`
	Children []PacketView `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewPacketView converts a decoded tree into its serialisable form.
func NewPacketView(p *Packet) PacketView {
	v := PacketView{
		Version: p.Version,
		Type:    p.Type.String(),
		BitLen:  p.BitLen,
	}
	if p.IsLiteral() {
		lit := p.Literal
		v.Literal = &lit
		return v
	}
	v.Framing = p.Framing.String()
	v.Children = make([]PacketView, len(p.Children))
	for i, child := range p.Children {
		v.Children[i] = NewPacketView(child)
	}
	return v
}

// Result is the outcome of decoding and evaluating one stream.
type Result struct {
	VersionSum uint64 `json:"version_sum" yaml:"version_sum"`
	Value      uint64 `json:"value" yaml:"value"`
	Packets    int    `json:"packets" yaml:"packets"`
	MaxDepth   int    `json:"max_depth" yaml:"max_depth"`
	BitLen     int    `json:"bit_len" yaml:"bit_len"`
	Padding    int    `json:"padding" yaml:"padding"`
}
