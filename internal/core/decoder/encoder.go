package decoder

import (
	"fmt"

	"firestige.xyz/bitpacket/internal/core"
	"firestige.xyz/bitpacket/internal/core/bitstream"
)

// Encode appends the wire form of p to buf. Literals use the fewest groups
// that hold the value; operators keep their Framing (FramingNone is written
// as count framing). It fails when a count or length does not fit its field.
func Encode(buf *bitstream.Buffer, p *core.Packet) error {
	buf.PushBits(uint32(p.Version), versionBits)
	buf.PushBits(uint32(p.Type), typeIDBits)

	if p.IsLiteral() {
		encodeLiteral(buf, p.Literal)
		return nil
	}

	if p.Framing == core.FramingLength {
		body := bitstream.New(0)
		for i, child := range p.Children {
			if err := Encode(body, child); err != nil {
				return fmt.Errorf("sub-packet %d: %w", i, err)
			}
		}
		if body.Len() >= 1<<lengthBits {
			return fmt.Errorf("sub-packets need %d bits, length field holds %d", body.Len(), 1<<lengthBits-1)
		}
		buf.PushBits(lengthTypeLength, lengthTypeBits)
		buf.PushBits(uint32(body.Len()), lengthBits)
		for body.Len() > 0 {
			n := min(body.Len(), bitstream.MaxRead)
			buf.PushBits(body.Pop(n), n)
		}
		return nil
	}

	if len(p.Children) >= 1<<countBits {
		return fmt.Errorf("%d sub-packets, count field holds %d", len(p.Children), 1<<countBits-1)
	}
	buf.PushBits(lengthTypeCount, lengthTypeBits)
	buf.PushBits(uint32(len(p.Children)), countBits)
	for i, child := range p.Children {
		if err := Encode(buf, child); err != nil {
			return fmt.Errorf("sub-packet %d: %w", i, err)
		}
	}
	return nil
}

func encodeLiteral(buf *bitstream.Buffer, v uint64) {
	groups := 1
	for rest := v >> groupDataBits; rest != 0; rest >>= groupDataBits {
		groups++
	}
	for i := groups - 1; i >= 0; i-- {
		var more uint32
		if i > 0 {
			more = 1
		}
		buf.PushBits(more, groupFlagBits)
		buf.PushBits(uint32(v>>(uint(i)*groupDataBits))&0xF, groupDataBits)
	}
}
