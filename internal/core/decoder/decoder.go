// Package decoder implements BITS packet decoding over a bit buffer.
package decoder

import (
	"fmt"
	"math"

	"firestige.xyz/bitpacket/internal/core"
	"firestige.xyz/bitpacket/internal/core/bitstream"
	"firestige.xyz/bitpacket/internal/log"
)

// Wire field widths in bits.
const (
	versionBits    = 3
	typeIDBits     = 3
	headerBits     = versionBits + typeIDBits
	groupFlagBits  = 1
	groupDataBits  = 4
	lengthTypeBits = 1
	countBits      = 11
	lengthBits     = 15

	lengthTypeLength = 0
	lengthTypeCount  = 1
)

// DefaultMaxDepth bounds operator nesting when no limit is configured.
const DefaultMaxDepth = 512

// Decoder decodes the outermost packet of a stream.
type Decoder interface {
	Decode(buf *bitstream.Buffer) (*core.Packet, error)
}

// Config configures a StandardDecoder.
type Config struct {
	MaxDepth int        // Max operator nesting (0 = unlimited)
	Logger   log.Logger // nil = log.GetLogger()
}

// StandardDecoder is a recursive-descent BITS decoder. It keeps no state
// between calls; all progress lives in the buffer cursor.
type StandardDecoder struct {
	maxDepth int
	log      log.Logger
}

// NewStandardDecoder creates a decoder from cfg.
func NewStandardDecoder(cfg Config) *StandardDecoder {
	logger := cfg.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return &StandardDecoder{
		maxDepth: cfg.MaxDepth,
		log:      logger.WithField("component", "decoder"),
	}
}

// Decode decodes the outermost packet. Bits left after it are padding and
// stay in buf unread.
func (d *StandardDecoder) Decode(buf *bitstream.Buffer) (*core.Packet, error) {
	p, err := d.DecodeOne(buf)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d bits available", core.ErrNoPacket, buf.Len())
	}
	if d.log.IsDebugEnabled() {
		d.log.WithFields(map[string]interface{}{
			"type":    p.Type.String(),
			"bit_len": p.BitLen,
			"padding": buf.Len(),
		}).Debug("decoded outermost packet")
	}
	return p, nil
}

// DecodeOne decodes one packet from the front of buf. It returns nil, nil
// when fewer bits than a header remain, which ends a packet sequence.
func (d *StandardDecoder) DecodeOne(buf *bitstream.Buffer) (*core.Packet, error) {
	return d.decodeOne(buf, 0)
}

// DecodeMany decodes packets until buf holds less than a header.
func (d *StandardDecoder) DecodeMany(buf *bitstream.Buffer) ([]*core.Packet, error) {
	return d.decodeMany(buf, 0)
}

func (d *StandardDecoder) decodeMany(buf *bitstream.Buffer, depth int) ([]*core.Packet, error) {
	var packets []*core.Packet
	for {
		p, err := d.decodeOne(buf, depth)
		if err != nil {
			return nil, fmt.Errorf("sub-packet %d: %w", len(packets), err)
		}
		if p == nil {
			return packets, nil
		}
		packets = append(packets, p)
	}
}

func (d *StandardDecoder) decodeOne(buf *bitstream.Buffer, depth int) (*core.Packet, error) {
	if buf.Len() < headerBits {
		return nil, nil
	}
	start := buf.Len()

	p := &core.Packet{
		Version: uint8(buf.Pop(versionBits)),
		Type:    core.PacketTypeFromID(buf.Pop(typeIDBits)),
	}

	var err error
	if p.IsLiteral() {
		p.Literal, err = decodeLiteral(buf)
	} else {
		err = d.decodeOperator(buf, p, depth)
	}
	if err != nil {
		return nil, fmt.Errorf("%s packet v%d: %w", p.Type, p.Version, err)
	}
	p.BitLen = start - buf.Len()

	if d.log.IsTraceEnabled() {
		d.log.WithFields(map[string]interface{}{
			"version":  p.Version,
			"type":     p.Type.String(),
			"framing":  p.Framing.String(),
			"children": len(p.Children),
			"bit_len":  p.BitLen,
			"depth":    depth,
		}).Trace("decoded packet")
	}
	return p, nil
}

// decodeLiteral accumulates 4-bit groups, most significant first, until a
// group with a clear continuation flag.
func decodeLiteral(buf *bitstream.Buffer) (uint64, error) {
	var v uint64
	for {
		more, err := pop(buf, groupFlagBits, "literal group flag")
		if err != nil {
			return 0, err
		}
		group, err := pop(buf, groupDataBits, "literal group")
		if err != nil {
			return 0, err
		}
		if v > math.MaxUint64>>groupDataBits {
			return 0, core.ErrLiteralOverflow
		}
		v = v<<groupDataBits | uint64(group)
		if more == 0 {
			return v, nil
		}
	}
}

func (d *StandardDecoder) decodeOperator(buf *bitstream.Buffer, p *core.Packet, depth int) error {
	if d.maxDepth > 0 && depth >= d.maxDepth {
		return fmt.Errorf("%w: limit %d", core.ErrDepthExceeded, d.maxDepth)
	}

	lengthType, err := pop(buf, lengthTypeBits, "length type id")
	if err != nil {
		return err
	}

	if lengthType == lengthTypeCount {
		p.Framing = core.FramingCount
		n, err := pop(buf, countBits, "sub-packet count")
		if err != nil {
			return err
		}
		p.Children = make([]*core.Packet, 0, n)
		for i := 0; i < int(n); i++ {
			child, err := d.decodeOne(buf, depth+1)
			if err != nil {
				return fmt.Errorf("sub-packet %d of %d: %w", i, n, err)
			}
			if child == nil {
				return fmt.Errorf("%w: sub-packet %d of %d missing, %d bits left",
					core.ErrTruncated, i, n, buf.Len())
			}
			p.Children = append(p.Children, child)
		}
		return nil
	}

	p.Framing = core.FramingLength
	length, err := pop(buf, lengthBits, "sub-packet length")
	if err != nil {
		return err
	}
	if buf.Len() < int(length) {
		return fmt.Errorf("%w: sub-packets declare %d bits, %d left",
			core.ErrTruncated, length, buf.Len())
	}
	// Bits the window's packets leave unused (fewer than a header) are
	// skipped along with the window.
	p.Children, err = d.decodeMany(buf.Window(int(length)), depth+1)
	return err
}

func pop(buf *bitstream.Buffer, n int, field string) (uint32, error) {
	if buf.Len() < n {
		return 0, fmt.Errorf("%w: %s needs %d bits, %d left", core.ErrTruncated, field, n, buf.Len())
	}
	return buf.Pop(n), nil
}
