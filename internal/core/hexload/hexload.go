// Package hexload turns a line of hex digits into a bit buffer.
package hexload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"firestige.xyz/bitpacket/internal/core"
	"firestige.xyz/bitpacket/internal/core/bitstream"
)

// HexError reports the first byte that is not an uppercase hex digit.
type HexError struct {
	Offset int
	Char   byte
}

func (e *HexError) Error() string {
	return fmt.Sprintf("%v: byte %q at offset %d", core.ErrMalformedHex, e.Char, e.Offset)
}

func (e *HexError) Unwrap() error { return core.ErrMalformedHex }

// Nibble maps an uppercase hex digit to its value.
func Nibble(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	default:
		return 0, false
	}
}

// Load reads the first line of r and pushes one nibble per hex digit. The
// line ends at '\n' (optionally preceded by '\r') or at end of input;
// anything after it is not read.
func Load(r io.Reader) (*bitstream.Buffer, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	buf := bitstream.New(0)
	for offset := 0; ; offset++ {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return buf, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read hex input: %w", err)
		}
		if c == '\n' {
			return buf, nil
		}
		if c == '\r' {
			next, err := br.ReadByte()
			if errors.Is(err, io.EOF) || (err == nil && next == '\n') {
				return buf, nil
			}
			if err != nil {
				return nil, fmt.Errorf("read hex input: %w", err)
			}
			return nil, &HexError{Offset: offset, Char: c}
		}

		v, ok := Nibble(c)
		if !ok {
			return nil, &HexError{Offset: offset, Char: c}
		}
		buf.PushNibble(v)
	}
}

// Parse is Load over a string.
func Parse(s string) (*bitstream.Buffer, error) {
	return Load(strings.NewReader(s))
}
