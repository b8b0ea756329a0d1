package hexload

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/bitpacket/internal/core"
)

func TestNibble(t *testing.T) {
	tests := []struct {
		c    byte
		want uint32
		ok   bool
	}{
		{'0', 0, true},
		{'9', 9, true},
		{'A', 10, true},
		{'F', 15, true},
		{'a', 0, false},
		{'G', 0, false},
		{' ', 0, false},
	}
	for _, tt := range tests {
		got, ok := Nibble(tt.c)
		assert.Equal(t, tt.ok, ok, "Nibble(%q)", tt.c)
		assert.Equal(t, tt.want, got, "Nibble(%q)", tt.c)
	}
}

func TestParseExpandsDigitsMSBFirst(t *testing.T) {
	buf, err := Parse("D2FE28")
	require.NoError(t, err)
	assert.Equal(t, 24, buf.Len())
	assert.Equal(t, "110100101111111000101000", buf.String())
}

func TestLoadTerminators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bits  int
	}{
		{"eof", "8A00", 16},
		{"newline", "8A00\n", 16},
		{"crlf", "8A00\r\n", 16},
		{"trailing cr", "8A00\r", 16},
		{"ignores later lines", "8A\nZZZZ", 8},
		{"empty", "", 0},
		{"blank line", "\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Load(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.bits, buf.Len())
		})
	}
}

func TestLoadRejectsNonHex(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		char   byte
	}{
		{"8A0G", 3, 'G'},
		{"d2fe28", 0, 'd'},
		{"8A 00", 2, ' '},
		{"8A\r00", 2, '\r'},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			buf, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, buf)
			assert.True(t, errors.Is(err, core.ErrMalformedHex))

			var hexErr *HexError
			require.True(t, errors.As(err, &hexErr))
			assert.Equal(t, tt.offset, hexErr.Offset)
			assert.Equal(t, tt.char, hexErr.Char)
		})
	}
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	r := iotest.TimeoutReader(iotest.OneByteReader(strings.NewReader("8A00")))
	_, err := Load(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, iotest.ErrTimeout)
	assert.False(t, errors.Is(err, core.ErrMalformedHex))
}
