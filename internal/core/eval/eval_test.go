package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/bitpacket/internal/core"
	"firestige.xyz/bitpacket/internal/core/decoder"
	"firestige.xyz/bitpacket/internal/core/hexload"
)

func decode(t *testing.T, hex string) *core.Packet {
	t.Helper()
	buf, err := hexload.Parse(hex)
	require.NoError(t, err)
	p, err := decoder.NewStandardDecoder(decoder.Config{}).Decode(buf)
	require.NoError(t, err)
	return p
}

func lit(v uint64) *core.Packet {
	return &core.Packet{Type: core.TypeLiteral, Literal: v}
}

func op(t core.PacketType, children ...*core.Packet) *core.Packet {
	return &core.Packet{Type: t, Framing: core.FramingCount, Children: children}
}

func TestVersionSum(t *testing.T) {
	tests := []struct {
		hex  string
		want uint64
	}{
		{"D2FE28", 6},
		{"38006F45291200", 9},
		{"EE00D40C823060", 14},
		{"8A004A801A8002F478", 16},
		{"620080001611562C8802118E34", 12},
		{"C0015000016115A2E0802F182340", 23},
		{"A0016C880162017C3686B18A3D4780", 31},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			p := decode(t, tt.hex)
			got := VersionSum(p)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, uint64(p.Version))

			var preorder uint64
			Walk(p, func(p *core.Packet, _ int) bool {
				preorder += uint64(p.Version)
				return true
			})
			assert.Equal(t, preorder, got)
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want uint64
	}{
		{"literal", "D2FE28", 2021},
		{"less than, length framed", "38006F45291200", 1},
		{"maximum, count framed", "EE00D40C823060", 3},
		{"sum", "C200B40A82", 3},
		{"product", "04005AC33890", 54},
		{"minimum", "880086C3E88112", 7},
		{"maximum", "CE00C43D881120", 9},
		{"less than", "D8005AC2A8F0", 1},
		{"greater than", "F600BC2D8F", 0},
		{"equal", "9C005AC2F8F0", 0},
		{"nested", "9C0141080250320F1802104A08", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(decode(t, tt.hex)))
		})
	}
}

func TestValueOperators(t *testing.T) {
	big := lit(1 << 40)

	assert.Equal(t, uint64(1<<40)*(1<<20), Value(op(core.TypeProduct, big, lit(1<<20))), "products exceed 32 bits")
	assert.Equal(t, uint64(0), Value(op(core.TypeSum)))
	assert.Equal(t, uint64(1), Value(op(core.TypeProduct)))
	assert.Equal(t, uint64(5), Value(op(core.TypeMinimum, lit(5))))
	assert.Equal(t, uint64(1), Value(op(core.TypeEqual, lit(4), op(core.TypeProduct, lit(2), lit(2)))))
	assert.Equal(t, uint64(1), Value(op(core.TypeGreaterThan, lit(9), lit(3))))
	assert.Equal(t, uint64(0), Value(op(core.TypeLessThan, lit(9), lit(3))))
}

func TestValueArityPanics(t *testing.T) {
	assert.Panics(t, func() { Value(op(core.TypeLessThan, lit(1))) })
	assert.Panics(t, func() { Value(op(core.TypeEqual, lit(1), lit(1), lit(1))) })
	assert.Panics(t, func() { Value(op(core.TypeMaximum)) })
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(lit(3)))
	assert.NoError(t, Validate(decode(t, "9C0141080250320F1802104A08")))

	err := Validate(op(core.TypeSum, lit(1), op(core.TypeGreaterThan, lit(2))))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrArity)
	assert.Contains(t, err.Error(), "root/1")

	err = Validate(op(core.TypeMinimum))
	assert.ErrorIs(t, err, core.ErrArity)
	assert.Contains(t, err.Error(), "at root")
}

func TestExpression(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"D2FE28", "2021"},
		{"C200B40A82", "(1 + 2)"},
		{"04005AC33890", "(6 * 9)"},
		{"880086C3E88112", "min(7, 8, 9)"},
		{"CE00C43D881120", "max(7, 8, 9)"},
		{"F600BC2D8F", "(5 > 15)"},
		{"9C0141080250320F1802104A08", "((1 + 3) == (2 * 2))"},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.want, Expression(decode(t, tt.hex)))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(decode(t, "9C0141080250320F1802104A08"))
	assert.Equal(t, Summary{Packets: 7, Literals: 4, Operators: 3, MaxDepth: 2}, s)
}

func TestWalkSkipsSubtree(t *testing.T) {
	tree := op(core.TypeSum, op(core.TypeProduct, lit(1), lit(2)), lit(3))

	var seen []core.PacketType
	Walk(tree, func(p *core.Packet, _ int) bool {
		seen = append(seen, p.Type)
		return p.Type != core.TypeProduct
	})
	assert.Equal(t, []core.PacketType{core.TypeSum, core.TypeProduct, core.TypeLiteral}, seen)
}
