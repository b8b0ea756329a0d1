package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"firestige.xyz/bitpacket/internal/core"
)

// Test that re-exported types match core types
func TestTypeAliases(t *testing.T) {
	var p Packet
	p.Type = core.TypeLiteral
	p.Literal = 7

	var coreP core.Packet = p
	if coreP.LiteralValue() != 7 {
		t.Errorf("expected literal 7, got %d", coreP.LiteralValue())
	}
}

func sampleTree() *core.Packet {
	return &core.Packet{
		Version: 1,
		Type:    core.TypeLessThan,
		Framing: core.FramingLength,
		BitLen:  49,
		Children: []*core.Packet{
			{Version: 6, Type: core.TypeLiteral, Literal: 10, BitLen: 11},
			{Version: 2, Type: core.TypeLiteral, Literal: 0, BitLen: 16},
		},
	}
}

func TestNewPacketView(t *testing.T) {
	v := NewPacketView(sampleTree())

	if v.Type != "less_than" || v.Framing != "length" || v.BitLen != 49 {
		t.Errorf("unexpected root view: %+v", v)
	}
	if v.Literal != nil {
		t.Error("operator view must not carry a literal")
	}
	if len(v.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(v.Children))
	}
	if v.Children[1].Literal == nil || *v.Children[1].Literal != 0 {
		t.Error("zero literal must still be present")
	}
	if v.Children[0].Framing != "" {
		t.Errorf("literal view has framing %q", v.Children[0].Framing)
	}
}

func TestPacketViewJSON(t *testing.T) {
	data, err := json.Marshal(NewPacketView(sampleTree()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"version":1,"type":"less_than","framing":"length","bit_len":49,"children":[` +
		`{"version":6,"type":"literal","bit_len":11,"literal":10},` +
		`{"version":2,"type":"literal","bit_len":16,"literal":0}]}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestPacketViewYAML(t *testing.T) {
	data, err := yaml.Marshal(NewPacketView(sampleTree()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var back PacketView
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Type != "less_than" || len(back.Children) != 2 || *back.Children[0].Literal != 10 {
		t.Errorf("unexpected view after yaml: %+v", back)
	}
}
