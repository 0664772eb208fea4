package types

import (
	"testing"

	"github.com/topsmart20/solidity/internal/ast"
)

func TestFromElementaryTokenWidthsAndModifiers(t *testing.T) {
	in := NewInterner()

	int256ID, ok := in.FromElementaryToken(ast.TokIntFirst)
	if !ok {
		t.Fatalf("TokIntFirst should decode")
	}
	int256Type := in.MustLookup(int256ID)
	if int256Type.Kind != KindInteger || !int256Type.IsSigned || int256Type.Bits != 256 {
		t.Errorf("TokIntFirst should decode to signed int256, got %+v", int256Type)
	}

	int32ID, ok := in.FromElementaryToken(ast.TokIntFirst + 1)
	if !ok {
		t.Fatalf("TokIntFirst+1 should decode")
	}
	int32Type := in.MustLookup(int32ID)
	if int32Type.Kind != KindInteger || !int32Type.IsSigned || int32Type.Bits != 32 {
		t.Errorf("TokIntFirst+1 should decode to signed int32, got %+v", int32Type)
	}

	uint32ID, ok := in.FromElementaryToken(ast.TokIntFirst + 6)
	if !ok {
		t.Fatalf("TokIntFirst+6 should decode")
	}
	uint32Type := in.MustLookup(uint32ID)
	if uint32Type.Kind != KindInteger || uint32Type.IsSigned || uint32Type.Bits != 32 {
		t.Errorf("TokIntFirst+6 should decode to unsigned uint32, got %+v", uint32Type)
	}

	bytes32ID, ok := in.FromElementaryToken(ast.TokHash256)
	if !ok {
		t.Fatalf("TokHash256 should decode")
	}
	bytes32Type := in.MustLookup(bytes32ID)
	if bytes32Type.Kind != KindFixedBytes || bytes32Type.Bits != 256 {
		t.Errorf("TokHash256 should decode to a 256-bit fixed-bytes type, got %+v", bytes32Type)
	}
}

func TestFromElementaryTokenAddressAndBool(t *testing.T) {
	in := NewInterner()

	addrID, ok := in.FromElementaryToken(ast.TokAddress)
	if !ok || addrID != in.builtins.Address {
		t.Errorf("TokAddress should decode to the builtin address type")
	}

	boolID, ok := in.FromElementaryToken(ast.TokBool)
	if !ok || boolID != in.builtins.Bool {
		t.Errorf("TokBool should decode to the builtin bool type")
	}
}

func TestIsValidIntegerBits(t *testing.T) {
	cases := []struct {
		bits uint16
		want bool
	}{
		{0, false},
		{8, true},
		{256, true},
		{264, false},
		{7, false},
	}
	for _, c := range cases {
		if got := IsValidIntegerBits(c.bits); got != c.want {
			t.Errorf("IsValidIntegerBits(%d) = %v, want %v", c.bits, got, c.want)
		}
	}
}
