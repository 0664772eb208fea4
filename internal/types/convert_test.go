package types

import "testing"

// TestImplicitConversion is §8 scenario S2: uint8 widens to uint256,
// int8 does not convert to uint16 (signedness goes the wrong direction),
// and uint8 widens to int16 (unsigned -> strictly wider signed).
func TestImplicitConversion(t *testing.T) {
	in := NewInterner()
	uint8T := in.Intern(Type{Kind: KindInteger, Bits: 8, IsSigned: false})
	int8T := in.Intern(Type{Kind: KindInteger, Bits: 8, IsSigned: true})
	uint16T := in.Intern(Type{Kind: KindInteger, Bits: 16, IsSigned: false})
	int16T := in.Intern(Type{Kind: KindInteger, Bits: 16, IsSigned: true})
	uint256T := in.builtins.Uint256

	if !in.IsImplicitlyConvertibleTo(uint8T, uint256T, nil) {
		t.Errorf("uint8 should implicitly convert to uint256")
	}
	if in.IsImplicitlyConvertibleTo(int8T, uint16T, nil) {
		t.Errorf("int8 should not implicitly convert to uint16")
	}
	if !in.IsImplicitlyConvertibleTo(uint8T, int16T, nil) {
		t.Errorf("uint8 should implicitly convert to int16")
	}
}

func TestImplicitConversionRejectsNarrowing(t *testing.T) {
	in := NewInterner()
	uint256T := in.builtins.Uint256
	uint8T := in.Intern(Type{Kind: KindInteger, Bits: 8, IsSigned: false})
	if in.IsImplicitlyConvertibleTo(uint256T, uint8T, nil) {
		t.Errorf("uint256 should not implicitly narrow to uint8")
	}
}

func TestImplicitConversionAddressIsDistinctFromInteger(t *testing.T) {
	in := NewInterner()
	addr := in.builtins.Address
	uint160 := in.Intern(Type{Kind: KindInteger, Bits: 160, IsSigned: false})
	if in.IsImplicitlyConvertibleTo(uint160, addr, nil) {
		t.Errorf("a same-width plain integer should not implicitly convert to address")
	}
	if in.IsImplicitlyConvertibleTo(addr, uint160, nil) {
		t.Errorf("address should not implicitly convert to a plain integer")
	}
}

func TestExplicitConversionContractRequiresInheritance(t *testing.T) {
	in := NewInterner()
	base := in.Intern(Type{Kind: KindContract, Decl: 1})
	derived := in.Intern(Type{Kind: KindContract, Decl: 2})
	unrelated := in.Intern(Type{Kind: KindContract, Decl: 3})

	isBaseOf := func(baseDecl, derivedDecl uint32) bool {
		return baseDecl == 1 && derivedDecl == 2
	}
	if !in.IsImplicitlyConvertibleTo(derived, base, isBaseOf) {
		t.Errorf("a derived contract should implicitly convert to its base")
	}
	if in.IsImplicitlyConvertibleTo(unrelated, base, isBaseOf) {
		t.Errorf("an unrelated contract should not implicitly convert to base")
	}
}
