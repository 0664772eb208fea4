package types

import "math/big"

// ForBoolLiteral returns the Bool builtin, the literal form carries no
// extra information beyond its value.
func (in *Interner) ForBoolLiteral() TypeID { return in.builtins.Bool }

// ForNumberLiteral interns an IntegerConstant type for value (§4.1
// Type::forLiteral). Two literals with the same value intern to the same
// TypeID, matching how the rest of the lattice deduplicates by structural
// identity.
func (in *Interner) ForNumberLiteral(value *big.Int) TypeID {
	return in.Intern(Type{Kind: KindIntegerConstant, ConstValue: new(big.Int).Set(value)})
}

// ForStringLiteral interns a StringLiteral type for the given raw bytes.
func (in *Interner) ForStringLiteral(value []byte) TypeID {
	return in.Intern(Type{Kind: KindStringLiteral, StringValue: append([]byte(nil), value...)})
}

// MobileType returns the type an IntegerConstant/StringLiteral is given
// once it must actually be stored somewhere (assigned, passed as an
// argument, returned) rather than immediately folded — IntegerConstant
// picks the smallest Integer type that can represent its value,
// StringLiteral the smallest FixedBytes type if it fits, else a dynamic
// (Length 0, IsDynamicArray true) byte array. Returns NoTypeID for values
// IntegerConstant cannot represent in 256 bits.
func (in *Interner) MobileType(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok {
		return NoTypeID
	}
	switch t.Kind {
	case KindIntegerConstant:
		return in.smallestIntegerFor(t.ConstValue)
	case KindStringLiteral:
		if len(t.StringValue) <= 32 {
			bits := uint16(len(t.StringValue)) * 8
			if bits == 0 {
				bits = 8
			}
			return in.Intern(Type{Kind: KindFixedBytes, Bits: bits})
		}
		return in.Intern(Type{Kind: KindArray, Elem: in.Intern(Type{Kind: KindFixedBytes, Bits: 8}), IsDynamicArray: true})
	default:
		return id
	}
}

// smallestIntegerFor picks the narrowest signed/unsigned 8-bit-stepped
// Integer type that can hold value, or NoTypeID if it exceeds 256 bits
// even when signed.
func (in *Interner) smallestIntegerFor(value *big.Int) TypeID {
	if value == nil {
		return NoTypeID
	}
	signed := value.Sign() < 0
	for bits := uint16(8); bits <= 256; bits += 8 {
		if fitsInBits(value, bits, signed) {
			return in.Intern(Type{Kind: KindInteger, Bits: bits, IsSigned: signed})
		}
	}
	return NoTypeID
}

func fitsInBits(value *big.Int, bits uint16, signed bool) bool {
	if !signed {
		if value.Sign() < 0 {
			return false
		}
		max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		return value.Cmp(max) < 0
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(half)
	max := new(big.Int).Sub(half, big.NewInt(1))
	return value.Cmp(min) >= 0 && value.Cmp(max) <= 0
}
