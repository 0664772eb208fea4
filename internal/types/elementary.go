package types

import "github.com/topsmart20/solidity/internal/ast"

// elementaryWidths lists the bit width selected by (token-TokIntFirst)
// % 5, indexed directly by that remainder: a remainder of 0 means 256
// bits, and a remainder of n in 1..4 means (1<<(n-1))*32 bits. This
// mirrors the original lexer's contiguous Token::INT..Token::HASH256
// range exactly (§4.1, Types.cpp's fromElementaryTypeName).
var elementaryWidths = [5]uint16{256, 32, 64, 128, 256}

const (
	elemModifierSigned   = 0
	elemModifierUnsigned = 1
	elemModifierHash     = 2
)

// FromElementaryToken decodes tok into its Type, following the same
// offset arithmetic the upstream lexer used to pack width and
// signedness/hash into one contiguous token range: offset =
// token-TokIntFirst, bits = elementaryWidths[offset%5], modifier =
// offset/5 selects signed/unsigned/hash. Address and Bool sit just past
// that block as standalone tokens.
func (in *Interner) FromElementaryToken(tok ast.ElementaryToken) (TypeID, bool) {
	switch {
	case tok == ast.TokAddress:
		return in.builtins.Address, true
	case tok == ast.TokBool:
		return in.builtins.Bool, true
	case tok >= ast.TokIntFirst && tok <= ast.TokHash256:
		offset := int(tok - ast.TokIntFirst)
		widthIdx := offset % len(elementaryWidths)
		modifier := offset / len(elementaryWidths)
		bits := elementaryWidths[widthIdx]
		switch modifier {
		case elemModifierSigned:
			return in.Intern(Type{Kind: KindInteger, Bits: bits, IsSigned: true}), true
		case elemModifierUnsigned:
			return in.Intern(Type{Kind: KindInteger, Bits: bits, IsSigned: false}), true
		case elemModifierHash:
			return in.Intern(Type{Kind: KindFixedBytes, Bits: bits}), true
		default:
			return NoTypeID, false
		}
	default:
		return NoTypeID, false
	}
}

// IsValidIntegerBits reports whether bits is a width this lattice
// supports for Integer/FixedBytes (multiples of 8, up to 256).
func IsValidIntegerBits(bits uint16) bool {
	return bits > 0 && bits <= 256 && bits%8 == 0
}

// Bytes returns the byte width of a FixedBytes/Integer/Address type.
func (t Type) Bytes() uint16 { return t.Bits / 8 }
