package types

import "fmt"

// TypeID uniquely identifies a type inside the Interner (§3.2, §4.1).
type TypeID uint32

// NoTypeID marks the absence of a type (e.g. an expression that failed to
// type-check).
const NoTypeID TypeID = 0

// Kind enumerates the categories of the type lattice (§3.2). Every Type
// carries exactly one Kind; which of the struct's other fields are
// meaningful is decided by Kind alone, mirroring how the upstream compiler
// tags its Type::Category.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindBool
	KindFixedBytes
	KindIntegerConstant
	KindStringLiteral
	KindContract
	KindStruct
	KindArray
	KindMapping
	KindFunction
	KindModifier
	KindEnum
	KindTypeType
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindFixedBytes:
		return "fixedbytes"
	case KindIntegerConstant:
		return "integerconstant"
	case KindStringLiteral:
		return "stringliteral"
	case KindContract:
		return "contract"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindMapping:
		return "mapping"
	case KindFunction:
		return "function"
	case KindModifier:
		return "modifier"
	case KindEnum:
		return "enum"
	case KindTypeType:
		return "typetype"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
