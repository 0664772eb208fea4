package types

import "github.com/topsmart20/solidity/internal/ast"

// IsImplicitlyConvertibleTo reports whether a value of type from may be
// used where to is expected without an explicit cast (§3.2, §4.5.4).
// isBaseOf is consulted only for Contract-to-Contract conversions and may
// be nil if neither side is a contract in the comparison at hand.
func (in *Interner) IsImplicitlyConvertibleTo(from, to TypeID, isBaseOf func(baseDecl, derivedDecl uint32) bool) bool {
	if from == to {
		return true
	}
	ft, ok := in.Lookup(from)
	if !ok {
		return false
	}
	tt, ok := in.Lookup(to)
	if !ok {
		return false
	}

	switch ft.Kind {
	case KindIntegerConstant:
		switch tt.Kind {
		case KindInteger:
			return fitsInBits(ft.ConstValue, tt.Bits, tt.IsSigned)
		case KindFixedBytes:
			return false
		}
	case KindStringLiteral:
		switch tt.Kind {
		case KindFixedBytes:
			return len(ft.StringValue) <= int(tt.Bytes())
		case KindArray:
			return tt.IsDynamicArray && in.sameType(tt.Elem, in.Intern(Type{Kind: KindFixedBytes, Bits: 8}))
		}
	case KindInteger:
		if tt.Kind != KindInteger {
			return false
		}
		if ft.IsAddress != tt.IsAddress {
			return false
		}
		if ft.IsSigned == tt.IsSigned {
			return tt.Bits >= ft.Bits
		}
		// unsigned -> signed needs strictly more room for the sign bit.
		return !ft.IsSigned && tt.IsSigned && tt.Bits > ft.Bits
	case KindFixedBytes:
		return tt.Kind == KindFixedBytes && tt.Bits >= ft.Bits
	case KindContract:
		if tt.Kind != KindContract {
			return false
		}
		if ft.Decl == tt.Decl {
			return true
		}
		return isBaseOf != nil && isBaseOf(uint32(tt.Decl), uint32(ft.Decl))
	case KindArray, KindMapping, KindStruct, KindEnum, KindFunction, KindModifier, KindBool, KindVoid, KindTypeType:
		return false
	}
	return false
}

// IsExplicitlyConvertibleTo reports whether a cast from "from" to "to" is
// permitted (§4.5.4). Note this relation is NOT transitive: e.g. a uint8
// converts explicitly to bytes1 (equal bit width), and a uint8 converts
// explicitly to uint16 (widening), but bytes1 does not convert explicitly
// to uint16 (different bit width, and FixedBytes<->Integer requires an
// exact match) — chaining two valid explicit conversions does not always
// yield a third valid one.
func (in *Interner) IsExplicitlyConvertibleTo(from, to TypeID, isBaseOf func(baseDecl, derivedDecl uint32) bool) bool {
	if in.IsImplicitlyConvertibleTo(from, to, isBaseOf) {
		return true
	}
	ft, ok := in.Lookup(from)
	if !ok {
		return false
	}
	tt, ok := in.Lookup(to)
	if !ok {
		return false
	}

	switch ft.Kind {
	case KindInteger:
		switch tt.Kind {
		case KindInteger:
			return ft.IsAddress == tt.IsAddress
		case KindFixedBytes:
			return !ft.IsAddress && ft.Bits == tt.Bits
		}
	case KindFixedBytes:
		switch tt.Kind {
		case KindFixedBytes:
			return true
		case KindInteger:
			return !tt.IsAddress && ft.Bits == tt.Bits
		}
	case KindIntegerConstant:
		if tt.Kind == KindInteger || tt.Kind == KindFixedBytes {
			return true
		}
	case KindEnum:
		return tt.Kind == KindInteger && !tt.IsAddress
	case KindBool:
		return tt.Kind == KindInteger && !tt.IsAddress
	case KindContract:
		if tt.Kind == KindInteger && tt.IsAddress {
			return true
		}
		if tt.Kind == KindContract {
			return isBaseOf != nil && (isBaseOf(uint32(ft.Decl), uint32(tt.Decl)) || isBaseOf(uint32(tt.Decl), uint32(ft.Decl)))
		}
	}
	if ft.Kind == KindInteger && ft.IsAddress && tt.Kind == KindContract {
		return true
	}
	return false
}

func (in *Interner) sameType(a, b TypeID) bool { return a == b }

// IsValueType reports whether t is copied by value on assignment rather
// than aliased (§3.2): everything except Array, Mapping, and Struct when
// held in storage/memory location.
func (in *Interner) IsValueType(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindArray, KindMapping:
		return false
	case KindStruct:
		return t.Location == ast.LocUnspecified
	default:
		return true
	}
}

// CanBeStored reports whether a state variable may declare this type
// (§4.5.2); Mapping is storage-only but still storable, Function/Modifier
// and TypeType are not state-variable-representable.
func (in *Interner) CanBeStored(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindFunction, KindModifier, KindTypeType, KindVoid, KindIntegerConstant, KindStringLiteral:
		return false
	default:
		return true
	}
}

// CanLiveOutsideStorage reports whether the type may be used for a memory
// or calldata location, i.e. excludes Mapping, which may only be declared
// in storage (§4.5.2).
func (in *Interner) CanLiveOutsideStorage(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	if t.Kind == KindMapping {
		return false
	}
	if t.Kind == KindStruct {
		for _, m := range t.Members {
			if !in.CanLiveOutsideStorage(m) {
				return false
			}
		}
		return true
	}
	if t.Kind == KindArray {
		return in.CanLiveOutsideStorage(t.Elem)
	}
	return true
}

// ExternalType reports whether t may appear in an externally visible
// function's interface, i.e. can be encoded at the ABI boundary (§3.2's
// "externalType()", required to be non-empty by §4.5.2 for public and
// external function parameters and return values). Unlike
// CanLiveOutsideStorage, which only rules out Mapping, this also
// excludes Function, Modifier, and the pseudo-types, and recurses into
// Array and Struct members so a struct smuggling a mapping (or a
// function value) through one of its fields is still rejected.
func (in *Interner) ExternalType(id TypeID) bool {
	t, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch t.Kind {
	case KindMapping, KindFunction, KindModifier, KindTypeType, KindVoid, KindIntegerConstant, KindStringLiteral:
		return false
	case KindStruct:
		for _, m := range t.Members {
			if !in.ExternalType(m) {
				return false
			}
		}
		return true
	case KindArray:
		return in.ExternalType(t.Elem)
	default:
		return true
	}
}
