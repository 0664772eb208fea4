package types

import (
	"fmt"
	"math/big"

	"fortio.org/safecast"

	"github.com/topsmart20/solidity/internal/ast"
)

// Type is a compact, value-semantic descriptor for any entry in the type
// lattice (§3.2). Which fields are meaningful depends on Kind alone; unused
// fields are left zero, the same flat-struct-with-unused-fields shape the
// AST's node types use.
type Type struct {
	Kind Kind

	// KindInteger: Bits in [8,256] step 8, IsSigned, IsAddress (Bits forced
	// to ast.AddressBits, IsSigned false).
	Bits      uint16
	IsSigned  bool
	IsAddress bool

	// KindFixedBytes: Bits in [8,256] step 8 (bytes = Bits/8).
	// (reuses Bits above)

	// KindArray
	Elem           TypeID
	Length         uint64
	IsDynamicArray bool
	Location       ast.DataLocation

	// KindMapping
	MapKey   TypeID
	MapValue TypeID

	// KindContract, KindStruct, KindEnum
	Decl ast.DeclID

	// KindStruct: the resolved type of each member, in declaration order,
	// filled in once at intern time so CanLiveOutsideStorage and
	// ExternalType can recurse into a struct's members without needing
	// the AST builder themselves.
	Members []TypeID

	// KindTypeType: the type this "type(T)" pseudo-type names.
	Inner TypeID

	// KindFunction, KindModifier: index into Interner.fns / Interner.mods.
	Payload uint32

	// KindIntegerConstant
	ConstValue *big.Int

	// KindStringLiteral
	StringValue []byte
}

// FnInfo stores the signature metadata for a Function type (§4.1).
type FnInfo struct {
	Params     []TypeID
	Results    []TypeID
	Visibility ast.Visibility
	// Decl is the FunctionDecl this type was synthesized from, NoDeclID
	// for a function-pointer type with no declaration site.
	Decl ast.DeclID
}

// ModInfo stores the metadata for a Modifier type (§4.1): modifiers are not
// callable like functions, they only ever appear as the type of a
// ModifierInvocation's target, so they carry just their parameter list.
type ModInfo struct {
	Params []TypeID
	Decl   ast.DeclID
}

// Interner provides stable, structurally-deduplicated TypeIDs, mirroring
// the AST's StringID interner (§4.1 "Types are interned and compared by
// identity after interning").
type Interner struct {
	types []Type
	index map[string]TypeID

	fns  []FnInfo
	mods []ModInfo

	builtins Builtins
}

// Builtins caches TypeIDs for the handful of types every pipeline run
// constructs repeatedly.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Bool    TypeID
	Uint256 TypeID
	Int256  TypeID
	Address TypeID
	Bytes32 TypeID
}

// NewInterner constructs an Interner seeded with the built-in primitives.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]TypeID, 64)}
	in.fns = append(in.fns, FnInfo{})
	in.mods = append(in.mods, ModInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Uint256 = in.Intern(Type{Kind: KindInteger, Bits: 256, IsSigned: false})
	in.builtins.Int256 = in.Intern(Type{Kind: KindInteger, Bits: 256, IsSigned: true})
	in.builtins.Address = in.Intern(Type{Kind: KindInteger, Bits: ast.AddressBits, IsAddress: true})
	in.builtins.Bytes32 = in.Intern(Type{Kind: KindFixedBytes, Bits: 256})
	return in
}

// BuiltinTypes returns the cached primitive TypeIDs.
func (in *Interner) BuiltinTypes() Builtins { return in.builtins }

// Intern ensures t has a stable TypeID, reusing an existing one when an
// equal descriptor was already interned.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := in.key(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internKeyed(t, key)
}

func (in *Interner) internRaw(t Type) TypeID {
	return in.internKeyed(t, in.key(t))
}

func (in *Interner) internKeyed(t Type, key string) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: too many interned types: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// key builds a structural identity string for t. Kinds whose fields are
// all fixed-size (scalar, or a TypeID referring to an already-interned
// type) could use a comparable struct key like the AST interner's string
// table does; IntegerConstant and StringLiteral additionally carry
// variable-size payloads (a big.Int, a byte slice) that are not
// comparable, so every kind is folded into one canonical string instead.
func (in *Interner) key(t Type) string {
	switch t.Kind {
	case KindIntegerConstant:
		val := "nil"
		if t.ConstValue != nil {
			val = t.ConstValue.String()
		}
		return fmt.Sprintf("IC:%s", val)
	case KindStringLiteral:
		return fmt.Sprintf("SL:%x", t.StringValue)
	case KindFunction, KindModifier:
		// Function/Modifier identity is the declaration site, not the
		// signature: two functions with identical signatures are still
		// distinct types (they resolve to distinct overloads).
		return fmt.Sprintf("%d:decl:%d:payload:%d", t.Kind, t.Decl, t.Payload)
	default:
		return fmt.Sprintf("%d:%d:%v:%v:%d:%d:%d:%d:%d:%d:%d",
			t.Kind, t.Bits, t.IsSigned, t.IsAddress,
			t.Elem, t.Length, t.MapKey, t.MapValue, t.Decl, t.Inner, t.Location)
	}
}

// Lookup returns the descriptor for id.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics on an invalid TypeID; use only where id is known-valid
// (e.g. a Builtins field).
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// InternFunction interns a Function type for the given declaration and
// signature.
func (in *Interner) InternFunction(decl ast.DeclID, info FnInfo) TypeID {
	slot, err := safecast.Conv[uint32](len(in.fns))
	if err != nil {
		panic(fmt.Errorf("types: too many function signatures: %w", err))
	}
	in.fns = append(in.fns, info)
	return in.internRaw(Type{Kind: KindFunction, Decl: decl, Payload: slot})
}

// FnInfoOf returns the signature metadata for a Function TypeID.
func (in *Interner) FnInfoOf(id TypeID) (*FnInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindFunction || int(t.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[t.Payload], true
}

// InternModifier interns a Modifier type for the given declaration.
func (in *Interner) InternModifier(decl ast.DeclID, info ModInfo) TypeID {
	slot, err := safecast.Conv[uint32](len(in.mods))
	if err != nil {
		panic(fmt.Errorf("types: too many modifier signatures: %w", err))
	}
	in.mods = append(in.mods, info)
	return in.internRaw(Type{Kind: KindModifier, Decl: decl, Payload: slot})
}

// ModInfoOf returns the parameter metadata for a Modifier TypeID.
func (in *Interner) ModInfoOf(id TypeID) (*ModInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindModifier || int(t.Payload) >= len(in.mods) {
		return nil, false
	}
	return &in.mods[t.Payload], true
}
