package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/types"
)

// ResolveTypeName turns a syntactic TypeName into an interned Type,
// looking up user-defined names (struct/enum/contract) against ctx's
// linearized base list (§4.1 "a TypeName is resolved relative to the
// contract it appears in"). Reports a DeclarationError and returns
// NoTypeID for an unknown name.
func (c *Checker) ResolveTypeName(id ast.TypeNameID, ctx []ast.DeclID) types.TypeID {
	tn := c.Builder.TypeNameNode(id)
	if tn == nil {
		return types.NoTypeID
	}
	switch tn.Kind {
	case ast.TypeNameElementary:
		t, ok := c.Types.FromElementaryToken(tn.Token)
		if !ok {
			diag.Report(c.Reporter, diag.Type(tn.Span, "unknown elementary type"))
			return types.NoTypeID
		}
		return t
	case ast.TypeNameUserDefined:
		return c.resolveUserDefinedTypeName(tn, ctx)
	case ast.TypeNameMapping:
		key := c.ResolveTypeName(tn.KeyType, ctx)
		val := c.ResolveTypeName(tn.ValueType, ctx)
		if key == types.NoTypeID || val == types.NoTypeID {
			return types.NoTypeID
		}
		if !c.Types.IsValueType(key) {
			diag.Report(c.Reporter, diag.Type(tn.Span, "mapping key type must be a value type"))
			return types.NoTypeID
		}
		return c.Types.Intern(types.Type{Kind: types.KindMapping, MapKey: key, MapValue: val})
	case ast.TypeNameArray:
		elem := c.ResolveTypeName(tn.BaseType, ctx)
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		if !tn.Length.IsValid() {
			return c.Types.Intern(types.Type{Kind: types.KindArray, Elem: elem, IsDynamicArray: true})
		}
		length, ok := c.constantArrayLength(tn.Length, ctx)
		if !ok {
			diag.Report(c.Reporter, diag.Type(tn.Span, "array length must be a constant non-negative integer"))
			return types.NoTypeID
		}
		return c.Types.Intern(types.Type{Kind: types.KindArray, Elem: elem, Length: length})
	default:
		return types.NoTypeID
	}
}

func (c *Checker) resolveUserDefinedTypeName(tn *ast.TypeName, ctx []ast.DeclID) types.TypeID {
	if len(tn.Path) == 0 {
		return types.NoTypeID
	}
	var candidates []ast.DeclID
	if len(tn.Path) == 1 {
		candidates = EffectiveLookup(c.Table, ctx, c.Builder, tn.Path[0])
	} else {
		// Qualified path: "Base.Inner" — resolve Base as a contract in
		// ctx or globally, then look Inner up in Base's own scope (not
		// Base's bases, a qualification names exactly one declaration).
		baseIDs := EffectiveLookup(c.Table, ctx, c.Builder, tn.Path[0])
		if len(baseIDs) == 0 {
			baseIDs = c.Table.Declared(c.Table.Global, tn.Path[0])
		}
		baseContract := firstContract(c.Builder, baseIDs)
		if !baseContract.IsValid() {
			diag.Report(c.Reporter, diag.Declaration(tn.Span, "undeclared qualifier in type name"))
			return types.NoTypeID
		}
		candidates = c.Table.Declared(c.Table.ContractScope(baseContract), tn.Path[len(tn.Path)-1])
	}
	for _, id := range candidates {
		d := c.Builder.Decl(id)
		if d == nil {
			continue
		}
		switch d.Kind {
		case ast.DeclStruct:
			return c.structType(id, ctx)
		case ast.DeclEnum:
			return c.Types.Intern(types.Type{Kind: types.KindEnum, Decl: id})
		case ast.DeclContract:
			return c.Types.Intern(types.Type{Kind: types.KindContract, Decl: id})
		}
	}
	diag.Report(c.Reporter, diag.Declaration(tn.Span, "identifier is not a type"))
	return types.NoTypeID
}

// structType interns the Struct type for id, resolving every field to
// its own interned Type so CanLiveOutsideStorage and ExternalType can
// recurse into a struct's members (§3.2) without themselves needing the
// AST builder. Structs cannot reference themselves, directly or
// indirectly, so this never recurses back into id. The one call site
// that previously interned a bare Type{Kind: KindStruct, Decl: id} (in
// typeOfDecl) now goes through here too, so every Struct TypeID for a
// given declaration carries the same Members regardless of which
// expression first asked for it.
func (c *Checker) structType(id ast.DeclID, ctx []ast.DeclID) types.TypeID {
	sd := c.Builder.Struct(id)
	if sd == nil {
		return c.Types.Intern(types.Type{Kind: types.KindStruct, Decl: id})
	}
	members := make([]types.TypeID, 0, len(sd.Members))
	for _, m := range sd.Members {
		vd := c.Builder.Var(m)
		if vd == nil {
			continue
		}
		members = append(members, c.ResolveTypeName(vd.TypeName, ctx))
	}
	return c.Types.Intern(types.Type{Kind: types.KindStruct, Decl: id, Members: members})
}

// constantArrayLength evaluates a fixed-size array bound; only literal
// integers are supported (§4.6 style constant folding is out of scope
// for anything beyond this).
func (c *Checker) constantArrayLength(expr ast.ExprID, ctx []ast.DeclID) (uint64, bool) {
	lit := c.Builder.Literal(expr)
	if lit == nil || lit.LitKind != ast.LitNumber || lit.IntValue == nil {
		return 0, false
	}
	if lit.IntValue.Sign() < 0 || !lit.IntValue.IsUint64() {
		return 0, false
	}
	return lit.IntValue.Uint64(), true
}
