package types

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/source"
)

// Member is one entry a MemberAccessExpr may resolve to (§4.5.4): either a
// declared member (struct field, enum value, contract function/state
// variable — ReferencedDecl is filled on the AST node by the resolver) or
// a synthetic member the lattice itself injects (array.length, array.push,
// .push(x)), which has no backing declaration.
type Member struct {
	Name     source.StringID
	Type     TypeID
	DeclName bool // true if Name names an ast.DeclID-backed member
}

// ArrayLengthName/ArrayPushName are the synthetic member names injected
// for Array types (§4.5.4); they are looked up by raw spelling rather than
// interned once at startup, since the source.Interner that owns StringIDs
// isn't available to this package at init time.
const (
	ArrayLengthName = "length"
	ArrayPushName   = "push"
)

// MembersOf enumerates the synthetic members a type exposes beyond its
// declared ones (struct fields, contract functions and state variables,
// and enum values are walked directly off the ast.Decl by the caller,
// since they require source.StringID lookups this package doesn't own).
// Only Array currently injects synthetic members.
func (in *Interner) MembersOf(id TypeID, strings *source.Interner) []Member {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindArray {
		return nil
	}
	uintType := in.builtins.Uint256
	members := []Member{
		{Name: strings.Intern(ArrayLengthName), Type: uintType},
	}
	if t.IsDynamicArray && t.Location == ast.LocStorage {
		pushFn := in.InternFunction(ast.NoDeclID, FnInfo{Params: []TypeID{t.Elem}, Results: nil})
		members = append(members, Member{Name: strings.Intern(ArrayPushName), Type: pushFn})
	}
	return members
}
