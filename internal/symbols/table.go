package symbols

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/source"
)

// Table aggregates the scope arena plus the cross-scope lookups the rest
// of the pipeline needs. Per the core's arena discipline, AST nodes never
// carry a back-reference to their owning scope directly — that mapping
// lives here instead (§9 "lazy per-node caches belong in a companion
// analysis object, not mutated onto the node").
type Table struct {
	Scopes  *Scopes
	Strings *source.Interner

	Global ScopeID

	declScope    map[ast.DeclID]ScopeID
	contractByID map[ast.DeclID]ScopeID // contract Decl -> its ScopeContract
}

// NewTable builds a fresh table with its Global scope already allocated.
// If strings is nil a fresh interner is allocated.
func NewTable(strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:       NewScopes(0),
		Strings:      strings,
		declScope:    make(map[ast.DeclID]ScopeID),
		contractByID: make(map[ast.DeclID]ScopeID),
	}
	t.Global = t.Scopes.New(ScopeGlobal, NoScopeID, ast.NoDeclID, source.Span{})
	return t
}

// ScopeOf returns the scope a declaration was registered into, or
// NoScopeID if decl was never registered (or registration failed, e.g. a
// duplicate).
func (t *Table) ScopeOf(decl ast.DeclID) ScopeID {
	return t.declScope[decl]
}

// SetScopeOf records which scope owns decl. Registration code is the only
// caller; the mapping is write-once per DeclID in a well-formed pass.
func (t *Table) SetScopeOf(decl ast.DeclID, scope ScopeID) {
	t.declScope[decl] = scope
}

// ContractScope returns the ScopeContract created for a Contract Decl, or
// NoScopeID if that contract hasn't been registered yet.
func (t *Table) ContractScope(contract ast.DeclID) ScopeID {
	return t.contractByID[contract]
}

// SetContractScope records the ScopeContract for a Contract Decl.
func (t *Table) SetContractScope(contract ast.DeclID, scope ScopeID) {
	t.contractByID[contract] = scope
}

// Declared returns every declaration named name directly inside scope
// (not walking parents), in declaration order.
func (t *Table) Declared(scope ScopeID, name source.StringID) []ast.DeclID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	return s.NameIndex[name]
}

// Insert records decl under name in scope, without any duplicate
// checking — callers that need collision diagnostics go through
// Registry.declare instead. Used for synthetic entries (builtin globals,
// function parameters) that are known not to collide.
func (t *Table) Insert(scope ScopeID, name source.StringID, decl ast.DeclID) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return
	}
	s.Decls = append(s.Decls, decl)
	s.NameIndex[name] = append(s.NameIndex[name], decl)
	t.SetScopeOf(decl, scope)
}

// LookupChain walks from scope up through its ancestors (including
// scope itself) and returns the first name match found, innermost scope
// winning (§4.3 "inner declarations shadow outer ones").
func (t *Table) LookupChain(scope ScopeID, name source.StringID) ([]ast.DeclID, ScopeID) {
	cur := scope
	for cur.IsValid() {
		s := t.Scopes.Get(cur)
		if s == nil {
			return nil, NoScopeID
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids, cur
		}
		cur = s.Parent
	}
	return nil, NoScopeID
}
