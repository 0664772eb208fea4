package symbols

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/source"
)

// ScopeKind enumerates the lexical scope categories the Declaration
// Container tree distinguishes (§3.3).
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // the single root holding every top-level contract
	ScopeContract           // one per contract: structs, enums, events, modifiers, functions, state vars
	ScopeFunction           // one per function/modifier body: parameters and named returns
	ScopeBlock              // one per nested block statement
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeContract:
		return "contract"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models one node of the Declaration Container tree (§3.3): a
// parent link, the declaration it belongs to (NoDeclID for the global
// scope and for plain block scopes), and a name index over the
// declarations introduced directly inside it.
type Scope struct {
	Kind     ScopeKind
	Parent   ScopeID
	Owner    ast.DeclID
	Span     source.Span
	Decls    []ast.DeclID
	Children []ScopeID

	// NameIndex maps a name to every declaration introduced under it in
	// this scope, in declaration order. Most names have exactly one
	// entry; functions may have several (overloads, §4.5.6).
	NameIndex map[source.StringID][]ast.DeclID
}
