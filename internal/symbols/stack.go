package symbols

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
)

// Stack drives scope management while a pass walks into function bodies
// and nested blocks (§4.3): each Enter pushes a ScopeFunction/ScopeBlock
// as a child of whatever is current, each Leave pops it back off. Unlike
// Registry, which only ever writes into already-known contract/global
// scopes, Stack's scopes are created and abandoned as traversal proceeds.
type Stack struct {
	table    *Table
	reporter diag.Reporter
	frames   []ScopeID
}

// NewStack starts a traversal rooted at root (typically a ScopeContract).
func NewStack(table *Table, root ScopeID, reporter diag.Reporter) *Stack {
	st := &Stack{table: table, reporter: reporter, frames: make([]ScopeID, 0, 8)}
	if root.IsValid() {
		st.frames = append(st.frames, root)
	}
	return st
}

// Current returns the innermost active scope.
func (st *Stack) Current() ScopeID {
	if len(st.frames) == 0 {
		return NoScopeID
	}
	return st.frames[len(st.frames)-1]
}

// Enter pushes a new child scope of the given kind and returns its ID.
func (st *Stack) Enter(kind ScopeKind, owner ast.DeclID, span source.Span) ScopeID {
	scope := st.table.Scopes.New(kind, st.Current(), owner, span)
	st.frames = append(st.frames, scope)
	return scope
}

// Leave pops the innermost scope. expected lets callers assert stack
// discipline; a mismatch is a bug in the walker, not a user-facing
// diagnostic, so it panics rather than emitting one.
func (st *Stack) Leave(expected ScopeID) {
	if len(st.frames) == 0 {
		return
	}
	top := st.frames[len(st.frames)-1]
	if expected.IsValid() && top != expected {
		panic("symbols: scope stack mismatch")
	}
	st.frames = st.frames[:len(st.frames)-1]
}

// Declare installs decl under name in the current scope, reporting a
// DeclarationError on collision with an existing local (§4.5.2 "a local
// variable may not reuse a name already visible in its own function"),
// and a Warning when it merely shadows an outer declaration.
func (st *Stack) Declare(name source.StringID, span source.Span, decl ast.DeclID) bool {
	scope := st.Current()
	s := st.table.Scopes.Get(scope)
	if s == nil {
		return false
	}
	if name != source.NoStringID {
		if existing := s.NameIndex[name]; len(existing) > 0 {
			diag.Report(st.reporter, diag.Declaration(span,
				"identifier '%s' already declared in this scope", st.table.Strings.MustLookup(name)))
			return false
		}
		if shadow := st.findShadow(scope, name); shadow.IsValid() {
			diag.Report(st.reporter, diag.Warn(span,
				"declaration of '%s' shadows an outer declaration", st.table.Strings.MustLookup(name)))
		}
	}
	s.Decls = append(s.Decls, decl)
	if name != source.NoStringID {
		s.NameIndex[name] = append(s.NameIndex[name], decl)
	}
	st.table.SetScopeOf(decl, scope)
	return true
}

func (st *Stack) findShadow(scope ScopeID, name source.StringID) ast.DeclID {
	s := st.table.Scopes.Get(scope)
	if s == nil {
		return ast.NoDeclID
	}
	parent := s.Parent
	for parent.IsValid() {
		ps := st.table.Scopes.Get(parent)
		if ps == nil {
			break
		}
		if ids := ps.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1]
		}
		parent = ps.Parent
	}
	return ast.NoDeclID
}

// Lookup walks from the current scope outward and returns the innermost
// matching declarations for name, plus the scope they were found in.
func (st *Stack) Lookup(name source.StringID) ([]ast.DeclID, ScopeID) {
	return st.table.LookupChain(st.Current(), name)
}
