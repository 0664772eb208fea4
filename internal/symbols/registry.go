package symbols

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
)

// Registry drives the first AST pass (§4.2): it walks a source unit and
// registers every contract and contract member into the Declaration
// Container tree (§3.3), reporting a DeclarationError for any name
// collision that isn't a legal function overload set. It does not
// resolve references or inherited names — that is the Reference
// Resolver's job (§4.3), run as a second, separate pass over the same
// tree once every contract's own members are known.
type Registry struct {
	Builder  *ast.Builder
	Table    *Table
	Reporter diag.Reporter
}

// NewRegistry constructs a Registry over an existing Table (created via
// NewTable), or builds a fresh one if table is nil.
func NewRegistry(builder *ast.Builder, table *Table, reporter diag.Reporter) *Registry {
	if table == nil {
		table = NewTable(builder.Strings)
	}
	return &Registry{Builder: builder, Table: table, Reporter: reporter}
}

// RegisterSourceUnit runs the first pass over every contract declared in
// unit, returning true iff no DeclarationError was reported.
func (r *Registry) RegisterSourceUnit(unit ast.DeclID) bool {
	su := r.Builder.SourceUnit(unit)
	if su == nil {
		return true
	}
	ok := true
	for _, contract := range su.Contracts {
		if !r.RegisterContract(contract) {
			ok = false
		}
	}
	return ok
}

// RegisterContract registers one contract's name into the global scope
// and its members into a fresh ScopeContract.
func (r *Registry) RegisterContract(contract ast.DeclID) bool {
	c := r.Builder.Contract(contract)
	if c == nil {
		return true
	}
	ok := true
	if !r.declare(r.Table.Global, c.Name, c.NameSpan, contract, false) {
		ok = false
	}

	scope := r.Table.Scopes.New(ScopeContract, r.Table.Global, contract, c.NameSpan)
	r.Table.SetContractScope(contract, scope)
	r.Table.SetScopeOf(contract, r.Table.Global)

	for _, s := range c.Structs {
		if sd := r.Builder.Struct(s); sd != nil {
			if !r.declare(scope, sd.Name, sd.NameSpan, s, false) {
				ok = false
			}
			r.registerStructMembers(s, sd)
		}
	}
	for _, e := range c.Enums {
		if ed := r.Builder.Enum(e); ed != nil {
			if !r.declare(scope, ed.Name, ed.NameSpan, e, false) {
				ok = false
			}
			r.registerEnumValues(e, ed)
		}
	}
	for _, v := range c.StateVars {
		if vd := r.Builder.Var(v); vd != nil {
			if !r.declare(scope, vd.Name, vd.NameSpan, v, false) {
				ok = false
			}
		}
	}
	for _, ev := range c.Events {
		if ed := r.Builder.Event(ev); ed != nil {
			if !r.declare(scope, ed.Name, ed.NameSpan, ev, false) {
				ok = false
			}
		}
	}
	for _, m := range c.Modifiers {
		if md := r.Builder.Modifier(m); md != nil {
			if !r.declare(scope, md.Name, md.NameSpan, m, false) {
				ok = false
			}
		}
	}
	for _, f := range c.Functions {
		if fd := r.Builder.Function(f); fd != nil {
			// Functions overload (§4.5.6); the fallback function's empty
			// name never collides with anything and multiple fallbacks
			// are instead caught by the type checker's contract-level
			// pass (§4.5.1), not here.
			if !r.declare(scope, fd.Name, fd.NameSpan, f, true) {
				ok = false
			}
		}
	}
	return ok
}

func (r *Registry) registerStructMembers(structDecl ast.DeclID, sd *ast.StructDecl) {
	scope := r.Table.Scopes.New(ScopeBlock, r.Table.ScopeOf(structDecl), structDecl, sd.NameSpan)
	r.Table.SetContractScope(structDecl, scope)
	for _, m := range sd.Members {
		if vd := r.Builder.Var(m); vd != nil {
			r.declare(scope, vd.Name, vd.NameSpan, m, false)
		}
	}
}

func (r *Registry) registerEnumValues(enumDecl ast.DeclID, ed *ast.EnumDecl) {
	scope := r.Table.Scopes.New(ScopeBlock, r.Table.ScopeOf(enumDecl), enumDecl, ed.NameSpan)
	r.Table.SetContractScope(enumDecl, scope)
	for _, v := range ed.Values {
		if evd := r.Builder.EnumValue(v); evd != nil {
			r.declare(scope, evd.Name, evd.NameSpan, v, false)
		}
	}
}

// declare inserts decl under name in scope, reporting a DeclarationError
// if name is already taken by something that isn't a legal overload
// partner. allowOverload permits any number of same-named functions to
// coexist (used for functions); a function whose name is already taken
// by a non-function declaration still collides, and every other kind
// must be unique within its scope (§8 invariant 2, "scope uniqueness").
func (r *Registry) declare(scope ScopeID, name source.StringID, span source.Span, decl ast.DeclID, allowOverload bool) bool {
	s := r.Table.Scopes.Get(scope)
	if s == nil {
		return false
	}
	if name != source.NoStringID {
		existing := s.NameIndex[name]
		clash := len(existing) > 0 && !allowOverload
		for _, id := range existing {
			if d := r.Builder.Decl(id); d != nil && d.Kind != ast.DeclFunction {
				clash = true
			}
		}
		if clash {
			prev := existing[0]
			diag.Report(r.Reporter, diag.Declaration(span,
				"identifier '%s' already declared in this scope", r.Table.Strings.MustLookup(name)).
				WithNote(r.declSpan(prev), "previous declaration here"))
			return false
		}
	}
	s.Decls = append(s.Decls, decl)
	if name != source.NoStringID {
		s.NameIndex[name] = append(s.NameIndex[name], decl)
	}
	r.Table.SetScopeOf(decl, scope)
	return true
}

func (r *Registry) declSpan(decl ast.DeclID) source.Span {
	if d := r.Builder.Decl(decl); d != nil {
		return d.Span
	}
	return source.Span{}
}
