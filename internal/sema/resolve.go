package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
	"github.com/topsmart20/solidity/internal/symbols"
)

// Resolver runs the Reference Resolver's structural half of §4.3: binding
// each "is A, B" base specifier and each modifier invocation's path to
// the declaration it names. Name resolution *inside* expressions
// (identifiers, qualified member access) happens later, folded into the
// type checker's expression walk (§9, mirroring how the upstream
// NameAndTypeResolver resolves and types an expression in the same
// recursive descent instead of two separate full-AST passes) — doing
// base/modifier binding first is what lets that walk use each contract's
// already-known linearized scope chain.
type Resolver struct {
	Builder  *ast.Builder
	Table    *symbols.Table
	Reporter diag.Reporter

	fatal map[ast.DeclID]bool
}

// NewResolver constructs a Resolver.
func NewResolver(builder *ast.Builder, table *symbols.Table, reporter diag.Reporter) *Resolver {
	return &Resolver{Builder: builder, Table: table, Reporter: reporter, fatal: make(map[ast.DeclID]bool)}
}

// Failed reports whether contract's base list contains a name that
// could not be resolved to a declaration (§4.4, §7): a fatal condition,
// since every later pass assumes BaseSpecifier.Resolved is either valid
// or absent by design, not invalid by failure.
func (r *Resolver) Failed(contract ast.DeclID) bool {
	return r.fatal[contract]
}

// ResolveBases binds every base specifier of every contract in unit to
// its declaration, reporting a DeclarationError for an unknown base
// name. Must run after Registry.RegisterSourceUnit and before
// Linearizer.Linearize, which needs BaseSpecifier.Resolved filled in.
func (r *Resolver) ResolveBases(unit ast.DeclID) {
	su := r.Builder.SourceUnit(unit)
	if su == nil {
		return
	}
	for _, contract := range su.Contracts {
		r.resolveContractBases(contract)
	}
}

func (r *Resolver) resolveContractBases(contract ast.DeclID) {
	c := r.Builder.Contract(contract)
	if c == nil {
		return
	}
	for i := range c.Bases {
		b := &c.Bases[i]
		if len(b.Path) == 0 {
			continue
		}
		name := b.Path[len(b.Path)-1]
		ids := r.Table.Declared(r.Table.Global, name)
		resolved := firstContract(r.Builder, ids)
		if !resolved.IsValid() {
			diag.Report(r.Reporter, diag.Fatal(diag.Declaration(b.Span,
				"undeclared base contract %q", r.Builder.Strings.MustLookup(name))))
			r.fatal[contract] = true
			continue
		}
		if resolved == contract {
			diag.Report(r.Reporter, diag.Declaration(b.Span,
				"contract %q cannot derive from itself", r.Builder.Strings.MustLookup(c.Name)))
			continue
		}
		b.Resolved = resolved
	}
}

func firstContract(builder *ast.Builder, ids []ast.DeclID) ast.DeclID {
	for _, id := range ids {
		if d := builder.Decl(id); d != nil && d.Kind == ast.DeclContract {
			return id
		}
	}
	return ast.NoDeclID
}

// ResolveModifierInvocations binds each function's modifier-invocation
// list to either a ModifierDecl or a base ContractDecl (a base
// constructor argument list supplied at the function-declaration site,
// §4.5.1 "Abstract constructors"), searching the contract's linearized
// bases (lin) in order.
func (r *Resolver) ResolveModifierInvocations(contract ast.DeclID, lin []ast.DeclID) {
	c := r.Builder.Contract(contract)
	if c == nil {
		return
	}
	for _, fn := range c.Functions {
		fd := r.Builder.Function(fn)
		if fd == nil {
			continue
		}
		for i := range fd.Modifiers {
			r.resolveOneInvocation(&fd.Modifiers[i], lin)
		}
	}
}

func (r *Resolver) resolveOneInvocation(inv *ast.ModifierInvocation, lin []ast.DeclID) {
	if len(inv.Path) == 0 {
		return
	}
	name := inv.Path[len(inv.Path)-1]
	ids := EffectiveLookup(r.Table, lin, r.Builder, name)
	for _, id := range ids {
		if d := r.Builder.Decl(id); d != nil && d.Kind == ast.DeclModifier {
			inv.Resolved = id
			return
		}
	}
	// Not a modifier: maybe it names a base contract's constructor.
	for _, base := range lin[1:] {
		if bc := r.Builder.Contract(base); bc != nil && bc.Name == name {
			inv.Resolved = base
			return
		}
	}
	diag.Report(r.Reporter, diag.Declaration(inv.Span,
		"unknown modifier or base constructor %q", r.Builder.Strings.MustLookup(name)))
}

// EffectiveLookup resolves name against a contract's linearized base list
// (contract itself first, §4.4), the way member access and unqualified
// calls see inherited members: a more-derived non-function declaration
// hides everything with the same name further up the chain, but function
// overloads accumulate across the whole chain since an inherited overload
// remains callable unless its signature is itself overridden (§4.5.6).
func EffectiveLookup(table *symbols.Table, lin []ast.DeclID, builder *ast.Builder, name source.StringID) []ast.DeclID {
	var result []ast.DeclID
	for _, c := range lin {
		scope := table.ContractScope(c)
		ids := table.Declared(scope, name)
		if len(ids) == 0 {
			continue
		}
		allFunctions := true
		for _, id := range ids {
			if d := builder.Decl(id); d == nil || d.Kind != ast.DeclFunction {
				allFunctions = false
				break
			}
		}
		if !allFunctions {
			if len(result) == 0 {
				result = ids
			}
			break
		}
		result = append(result, ids...)
	}
	return result
}
