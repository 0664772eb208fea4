package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/symbols"
	"github.com/topsmart20/solidity/internal/types"
)

// Checker drives §4.4 (via Linearizer) and §4.5 over an already-
// registered AST (§4.2's Registry must have already run, see Check).
// Each exported Check* method returns ok=false iff it reported at least
// one non-Warning diagnostic, matching §7's pass-level contract.
type Checker struct {
	Builder    *ast.Builder
	Table      *symbols.Table
	Types      *types.Interner
	Linearizer *Linearizer
	Reporter   diag.Reporter
	Result     *Result
}

// NewChecker wires a Checker over an already-constructed Table/Interner
// pair (typically produced by Check's own setup, or shared across a
// batch by the driver for cross-contract resolution, §5).
func NewChecker(builder *ast.Builder, table *symbols.Table, typesInterner *types.Interner, reporter diag.Reporter) *Checker {
	if table == nil {
		table = symbols.NewTable(builder.Strings)
	}
	if typesInterner == nil {
		typesInterner = types.NewInterner()
	}
	return &Checker{
		Builder:    builder,
		Table:      table,
		Types:      typesInterner,
		Linearizer: NewLinearizer(builder, reporter),
		Reporter:   reporter,
		Result: &Result{
			Types:          typesInterner,
			Table:          table,
			ExprTypes:      make(map[ast.ExprID]types.TypeID),
			ArgumentTypes:  make(map[ast.ExprID][]types.TypeID),
			ResolvedCallee: make(map[ast.ExprID]ast.DeclID),
		},
	}
}

// isBaseOf adapts Linearizer to the (baseDecl, derivedDecl uint32) shape
// types.Interner's conversion rules expect, without types importing
// either sema or ast.DeclID directly.
func (c *Checker) isBaseOf(baseDecl, derivedDecl uint32) bool {
	for _, b := range c.Linearizer.Linearize(ast.DeclID(derivedDecl)) {
		if uint32(b) == baseDecl {
			return true
		}
	}
	return false
}

// Check runs every pass (§4.2-§4.6, gas metering excluded — that's a
// separate, optional stage run over the already-checked output) over a
// single source unit and returns whether it type-checks cleanly.
func Check(builder *ast.Builder, unit ast.DeclID, opts Options) (*Checker, bool) {
	table := opts.Table
	if table == nil {
		table = symbols.NewTable(builder.Strings)
	}
	c := NewChecker(builder, table, opts.Types, opts.Reporter)

	registry := symbols.NewRegistry(builder, table, opts.Reporter)
	ok := registry.RegisterSourceUnit(unit)

	resolver := NewResolver(builder, table, opts.Reporter)
	resolver.ResolveBases(unit)

	su := builder.SourceUnit(unit)
	if su == nil {
		return c, ok
	}
	for _, contract := range su.Contracts {
		lin := c.Linearizer.Linearize(contract)
		resolver.ResolveModifierInvocations(contract, lin)
	}
	for _, contract := range su.Contracts {
		if resolver.Failed(contract) {
			// §7: an unresolvable base name is fatal, and aborts the
			// pass for this contract: none of CheckContract's rules run
			// against a base list it can't trust.
			ok = false
			continue
		}
		if !c.CheckContract(contract) {
			ok = false
		}
	}
	return c, ok
}
