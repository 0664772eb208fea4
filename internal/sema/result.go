package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/symbols"
	"github.com/topsmart20/solidity/internal/types"
)

// Options configure a Check pass over one source unit (§4 "COMPONENT
// DESIGN" runs Scope Registry, Reference Resolver, Linearizer, and Type
// Checker in sequence over shared state like this).
type Options struct {
	Reporter diag.Reporter
	Types    *types.Interner
	Table    *symbols.Table
}

// Result stores every annotation the pipeline produces for a source unit,
// kept in side tables rather than on the AST nodes themselves (§9):
// cross-package annotations (TypeID) can't live on ast.Expr without
// ast importing types, which would cycle back since types imports ast for
// the operator-enum keys.
type Result struct {
	Types *types.Interner
	Table *symbols.Table

	// ExprTypes is the synthesized type of every successfully checked
	// expression (§4.5.4).
	ExprTypes map[ast.ExprID]types.TypeID

	// ArgumentTypes records, for each CallExpr, the resolved type of each
	// positional argument at the time the call was checked — overload
	// resolution (§4.5.6) needs these independent of whatever the callee
	// ultimately resolves to.
	ArgumentTypes map[ast.ExprID][]types.TypeID

	// ResolvedCallee records which FunctionDecl/ModifierDecl/contract a
	// CallExpr's callee resolved to after overload resolution, since
	// Expr.ReferencedDecl on the callee sub-expression names only the
	// overload *set*, not the chosen member.
	ResolvedCallee map[ast.ExprID]ast.DeclID
}

// NewResult allocates an empty Result. If interner/table are nil, fresh
// ones are created.
func NewResult(interner *types.Interner, table *symbols.Table, strings *ast.Builder) *Result {
	if interner == nil {
		interner = types.NewInterner()
	}
	if table == nil {
		var strTable = (*symbols.Table)(nil)
		if strings != nil {
			strTable = symbols.NewTable(strings.Strings)
		} else {
			strTable = symbols.NewTable(nil)
		}
		table = strTable
	}
	return &Result{
		Types:          interner,
		Table:          table,
		ExprTypes:      make(map[ast.ExprID]types.TypeID),
		ArgumentTypes:  make(map[ast.ExprID][]types.TypeID),
		ResolvedCallee: make(map[ast.ExprID]ast.DeclID),
	}
}
