package sema

import (
	"math/big"

	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
)

// fixture collects the builder and span plumbing the scenario tests share,
// standing in for the (out-of-scope) parser: every test below assembles its
// own small AST directly through the Builder API.
type fixture struct {
	b *ast.Builder
}

func newFixture() *fixture {
	return &fixture{b: ast.NewBuilder(nil)}
}

func (f *fixture) name(s string) source.StringID { return f.b.Strings.Intern(s) }

func (f *fixture) elementaryType(tok ast.ElementaryToken) ast.TypeNameID {
	return f.b.NewTypeName(ast.TypeName{Kind: ast.TypeNameElementary, Token: tok})
}

func (f *fixture) mappingType(key, value ast.TypeNameID) ast.TypeNameID {
	return f.b.NewTypeName(ast.TypeName{Kind: ast.TypeNameMapping, KeyType: key, ValueType: value})
}

func (f *fixture) userType(name string) ast.TypeNameID {
	return f.b.NewTypeName(ast.TypeName{
		Kind:     ast.TypeNameUserDefined,
		Path:     []source.StringID{f.name(name)},
		PathSpan: []source.Span{{}},
	})
}

func (f *fixture) param(name string, tn ast.TypeNameID) ast.DeclID {
	return f.b.NewVar(source.Span{}, ast.VariableDecl{Name: f.name(name), TypeName: tn})
}

func (f *fixture) localVar(name string, tn ast.TypeNameID) ast.DeclID {
	return f.b.NewVar(source.Span{}, ast.VariableDecl{Name: f.name(name), TypeName: tn})
}

func (f *fixture) function(name string, params, returns []ast.DeclID, vis ast.Visibility, body ast.StmtID) ast.DeclID {
	return f.b.NewFunction(source.Span{}, ast.FunctionDecl{
		Name:       f.name(name),
		Params:     params,
		Returns:    returns,
		Visibility: vis,
		Body:       body,
	})
}

func (f *fixture) constFunction(name string, params, returns []ast.DeclID, vis ast.Visibility, body ast.StmtID) ast.DeclID {
	return f.b.NewFunction(source.Span{}, ast.FunctionDecl{
		Name:       f.name(name),
		Params:     params,
		Returns:    returns,
		Visibility: vis,
		IsConstant: true,
		Body:       body,
	})
}

func (f *fixture) modifier(name string, params []ast.DeclID, body ast.StmtID) ast.DeclID {
	return f.b.NewModifier(source.Span{}, ast.ModifierDecl{
		Name:   f.name(name),
		Params: params,
		Body:   body,
	})
}

func withModifiers(mods ...ast.DeclID) func(*ast.ContractDecl) {
	return func(cd *ast.ContractDecl) { cd.Modifiers = mods }
}

func (f *fixture) publicStateVar(name string, tn ast.TypeNameID) ast.DeclID {
	return f.b.NewVar(source.Span{}, ast.VariableDecl{
		Name:            f.name(name),
		TypeName:        tn,
		Visibility:      ast.VisPublic,
		IsStateVariable: true,
	})
}

func (f *fixture) fallback(body ast.StmtID, params, returns []ast.DeclID, vis ast.Visibility) ast.DeclID {
	return f.b.NewFunction(source.Span{}, ast.FunctionDecl{
		Params:     params,
		Returns:    returns,
		Visibility: vis,
		Body:       body,
	})
}

func (f *fixture) contract(name string, bases []ast.BaseSpecifier, opts ...func(*ast.ContractDecl)) ast.DeclID {
	cd := ast.ContractDecl{Name: f.name(name), Bases: bases}
	for _, opt := range opts {
		opt(&cd)
	}
	return f.b.NewContract(source.Span{}, cd)
}

func withFunctions(fns ...ast.DeclID) func(*ast.ContractDecl) {
	return func(cd *ast.ContractDecl) { cd.Functions = fns }
}

func withEvents(evs ...ast.DeclID) func(*ast.ContractDecl) {
	return func(cd *ast.ContractDecl) { cd.Events = evs }
}

func withStateVars(vars ...ast.DeclID) func(*ast.ContractDecl) {
	return func(cd *ast.ContractDecl) { cd.StateVars = vars }
}

func asLibrary(cd *ast.ContractDecl) { cd.IsLibrary = true }

func (f *fixture) baseOf(name string, args ...ast.ExprID) ast.BaseSpecifier {
	return ast.BaseSpecifier{Path: []source.StringID{f.name(name)}, PathSpan: []source.Span{{}}, Args: args}
}

func (f *fixture) unit(contracts ...ast.DeclID) ast.DeclID {
	return f.b.NewSourceUnit(source.Span{}, ast.SourceUnitDecl{Contracts: contracts})
}

func (f *fixture) identExpr(name string) ast.ExprID {
	return f.b.NewIdentifier(source.Span{}, ast.IdentifierExpr{Name: f.name(name)})
}

func (f *fixture) intLiteral(v int64) ast.ExprID {
	return f.b.NewLiteral(source.Span{}, ast.LiteralExpr{LitKind: ast.LitNumber, IntValue: big.NewInt(v)})
}

func (f *fixture) boolLiteral(v bool) ast.ExprID {
	return f.b.NewLiteral(source.Span{}, ast.LiteralExpr{LitKind: ast.LitBool, BoolValue: v})
}

func (f *fixture) call(callee ast.ExprID, args ...ast.ExprID) ast.ExprID {
	callArgs := make([]ast.CallArg, len(args))
	for i, a := range args {
		callArgs[i] = ast.CallArg{Value: a}
	}
	return f.b.NewCall(source.Span{}, ast.CallExpr{Callee: callee, Args: callArgs})
}

func (f *fixture) exprStmt(e ast.ExprID) ast.StmtID {
	return f.b.NewExprStmt(source.Span{}, ast.ExprStmt{Value: e})
}

func (f *fixture) varDeclStmt(decls ...ast.DeclID) ast.StmtID {
	return f.b.NewVarDeclStmt(source.Span{}, ast.VarDeclStmt{Decls: decls})
}

func (f *fixture) block(stmts ...ast.StmtID) ast.StmtID {
	return f.b.NewBlock(source.Span{}, ast.BlockStmt{Statements: stmts})
}

func (f *fixture) check(unit ast.DeclID) (*Checker, bool, *diag.Bag) {
	bag := diag.NewBag(8)
	c, ok := Check(f.b, unit, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return c, ok, bag
}
