package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
	"github.com/topsmart20/solidity/internal/symbols"
	"github.com/topsmart20/solidity/internal/types"
)

// checkFrame threads per-function state down through a statement walk:
// the declared return types a return statement must match, and (for
// modifier bodies) a shared counter the placeholder statement increments
// so CheckModifier can enforce "_ exactly once" after the walk completes.
type checkFrame struct {
	returnTypes       []types.TypeID
	returnSpan        source.Span
	countPlaceholders *int
}

func (c *Checker) checkStmt(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) bool {
	s := c.Builder.StmtNode(id)
	if s == nil {
		return true
	}
	switch s.Kind {
	case ast.StmtBlock:
		return c.checkBlock(id, ctx, stack, frame)
	case ast.StmtIf:
		return c.checkIf(id, ctx, stack, frame)
	case ast.StmtWhile:
		return c.checkWhile(id, ctx, stack, frame)
	case ast.StmtFor:
		return c.checkFor(id, ctx, stack, frame)
	case ast.StmtReturn:
		return c.checkReturn(id, ctx, stack, frame)
	case ast.StmtVarDecl:
		return c.checkVarDeclStmt(id, ctx, stack)
	case ast.StmtExpr:
		es := c.Builder.ExprStmtNode(id)
		if es == nil {
			return true
		}
		return c.CheckExpr(es.Value, ctx, stack, frame) != types.NoTypeID || !es.Value.IsValid()
	case ast.StmtPlaceholder:
		if frame != nil && frame.countPlaceholders != nil {
			*frame.countPlaceholders++
		} else {
			diag.Report(c.Reporter, diag.Declaration(s.Span, "placeholder statement is only valid inside a modifier body"))
			return false
		}
		return true
	default:
		return true
	}
}

func (c *Checker) checkBlock(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) bool {
	b := c.Builder.Block(id)
	if b == nil {
		return true
	}
	scope := stack.Enter(symbols.ScopeBlock, ast.NoDeclID, c.Builder.StmtNode(id).Span)
	ok := true
	for _, stmt := range b.Statements {
		if !c.checkStmt(stmt, ctx, stack, frame) {
			ok = false
		}
	}
	stack.Leave(scope)
	return ok
}

func (c *Checker) checkIf(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) bool {
	st := c.Builder.If(id)
	if st == nil {
		return true
	}
	ok := true
	condType := c.CheckExpr(st.Cond, ctx, stack, frame)
	if condType != c.Types.BuiltinTypes().Bool {
		diag.Report(c.Reporter, diag.Type(c.Builder.ExprNode(st.Cond).Span, "if condition must be bool"))
		ok = false
	}
	if !c.checkStmt(st.Then, ctx, stack, frame) {
		ok = false
	}
	if st.Else.IsValid() && !c.checkStmt(st.Else, ctx, stack, frame) {
		ok = false
	}
	return ok
}

func (c *Checker) checkWhile(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) bool {
	st := c.Builder.While(id)
	if st == nil {
		return true
	}
	ok := true
	if c.CheckExpr(st.Cond, ctx, stack, frame) != c.Types.BuiltinTypes().Bool {
		diag.Report(c.Reporter, diag.Type(c.Builder.ExprNode(st.Cond).Span, "while condition must be bool"))
		ok = false
	}
	if !c.checkStmt(st.Body, ctx, stack, frame) {
		ok = false
	}
	return ok
}

func (c *Checker) checkFor(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) bool {
	st := c.Builder.For(id)
	if st == nil {
		return true
	}
	scope := stack.Enter(symbols.ScopeBlock, ast.NoDeclID, c.Builder.StmtNode(id).Span)
	ok := true
	if st.Init.IsValid() && !c.checkStmt(st.Init, ctx, stack, frame) {
		ok = false
	}
	if st.Cond.IsValid() {
		if c.CheckExpr(st.Cond, ctx, stack, frame) != c.Types.BuiltinTypes().Bool {
			diag.Report(c.Reporter, diag.Type(c.Builder.ExprNode(st.Cond).Span, "for condition must be bool"))
			ok = false
		}
	}
	if st.Post.IsValid() && !c.checkStmt(st.Post, ctx, stack, frame) {
		ok = false
	}
	if !c.checkStmt(st.Body, ctx, stack, frame) {
		ok = false
	}
	stack.Leave(scope)
	return ok
}

func (c *Checker) checkReturn(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) bool {
	st := c.Builder.Return(id)
	if st == nil {
		return true
	}
	if frame == nil {
		return true
	}
	switch {
	case !st.Value.IsValid():
		return len(frame.returnTypes) == 0
	case len(frame.returnTypes) == 0:
		diag.Report(c.Reporter, diag.Type(c.Builder.StmtNode(id).Span, "function has no return values"))
		return false
	case len(frame.returnTypes) == 1:
		t := c.CheckExpr(st.Value, ctx, stack, frame)
		if t == types.NoTypeID {
			return false
		}
		if !c.Types.IsImplicitlyConvertibleTo(t, frame.returnTypes[0], c.isBaseOf) {
			diag.Report(c.Reporter, diag.Type(c.Builder.ExprNode(st.Value).Span, "return value type does not match declared return type"))
			return false
		}
		return true
	default:
		// Multiple declared return values: the expression is only
		// type-checked; its type is not compared with any of the
		// declared return types (tuple returns are not modelled, §4.5.3).
		t := c.CheckExpr(st.Value, ctx, stack, frame)
		return t != types.NoTypeID
	}
}

func (c *Checker) checkVarDeclStmt(id ast.StmtID, ctx []ast.DeclID, stack *symbols.Stack) bool {
	st := c.Builder.VarDeclStmtNode(id)
	if st == nil {
		return true
	}
	ok := true
	for _, d := range st.Decls {
		vd := c.Builder.Var(d)
		if vd == nil {
			continue
		}
		var declared types.TypeID
		if vd.TypeName.IsValid() {
			declared = c.ResolveTypeName(vd.TypeName, ctx)
		}
		if vd.Value.IsValid() {
			valType := c.CheckExpr(vd.Value, ctx, stack, nil)
			if valType == types.NoTypeID {
				ok = false
			} else if declared == types.NoTypeID {
				declared = c.Types.MobileType(valType)
			} else if !c.Types.IsImplicitlyConvertibleTo(valType, declared, c.isBaseOf) {
				diag.Report(c.Reporter, diag.Type(vd.NameSpan, "cannot initialize local variable: incompatible types"))
				ok = false
			}
		}
		if declared == types.NoTypeID {
			diag.Report(c.Reporter, diag.Declaration(vd.NameSpan, "cannot infer type of local variable without an initializer"))
			ok = false
		}
		stack.Declare(vd.Name, vd.NameSpan, d)
	}
	return ok
}
