package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
	"github.com/topsmart20/solidity/internal/symbols"
	"github.com/topsmart20/solidity/internal/types"
)

// CheckExpr is the combined resolve-and-type walk §4.3's package doc talks
// about: it both binds IdentifierExpr/MemberAccessExpr to a declaration
// and derives the expression's static type in one recursive descent,
// recording the result in Result.ExprTypes keyed by expr so a caller never
// needs to re-walk.
func (c *Checker) CheckExpr(id ast.ExprID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	e := c.Builder.ExprNode(id)
	if e == nil {
		return types.NoTypeID
	}
	t := c.checkExprKind(id, e, ctx, stack, frame)
	if t != types.NoTypeID {
		c.Result.ExprTypes[id] = t
	}
	return t
}

func (c *Checker) checkExprKind(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	switch e.Kind {
	case ast.ExprLiteral:
		return c.checkLiteral(id)
	case ast.ExprIdentifier:
		return c.checkIdentifier(id, e, ctx, stack)
	case ast.ExprElementaryTypeNameExpr:
		return c.checkElementaryTypeNameExpr(id)
	case ast.ExprMemberAccess:
		return c.checkMemberAccess(id, e, ctx, stack, frame)
	case ast.ExprIndexAccess:
		return c.checkIndexAccess(id, e, ctx, stack, frame)
	case ast.ExprCall:
		return c.checkCall(id, e, ctx, stack, frame)
	case ast.ExprNew:
		return c.checkNew(id)
	case ast.ExprUnary:
		return c.checkUnary(id, e, ctx, stack, frame)
	case ast.ExprBinary:
		return c.checkBinary(id, e, ctx, stack, frame)
	default:
		return types.NoTypeID
	}
}

func (c *Checker) checkLiteral(id ast.ExprID) types.TypeID {
	lit := c.Builder.Literal(id)
	if lit == nil {
		return types.NoTypeID
	}
	switch lit.LitKind {
	case ast.LitBool:
		return c.Types.ForBoolLiteral()
	case ast.LitNumber:
		return c.Types.ForNumberLiteral(lit.IntValue)
	case ast.LitString:
		return c.Types.ForStringLiteral(lit.StringValue)
	default:
		return types.NoTypeID
	}
}

func (c *Checker) checkIdentifier(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack) types.TypeID {
	ident := c.Builder.Identifier(id)
	if ident == nil {
		return types.NoTypeID
	}
	locals, _ := stack.Lookup(ident.Name)
	candidates := locals
	if len(candidates) == 0 {
		candidates = EffectiveLookup(c.Table, ctx, c.Builder, ident.Name)
	}
	if len(candidates) == 0 {
		diag.Report(c.Reporter, diag.Declaration(e.Span, "undeclared identifier %q", c.Builder.Strings.MustLookup(ident.Name)))
		return types.NoTypeID
	}
	// More than one candidate is only legal if every one is a function
	// overload (§4.5.6); the overload itself is resolved once this
	// identifier is seen as a call's callee (checkCall), so here we just
	// hand back a Function type for the first candidate as a placeholder
	// static type — it is replaced once the surrounding call resolves.
	e.ReferencedDecl = candidates[0]
	if d := c.Builder.Decl(candidates[0]); d != nil && d.Kind == ast.DeclVariable {
		e.IsLValue = true
	}
	return c.typeOfDecl(candidates[0], ctx)
}

func (c *Checker) typeOfDecl(id ast.DeclID, ctx []ast.DeclID) types.TypeID {
	d := c.Builder.Decl(id)
	if d == nil {
		return types.NoTypeID
	}
	switch d.Kind {
	case ast.DeclVariable:
		vd := c.Builder.Var(id)
		if vd == nil {
			return types.NoTypeID
		}
		if vd.TypeName.IsValid() {
			return c.ResolveTypeName(vd.TypeName, ctx)
		}
		if vd.Value.IsValid() {
			if t, ok := c.Result.ExprTypes[vd.Value]; ok {
				return c.Types.MobileType(t)
			}
		}
		return types.NoTypeID
	case ast.DeclFunction:
		return c.functionType(id, ctx)
	case ast.DeclModifier:
		return c.modifierType(id, ctx)
	case ast.DeclContract:
		return c.Types.Intern(types.Type{Kind: types.KindTypeType, Inner: c.Types.Intern(types.Type{Kind: types.KindContract, Decl: id})})
	case ast.DeclStruct:
		return c.Types.Intern(types.Type{Kind: types.KindTypeType, Inner: c.structType(id, ctx)})
	case ast.DeclEnum:
		return c.Types.Intern(types.Type{Kind: types.KindTypeType, Inner: c.Types.Intern(types.Type{Kind: types.KindEnum, Decl: id})})
	case ast.DeclEnumValue:
		// An enum value's type is its owning enum; callers walk members
		// via checkMemberAccess instead of reaching this path directly
		// except through EffectiveLookup collisions, so NoTypeID here is
		// fine: enum values are only ever resolved as members.
		return types.NoTypeID
	default:
		return types.NoTypeID
	}
}

func (c *Checker) functionType(fn ast.DeclID, ctx []ast.DeclID) types.TypeID {
	fd := c.Builder.Function(fn)
	if fd == nil {
		return types.NoTypeID
	}
	params := make([]types.TypeID, 0, len(fd.Params))
	for _, p := range fd.Params {
		if vd := c.Builder.Var(p); vd != nil {
			params = append(params, c.ResolveTypeName(vd.TypeName, ctx))
		}
	}
	results := make([]types.TypeID, 0, len(fd.Returns))
	for _, r := range fd.Returns {
		if vd := c.Builder.Var(r); vd != nil {
			results = append(results, c.ResolveTypeName(vd.TypeName, ctx))
		}
	}
	return c.Types.InternFunction(fn, types.FnInfo{Params: params, Results: results, Visibility: fd.Visibility, Decl: fn})
}

func (c *Checker) modifierType(m ast.DeclID, ctx []ast.DeclID) types.TypeID {
	md := c.Builder.Modifier(m)
	if md == nil {
		return types.NoTypeID
	}
	params := make([]types.TypeID, 0, len(md.Params))
	for _, p := range md.Params {
		if vd := c.Builder.Var(p); vd != nil {
			params = append(params, c.ResolveTypeName(vd.TypeName, ctx))
		}
	}
	return c.Types.InternModifier(m, types.ModInfo{Params: params, Decl: m})
}

func (c *Checker) checkElementaryTypeNameExpr(id ast.ExprID) types.TypeID {
	n := c.Builder.ElementaryTypeNameExpr(id)
	if n == nil {
		return types.NoTypeID
	}
	inner, ok := c.Types.FromElementaryToken(n.Token)
	if !ok {
		return types.NoTypeID
	}
	return c.Types.Intern(types.Type{Kind: types.KindTypeType, Inner: inner})
}

func (c *Checker) checkMemberAccess(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	ma := c.Builder.MemberAccess(id)
	if ma == nil {
		return types.NoTypeID
	}
	baseType := c.CheckExpr(ma.Base, ctx, stack, frame)
	if baseType == types.NoTypeID {
		return types.NoTypeID
	}
	base, ok := c.Types.Lookup(baseType)
	if !ok {
		return types.NoTypeID
	}

	// Member access on "type(T)" or a Contract pseudo-namespace resolves
	// against the named declaration's own scope rather than instance
	// members (static member / enum value / nested type).
	declKind := base.Kind
	declID := base.Decl
	if base.Kind == types.KindTypeType {
		inner, ok := c.Types.Lookup(base.Inner)
		if !ok {
			return types.NoTypeID
		}
		declKind = inner.Kind
		declID = inner.Decl
	}

	switch declKind {
	case types.KindContract:
		lin := c.Linearizer.Linearize(declID)
		candidates := EffectiveLookup(c.Table, lin, c.Builder, ma.Member)
		if len(candidates) == 0 {
			diag.Report(c.Reporter, diag.Declaration(ma.MemberSpan,
				"contract has no member %q", c.Builder.Strings.MustLookup(ma.Member)))
			return types.NoTypeID
		}
		e.ReferencedDecl = candidates[0]
		if d := c.Builder.Decl(candidates[0]); d != nil && d.Kind == ast.DeclVariable {
			e.IsLValue = true
		}
		return c.typeOfDecl(candidates[0], lin)
	case types.KindStruct:
		sd := c.Builder.Struct(declID)
		if sd == nil {
			return types.NoTypeID
		}
		for _, m := range sd.Members {
			vd := c.Builder.Var(m)
			if vd != nil && vd.Name == ma.Member {
				e.ReferencedDecl = m
				e.IsLValue = true
				return c.ResolveTypeName(vd.TypeName, ctx)
			}
		}
	case types.KindEnum:
		ed := c.Builder.Enum(declID)
		if ed == nil {
			return types.NoTypeID
		}
		for _, v := range ed.Values {
			vd := c.Builder.EnumValue(v)
			if vd != nil && vd.Name == ma.Member {
				e.ReferencedDecl = v
				return c.Types.Intern(types.Type{Kind: types.KindEnum, Decl: declID})
			}
		}
	case types.KindArray:
		for _, m := range c.Types.MembersOf(baseType, c.Builder.Strings) {
			if m.Name == ma.Member {
				return m.Type
			}
		}
	}
	diag.Report(c.Reporter, diag.Declaration(ma.MemberSpan,
		"no member %q on this type", c.Builder.Strings.MustLookup(ma.Member)))
	return types.NoTypeID
}

func (c *Checker) checkIndexAccess(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	ia := c.Builder.IndexAccess(id)
	if ia == nil {
		return types.NoTypeID
	}
	baseType := c.CheckExpr(ia.Base, ctx, stack, frame)
	if baseType == types.NoTypeID {
		return types.NoTypeID
	}
	base, ok := c.Types.Lookup(baseType)
	if !ok {
		return types.NoTypeID
	}
	switch base.Kind {
	case types.KindArray:
		if ia.Index.IsValid() {
			idxType := c.CheckExpr(ia.Index, ctx, stack, frame)
			if idxType != types.NoTypeID {
				idx, _ := c.Types.Lookup(idxType)
				if idx.Kind != types.KindInteger && idx.Kind != types.KindIntegerConstant {
					diag.Report(c.Reporter, diag.Type(e.Span, "array index must be an integer"))
				}
			}
		}
		e.IsLValue = true
		return base.Elem
	case types.KindMapping:
		if ia.Index.IsValid() {
			idxType := c.CheckExpr(ia.Index, ctx, stack, frame)
			if idxType != types.NoTypeID && !c.Types.IsImplicitlyConvertibleTo(idxType, base.MapKey, c.isBaseOf) {
				diag.Report(c.Reporter, diag.Type(e.Span, "mapping index type does not match key type"))
			}
		}
		e.IsLValue = true
		return base.MapValue
	case types.KindTypeType:
		// "T[]" used as a type expression, e.g. inside a cast-like
		// expression context; treat the index form as a type, not a
		// value, and hand back another TypeType.
		return c.Types.Intern(types.Type{Kind: types.KindTypeType,
			Inner: c.Types.Intern(types.Type{Kind: types.KindArray, Elem: base.Inner, IsDynamicArray: true})})
	default:
		diag.Report(c.Reporter, diag.Type(e.Span, "indexed expression is not an array or mapping"))
		return types.NoTypeID
	}
}

func (c *Checker) checkNew(id ast.ExprID) types.TypeID {
	n := c.Builder.New(id)
	if n == nil {
		return types.NoTypeID
	}
	inner := c.ResolveTypeName(n.TypeName, nil)
	if inner == types.NoTypeID {
		return types.NoTypeID
	}
	t, ok := c.Types.Lookup(inner)
	if ok && t.Kind == types.KindContract {
		// "new Contract" has the type of Contract's constructor, callable
		// with the constructor's own argument list (§4.5.5); lacking an
		// explicit constructor declaration it still type-checks as a
		// zero-argument function returning the contract type.
		return c.Types.InternFunction(ast.NoDeclID, types.FnInfo{Results: []types.TypeID{inner}})
	}
	if ok && t.Kind == types.KindArray {
		return inner
	}
	return types.NoTypeID
}

func (c *Checker) checkUnary(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	u := c.Builder.Unary(id)
	if u == nil {
		return types.NoTypeID
	}
	operandType := c.CheckExpr(u.Operand, ctx, stack, frame)
	if operandType == types.NoTypeID {
		return types.NoTypeID
	}
	spec, ok := types.UnarySpecFor(u.Op)
	if !ok {
		return types.NoTypeID
	}
	if spec.RequiresLValue {
		opExpr := c.Builder.ExprNode(u.Operand)
		if opExpr != nil && !opExpr.IsLValue {
			diag.Report(c.Reporter, diag.Type(e.Span, "operand of this operator must be an lvalue"))
			return types.NoTypeID
		}
	}
	operand, ok := c.Types.Lookup(operandType)
	if !ok {
		return types.NoTypeID
	}
	if !operand.AcceptsUnaryOperator(spec) {
		diag.Report(c.Reporter, diag.Type(e.Span, "operator not supported for this type"))
		return types.NoTypeID
	}
	switch spec.Result {
	case types.UnaryResultBool:
		return c.Types.BuiltinTypes().Bool
	default:
		return operandType
	}
}

func (c *Checker) checkBinary(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	b := c.Builder.Binary(id)
	if b == nil {
		return types.NoTypeID
	}
	leftType := c.CheckExpr(b.Left, ctx, stack, frame)
	rightType := c.CheckExpr(b.Right, ctx, stack, frame)
	if leftType == types.NoTypeID || rightType == types.NoTypeID {
		return types.NoTypeID
	}

	if b.Op.IsAssignment() {
		leftExpr := c.Builder.ExprNode(b.Left)
		if leftExpr != nil && !leftExpr.IsLValue {
			diag.Report(c.Reporter, diag.Type(e.Span, "left-hand side of assignment must be an lvalue"))
		}
		op := b.Op
		if op.IsCompoundAssignment() {
			if !c.checkBinaryOperandKinds(op.Desugar(), leftType, rightType, e.Span) {
				return types.NoTypeID
			}
		} else if !c.Types.IsImplicitlyConvertibleTo(rightType, leftType, c.isBaseOf) {
			diag.Report(c.Reporter, diag.Type(e.Span, "cannot assign: incompatible types"))
			return types.NoTypeID
		}
		return leftType
	}

	spec, ok := types.BinarySpecFor(b.Op)
	if !ok {
		return types.NoTypeID
	}
	if !c.checkBinaryOperandKinds(b.Op, leftType, rightType, e.Span) {
		return types.NoTypeID
	}
	switch spec.Result {
	case types.BinaryResultBool:
		return c.Types.BuiltinTypes().Bool
	case types.BinaryResultLeft:
		return leftType
	default:
		return c.commonType(leftType, rightType)
	}
}

func (c *Checker) checkBinaryOperandKinds(op ast.ExprBinaryOp, leftType, rightType types.TypeID, span source.Span) bool {
	spec, ok := types.BinarySpecFor(op)
	if !ok {
		return false
	}
	left, ok := c.Types.Lookup(leftType)
	if !ok {
		return false
	}
	right, ok := c.Types.Lookup(rightType)
	if !ok {
		return false
	}
	if !left.AcceptsBinaryOperator(spec) || !right.AcceptsBinaryOperator(spec) {
		diag.Report(c.Reporter, diag.Type(span, "operator not supported for operand types"))
		return false
	}
	return true
}

// commonType picks the narrower-constant/wider-concrete type two operands
// unify to (§4.5.4): an IntegerConstant yields to the other side's mobile
// type, otherwise the wider of two concrete Integer types wins.
func (c *Checker) commonType(a, b types.TypeID) types.TypeID {
	at, aok := c.Types.Lookup(a)
	bt, bok := c.Types.Lookup(b)
	if !aok || !bok {
		return types.NoTypeID
	}
	if at.Kind == types.KindIntegerConstant && bt.Kind != types.KindIntegerConstant {
		return b
	}
	if bt.Kind == types.KindIntegerConstant && at.Kind != types.KindIntegerConstant {
		return a
	}
	if at.Kind == types.KindIntegerConstant && bt.Kind == types.KindIntegerConstant {
		return c.Types.MobileType(a)
	}
	if at.Kind == types.KindInteger && bt.Kind == types.KindInteger && at.Bits != bt.Bits {
		if at.Bits > bt.Bits {
			return a
		}
		return b
	}
	return a
}
