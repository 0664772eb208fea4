package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/symbols"
	"github.com/topsmart20/solidity/internal/types"
)

// checkCall dispatches a CallExpr to one of the three modes §4.5.5
// distinguishes by what the callee resolves to: an explicit type
// conversion ("uint256(x)"), a struct constructor ("Point(1, 2)"), or an
// ordinary function/modifier call requiring overload resolution.
func (c *Checker) checkCall(id ast.ExprID, e *ast.Expr, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) types.TypeID {
	call := c.Builder.Call(id)
	if call == nil {
		return types.NoTypeID
	}

	argTypes := make([]types.TypeID, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.CheckExpr(a.Value, ctx, stack, frame)
	}
	c.Result.ArgumentTypes[id] = argTypes

	candidates, calleeType, isTypeExpr := c.resolveCalleeCandidates(call.Callee, ctx, stack, frame)

	if isTypeExpr {
		t, ok := c.Types.Lookup(calleeType)
		if !ok {
			return types.NoTypeID
		}
		target := t.Inner
		switch tt, _ := c.Types.Lookup(target); tt.Kind {
		case types.KindStruct:
			return c.checkStructConstructor(e, target, call, argTypes, ctx)
		default:
			return c.checkExplicitConversion(e, target, call, argTypes)
		}
	}

	if len(candidates) == 0 {
		diag.Report(c.Reporter, diag.Type(e.Span, "call target is not callable"))
		return types.NoTypeID
	}

	winner, results := c.resolveOverload(e, candidates, call.Args, argTypes, ctx)
	if !winner.IsValid() {
		return types.NoTypeID
	}
	c.Result.ResolvedCallee[id] = winner
	switch len(results) {
	case 0:
		return c.Types.BuiltinTypes().Void
	default:
		return results[0]
	}
}

// resolveCalleeCandidates inspects the callee expression directly rather
// than going through CheckExpr/typeOfDecl, which collapse an overload set
// down to its first member: a call needs every same-named function
// candidate so overload resolution (§4.5.6) has something to choose among.
func (c *Checker) resolveCalleeCandidates(callee ast.ExprID, ctx []ast.DeclID, stack *symbols.Stack, frame *checkFrame) ([]ast.DeclID, types.TypeID, bool) {
	ce := c.Builder.ExprNode(callee)
	if ce == nil {
		return nil, types.NoTypeID, false
	}
	switch ce.Kind {
	case ast.ExprElementaryTypeNameExpr:
		t := c.checkElementaryTypeNameExpr(callee)
		c.Result.ExprTypes[callee] = t
		return nil, t, true
	case ast.ExprIdentifier:
		ident := c.Builder.Identifier(callee)
		if ident == nil {
			return nil, types.NoTypeID, false
		}
		locals, _ := stack.Lookup(ident.Name)
		candidates := locals
		if len(candidates) == 0 {
			candidates = EffectiveLookup(c.Table, ctx, c.Builder, ident.Name)
		}
		return c.classifyCandidates(callee, ce, candidates, ctx)
	case ast.ExprMemberAccess:
		ma := c.Builder.MemberAccess(callee)
		if ma == nil {
			return nil, types.NoTypeID, false
		}
		baseType := c.CheckExpr(ma.Base, ctx, stack, frame)
		base, ok := c.Types.Lookup(baseType)
		if !ok {
			return nil, types.NoTypeID, false
		}
		if base.Kind == types.KindTypeType {
			inner, _ := c.Types.Lookup(base.Inner)
			if inner.Kind == types.KindContract {
				lin := c.Linearizer.Linearize(inner.Decl)
				return c.classifyCandidates(callee, ce, EffectiveLookup(c.Table, lin, c.Builder, ma.Member), lin)
			}
			return nil, types.NoTypeID, false
		}
		if base.Kind != types.KindContract {
			return nil, types.NoTypeID, false
		}
		lin := c.Linearizer.Linearize(base.Decl)
		return c.classifyCandidates(callee, ce, EffectiveLookup(c.Table, lin, c.Builder, ma.Member), lin)
	default:
		// A call on a parenthesized/other expression form (e.g. the
		// result of "new Contract"): fall through to the generic
		// single-candidate-via-type path.
		t := c.CheckExpr(callee, ctx, stack, frame)
		tt, ok := c.Types.Lookup(t)
		if !ok {
			return nil, types.NoTypeID, false
		}
		if tt.Kind == types.KindTypeType {
			return nil, t, true
		}
		if tt.Kind == types.KindFunction {
			return []ast.DeclID{tt.Decl}, types.NoTypeID, false
		}
		return nil, types.NoTypeID, false
	}
}

func (c *Checker) classifyCandidates(callee ast.ExprID, ce *ast.Expr, candidates []ast.DeclID, ctx []ast.DeclID) ([]ast.DeclID, types.TypeID, bool) {
	if len(candidates) == 0 {
		diag.Report(c.Reporter, diag.Declaration(ce.Span, "undeclared call target"))
		return nil, types.NoTypeID, false
	}
	allFunctions := true
	for _, id := range candidates {
		if d := c.Builder.Decl(id); d == nil || d.Kind != ast.DeclFunction {
			allFunctions = false
			break
		}
	}
	if allFunctions {
		ce.ReferencedDecl = candidates[0]
		return candidates, types.NoTypeID, false
	}
	// Not a function set: must be exactly one non-function declaration
	// (a struct/contract/enum name or a local variable of Function type).
	t := c.typeOfDecl(candidates[0], ctx)
	ce.ReferencedDecl = candidates[0]
	c.Result.ExprTypes[callee] = t
	tt, ok := c.Types.Lookup(t)
	if !ok {
		return nil, types.NoTypeID, false
	}
	if tt.Kind == types.KindTypeType {
		return nil, t, true
	}
	if tt.Kind == types.KindFunction {
		return []ast.DeclID{candidates[0]}, types.NoTypeID, false
	}
	return nil, types.NoTypeID, false
}

func (c *Checker) checkExplicitConversion(e *ast.Expr, target types.TypeID, call *ast.CallExpr, argTypes []types.TypeID) types.TypeID {
	if len(call.Args) != 1 {
		diag.Report(c.Reporter, diag.Type(e.Span, "type conversion requires exactly one argument"))
		return types.NoTypeID
	}
	if !c.Types.IsExplicitlyConvertibleTo(argTypes[0], target, c.isBaseOf) {
		diag.Report(c.Reporter, diag.Type(e.Span, "invalid explicit conversion"))
		return types.NoTypeID
	}
	return target
}

// constructorField is a struct member that survives the mapping filter
// §4.5.5 mode 2 requires: mapping-typed members have no external
// representation, so they are dropped from the constructor's implied
// argument list entirely rather than demanding (and failing to
// type-check) an argument for them.
type constructorField struct {
	decl ast.DeclID
	vd   *ast.VariableDecl
	typ  types.TypeID
}

func (c *Checker) constructorFields(sd *ast.StructDecl, ctx []ast.DeclID) []constructorField {
	fields := make([]constructorField, 0, len(sd.Members))
	for _, m := range sd.Members {
		vd := c.Builder.Var(m)
		if vd == nil {
			continue
		}
		fieldType := c.ResolveTypeName(vd.TypeName, ctx)
		if tt, ok := c.Types.Lookup(fieldType); ok && tt.Kind == types.KindMapping {
			continue
		}
		fields = append(fields, constructorField{decl: m, vd: vd, typ: fieldType})
	}
	return fields
}

func (c *Checker) checkStructConstructor(e *ast.Expr, target types.TypeID, call *ast.CallExpr, argTypes []types.TypeID, ctx []ast.DeclID) types.TypeID {
	t, ok := c.Types.Lookup(target)
	if !ok {
		return types.NoTypeID
	}
	sd := c.Builder.Struct(t.Decl)
	if sd == nil {
		return types.NoTypeID
	}
	fields := c.constructorFields(sd, ctx)
	if len(call.Args) != len(fields) {
		diag.Report(c.Reporter, diag.Type(e.Span,
			"struct constructor for %q expects %d arguments, got %d", sd.CanonicalName, len(fields), len(call.Args)))
		return types.NoTypeID
	}
	for i, f := range fields {
		if f.typ != types.NoTypeID && argTypes[i] != types.NoTypeID &&
			!c.Types.IsImplicitlyConvertibleTo(argTypes[i], f.typ, c.isBaseOf) {
			diag.Report(c.Reporter, diag.Type(e.Span,
				"argument %d does not match the type of field %q", i+1, c.Builder.Strings.MustLookup(f.vd.Name)))
		}
	}
	return target
}
