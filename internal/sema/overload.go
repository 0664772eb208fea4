package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/types"
)

// resolveOverload implements §4.5.6: starting from every same-named
// function declaration visible at the call site, discard any whose arity
// doesn't match the call (accounting for named arguments) and any whose
// parameters can't each accept the corresponding argument type via an
// implicit conversion. Exactly one survivor is required; zero or more
// than one is reported as an error and returns (NoDeclID, nil).
func (c *Checker) resolveOverload(e *ast.Expr, candidates []ast.DeclID, args []ast.CallArg, argTypes []types.TypeID, ctx []ast.DeclID) (ast.DeclID, []types.TypeID) {
	type survivor struct {
		decl    ast.DeclID
		results []types.TypeID
	}
	var survivors []survivor

	for _, cand := range candidates {
		fd := c.Builder.Function(cand)
		if fd == nil {
			continue
		}
		if !c.argsMatchParams(fd.Params, args, argTypes, ctx) {
			continue
		}
		results := make([]types.TypeID, 0, len(fd.Returns))
		for _, r := range fd.Returns {
			if vd := c.Builder.Var(r); vd != nil {
				results = append(results, c.ResolveTypeName(vd.TypeName, ctx))
			}
		}
		survivors = append(survivors, survivor{decl: cand, results: results})
	}

	switch len(survivors) {
	case 0:
		diag.Report(c.Reporter, diag.Type(e.Span, "no matching overload for this call"))
		return ast.NoDeclID, nil
	case 1:
		return survivors[0].decl, survivors[0].results
	default:
		diag.Report(c.Reporter, diag.Type(e.Span, "call is ambiguous between multiple overloads"))
		return ast.NoDeclID, nil
	}
}

// argsMatchParams checks one candidate's parameter list against a call's
// argument list, resolving named arguments by parameter name and
// positional arguments by index; a positional and named argument may not
// be mixed (§4.5.5 "named-argument calls must name every parameter").
func (c *Checker) argsMatchParams(params []ast.DeclID, args []ast.CallArg, argTypes []types.TypeID, ctx []ast.DeclID) bool {
	if len(params) != len(args) {
		return false
	}
	named := len(args) > 0 && args[0].Name != 0
	for _, a := range args {
		if (a.Name != 0) != named {
			return false // mixed named/positional, reject this candidate
		}
	}

	if !named {
		for i, p := range params {
			vd := c.Builder.Var(p)
			if vd == nil {
				continue
			}
			paramType := c.ResolveTypeName(vd.TypeName, ctx)
			if paramType == types.NoTypeID || argTypes[i] == types.NoTypeID {
				return false
			}
			if !c.Types.IsImplicitlyConvertibleTo(argTypes[i], paramType, c.isBaseOf) {
				return false
			}
		}
		return true
	}

	// Named form: every parameter must be named exactly once.
	for _, p := range params {
		vd := c.Builder.Var(p)
		if vd == nil {
			return false
		}
		var matched bool
		for i, a := range args {
			if a.Name == vd.Name {
				paramType := c.ResolveTypeName(vd.TypeName, ctx)
				if paramType == types.NoTypeID || argTypes[i] == types.NoTypeID ||
					!c.Types.IsImplicitlyConvertibleTo(argTypes[i], paramType, c.isBaseOf) {
					return false
				}
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
