package sema

import (
	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/symbols"
	"github.com/topsmart20/solidity/internal/types"
)

// CheckStateVariable checks a contract-level variable declaration
// (§4.5.2): its type must be storable, its location (if any) must be
// Storage or Unspecified, and a constant state variable needs a compile-
// time initializer.
func (c *Checker) CheckStateVariable(contract ast.DeclID, v ast.DeclID, ctx []ast.DeclID) bool {
	vd := c.Builder.Var(v)
	if vd == nil {
		return true
	}
	ok := true
	t := c.ResolveTypeName(vd.TypeName, ctx)
	if t == 0 {
		return false
	}
	if !c.Types.CanBeStored(t) {
		diag.Report(c.Reporter, diag.Type(vd.NameSpan,
			"type of state variable %q cannot be stored", c.Builder.Strings.MustLookup(vd.Name)))
		ok = false
	}
	if vd.Location != ast.LocUnspecified && vd.Location != ast.LocStorage {
		diag.Report(c.Reporter, diag.Type(vd.NameSpan, "state variables must use storage location"))
		ok = false
	}
	if vd.IsConstant && !vd.Value.IsValid() {
		diag.Report(c.Reporter, diag.Declaration(vd.NameSpan,
			"constant state variable %q requires an initializer", c.Builder.Strings.MustLookup(vd.Name)))
		ok = false
	}
	if vd.Value.IsValid() {
		stack := symbols.NewStack(c.Table, c.Table.ContractScope(contract), c.Reporter)
		valType := c.CheckExpr(vd.Value, ctx, stack, nil)
		if valType != 0 && !c.Types.IsImplicitlyConvertibleTo(valType, t, c.isBaseOf) {
			diag.Report(c.Reporter, diag.Type(vd.NameSpan,
				"cannot initialize %q: incompatible types", c.Builder.Strings.MustLookup(vd.Name)))
			ok = false
		}
	}
	return ok
}

// CheckEvent checks an event declaration (§4.5.2): at most three of its
// parameters may be indexed, since the EVM log format reserves room for
// only three indexed topics beyond the event signature itself, and every
// parameter's type must admit an external encoding (no mapping anywhere
// in its type, directly or as an array element).
func (c *Checker) CheckEvent(contract ast.DeclID, e ast.DeclID, ctx []ast.DeclID) bool {
	ed := c.Builder.Event(e)
	if ed == nil {
		return true
	}
	ok := true
	indexed := 0
	for _, p := range ed.Params {
		vd := c.Builder.Var(p)
		if vd == nil {
			continue
		}
		if vd.IsIndexed {
			indexed++
		}
		t := c.ResolveTypeName(vd.TypeName, ctx)
		if t != types.NoTypeID && !c.Types.CanLiveOutsideStorage(t) {
			diag.Report(c.Reporter, diag.Type(vd.NameSpan,
				"event %q parameter %q cannot be externally encoded", c.Builder.Strings.MustLookup(ed.Name), c.Builder.Strings.MustLookup(vd.Name)))
			ok = false
		}
	}
	if indexed > 3 {
		diag.Report(c.Reporter, diag.Type(ed.NameSpan,
			"event %q declares more than three indexed parameters", c.Builder.Strings.MustLookup(ed.Name)))
		ok = false
	}
	_ = contract
	return ok
}

// CheckModifier checks a modifier declaration's parameters and body
// (§4.5.1). A body with no placeholder "_" draws a warning (the wrapped
// function never runs); a body with more than one is an error.
func (c *Checker) CheckModifier(contract ast.DeclID, m ast.DeclID, ctx []ast.DeclID) bool {
	md := c.Builder.Modifier(m)
	if md == nil {
		return true
	}
	ok := true
	stack := symbols.NewStack(c.Table, c.Table.ContractScope(contract), c.Reporter)
	fnScope := stack.Enter(symbols.ScopeFunction, m, md.NameSpan)
	for _, p := range md.Params {
		if vd := c.Builder.Var(p); vd != nil {
			c.ResolveTypeName(vd.TypeName, ctx)
			stack.Declare(vd.Name, vd.NameSpan, p)
		}
	}
	placeholders := 0
	if md.Body.IsValid() {
		if !c.checkStmt(md.Body, ctx, stack, &checkFrame{countPlaceholders: &placeholders}) {
			ok = false
		}
	}
	if placeholders == 0 {
		diag.Report(c.Reporter, diag.Warn(md.NameSpan,
			"modifier %q never runs the function body it wraps", c.Builder.Strings.MustLookup(md.Name)))
	} else if placeholders > 1 {
		diag.Report(c.Reporter, diag.Type(md.NameSpan,
			"modifier %q runs the function body it wraps more than once", c.Builder.Strings.MustLookup(md.Name)))
		ok = false
	}
	stack.Leave(fnScope)
	return ok
}

// CheckFunction checks a function declaration's signature and body
// (§4.5.2, §4.5.3): parameters/returns must have storable, non-mapping-
// unless-storage types; an implemented function's body is then walked
// statement by statement with each return statement checked against the
// declared return types (§4.5.3).
func (c *Checker) CheckFunction(contract ast.DeclID, f ast.DeclID, ctx []ast.DeclID) bool {
	fd := c.Builder.Function(f)
	if fd == nil {
		return true
	}
	ok := true
	stack := symbols.NewStack(c.Table, c.Table.ContractScope(contract), c.Reporter)
	fnScope := stack.Enter(symbols.ScopeFunction, f, fd.NameSpan)

	external := fd.Visibility == ast.VisPublic || fd.Visibility == ast.VisExternal

	returnTypes := make([]types.TypeID, 0, len(fd.Returns))
	for _, p := range fd.Params {
		vd := c.Builder.Var(p)
		if vd == nil {
			continue
		}
		t := c.ResolveTypeName(vd.TypeName, ctx)
		if t != 0 && !c.Types.CanLiveOutsideStorage(t) && vd.Location != ast.LocStorage {
			diag.Report(c.Reporter, diag.Type(vd.NameSpan, "parameter type requires an explicit storage location"))
			ok = false
		}
		if t != 0 && external && !c.Types.ExternalType(t) {
			diag.Report(c.Reporter, diag.Type(vd.NameSpan,
				"parameter type of a public or external function has no external type"))
			ok = false
		}
		stack.Declare(vd.Name, vd.NameSpan, p)
	}
	for _, r := range fd.Returns {
		vd := c.Builder.Var(r)
		if vd == nil {
			continue
		}
		t := c.ResolveTypeName(vd.TypeName, ctx)
		returnTypes = append(returnTypes, t)
		if t != 0 && external && !c.Types.ExternalType(t) {
			diag.Report(c.Reporter, diag.Type(vd.NameSpan,
				"return type of a public or external function has no external type"))
			ok = false
		}
		if vd.Name != 0 {
			stack.Declare(vd.Name, vd.NameSpan, r)
		}
	}

	if fd.Visibility == ast.VisExternal {
		for _, p := range fd.Params {
			if vd := c.Builder.Var(p); vd != nil && vd.Location == ast.LocStorage {
				diag.Report(c.Reporter, diag.Type(vd.NameSpan, "external function parameters cannot be storage references"))
				ok = false
			}
		}
	}

	if !fd.Body.IsValid() {
		stack.Leave(fnScope)
		return ok
	}

	frame := &checkFrame{returnTypes: returnTypes, returnSpan: fd.NameSpan}
	if !c.checkStmt(fd.Body, ctx, stack, frame) {
		ok = false
	}
	stack.Leave(fnScope)
	return ok
}
