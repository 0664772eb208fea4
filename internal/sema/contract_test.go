package sema

import (
	"fmt"
	"testing"

	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/source"
)

// TestC3DiamondLinearization is §8 scenario S1: A {} B is A {} C is A {}
// D is B, C {} must linearize D to [D, B, C, A].
func TestC3DiamondLinearization(t *testing.T) {
	f := newFixture()
	a := f.contract("A", nil)
	b := f.contract("B", []ast.BaseSpecifier{f.baseOf("A")})
	c := f.contract("C", []ast.BaseSpecifier{f.baseOf("A")})
	d := f.contract("D", []ast.BaseSpecifier{f.baseOf("B"), f.baseOf("C")})
	unit := f.unit(a, b, c, d)

	checker, _, _ := f.check(unit)
	lin := checker.Linearizer.Linearize(d)
	if len(lin) != 4 {
		t.Fatalf("expected a 4-element linearization, got %v", lin)
	}
	names := make([]string, len(lin))
	for i, id := range lin {
		cd := checker.Builder.Contract(id)
		names[i] = checker.Builder.Strings.MustLookup(cd.Name)
	}
	want := []string{"D", "B", "C", "A"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("linearization = %v, want %v", names, want)
		}
	}
}

// TestAbstractContractClearsOnOverride is §8 scenario S3: a contract with
// a declared-but-unimplemented function is not fully implemented; a
// derived contract that supplies a body clears the flag.
func TestAbstractContractClearsOnOverride(t *testing.T) {
	f := newFixture()
	abstractFn := f.function("pay", nil, nil, ast.VisExternal, ast.NoStmtID)
	base := f.contract("Base", nil, withFunctions(abstractFn))

	implementedFn := f.function("pay", nil, nil, ast.VisExternal, f.block())
	derived := f.contract("Derived", []ast.BaseSpecifier{f.baseOf("Base")}, withFunctions(implementedFn))

	unit := f.unit(base, derived)
	checker, _, _ := f.check(unit)

	baseDecl := checker.Builder.Contract(base)
	if baseDecl.IsFullyImplemented {
		t.Fatalf("expected Base to be marked not fully implemented")
	}
	derivedDecl := checker.Builder.Contract(derived)
	if !derivedDecl.IsFullyImplemented {
		t.Fatalf("expected Derived's override to clear the not-fully-implemented flag")
	}
}

// TestAbstractConstructorLeavesNotFullyImplemented exercises §4.5.1's
// abstract-constructor rule: a base contract whose constructor takes
// parameters, inherited without supplying them, leaves the derived
// contract not fully implemented even though every function has a body.
func TestAbstractConstructorLeavesNotFullyImplemented(t *testing.T) {
	f := newFixture()
	baseCtor := f.function("Base", []ast.DeclID{f.param("x", f.elementaryType(ast.TokIntFirst))}, nil, ast.VisPublic, f.block())
	base := f.contract("Base", nil, withFunctions(baseCtor))

	derivedNoArgs := f.contract("DerivedNoArgs", []ast.BaseSpecifier{f.baseOf("Base")})
	derivedWithArgs := f.contract("DerivedWithArgs", []ast.BaseSpecifier{f.baseOf("Base", f.intLiteral(1))})

	unit := f.unit(base, derivedNoArgs, derivedWithArgs)
	checker, _, _ := f.check(unit)

	if checker.Builder.Contract(derivedNoArgs).IsFullyImplemented {
		t.Fatalf("expected DerivedNoArgs to be abstract: base constructor needs args it never received")
	}
	if !checker.Builder.Contract(derivedWithArgs).IsFullyImplemented {
		t.Fatalf("expected DerivedWithArgs to be fully implemented: it supplies the base constructor's argument")
	}
}

// TestFallbackRules is §8 scenario S4.
func TestFallbackRules(t *testing.T) {
	f := newFixture()
	fb1 := f.fallback(f.block(), nil, nil, ast.VisExternal)
	fb2 := f.fallback(f.block(), nil, nil, ast.VisExternal)
	dup := f.contract("Dup", nil, withFunctions(fb1, fb2))
	unit := f.unit(dup)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected two fallback functions to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected at least one diagnostic for duplicate fallbacks")
	}

	f2 := newFixture()
	badParam := f2.param("x", f2.elementaryType(ast.TokIntFirst))
	fbWithParam := f2.fallback(f2.block(), []ast.DeclID{badParam}, nil, ast.VisExternal)
	withParam := f2.contract("WithParam", nil, withFunctions(fbWithParam))
	unit2 := f2.unit(withParam)
	_, ok2, bag2 := f2.check(unit2)
	if ok2 {
		t.Fatalf("expected a parameterized fallback function to be rejected")
	}
	if bag2.Len() == 0 {
		t.Fatalf("expected a diagnostic for the parameterized fallback")
	}
}

// TestOverloadResolution is §8 scenario S5.
func TestOverloadResolution(t *testing.T) {
	f := newFixture()
	fUint := f.function("f", []ast.DeclID{f.param("a", f.elementaryType(ast.TokIntFirst))}, nil, ast.VisPublic, f.block())
	fBytes := f.function("f", []ast.DeclID{f.param("a", f.elementaryType(ast.TokHash256))}, nil, ast.VisPublic, f.block())

	xDecl := f.localVar("x", f.elementaryType(ast.TokIntFirst+1)) // int32: narrower than int256, same signedness
	yDecl := f.localVar("y", f.elementaryType(ast.TokBool))

	callWithConst := f.call(f.identExpr("f"), f.intLiteral(1))
	callWithUint8 := f.call(f.identExpr("f"), f.identExpr("x"))
	callWithBool := f.call(f.identExpr("f"), f.identExpr("y"))

	body := f.block(
		f.varDeclStmt(xDecl),
		f.varDeclStmt(yDecl),
		f.exprStmt(callWithConst),
		f.exprStmt(callWithUint8),
		f.exprStmt(callWithBool),
	)
	caller := f.function("caller", nil, nil, ast.VisPublic, body)
	cd := f.contract("Overloaded", nil, withFunctions(fUint, fBytes, caller))
	unit := f.unit(cd)

	checker, _, bag := f.check(unit)

	if got := checker.Result.ResolvedCallee[callWithConst]; got != fUint {
		t.Fatalf("f(1) should resolve to f(int256), got decl %v want %v", got, fUint)
	}
	if got := checker.Result.ResolvedCallee[callWithUint8]; got != fUint {
		t.Fatalf("f(x) with x:int32 should widen to f(int256), got decl %v want %v", got, fUint)
	}
	if _, resolved := checker.Result.ResolvedCallee[callWithBool]; resolved {
		t.Fatalf("f(y) with y:bool should not resolve to any overload")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic reporting the unresolvable f(y) call")
	}
}

// TestDuplicateFunctionSignature and TestDuplicateConstructors exercise
// §4.5.1's "duplicate functions" rule.
func TestDuplicateFunctionSignature(t *testing.T) {
	f := newFixture()
	p := func() []ast.DeclID { return []ast.DeclID{f.param("a", f.elementaryType(ast.TokIntFirst))} }
	fn1 := f.function("f", p(), nil, ast.VisPublic, f.block())
	fn2 := f.function("f", p(), nil, ast.VisPublic, f.block())
	cd := f.contract("Dup", nil, withFunctions(fn1, fn2))
	unit := f.unit(cd)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected two identically-typed f(int256) declarations to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for the duplicate signature")
	}
}

func TestDuplicateConstructors(t *testing.T) {
	f := newFixture()
	ctor1 := f.function("Multi", nil, nil, ast.VisPublic, f.block())
	ctor2 := f.function("Multi", []ast.DeclID{f.param("a", f.elementaryType(ast.TokIntFirst))}, nil, ast.VisPublic, f.block())
	cd := f.contract("Multi", nil, withFunctions(ctor1, ctor2))
	unit := f.unit(cd)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected a second constructor declaration to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for the duplicate constructor")
	}
}

func TestConstructorMustNotReturnValues(t *testing.T) {
	f := newFixture()
	ret := f.param("", f.elementaryType(ast.TokIntFirst))
	ctor := f.function("Bad", nil, []ast.DeclID{ret}, ast.VisPublic, f.block())
	cd := f.contract("Bad", nil, withFunctions(ctor))
	unit := f.unit(cd)
	_, ok, _ := f.check(unit)
	if ok {
		t.Fatalf("expected a constructor with a return parameter to be rejected")
	}
}

// TestEventRules covers §4.5.2's event well-formedness rules.
func TestEventRules(t *testing.T) {
	f := newFixture()
	idx := func(n string) ast.DeclID {
		vd := f.b.NewVar(source.Span{}, ast.VariableDecl{Name: f.name(n), TypeName: f.elementaryType(ast.TokIntFirst), IsIndexed: true})
		return vd
	}
	ev := f.b.NewEvent(source.Span{}, ast.EventDecl{
		Name:   f.name("TooManyIndexed"),
		Params: []ast.DeclID{idx("a"), idx("b"), idx("c"), idx("d")},
	})
	cd := f.contract("Events", nil, withEvents(ev))
	unit := f.unit(cd)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected an event with four indexed parameters to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for too many indexed parameters")
	}
}

// TestOverrideConstnessMustMatch covers §4.5.1's "constness must match"
// override rule: a derived function with the same signature as a base
// function but a different constness is rejected even though its
// visibility and return types agree.
func TestOverrideConstnessMustMatch(t *testing.T) {
	f := newFixture()
	baseFn := f.function("get", nil, nil, ast.VisPublic, f.block())
	base := f.contract("Base", nil, withFunctions(baseFn))

	derivedFn := f.constFunction("get", nil, nil, ast.VisPublic, f.block())
	derived := f.contract("Derived", []ast.BaseSpecifier{f.baseOf("Base")}, withFunctions(derivedFn))

	unit := f.unit(base, derived)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected a constness mismatch against the base declaration to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for the constness mismatch")
	}
}

// TestModifierFunctionNameCollision covers §4.5.1's "overriding a
// modifier with a function of the same name (or vice versa) is an
// error" rule, including across the inheritance chain.
func TestModifierFunctionNameCollision(t *testing.T) {
	f := newFixture()
	mod := f.modifier("guarded", nil, f.block())
	base := f.contract("Base", nil, withModifiers(mod))

	fn := f.function("guarded", nil, nil, ast.VisPublic, f.block())
	derived := f.contract("Derived", []ast.BaseSpecifier{f.baseOf("Base")}, withFunctions(fn))

	unit := f.unit(base, derived)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected a function colliding with an inherited modifier's name to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for the modifier/function name collision")
	}
}

// TestAccessorSignatureSynthesis covers §4.5.1's public-state-variable
// accessor synthesis feeding into the same selector space a
// hand-written external function's signature does: a plain value type
// gets a zero-argument getter, and a mapping's key types become
// getter parameters, outer key first, so a collision against a
// same-shaped hand-written function is actually detectable.
func TestAccessorSignatureSynthesis(t *testing.T) {
	f := newFixture()
	total := f.publicStateVar("total", f.elementaryType(ast.TokIntFirst))
	balances := f.publicStateVar("balances", f.mappingType(f.elementaryType(ast.TokAddress), f.elementaryType(ast.TokIntFirst)))
	cd := f.contract("Bank", nil, withStateVars(total, balances))
	unit := f.unit(cd)
	checker, _, bag := f.check(unit)
	if bag.Len() != 0 {
		t.Fatalf("expected no diagnostics from well-formed state variables, got %d", bag.Len())
	}

	lin := checker.Linearizer.Linearize(cd)
	addrType := checker.Types.BuiltinTypes().Address

	totalVd := checker.Builder.Var(total)
	if got, want := checker.accessorSignature(totalVd, lin), "total()"; got != want {
		t.Fatalf("accessor signature for a plain value type = %q, want %q", got, want)
	}

	balancesVd := checker.Builder.Var(balances)
	want := fmt.Sprintf("balances(%d)", addrType)
	if got := checker.accessorSignature(balancesVd, lin); got != want {
		t.Fatalf("accessor signature for a mapping = %q, want %q", got, want)
	}
}

// TestAccessorSelectorCollidesWithFunction covers §4.5.1's external-ABI
// clash rule extended to state-variable accessors: a public state
// variable's implicit getter shares the same selector space as a
// hand-written external function of the identical signature: the
// accessor and the function synthesize the same signature string.
func TestAccessorSelectorCollidesWithFunction(t *testing.T) {
	f := newFixture()
	total := f.publicStateVar("total", f.elementaryType(ast.TokIntFirst))
	fn := f.function("total", nil, nil, ast.VisExternal, f.block())
	cd := f.contract("Accessors", nil, withFunctions(fn), withStateVars(total))
	unit := f.unit(cd)
	checker, _, _ := f.check(unit)

	lin := checker.Linearizer.Linearize(cd)
	fd := checker.Builder.Function(fn)
	vd := checker.Builder.Var(total)
	if checker.externalSignature(fd, lin) != checker.accessorSignature(vd, lin) {
		t.Fatalf("expected the function and the accessor to synthesize the identical selector-space signature")
	}
}

// TestLinearizationFailureAbortsContract covers §4.4/§7's fatal-abort
// rule: a contract naming an undeclared base is a fatal condition, and
// the contract is never run through CheckContract's own rules at all,
// rather than being checked against a best-effort fallback base order.
func TestLinearizationFailureAbortsContract(t *testing.T) {
	f := newFixture()
	cd := f.contract("Orphan", []ast.BaseSpecifier{f.baseOf("NoSuchBase")})
	unit := f.unit(cd)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected an undeclared base contract to be rejected")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a diagnostic for the undeclared base contract")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Fatal {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the undeclared-base diagnostic to be marked fatal")
	}
}

// TestLibraryRestrictions covers §4.5.1's library rules.
func TestLibraryRestrictions(t *testing.T) {
	f := newFixture()
	base := f.contract("Base", nil)
	nonConstant := f.b.NewVar(source.Span{}, ast.VariableDecl{Name: f.name("total"), TypeName: f.elementaryType(ast.TokIntFirst)})
	lib := f.contract("Lib", []ast.BaseSpecifier{f.baseOf("Base")}, asLibrary, withStateVars(nonConstant))
	unit := f.unit(base, lib)
	_, ok, bag := f.check(unit)
	if ok {
		t.Fatalf("expected an inheriting library with a non-constant state variable to be rejected")
	}
	if bag.Len() < 2 {
		t.Fatalf("expected both library violations to be reported, got %d diagnostics", bag.Len())
	}
}
