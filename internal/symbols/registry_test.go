package symbols

import (
	"testing"

	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/source"
)

// TestFunctionsMayOverloadButOtherMembersMayNot is §8 invariant 2, scope
// uniqueness: a contract may declare any number of same-named functions,
// but two state variables (or any other declaration kind) sharing a name
// collide.
func TestFunctionsMayOverloadButOtherMembersMayNot(t *testing.T) {
	b := ast.NewBuilder(nil)

	fnName := b.Strings.Intern("f")
	fn1 := b.NewFunction(source.Span{}, ast.FunctionDecl{Name: fnName})
	fn2 := b.NewFunction(source.Span{}, ast.FunctionDecl{Name: fnName})

	varName := b.Strings.Intern("total")
	v1 := b.NewVar(source.Span{}, ast.VariableDecl{Name: varName})
	v2 := b.NewVar(source.Span{}, ast.VariableDecl{Name: varName})

	cd := b.NewContract(source.Span{}, ast.ContractDecl{
		Name:      b.Strings.Intern("C"),
		Functions: []ast.DeclID{fn1, fn2},
		StateVars: []ast.DeclID{v1, v2},
	})
	unit := b.NewSourceUnit(source.Span{}, ast.SourceUnitDecl{Contracts: []ast.DeclID{cd}})

	bag := diag.NewBag(8)
	table := NewTable(b.Strings)
	reg := NewRegistry(b, table, &diag.BagReporter{Bag: bag})

	ok := reg.RegisterSourceUnit(unit)
	if ok {
		t.Fatalf("expected the duplicate state variable to be rejected")
	}

	scope := table.ContractScope(cd)
	fns := table.Declared(scope, fnName)
	if len(fns) != 2 {
		t.Errorf("expected both overloaded functions to be registered, got %v", fns)
	}

	vars := table.Declared(scope, varName)
	if len(vars) != 1 {
		t.Errorf("expected only the first state variable to survive registration, got %v", vars)
	}

	if bag.Len() != 1 {
		t.Errorf("expected exactly one diagnostic for the variable collision, got %d", bag.Len())
	}
}

// TestContractNameCollidesInGlobalScope covers the same uniqueness rule
// one level up: two contracts sharing a name collide in the global scope.
func TestContractNameCollidesInGlobalScope(t *testing.T) {
	b := ast.NewBuilder(nil)
	name := b.Strings.Intern("Dup")
	c1 := b.NewContract(source.Span{}, ast.ContractDecl{Name: name})
	c2 := b.NewContract(source.Span{}, ast.ContractDecl{Name: name})
	unit := b.NewSourceUnit(source.Span{}, ast.SourceUnitDecl{Contracts: []ast.DeclID{c1, c2}})

	bag := diag.NewBag(8)
	table := NewTable(b.Strings)
	reg := NewRegistry(b, table, &diag.BagReporter{Bag: bag})

	if reg.RegisterSourceUnit(unit) {
		t.Fatalf("expected the second contract declaration to be rejected")
	}
	if bag.Len() != 1 {
		t.Errorf("expected exactly one diagnostic for the contract name collision, got %d", bag.Len())
	}
}
