package types

import (
	"testing"

	"github.com/topsmart20/solidity/internal/ast"
)

func TestAddressRejectsBitwiseAndArithmetic(t *testing.T) {
	addr := Type{Kind: KindInteger, Bits: 160, IsAddress: true}

	addSpec, ok := BinarySpecFor(ast.ExprBinaryAdd)
	if !ok {
		t.Fatalf("no spec registered for the add operator")
	}
	if addr.AcceptsBinaryOperator(addSpec) {
		t.Errorf("address should not accept arithmetic operators")
	}

	bitAndSpec, ok := BinarySpecFor(ast.ExprBinaryBitAnd)
	if !ok {
		t.Fatalf("no spec registered for the bitwise-and operator")
	}
	if addr.AcceptsBinaryOperator(bitAndSpec) {
		t.Errorf("address should not accept bitwise operators")
	}

	eqSpec, ok := BinarySpecFor(ast.ExprBinaryEq)
	if !ok {
		t.Fatalf("no spec registered for the equality operator")
	}
	if !addr.AcceptsBinaryOperator(eqSpec) {
		t.Errorf("address should still accept comparison operators")
	}

	bitNotSpec, ok := UnarySpecFor(ast.ExprUnaryBitNot)
	if !ok {
		t.Fatalf("no spec registered for the bitwise-not operator")
	}
	if addr.AcceptsUnaryOperator(bitNotSpec) {
		t.Errorf("address should not accept bitwise-not")
	}
}

func TestPlainIntegerAcceptsArithmetic(t *testing.T) {
	u := Type{Kind: KindInteger, Bits: 256, IsSigned: false}
	addSpec, _ := BinarySpecFor(ast.ExprBinaryAdd)
	if !u.AcceptsBinaryOperator(addSpec) {
		t.Errorf("a plain integer should accept arithmetic operators")
	}
}

func TestBoolRejectsArithmetic(t *testing.T) {
	b := Type{Kind: KindBool}
	addSpec, _ := BinarySpecFor(ast.ExprBinaryAdd)
	if b.AcceptsBinaryOperator(addSpec) {
		t.Errorf("bool should not accept arithmetic operators")
	}
	andSpec, ok := BinarySpecFor(ast.ExprBinaryLogicalAnd)
	if !ok {
		t.Fatalf("no spec registered for logical-and")
	}
	if !b.AcceptsBinaryOperator(andSpec) {
		t.Errorf("bool should accept logical-and")
	}
}
