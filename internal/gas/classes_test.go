package gas

import (
	"math/big"
	"testing"
)

func TestFindConstantInternsEqualValues(t *testing.T) {
	c := NewExpressionClasses()
	a := c.FindConstant(big.NewInt(42))
	b := c.FindConstant(big.NewInt(42))
	if a != b {
		t.Fatalf("expected equal constants to share a class, got %d and %d", a, b)
	}
	if !c.KnownNonZero(a) {
		t.Fatalf("expected 42 to be known non-zero")
	}
}

func TestFreshClassesAreNeverEqual(t *testing.T) {
	c := NewExpressionClasses()
	if c.Fresh() == c.Fresh() {
		t.Fatalf("expected two fresh classes to differ")
	}
}

func TestFindIsKeyedByOperands(t *testing.T) {
	c := NewExpressionClasses()
	a := c.FindConstant(big.NewInt(1))
	b := c.FindConstant(big.NewInt(2))
	if c.Find(InstrADD, []ClassID{a, b}) != c.Find(InstrADD, []ClassID{a, b}) {
		t.Fatalf("expected identical operand lists to intern to the same class")
	}
	if c.Find(InstrADD, []ClassID{a, b}) == c.Find(InstrADD, []ClassID{b, a}) {
		t.Fatalf("expected operand order to matter")
	}
}
