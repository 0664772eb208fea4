package gas

import (
	"fmt"
	"math/big"
)

// ClassID names a value-numbering class: every stack slot and storage
// slot the estimator tracks is, at any point, some ClassID. Two slots
// share a ClassID exactly when ExpressionClasses has proven they always
// hold the same value (ported from libevmasm's ExpressionClasses, used
// by GasMeter to ask "is this value known, and if so what is it").
type ClassID uint32

// NoClassID marks an untracked (fully unknown) value.
const NoClassID ClassID = 0

// ExpressionClasses interns (instruction, operand-classes) tuples and
// literal constants into a shared numbering, the way SSA value
// numbering dedupes recomputations of the same expression.
type ExpressionClasses struct {
	next      ClassID
	index     map[string]ClassID
	constants map[ClassID]*big.Int
}

func NewExpressionClasses() *ExpressionClasses {
	return &ExpressionClasses{
		next:      1,
		index:     make(map[string]ClassID),
		constants: make(map[ClassID]*big.Int),
	}
}

// Fresh allocates a new class representing a value nothing else is
// known to equal — used for the result of an opcode this estimator
// doesn't bother to symbolically evaluate (e.g. SLOAD of an unknown
// slot, or a CALL's success flag).
func (e *ExpressionClasses) Fresh() ClassID {
	id := e.next
	e.next++
	return id
}

// Find interns the expression "instr(operands...)", returning the same
// ClassID for any two calls with equal instr and equal operand classes.
func (e *ExpressionClasses) Find(instr Instruction, operands []ClassID) ClassID {
	key := fmt.Sprintf("op:%d:%v", instr, operands)
	if id, ok := e.index[key]; ok {
		return id
	}
	id := e.next
	e.next++
	e.index[key] = id
	return id
}

// FindConstant interns a literal value, returning the same ClassID for
// any two equal values so KnownConstant/KnownZero/KnownNonZero can
// answer questions about it later.
func (e *ExpressionClasses) FindConstant(value *big.Int) ClassID {
	key := "const:" + value.String()
	if id, ok := e.index[key]; ok {
		return id
	}
	id := e.next
	e.next++
	e.index[key] = id
	e.constants[id] = new(big.Int).Set(value)
	return id
}

// KnownConstant reports the literal value of a class, if the estimator
// has proven it always holds one.
func (e *ExpressionClasses) KnownConstant(id ClassID) (*big.Int, bool) {
	v, ok := e.constants[id]
	return v, ok
}

func (e *ExpressionClasses) KnownZero(id ClassID) bool {
	v, ok := e.constants[id]
	return ok && v.Sign() == 0
}

func (e *ExpressionClasses) KnownNonZero(id ClassID) bool {
	v, ok := e.constants[id]
	return ok && v.Sign() != 0
}
