package gas

import "math/big"

// ItemKind mirrors AssemblyItem::Type: this estimator only needs to
// tell pushed constants, jump targets, and operations apart (§4.6).
type ItemKind int

const (
	KindOperation ItemKind = iota
	KindPush
	KindTag
)

// AssemblyItem is one entry of the linear item sequence EstimateMax
// walks. A Push item carries the constant being pushed in Data; an
// Operation item carries which Instruction it is. Tag items (jump
// destinations emitted by the code generator, distinct from the
// JUMPDEST instruction itself) have no cost and no operands.
type AssemblyItem struct {
	Kind        ItemKind
	Instruction Instruction
	Data        *big.Int
}

func Push(value *big.Int) AssemblyItem {
	return AssemblyItem{Kind: KindPush, Data: value}
}

func Tag() AssemblyItem {
	return AssemblyItem{Kind: KindTag}
}

func Op(instr Instruction) AssemblyItem {
	return AssemblyItem{Kind: KindOperation, Instruction: instr}
}
