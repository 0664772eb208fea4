package gas

import "math/big"

// KnownState is the symbolic machine state GasMeter consults to decide
// whether a value-dependent cost (SSTORE reset-vs-set, a LOG/CALL
// length argument, EXP's exponent) is statically known. It tracks only
// what the cost formulas below actually ask: the top of the stack and
// the storage map, both by value-numbering class rather than value.
type KnownState struct {
	Classes *ExpressionClasses
	stack   []ClassID
	storage map[ClassID]ClassID

	// largestMemoryWords is the high-water mark of memory words ever
	// charged for, so later accesses within the same window are only
	// charged the incremental quadratic cost (§4.6 "memoryGas").
	largestMemoryWords *big.Int
}

func NewKnownState() *KnownState {
	return &KnownState{
		Classes:            NewExpressionClasses(),
		storage:            make(map[ClassID]ClassID),
		largestMemoryWords: big.NewInt(0),
	}
}

// RelativeStackElement returns the class at the given offset from the
// top of the stack (0 is the top, -1 the element below it, matching
// libevmasm's own convention), or NoClassID if the offset reaches below
// the tracked portion of the stack.
func (s *KnownState) RelativeStackElement(offset int) ClassID {
	idx := len(s.stack) - 1 + offset
	if idx < 0 || idx >= len(s.stack) {
		return NoClassID
	}
	return s.stack[idx]
}

func (s *KnownState) push(id ClassID) {
	s.stack = append(s.stack, id)
}

func (s *KnownState) pop(n int) {
	if n > len(s.stack) {
		n = len(s.stack)
	}
	s.stack = s.stack[:len(s.stack)-n]
}

// StorageValue returns the class known to be stored at a given slot
// class, or NoClassID if the slot has never been written or was last
// written with an unknown value.
func (s *KnownState) StorageValue(slot ClassID) ClassID {
	return s.storage[slot]
}

// FeedItem advances the symbolic state across one assembly item. It
// must run *after* EstimateMax has priced that same item, since the
// cost formulas (in particular SSTORE and SLOAD) look at the state as
// it stood immediately before the item executed.
func (s *KnownState) FeedItem(item AssemblyItem) {
	switch item.Kind {
	case KindPush:
		s.push(s.Classes.FindConstant(item.Data))
		return
	case KindTag:
		return
	}

	instr := item.Instruction
	pops, pushes := stackEffect(instr)

	switch instr {
	case InstrSSTORE:
		if pops >= 2 && len(s.stack) >= 2 {
			slot := s.stack[len(s.stack)-1]
			value := s.stack[len(s.stack)-2]
			s.storage[slot] = value
		}
		s.pop(pops)
		return
	case InstrSLOAD:
		var slot ClassID
		if len(s.stack) >= 1 {
			slot = s.stack[len(s.stack)-1]
		}
		s.pop(pops)
		if known, ok := s.storage[slot]; ok {
			s.push(known)
		} else {
			s.push(s.Classes.Fresh())
		}
		return
	case InstrADD:
		var a, b ClassID
		if len(s.stack) >= 2 {
			a = s.stack[len(s.stack)-1]
			b = s.stack[len(s.stack)-2]
		}
		s.pop(pops)
		s.push(s.Classes.Find(InstrADD, []ClassID{a, b}))
		return
	}

	s.pop(pops)
	for i := 0; i < pushes; i++ {
		s.push(s.Classes.Fresh())
	}
}
