package gas

import "math/big"

// Meter is the gas estimator proper: §4.6's GasMeter. It prices one
// AssemblyItem at a time against a Schedule, consulting State for the
// handful of instructions whose cost depends on a stack or storage
// value that might or might not be statically known.
//
// Operand positions below follow EVM's own popping order: operand 0 is
// whichever value an instruction's definition lists first, and sits on
// top of the stack; operand 1 is the next, one slot deeper; and so on.
type Meter struct {
	Schedule Schedule
	State    *KnownState
}

func NewMeter(schedule Schedule, state *KnownState) *Meter {
	return &Meter{Schedule: schedule, State: state}
}

// EstimateMax prices item under the current state, then advances the
// state past it. Pricing must read the state as it stood before the
// item ran, so FeedItem is always called last.
func (m *Meter) EstimateMax(item AssemblyItem) GasConsumption {
	var cost GasConsumption
	switch item.Kind {
	case KindPush:
		cost = Known(m.Schedule.TierStepGas[TierVeryLow])
	case KindTag:
		cost = Known(0)
	default:
		cost = m.operationCost(item.Instruction)
	}
	m.State.FeedItem(item)
	return cost
}

func (m *Meter) operand(offset int) ClassID {
	return m.State.RelativeStackElement(-offset)
}

func (m *Meter) knownConstant(offset int) (*big.Int, bool) {
	return m.State.Classes.KnownConstant(m.operand(offset))
}

func (m *Meter) operationCost(instr Instruction) GasConsumption {
	switch instr {
	case InstrJUMPDEST:
		return Known(m.Schedule.JumpdestGas)

	case InstrSSTORE:
		return m.sstoreCost()

	case InstrSLOAD:
		return Known(m.Schedule.SloadGas)

	case InstrRETURN:
		return m.memoryWindowCost(0, 1)

	case InstrMLOAD:
		base := Known(m.Schedule.TierStepGas[TierVeryLow])
		addr, ok := m.knownConstant(0)
		if !ok {
			return Infinite()
		}
		end := new(big.Int).Add(addr, big.NewInt(32))
		return base.Add(m.memoryExpansionCost(end))

	case InstrMSTORE, InstrMSTORE8:
		base := Known(m.Schedule.TierStepGas[TierVeryLow])
		addr, ok := m.knownConstant(0)
		if !ok {
			return Infinite()
		}
		width := int64(32)
		if instr == InstrMSTORE8 {
			width = 1
		}
		end := new(big.Int).Add(addr, big.NewInt(width))
		return base.Add(m.memoryExpansionCost(end))

	case InstrSHA3:
		base := Known(m.Schedule.Sha3Gas)
		words := m.wordGas(m.Schedule.Sha3WordGas, 1)
		return base.Add(words).Add(m.memoryWindowCost(0, 1))

	case InstrCALLDATACOPY, InstrCODECOPY:
		base := Known(m.Schedule.TierStepGas[TierVeryLow])
		words := m.wordGas(m.Schedule.CopyGas, 2)
		return base.Add(words).Add(m.memoryWindowCost(0, 2))

	case InstrEXTCODECOPY:
		base := Known(m.Schedule.TierStepGas[TierExt])
		words := m.wordGas(m.Schedule.CopyGas, 3)
		return base.Add(words).Add(m.memoryWindowCost(1, 3))

	case InstrLOG0, InstrLOG1, InstrLOG2, InstrLOG3, InstrLOG4:
		topics := logTopics(instr)
		cost := Known(m.Schedule.LogGas).Add(Known(m.Schedule.LogTopicGas).Mul(uint64(topics)))
		size, ok := m.knownConstant(1)
		if !ok {
			return Infinite()
		}
		cost = cost.Add(Known(m.Schedule.LogDataGas).Mul(size.Uint64()))
		return cost.Add(m.memoryWindowCost(0, 1))

	case InstrCALL, InstrCALLCODE, InstrDELEGATECALL:
		return m.callCost(instr)

	case InstrCREATE:
		base := Known(m.Schedule.CreateGas)
		return base.Add(m.memoryWindowCost(1, 2))

	case InstrEXP:
		cost := Known(m.Schedule.ExpGas)
		exp, ok := m.knownConstant(1)
		switch {
		case !ok:
			// Unknown exponent: charge the worst case, a full 32-byte
			// exponent, rather than reporting infinite (§9 Open
			// Question, resolved in favor of a finite upper bound).
			return cost.Add(Known(m.Schedule.ExpByteGas).Mul(32))
		case exp.Sign() == 0:
			return cost
		default:
			return cost.Add(Known(m.Schedule.ExpByteGas).Mul(uint64(byteLen(exp))))
		}

	default:
		return Known(m.Schedule.TierStepGas[tierOf(instr)])
	}
}

func (m *Meter) sstoreCost() GasConsumption {
	slot := m.operand(0)
	value := m.operand(1)
	current := m.State.StorageValue(slot)
	if m.State.Classes.KnownZero(value) || (current != NoClassID && m.State.Classes.KnownNonZero(current)) {
		return Known(m.Schedule.SstoreResetGas)
	}
	// Neither the value being stored nor the slot's old value is
	// provably able to take the reset price, so this is priced as the
	// worse "set" case.
	return Known(m.Schedule.SstoreSetGas)
}

func (m *Meter) callCost(instr Instruction) GasConsumption {
	gasArg, ok := m.knownConstant(0)
	if !ok {
		return Infinite()
	}
	cost := Known(m.Schedule.CallGas).Add(KnownBig(gasArg))

	var inOffset, inSize, outOffset, outSize int
	switch instr {
	case InstrCALL, InstrCALLCODE:
		// Charged unless the value is *proven* zero: an unknown value
		// must never be cheaper than a known non-zero one (§8 Invariant
		// 6), matching estimateMax's own "!knownZero(...)" test.
		if !m.State.Classes.KnownZero(m.operand(2)) {
			cost = cost.Add(Known(m.Schedule.CallValueTransferGas))
		}
		if instr == InstrCALL {
			// Account existence can't be proven statically here, so
			// charge the worst case (a brand-new account).
			cost = cost.Add(Known(m.Schedule.CallNewAccountGas))
		}
		inOffset, inSize, outOffset, outSize = 3, 4, 5, 6
	default: // DELEGATECALL
		inOffset, inSize, outOffset, outSize = 2, 3, 4, 5
	}

	cost = cost.Add(m.memoryWindowCost(inOffset, inSize))
	cost = cost.Add(m.memoryWindowCost(outOffset, outSize))
	return cost
}

// wordGas prices size (an operand index) in 32-byte words times
// multiplier, infinite if size isn't a known constant (§4.6
// "wordGas").
func (m *Meter) wordGas(multiplier uint64, sizeOperand int) GasConsumption {
	size, ok := m.knownConstant(sizeOperand)
	if !ok {
		return Infinite()
	}
	words := ceilWords(size)
	return Known(multiplier).Mul(words)
}

// memoryWindowCost prices extending memory to cover [offset, offset+size)
// given as two operand indices, infinite if either bound isn't a known
// constant. A known-zero size never requires memory, regardless of the
// offset (§4.6's knownZero short-circuit).
func (m *Meter) memoryWindowCost(offsetOperand, sizeOperand int) GasConsumption {
	size, ok := m.knownConstant(sizeOperand)
	if !ok {
		return Infinite()
	}
	if size.Sign() == 0 {
		return Known(0)
	}
	offset, ok := m.knownConstant(offsetOperand)
	if !ok {
		return Infinite()
	}
	end := new(big.Int).Add(offset, size)
	return m.memoryExpansionCost(end)
}

// memoryExpansionCost charges only the incremental cost of extending
// memory to bytePos, relative to the largest extent already paid for
// (§4.6 "memoryGas"): c_mem(w) = MemoryGas*w + w^2/QuadCoeffDiv.
func (m *Meter) memoryExpansionCost(bytePos *big.Int) GasConsumption {
	words := ceilWordsBig(bytePos)
	if words.Cmp(m.State.largestMemoryWords) <= 0 {
		return Known(0)
	}
	cost := m.memoryCostAt(words).Add(m.memoryCostAt(m.State.largestMemoryWords).negate())
	m.State.largestMemoryWords = words
	return cost
}

func (m *Meter) memoryCostAt(words *big.Int) GasConsumption {
	linear := new(big.Int).Mul(words, new(big.Int).SetUint64(m.Schedule.MemoryGas))
	quad := new(big.Int).Mul(words, words)
	quad.Div(quad, new(big.Int).SetUint64(m.Schedule.QuadCoeffDiv))
	return KnownBig(new(big.Int).Add(linear, quad))
}

// negate is only ever used to subtract an already-paid memory cost
// from a new, larger one, so it never needs to represent a negative
// GasConsumption in the general case.
func (g GasConsumption) negate() GasConsumption {
	if g.Infinite {
		return g
	}
	return GasConsumption{Value: new(big.Int).Neg(g.Value)}
}

func ceilWords(size *big.Int) uint64 {
	return ceilWordsBig(size).Uint64()
}

func ceilWordsBig(size *big.Int) *big.Int {
	sum := new(big.Int).Add(size, big.NewInt(31))
	return sum.Div(sum, big.NewInt(32))
}

// byteLen is the number of bytes needed to represent v, i.e. the
// position of its highest set bit rounded up to a byte boundary
// (§4.6 "EXP costs ExpByteGas per byte of the exponent").
func byteLen(v *big.Int) int {
	bits := v.BitLen()
	return (bits + 7) / 8
}
