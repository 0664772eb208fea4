package gas

import (
	"math/big"
	"testing"
)

func newMeter() *Meter {
	return NewMeter(DefaultSchedule(), NewKnownState())
}

func TestSstoreSetVsReset(t *testing.T) {
	m := newMeter()
	// SSTORE pops the slot first (operand 0, so it must end on top of
	// the stack): push the value, then the slot. Slot 1 was never
	// written before, and the value being stored (7) isn't known zero,
	// so this must be priced as the more expensive "set" case.
	m.EstimateMax(Push(big.NewInt(7)))
	m.EstimateMax(Push(big.NewInt(1)))
	cost := m.EstimateMax(Op(InstrSSTORE))
	if cost.Infinite || cost.Value.Uint64() != m.Schedule.SstoreSetGas {
		t.Fatalf("expected sstore-set cost %d, got %s", m.Schedule.SstoreSetGas, cost)
	}

	// Writing again to the same slot, now known to hold a non-zero
	// value (7, from above), must be priced as the cheaper "reset"
	// case regardless of the new value being stored.
	m.EstimateMax(Push(big.NewInt(9)))
	m.EstimateMax(Push(big.NewInt(1)))
	cost = m.EstimateMax(Op(InstrSSTORE))
	if cost.Infinite || cost.Value.Uint64() != m.Schedule.SstoreResetGas {
		t.Fatalf("expected sstore-reset cost %d, got %s", m.Schedule.SstoreResetGas, cost)
	}
}

// TestSstoreResetWhenStoredValueIsKnownZero covers the other half of
// the reset condition (§4.6, GasMeter.cpp's sstore pricing): even into
// a slot whose prior contents are unknown, storing a known-zero value
// still gets the cheaper "reset" price, since the net effect on
// disk usage can only shrink or stay the same.
func TestSstoreResetWhenStoredValueIsKnownZero(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Push(big.NewInt(0)))  // value: known zero
	m.EstimateMax(Push(big.NewInt(42))) // slot: never written before
	cost := m.EstimateMax(Op(InstrSSTORE))
	if cost.Infinite || cost.Value.Uint64() != m.Schedule.SstoreResetGas {
		t.Fatalf("expected sstore-reset cost %d for a known-zero value, got %s", m.Schedule.SstoreResetGas, cost)
	}
}

func TestSloadIsFlat(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Push(big.NewInt(3)))
	cost := m.EstimateMax(Op(InstrSLOAD))
	if cost.Infinite || cost.Value.Uint64() != m.Schedule.SloadGas {
		t.Fatalf("expected flat sload cost, got %s", cost)
	}
}

func TestReturnWithUnknownSizeIsInfinite(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Op(InstrSLOAD)) // pushes an unknown value as "size"
	m.EstimateMax(Push(big.NewInt(0)))
	cost := m.EstimateMax(Op(InstrRETURN))
	if !cost.Infinite {
		t.Fatalf("expected infinite cost for unknown-size RETURN, got %s", cost)
	}
}

func TestReturnWithKnownZeroSizeIsFree(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Push(big.NewInt(0)))    // size, known zero, pushed first so it sits below offset
	m.EstimateMax(Push(big.NewInt(1000))) // offset, deliberately far out, ends on top
	cost := m.EstimateMax(Op(InstrRETURN))
	if cost.Infinite || cost.Value.Sign() != 0 {
		t.Fatalf("expected zero cost for known-zero-size RETURN, got %s", cost)
	}
}

func TestMemoryExpansionIsIncremental(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Push(big.NewInt(32)))
	m.EstimateMax(Push(big.NewInt(0)))
	first := m.EstimateMax(Op(InstrRETURN))

	m.EstimateMax(Push(big.NewInt(32)))
	m.EstimateMax(Push(big.NewInt(0)))
	second := m.EstimateMax(Op(InstrRETURN))

	if first.Infinite || second.Infinite {
		t.Fatalf("expected finite costs, got %s and %s", first, second)
	}
	if second.Value.Sign() != 0 {
		t.Fatalf("expected a repeat access within the same window to be free, got %s", second)
	}
}

func TestExpWithKnownExponentChargesPerByte(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Push(big.NewInt(256))) // exponent: needs 2 bytes
	m.EstimateMax(Push(big.NewInt(2)))   // base
	cost := m.EstimateMax(Op(InstrEXP))
	want := m.Schedule.ExpGas + 2*m.Schedule.ExpByteGas
	if cost.Infinite || cost.Value.Uint64() != want {
		t.Fatalf("expected exp cost %d, got %s", want, cost)
	}
}

func TestExpWithUnknownExponentChargesWorstCase(t *testing.T) {
	m := newMeter()
	m.EstimateMax(Op(InstrSLOAD)) // unknown exponent
	m.EstimateMax(Push(big.NewInt(2)))
	cost := m.EstimateMax(Op(InstrEXP))
	want := m.Schedule.ExpGas + 32*m.Schedule.ExpByteGas
	if cost.Infinite || cost.Value.Uint64() != want {
		t.Fatalf("expected worst-case exp cost %d, got %s", want, cost)
	}
}

func TestJumpdestIsConstantOne(t *testing.T) {
	m := newMeter()
	cost := m.EstimateMax(Op(InstrJUMPDEST))
	if cost.Infinite || cost.Value.Uint64() != 1 {
		t.Fatalf("expected jumpdest cost 1, got %s", cost)
	}
}

// pushCallOperands pushes operands so that, after all seven pushes, the
// stack reads (top to bottom) gas, addr, value, inOffset, inSize,
// outOffset, outSize — the order callCost's fixed operand indices
// expect for CALL/CALLCODE. A nil value is replaced by a fresh,
// entirely unknown class rather than a pushed constant.
func pushCallOperands(m *Meter, gas, addr, value, inOffset, inSize, outOffset, outSize *big.Int) {
	m.EstimateMax(Push(outSize))
	m.EstimateMax(Push(outOffset))
	m.EstimateMax(Push(inSize))
	m.EstimateMax(Push(inOffset))
	if value == nil {
		m.State.push(m.State.Classes.Fresh())
	} else {
		m.EstimateMax(Push(value))
	}
	m.EstimateMax(Push(addr))
	m.EstimateMax(Push(gas))
}

func TestCallValueTransferChargedUnlessKnownZero(t *testing.T) {
	run := func(value *big.Int) GasConsumption {
		m := newMeter()
		pushCallOperands(m, big.NewInt(100), big.NewInt(1), value, big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0))
		return m.EstimateMax(Op(InstrCALL))
	}

	unknownValueCost := run(nil)
	knownZeroValueCost := run(big.NewInt(0))
	knownNonZeroValueCost := run(big.NewInt(5))

	if unknownValueCost.Infinite || knownZeroValueCost.Infinite || knownNonZeroValueCost.Infinite {
		t.Fatalf("expected all three CALL costs to be finite: unknown=%s zero=%s nonzero=%s",
			unknownValueCost, knownZeroValueCost, knownNonZeroValueCost)
	}
	if knownZeroValueCost.Value.Cmp(unknownValueCost.Value) >= 0 {
		t.Fatalf("expected a known-zero value to be cheaper than an unknown one: zero=%s unknown=%s",
			knownZeroValueCost, unknownValueCost)
	}
	if unknownValueCost.Value.Cmp(knownNonZeroValueCost.Value) != 0 {
		t.Fatalf("expected an unknown value to cost the same as a known non-zero one (§8 invariant 6): unknown=%s nonzero=%s",
			unknownValueCost, knownNonZeroValueCost)
	}
}

func TestDelegatecallHasNoValueSurcharge(t *testing.T) {
	m := newMeter()
	for _, v := range []int64{0, 0, 0, 0, 1, 100} { // outSize,outOffset,inSize,inOffset,addr,gas
		m.EstimateMax(Push(big.NewInt(v)))
	}
	cost := m.EstimateMax(Op(InstrDELEGATECALL))
	want := m.Schedule.CallGas + 100
	if cost.Infinite || cost.Value.Uint64() != want {
		t.Fatalf("expected delegatecall cost %d, got %s", want, cost)
	}
}

func TestGasConsumptionSaturatesToInfinite(t *testing.T) {
	huge := KnownBig(u256Max)
	sum := huge.Add(Known(1))
	if !sum.Infinite {
		t.Fatalf("expected overflow past u256 max to saturate to infinite")
	}
}

func TestNamedSchedulesAreDistinct(t *testing.T) {
	if EIP150().SloadGas == Homestead().SloadGas {
		t.Fatalf("expected EIP150 to raise sload cost relative to Homestead")
	}
}
