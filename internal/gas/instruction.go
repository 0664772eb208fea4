package gas

// Instruction identifies the handful of opcodes GasMeter.cpp gives a
// special-cased cost formula; everything else is priced by a flat tier
// lookup (§4.6 "runGas").
type Instruction uint8

const (
	InstrOther Instruction = iota // priced by Tier, no special handling

	InstrADD
	InstrEXP

	InstrSHA3

	InstrSLOAD
	InstrSSTORE

	InstrMLOAD
	InstrMSTORE
	InstrMSTORE8

	InstrCALLDATACOPY
	InstrCODECOPY
	InstrEXTCODECOPY

	InstrLOG0
	InstrLOG1
	InstrLOG2
	InstrLOG3
	InstrLOG4

	InstrCALL
	InstrCALLCODE
	InstrDELEGATECALL

	InstrCREATE

	InstrRETURN

	InstrJUMPDEST
)

// tierOf reports the flat gas-price tier for instructions whose cost
// isn't one of the special formulas below (§4.6's default "runGas"
// path). Instructions with a special formula are never priced through
// this table; their tier here is nominal.
func tierOf(i Instruction) int {
	switch i {
	case InstrADD:
		return TierVeryLow
	case InstrMLOAD, InstrMSTORE, InstrMSTORE8:
		return TierVeryLow
	case InstrCALLDATACOPY, InstrCODECOPY:
		return TierVeryLow
	case InstrEXTCODECOPY:
		return TierExt
	case InstrRETURN:
		return TierZero
	default:
		return TierBase
	}
}

// stackEffect reports how many words an instruction pops and pushes,
// used to keep the symbolic stack (KnownState) in sync as items are
// fed through the meter. Values for the instructions this package
// doesn't price specially are best-effort approximations; they only
// need to keep stack height roughly right, not track values.
func stackEffect(i Instruction) (pops, pushes int) {
	switch i {
	case InstrADD, InstrEXP, InstrSHA3:
		return 2, 1
	case InstrSLOAD:
		return 1, 1
	case InstrSSTORE:
		return 2, 0
	case InstrMLOAD:
		return 1, 1
	case InstrMSTORE, InstrMSTORE8:
		return 2, 0
	case InstrCALLDATACOPY, InstrCODECOPY:
		return 3, 0
	case InstrEXTCODECOPY:
		return 4, 0
	case InstrLOG0:
		return 2, 0
	case InstrLOG1:
		return 3, 0
	case InstrLOG2:
		return 4, 0
	case InstrLOG3:
		return 5, 0
	case InstrLOG4:
		return 6, 0
	case InstrCALL, InstrCALLCODE:
		return 7, 1
	case InstrDELEGATECALL:
		return 6, 1
	case InstrCREATE:
		return 3, 1
	case InstrRETURN:
		return 2, 0
	case InstrJUMPDEST:
		return 0, 0
	default:
		return 0, 1
	}
}

func logTopics(i Instruction) int {
	switch i {
	case InstrLOG0:
		return 0
	case InstrLOG1:
		return 1
	case InstrLOG2:
		return 2
	case InstrLOG3:
		return 3
	case InstrLOG4:
		return 4
	default:
		return 0
	}
}
