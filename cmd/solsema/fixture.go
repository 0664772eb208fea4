package main

import (
	"fmt"
	"math/big"

	"github.com/BurntSushi/toml"

	"github.com/topsmart20/solidity/internal/gas"
)

// gasFixture is the small, hand-authored stand-in for a real compiler
// front end's output: since the lexer and parser are out of scope
// here, this is how a caller feeds the gas estimator an assembly item
// sequence without one.
type gasFixture struct {
	Schedule string      `toml:"schedule"`
	Items    []fixtureOp `toml:"items"`
}

type fixtureOp struct {
	Kind  string `toml:"kind"`  // "push" | "tag" | "op"
	Value string `toml:"value"` // decimal, for "push"
	Instr string `toml:"instr"` // instruction name, for "op"
}

func loadGasFixture(path string) (gasFixture, error) {
	var f gasFixture
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return gasFixture{}, fmt.Errorf("load fixture %s: %w", path, err)
	}
	return f, nil
}

func (f gasFixture) schedule() (gas.Schedule, error) {
	switch f.Schedule {
	case "", "frontier":
		return gas.DefaultSchedule(), nil
	case "homestead":
		return gas.Homestead(), nil
	case "eip150":
		return gas.EIP150(), nil
	default:
		return gas.Schedule{}, fmt.Errorf("unknown schedule %q", f.Schedule)
	}
}

func (f gasFixture) items() ([]gas.AssemblyItem, error) {
	out := make([]gas.AssemblyItem, 0, len(f.Items))
	for i, op := range f.Items {
		switch op.Kind {
		case "push":
			v, ok := new(big.Int).SetString(op.Value, 10)
			if !ok {
				return nil, fmt.Errorf("item %d: invalid push value %q", i, op.Value)
			}
			out = append(out, gas.Push(v))
		case "tag":
			out = append(out, gas.Tag())
		case "op":
			instr, ok := instructionByName[op.Instr]
			if !ok {
				return nil, fmt.Errorf("item %d: unknown instruction %q", i, op.Instr)
			}
			out = append(out, gas.Op(instr))
		default:
			return nil, fmt.Errorf("item %d: unknown item kind %q", i, op.Kind)
		}
	}
	return out, nil
}

var instructionByName = map[string]gas.Instruction{
	"ADD": gas.InstrADD, "EXP": gas.InstrEXP, "SHA3": gas.InstrSHA3,
	"SLOAD": gas.InstrSLOAD, "SSTORE": gas.InstrSSTORE,
	"MLOAD": gas.InstrMLOAD, "MSTORE": gas.InstrMSTORE, "MSTORE8": gas.InstrMSTORE8,
	"CALLDATACOPY": gas.InstrCALLDATACOPY, "CODECOPY": gas.InstrCODECOPY, "EXTCODECOPY": gas.InstrEXTCODECOPY,
	"LOG0": gas.InstrLOG0, "LOG1": gas.InstrLOG1, "LOG2": gas.InstrLOG2, "LOG3": gas.InstrLOG3, "LOG4": gas.InstrLOG4,
	"CALL": gas.InstrCALL, "CALLCODE": gas.InstrCALLCODE, "DELEGATECALL": gas.InstrDELEGATECALL,
	"CREATE": gas.InstrCREATE, "RETURN": gas.InstrRETURN, "JUMPDEST": gas.InstrJUMPDEST,
}
