// Package gas implements the abstract-interpretation gas estimator
// described in §4.6: given a linear sequence of assembly-level items, it
// derives a worst-case (not exact) per-item gas cost the way
// libevmasm's GasMeter does, tracking just enough symbolic state
// (constant-ness of stack/storage slots, the memory high-water mark) to
// resolve the handful of instructions whose price depends on it.
package gas

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Schedule is a named, TOML-loadable cost table. Real EVM forks change
// a handful of these numbers (EIP150 is the infamous one); keeping them
// data instead of constants lets a caller swap schedules without
// touching the estimator.
type Schedule struct {
	Name string `toml:"name"`

	TierStepGas [8]uint64 `toml:"tier_step_gas"`

	SstoreSetGas   uint64 `toml:"sstore_set_gas"`
	SstoreResetGas uint64 `toml:"sstore_reset_gas"`
	SstoreClearGas uint64 `toml:"sstore_clear_gas"` // refund, informational only
	SloadGas       uint64 `toml:"sload_gas"`

	Sha3Gas     uint64 `toml:"sha3_gas"`
	Sha3WordGas uint64 `toml:"sha3_word_gas"`

	CopyGas      uint64 `toml:"copy_gas"`
	MemoryGas    uint64 `toml:"memory_gas"`
	QuadCoeffDiv uint64 `toml:"quad_coeff_div"`

	LogGas      uint64 `toml:"log_gas"`
	LogTopicGas uint64 `toml:"log_topic_gas"`
	LogDataGas  uint64 `toml:"log_data_gas"`

	CallGas              uint64 `toml:"call_gas"`
	CallStipend          uint64 `toml:"call_stipend"`
	CallNewAccountGas    uint64 `toml:"call_new_account_gas"`
	CallValueTransferGas uint64 `toml:"call_value_transfer_gas"`

	CreateGas uint64 `toml:"create_gas"`

	ExpGas     uint64 `toml:"exp_gas"`
	ExpByteGas uint64 `toml:"exp_byte_gas"`

	JumpdestGas uint64 `toml:"jumpdest_gas"`
}

// Tier indices into Schedule.TierStepGas, named the way the classic EVM
// yellow paper names them.
const (
	TierZero = iota
	TierBase
	TierVeryLow
	TierLow
	TierMid
	TierHigh
	TierExt
	TierSpecial
)

// DefaultSchedule returns the Frontier cost table: the baseline every
// named schedule below is expressed as a delta from.
func DefaultSchedule() Schedule {
	return Schedule{
		Name:                 "frontier",
		TierStepGas:          [8]uint64{0, 2, 3, 5, 8, 10, 20, 0},
		SstoreSetGas:         20000,
		SstoreResetGas:       5000,
		SstoreClearGas:       15000,
		SloadGas:             50,
		Sha3Gas:              30,
		Sha3WordGas:          6,
		CopyGas:              3,
		MemoryGas:            3,
		QuadCoeffDiv:         512,
		LogGas:               375,
		LogTopicGas:          375,
		LogDataGas:           8,
		CallGas:              40,
		CallStipend:          2300,
		CallNewAccountGas:    25000,
		CallValueTransferGas: 9000,
		CreateGas:            32000,
		ExpGas:               10,
		ExpByteGas:           10,
		JumpdestGas:          1,
	}
}

// Homestead changes nothing about gas costs relevant to this estimator
// (its gas-affecting change, EIP-2's 21000 intrinsic transaction cost,
// is outside this package's per-item scope); kept as a distinct named
// schedule so a caller can select it without the estimator caring.
func Homestead() Schedule {
	s := DefaultSchedule()
	s.Name = "homestead"
	return s
}

// EIP150 ("the DoS-fix fork") raises SLOAD to 200 and the base cost of
// CALL/CALLCODE/DELEGATECALL to 700; every other cost, the new-account
// surcharge included, keeps its DefaultSchedule value.
func EIP150() Schedule {
	s := DefaultSchedule()
	s.Name = "eip150"
	s.SloadGas = 200
	s.CallGas = 700
	s.CallNewAccountGas = 25000
	return s
}

// LoadSchedules reads a TOML document mapping schedule names to
// Schedule tables, for callers that want to supply their own cost data
// rather than use the three built-ins above.
func LoadSchedules(r io.Reader) (map[string]Schedule, error) {
	var doc struct {
		Schedules map[string]Schedule `toml:"schedules"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("gas: decode schedules: %w", err)
	}
	return doc.Schedules, nil
}
