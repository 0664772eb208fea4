// Package report serializes analysis results — the diagnostic bag and
// gas estimates — into the msgpack form downstream tooling consumes
// (spec §6 "Downstream (produced)"), the way the teacher's own CLI
// hands structured results to callers that don't link against the Go
// module directly.
package report

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/gas"
)

// Note mirrors diag.Note, flattened to plain fields msgpack can encode
// without reaching back into the diag package's types.
type Note struct {
	File  uint32 `msgpack:"file"`
	Start uint32 `msgpack:"start"`
	End   uint32 `msgpack:"end"`
	Msg   string `msgpack:"msg"`
}

// Diagnostic mirrors diag.Diagnostic.
type Diagnostic struct {
	Kind     string `msgpack:"kind"`
	Severity string `msgpack:"severity"`
	Message  string `msgpack:"message"`
	File     uint32 `msgpack:"file"`
	Start    uint32 `msgpack:"start"`
	End      uint32 `msgpack:"end"`
	Fatal    bool   `msgpack:"fatal"`
	Notes    []Note `msgpack:"notes"`
}

// GasEstimate is one assembly item's priced cost, keyed by its position
// in the sequence EstimateMax was fed.
type GasEstimate struct {
	Index    int    `msgpack:"index"`
	Cost     string `msgpack:"cost"`
	Infinite bool   `msgpack:"infinite"`
}

// Report is the complete artifact one analysis run produces.
type Report struct {
	Ok          bool          `msgpack:"ok"`
	Diagnostics []Diagnostic  `msgpack:"diagnostics"`
	Gas         []GasEstimate `msgpack:"gas,omitempty"`
}

// FromBag converts a diagnostics bag into the wire form, preserving
// discovery order (the bag itself is never reordered by this package).
func FromBag(bag *diag.Bag) []Diagnostic {
	if bag == nil {
		return nil
	}
	out := make([]Diagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		notes := make([]Note, 0, len(d.Notes))
		for _, n := range d.Notes {
			notes = append(notes, Note{File: uint32(n.Span.File), Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		out = append(out, Diagnostic{
			Kind:     d.Kind.String(),
			Severity: d.Severity().String(),
			Message:  d.Message,
			File:     uint32(d.Primary.File),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Fatal:    d.Fatal,
			Notes:    notes,
		})
	}
	return out
}

// FromGasEstimates converts a sequence of priced items into the wire
// form, in the order EstimateMax was called.
func FromGasEstimates(costs []gas.GasConsumption) []GasEstimate {
	out := make([]GasEstimate, 0, len(costs))
	for i, c := range costs {
		out = append(out, GasEstimate{Index: i, Cost: c.String(), Infinite: c.Infinite})
	}
	return out
}

// New assembles a Report from a diagnostics bag and an optional set of
// gas estimates.
func New(bag *diag.Bag, costs []gas.GasConsumption) Report {
	return Report{
		Ok:          bag == nil || bag.Ok(),
		Diagnostics: FromBag(bag),
		Gas:         FromGasEstimates(costs),
	}
}

// Encode writes r to w as msgpack.
func (r Report) Encode(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

// Decode reads a Report back from its msgpack form.
func Decode(r io.Reader) (Report, error) {
	var out Report
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return Report{}, fmt.Errorf("report: decode: %w", err)
	}
	return out, nil
}
