package report

import (
	"bytes"
	"testing"

	"github.com/topsmart20/solidity/internal/diag"
	"github.com/topsmart20/solidity/internal/gas"
	"github.com/topsmart20/solidity/internal/source"
)

func TestRoundTrip(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.Type(source.Span{File: 1, Start: 2, End: 5}, "bad conversion"))

	costs := []gas.GasConsumption{gas.Known(21), gas.Infinite()}
	rep := New(bag, costs)

	var buf bytes.Buffer
	if err := rep.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Ok {
		t.Fatalf("expected Ok=false with a type error present")
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Message != "bad conversion" {
		t.Fatalf("unexpected diagnostics: %+v", got.Diagnostics)
	}
	if len(got.Gas) != 2 || !got.Gas[1].Infinite {
		t.Fatalf("unexpected gas estimates: %+v", got.Gas)
	}
}
