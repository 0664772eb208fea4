package diag

// Reporter decouples diagnostic producers (scope registry, resolver,
// linearizer, type checker) from how diagnostics are stored, mirroring the
// teacher's internal/diag.Reporter split between producer and sink.
type Reporter interface {
	Report(Diagnostic)
}

// BagReporter is the standard Reporter backed by a Bag.
type BagReporter struct {
	Bag *Bag
}

// Report appends d to the underlying bag.
func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
