package diag

import "sort"

// Bag is an append-only ErrorList (§6): order of discovery is preserved
// until Sort is explicitly requested.
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty bag, optionally hinting its capacity.
func NewBag(capacityHint int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, capacityHint)}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Len reports the number of diagnostics recorded so far.
func (b *Bag) Len() int { return len(b.items) }

// Items exposes the diagnostics. Callers must not mutate the returned
// slice; it aliases the bag's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic has error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity() == SevError {
			return true
		}
	}
	return false
}

// Ok reports contract-level success per §7: no record of kind other than
// Warning.
func (b *Bag) Ok() bool { return !b.HasErrors() }

// Merge appends another bag's diagnostics, preserving relative order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, then start offset, then end offset, then
// severity (errors first), for stable deterministic reporting.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return di.Severity() > dj.Severity()
	})
}
