package sema

import (
	"errors"

	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/diag"
)

// Linearizer computes each contract's C3-linearized base list (§4.4):
// derived-first, then bases in an order consistent with both the order
// they're listed in every "is A, B" clause and with each base's own
// linearization. It memoizes per contract since a base shared by several
// derived contracts should only be linearized once.
type Linearizer struct {
	Builder  *ast.Builder
	Reporter diag.Reporter

	memo     map[ast.DeclID][]ast.DeclID
	visiting map[ast.DeclID]bool
	fatal    map[ast.DeclID]bool
}

// NewLinearizer constructs a Linearizer over builder.
func NewLinearizer(builder *ast.Builder, reporter diag.Reporter) *Linearizer {
	return &Linearizer{
		Builder:  builder,
		Reporter: reporter,
		memo:     make(map[ast.DeclID][]ast.DeclID),
		visiting: make(map[ast.DeclID]bool),
		fatal:    make(map[ast.DeclID]bool),
	}
}

// Failed reports whether contract's C3 merge came back inconsistent
// (§4.4, §8 invariant 1): a fatal condition, since Linearize recovers
// with declaration order purely so other lookups keep returning
// *something*, not because that fallback order is semantically sound.
func (l *Linearizer) Failed(contract ast.DeclID) bool {
	return l.fatal[contract]
}

// ErrInconsistentHierarchy is returned by c3Merge (never by Linearize,
// which instead reports a diagnostic and falls back to declaration
// order) when no valid merge order exists.
var ErrInconsistentHierarchy = errors.New("inconsistent base contract order")

// Linearize returns contract's linearized base list, contract itself
// first and the common root (if any) last, per §4.4 and §8 invariant 1.
// Calling it twice for the same contract returns the same slice.
func (l *Linearizer) Linearize(contract ast.DeclID) []ast.DeclID {
	if cached, ok := l.memo[contract]; ok {
		return cached
	}
	if l.visiting[contract] {
		// Inheritance cycle: report once at the contract that closes the
		// loop and break it by treating contract as base-less here.
		c := l.Builder.Contract(contract)
		span := l.Builder.Decl(contract)
		if c != nil && span != nil {
			diag.Report(l.Reporter, diag.Declaration(span.Span,
				"contract %q participates in an inheritance cycle", l.Builder.Strings.MustLookup(c.Name)))
		}
		return []ast.DeclID{contract}
	}
	l.visiting[contract] = true
	defer delete(l.visiting, contract)

	c := l.Builder.Contract(contract)
	if c == nil {
		return []ast.DeclID{contract}
	}

	var directOrder []ast.DeclID
	baseLists := make([][]ast.DeclID, 0, len(c.Bases)+1)
	for _, b := range c.Bases {
		if !b.Resolved.IsValid() {
			continue
		}
		directOrder = append(directOrder, b.Resolved)
		baseLists = append(baseLists, l.Linearize(b.Resolved))
	}
	baseLists = append(baseLists, directOrder)

	merged, err := c3Merge(baseLists)
	if err != nil {
		diag.Report(l.Reporter, diag.Fatal(diag.Type(c.NameSpan,
			"linearization of contract %q failed: %v", l.Builder.Strings.MustLookup(c.Name), err)))
		l.fatal[contract] = true
		merged = directOrder
	}

	result := append([]ast.DeclID{contract}, merged...)
	l.memo[contract] = result
	return result
}

// c3Merge implements the classic C3 algorithm: repeatedly pick the head
// of the first list that does not occur in the tail of any list, remove
// it from every list's front, and append it to the result. Fails if no
// such head exists while any list is still non-empty (§8 invariant 1).
func c3Merge(lists [][]ast.DeclID) ([]ast.DeclID, error) {
	// Work on copies so callers' slices (notably each base's memoized
	// linearization) are never mutated.
	work := make([][]ast.DeclID, 0, len(lists))
	for _, l := range lists {
		if len(l) == 0 {
			continue
		}
		work = append(work, append([]ast.DeclID(nil), l...))
	}

	var result []ast.DeclID
	for len(work) > 0 {
		candidate, found := ast.NoDeclID, false
		for _, l := range work {
			head := l[0]
			if appearsInAnyTail(work, head) {
				continue
			}
			candidate, found = head, true
			break
		}
		if !found {
			return result, ErrInconsistentHierarchy
		}
		result = append(result, candidate)
		work = removeHead(work, candidate)
	}
	return result, nil
}

func appearsInAnyTail(lists [][]ast.DeclID, id ast.DeclID) bool {
	for _, l := range lists {
		for _, other := range l[1:] {
			if other == id {
				return true
			}
		}
	}
	return false
}

func removeHead(lists [][]ast.DeclID, id ast.DeclID) [][]ast.DeclID {
	out := make([][]ast.DeclID, 0, len(lists))
	for _, l := range lists {
		if len(l) > 0 && l[0] == id {
			l = l[1:]
		}
		if len(l) > 0 {
			out = append(out, l)
		}
	}
	return out
}
