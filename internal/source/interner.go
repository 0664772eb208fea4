package source

import (
	"golang.org/x/text/unicode/norm"
)

// StringID names an interned string (an identifier, a string literal's
// bytes, a dotted path segment).
type StringID uint32

// NoStringID denotes the absence of a string / the empty name (used for a
// contract's fallback function).
const NoStringID StringID = 0

// Interner deduplicates strings behind stable IDs. Identifiers are first
// normalized to NFC so that visually identical spellings using different
// Unicode encodings collide during scope registration instead of silently
// shadowing one another.
type Interner struct {
	byID  []string
	index map[string]StringID
}

// NewInterner creates an interner pre-seeded with the empty string at
// NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern inserts s (after NFC normalization) and returns its ID, reusing an
// existing entry if present.
func (in *Interner) Intern(s string) StringID {
	normalized := norm.NFC.String(s)
	if id, ok := in.index[normalized]; ok {
		return id
	}
	id := StringID(len(in.byID))
	in.byID = append(in.byID, normalized)
	in.index[normalized] = id
	return id
}

// Lookup returns the string for id, or false if id is not valid.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup panics on an invalid ID; used where the caller already knows
// the ID came from this interner.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

// Has reports whether id names a stored string.
func (in *Interner) Has(id StringID) bool {
	return int(id) >= 0 && int(id) < len(in.byID)
}

// Len returns the number of distinct strings, including the empty sentinel.
func (in *Interner) Len() int { return len(in.byID) }
