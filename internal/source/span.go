package source

import "fmt"

// Span is a half-open byte range [Start, End) within a file. The core never
// re-slices source text; spans exist purely to anchor diagnostics.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the number of bytes covered.
func (s Span) Len() uint32 { return s.End - s.Start }

// String renders a compact "file:start-end" form for debugging.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span enclosing both s and other, provided they
// share a file; otherwise s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
