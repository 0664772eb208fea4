package diag

import "github.com/topsmart20/solidity/internal/source"

// Note is a secondary location attached to a diagnostic (e.g. "previous
// declaration here").
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single structured error record (§6 "Downstream
// (produced)"). Order of discovery is preserved by the Bag that holds it.
type Diagnostic struct {
	Kind    Kind
	Message string
	Primary source.Span
	Notes   []Note
	// Fatal marks a diagnostic whose discovery aborted the current pass
	// (§7). A fatal diagnostic is always also an error-severity one.
	Fatal bool
}

// Severity reports the diagnostic's coarse severity.
func (d Diagnostic) Severity() Severity { return d.Kind.Severity() }

// WithNote appends a secondary location and returns the diagnostic for
// chaining.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: msg})
	return d
}
