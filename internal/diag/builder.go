package diag

import (
	"fmt"

	"github.com/topsmart20/solidity/internal/source"
)

// Declaration constructs a DeclarationError diagnostic at span.
func Declaration(span source.Span, format string, args ...any) Diagnostic {
	return newf(DeclarationError, span, format, args...)
}

// Type constructs a TypeError diagnostic at span.
func Type(span source.Span, format string, args ...any) Diagnostic {
	return newf(TypeError, span, format, args...)
}

// Parser constructs a ParserError diagnostic at span (structural defects
// found during semantic analysis, e.g. recursive structs).
func Parser(span source.Span, format string, args ...any) Diagnostic {
	return newf(ParserError, span, format, args...)
}

// Warn constructs a Warning diagnostic at span.
func Warn(span source.Span, format string, args ...any) Diagnostic {
	return newf(Warning, span, format, args...)
}

// Fatal marks d as fatal (its discovery aborts the current pass) and
// returns it for chaining.
func Fatal(d Diagnostic) Diagnostic {
	d.Fatal = true
	return d
}

// Report is a convenience for Reporter.Report(d) that tolerates a nil
// reporter.
func Report(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	r.Report(d)
}

func newf(kind Kind, span source.Span, format string, args ...any) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Primary: span,
		Message: fmt.Sprintf(format, args...),
	}
}
