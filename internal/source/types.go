// Package source provides file identity, byte-offset spans, and string
// interning shared by the AST, symbol table, and diagnostics packages.
package source

// FileID uniquely identifies a source file the upstream parser handed us.
// The core never reads file contents itself; it only carries the ID around
// for diagnostics.
type FileID uint32

// NoFileID marks the absence of a file reference.
const NoFileID FileID = 0

// IsValid reports whether the ID refers to a real file.
func (id FileID) IsValid() bool { return id != NoFileID }
