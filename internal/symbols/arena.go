package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/topsmart20/solidity/internal/ast"
	"github.com/topsmart20/solidity/internal/source"
)

// Scopes stores every allocated scope in a compact, 1-based arena, the
// same discipline internal/ast's Arena uses for AST nodes.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with an optional capacity hint.
func NewScopes(capacityHint uint32) *Scopes {
	if capacityHint == 0 {
		capacityHint = 16
	}
	return &Scopes{data: make([]Scope, 1, capacityHint+1)}
}

// New allocates a scope as a child of parent (NoScopeID for the root) and
// returns its ID.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ast.DeclID, span source.Span) ScopeID {
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols: scope arena overflow: %w", err))
	}
	id := ScopeID(n)
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID][]ast.DeclID),
	})
	if parent.IsValid() {
		if p := s.Get(parent); p != nil {
			p.Children = append(p.Children, id)
		}
	}
	return id
}

// Get returns the scope for id, or nil if id is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports the number of allocated scopes, excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }
