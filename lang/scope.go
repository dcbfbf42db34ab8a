package lang

import (
	"maps"
	"slices"
)

// Scope is a mapping from names to values with an optional parent.
//
// Lookups walk the parent chain from innermost to outermost; the first match
// wins. Writes always land in the local mapping, so assigning to a name that
// is bound only in an outer scope shadows it rather than updating it.
//
// A Scope is not safe for concurrent use. [Interpreter] serializes access to
// the scopes it owns.
type Scope struct {
	parent *Scope
	vars   map[string]Value
}

// NewScope returns an empty scope whose lookups fall back to parent.
// A nil parent makes a root (global) scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		vars:   make(map[string]Value),
	}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Lookup returns the value bound to name in the nearest scope of the chain
// that binds it.
func (s *Scope) Lookup(name string) (Value, bool) {
	for e := s; e != nil; e = e.parent {
		if v, ok := e.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// LookupLocal returns the value bound to name in s only.
func (s *Scope) LookupLocal(name string) (Value, bool) {
	v, ok := s.vars[name]

	return v, ok
}

// Define binds name to v in the local mapping of s, replacing any existing
// local binding. Parent scopes are never modified.
func (s *Scope) Define(name string, v Value) {
	s.vars[name] = v
}

// Names returns every name visible from s in sorted order. A name bound at
// several levels appears once.
func (s *Scope) Names() []string {
	seen := make(map[string]struct{})

	for e := s; e != nil; e = e.parent {
		for name := range e.vars {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Depth returns the number of scopes in the chain above s.
func (s *Scope) Depth() int {
	n := 0
	for e := s.parent; e != nil; e = e.parent {
		n++
	}

	return n
}
