package check

import (
	"fmt"
	"sort"
	"strings"
)

// Scope represents a lexical scope.
// Scopes form a tree starting from the Universe scope.
type Scope struct {
	parent   *Scope
	children []*Scope
	elems    map[string]*Symbol
	pos, end int
	comment  string // debugging comment (e.g., "function f", "block")
}

// NewScope creates a new scope with the given parent.
// Universe is shared by every check and does not record its children.
func NewScope(parent *Scope, pos, end int, comment string) *Scope {
	s := &Scope{
		parent:  parent,
		elems:   make(map[string]*Symbol),
		pos:     pos,
		end:     end,
		comment: comment,
	}
	if parent != nil && parent != Universe {
		parent.children = append(parent.children, s)
	}
	return s
}

// Parent returns the parent scope, or nil for the Universe scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Children returns the list of child scopes.
func (s *Scope) Children() []*Scope {
	return s.children
}

// Pos returns the start offset of the scope in source.
func (s *Scope) Pos() int {
	return s.pos
}

// End returns the end offset of the scope in source.
func (s *Scope) End() int {
	return s.end
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// Lookup returns the symbol with the given name in this scope only.
func (s *Scope) Lookup(name string) *Symbol {
	return s.elems[name]
}

// LookupParent returns the symbol with the given name by searching from
// the current scope up through all parent scopes, and the scope in which
// it was found. It returns (nil, nil) if the name is not declared.
func (s *Scope) LookupParent(name string) (*Symbol, *Scope) {
	for scope := s; scope != nil; scope = scope.parent {
		if sym := scope.elems[name]; sym != nil {
			return sym, scope
		}
	}
	return nil, nil
}

// Insert inserts a symbol into the scope.
// If a symbol with the same name already exists, Insert returns it and
// leaves the scope unchanged. Otherwise, it returns nil.
func (s *Scope) Insert(sym *Symbol) *Symbol {
	if existing := s.elems[sym.name]; existing != nil {
		return existing
	}
	s.elems[sym.name] = sym
	sym.setParent(s)
	return nil
}

// Names returns the names of all symbols in the scope, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of symbols in the scope.
func (s *Scope) Len() int {
	return len(s.elems)
}

// String returns a string representation of the scope tree for debugging.
func (s *Scope) String() string {
	var buf strings.Builder
	s.writeTo(&buf, 0)
	return buf.String()
}

func (s *Scope) writeTo(buf *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%sscope %s {\n", prefix, s.comment)
	for _, name := range s.Names() {
		fmt.Fprintf(buf, "%s  %s: %s\n", prefix, name, s.elems[name].kind)
	}
	for _, child := range s.children {
		child.writeTo(buf, indent+1)
	}
	fmt.Fprintf(buf, "%s}\n", prefix)
}
