package check

import "github.com/you-not-fish/quill/internal/syntax"

// SymbolKind classifies a declared name.
type SymbolKind int

const (
	Let SymbolKind = iota
	Const
	Func
	Param
	Import
	Builtin
	Global
)

var symbolKindNames = [...]string{
	Let:     "let",
	Const:   "const",
	Func:    "func",
	Param:   "param",
	Import:  "import",
	Builtin: "builtin",
	Global:  "global",
}

func (k SymbolKind) String() string {
	if k >= 0 && int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "symbol"
}

// Symbol is a declared name: a variable, function, parameter, import,
// builtin or host global.
type Symbol struct {
	name   string
	kind   SymbolKind
	decl   syntax.Node // declaring identifier; nil for builtins and globals
	parent *Scope

	// Argument count bounds for builtins. max < 0 means variadic.
	min, max int
}

// NewSymbol creates a symbol declared by the identifier id.
func NewSymbol(kind SymbolKind, id *syntax.Identifier) *Symbol {
	return &Symbol{name: id.Name, kind: kind, decl: id}
}

// NewGlobal creates a host-provided global.
func NewGlobal(name string) *Symbol {
	return &Symbol{name: name, kind: Global}
}

// NewBuiltin creates a builtin function accepting min to max arguments.
func NewBuiltin(name string, min, max int) *Symbol {
	return &Symbol{name: name, kind: Builtin, min: min, max: max}
}

func (s *Symbol) Name() string       { return s.name }
func (s *Symbol) Kind() SymbolKind   { return s.kind }
func (s *Symbol) Decl() syntax.Node  { return s.decl }
func (s *Symbol) Parent() *Scope     { return s.parent }
func (s *Symbol) setParent(p *Scope) { s.parent = p }

// carry returns a copy of s for another check. The copy has no scope and
// no declaring node, since that node belongs to an earlier tree.
func (s *Symbol) carry() *Symbol {
	c := *s
	c.decl = nil
	c.parent = nil
	return &c
}

// Pos returns the offset of the declaring identifier, or -1 for
// predeclared symbols.
func (s *Symbol) Pos() int {
	if s.decl == nil {
		return -1
	}
	return s.decl.Pos()
}

// Arity returns the argument count bounds of a builtin.
func (s *Symbol) Arity() (min, max int) {
	return s.min, s.max
}

// Assignable reports whether the symbol may be the target of an
// assignment or update.
func (s *Symbol) Assignable() bool {
	switch s.kind {
	case Const, Import, Builtin:
		return false
	}
	return true
}
