package check

import (
	"log/slog"

	"github.com/you-not-fish/quill/internal/syntax"
)

// Checker walks a program and reports semantic problems.
type Checker struct {
	conf   *Config
	info   *Info
	logger *slog.Logger

	disabled map[Code]bool

	// Scopes
	globals *Scope // host globals, child of Universe
	top     *Scope // program scope
	scope   *Scope // current scope

	// Control-flow context, reset at function boundaries
	funcDepth   int
	loopDepth   int
	switchDepth int

	// Error tracking
	errors   int
	warnings int
	first    *Error
}

// checkProgram checks the whole program.
func (c *Checker) checkProgram(prog *syntax.Program) {
	c.globals = NewScope(Universe, prog.Pos(), prog.End(), "globals")
	for _, sym := range c.conf.Predeclared {
		c.globals.Insert(sym.carry())
	}
	for _, name := range c.conf.Globals {
		c.globals.Insert(NewGlobal(name))
	}

	c.scope = c.globals
	c.top = c.openScope(prog, "program")
	c.stmts(prog.Body)
	c.closeScope()
}

// openScope creates a new scope as a child of the current scope.
func (c *Checker) openScope(n syntax.Node, comment string) *Scope {
	s := NewScope(c.scope, n.Pos(), n.End(), comment)
	c.scope = s
	if c.info != nil {
		c.info.Scopes[n] = s
	}
	return s
}

// closeScope returns to the parent scope.
func (c *Checker) closeScope() {
	c.scope = c.scope.Parent()
}

// resolve looks up id in the current scope chain and records the use.
// An unknown name is reported.
func (c *Checker) resolve(id *syntax.Identifier) *Symbol {
	sym, _ := c.scope.LookupParent(id.Name)
	if sym == nil {
		c.errorf(id, CodeUndefined, "undefined: %s", id.Name)
		return nil
	}
	if c.info != nil {
		c.info.Uses[id] = sym
	}
	return sym
}

// declare declares a symbol for id in the current scope.
// It reports redeclarations and, depending on the configuration, names
// hiding an outer declaration.
func (c *Checker) declare(kind SymbolKind, id *syntax.Identifier) *Symbol {
	if id == nil {
		return nil
	}
	sym := NewSymbol(kind, id)
	if existing := c.scope.Insert(sym); existing != nil {
		if kind == Param && existing.kind == Param {
			c.errorf(id, CodeRedeclared, "duplicate parameter %s", id.Name)
		} else {
			c.errorf(id, CodeRedeclared, "%s redeclared in this scope", id.Name)
		}
		return existing
	}
	if c.info != nil {
		c.info.Defs[id] = sym
	}
	c.checkShadow(id)
	return sym
}

// checkShadow reports a declaration of id that hides an outer one.
func (c *Checker) checkShadow(id *syntax.Identifier) {
	outer, scope := c.scope.Parent().LookupParent(id.Name)
	switch {
	case outer == nil:
	case scope == Universe:
		c.warnf(id, CodeBuiltinShadowed, "declaration of %s shadows a builtin", id.Name)
	case c.conf.ShadowWarnings:
		c.warnf(id, CodeShadowed, "declaration of %s shadows an outer declaration", id.Name)
	}
}

// hoist declares the function declarations of list in the current scope
// before any statement of the list is checked.
func (c *Checker) hoist(list []syntax.Stmt) {
	for _, s := range list {
		if f := hoistedFunc(s); f != nil && f.ID != nil {
			c.declare(Func, f.ID)
		}
	}
}

// hoistedFunc returns the function declared by s, looking through export
// wrappers.
func hoistedFunc(s syntax.Stmt) *syntax.FunctionDeclaration {
	switch s := s.(type) {
	case *syntax.FunctionDeclaration:
		return s
	case *syntax.ExportNamedDeclaration:
		f, _ := s.Declaration.(*syntax.FunctionDeclaration)
		return f
	case *syntax.ExportDefaultDeclaration:
		f, _ := s.Declaration.(*syntax.FunctionDeclaration)
		return f
	}
	return nil
}
