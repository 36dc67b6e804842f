package check

import "github.com/you-not-fish/quill/internal/syntax"

// stmts checks a statement list in the current scope, hoisting its
// function declarations first.
func (c *Checker) stmts(list []syntax.Stmt) {
	c.hoist(list)
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case nil:
		return

	case *syntax.EmptyStatement, *syntax.TextStatement:
		// nothing to do

	case *syntax.ExpressionStatement:
		c.expr(s.Expression)

	case *syntax.OutputStatement:
		c.expr(s.Expression)

	case *syntax.BlockStatement:
		c.openScope(s, "block")
		c.stmts(s.Body)
		c.closeScope()

	case *syntax.VariableDeclaration:
		c.varDecl(s, false)

	case *syntax.FunctionDeclaration:
		c.funcBody(s, s.Params, s.Body, "function "+funcName(s.ID))

	case *syntax.IfStatement:
		c.expr(s.Test)
		c.stmt(s.Consequent)
		c.stmt(s.Alternate)

	case *syntax.WhileStatement:
		c.expr(s.Test)
		c.loopBody(s.Body)

	case *syntax.ForStatement:
		c.forStmt(s)

	case *syntax.ForInStatement:
		c.forInStmt(s)

	case *syntax.ReturnStatement:
		if c.funcDepth == 0 {
			c.errorf(s, CodeMisplacedControl, "return outside function")
		}
		c.expr(s.Argument)

	case *syntax.BreakStatement:
		if c.loopDepth == 0 && c.switchDepth == 0 {
			c.errorf(s, CodeMisplacedControl, "break outside loop or switch")
		}

	case *syntax.ContinueStatement:
		if c.loopDepth == 0 {
			c.errorf(s, CodeMisplacedControl, "continue outside loop")
		}

	case *syntax.TryStatement:
		c.stmt(s.Block)
		if h := s.Handler; h != nil {
			c.openScope(h, "catch")
			if h.Param != nil {
				c.declare(Let, h.Param)
			}
			c.stmts(h.Body.Body)
			c.closeScope()
		}
		if s.Finalizer != nil {
			c.stmt(s.Finalizer)
		}

	case *syntax.SwitchStatement:
		c.switchStmt(s)

	case *syntax.ImportDeclaration:
		for _, spec := range s.Specifiers {
			switch spec := spec.(type) {
			case *syntax.ImportSpecifier:
				c.declare(Import, spec.Local)
			case *syntax.ImportDefaultSpecifier:
				c.declare(Import, spec.Local)
			case *syntax.ImportNamespaceSpecifier:
				c.declare(Import, spec.Local)
			}
		}

	case *syntax.ExportNamedDeclaration:
		if s.Declaration != nil {
			c.stmt(s.Declaration)
		}
		if s.Source == nil {
			for _, spec := range s.Specifiers {
				c.resolve(spec.Local)
			}
		}

	case *syntax.ExportDefaultDeclaration:
		switch d := s.Declaration.(type) {
		case syntax.Stmt:
			c.stmt(d)
		case syntax.Expr:
			c.expr(d)
		}
	}
}

// varDecl checks a let or const declaration. Each name becomes visible
// after its own initializer. In a for-in head the initializer is absent
// by construction.
func (c *Checker) varDecl(d *syntax.VariableDeclaration, forIn bool) {
	kind := Let
	if d.Kind == "const" {
		kind = Const
	}
	for _, v := range d.Declarations {
		if v.Init != nil {
			c.expr(v.Init)
		} else if kind == Const && !forIn {
			c.errorf(v, CodeConstInit, "missing initializer in const declaration of %s", v.ID.Name)
		}
		c.declare(kind, v.ID)
	}
}

// funcBody checks a function's parameters and body in a new scope.
// The loop and switch context of the enclosing code does not extend into
// the function.
func (c *Checker) funcBody(n syntax.Node, params []*syntax.Identifier, body *syntax.BlockStatement, comment string) {
	if body == nil {
		return
	}
	c.openScope(n, comment)
	for _, p := range params {
		c.declare(Param, p)
	}

	loops, switches := c.loopDepth, c.switchDepth
	c.funcDepth++
	c.loopDepth, c.switchDepth = 0, 0

	c.stmts(body.Body)

	c.funcDepth--
	c.loopDepth, c.switchDepth = loops, switches
	c.closeScope()
}

func funcName(id *syntax.Identifier) string {
	if id == nil {
		return "<anonymous>"
	}
	return id.Name
}

// loopBody checks the body of a loop.
func (c *Checker) loopBody(body syntax.Stmt) {
	c.loopDepth++
	c.stmt(body)
	c.loopDepth--
}

func (c *Checker) forStmt(s *syntax.ForStatement) {
	c.openScope(s, "for")
	switch init := s.Init.(type) {
	case *syntax.VariableDeclaration:
		c.varDecl(init, false)
	case syntax.Expr:
		c.expr(init)
	}
	c.expr(s.Test)
	c.expr(s.Update)
	c.loopBody(s.Body)
	c.closeScope()
}

func (c *Checker) forInStmt(s *syntax.ForInStatement) {
	// The iterated value is evaluated outside the loop variable's scope.
	c.expr(s.Right)

	c.openScope(s, "for-in")
	switch left := s.Left.(type) {
	case *syntax.VariableDeclaration:
		c.varDecl(left, true)
	case syntax.Expr:
		c.assignTarget(left)
	}
	c.loopBody(s.Body)
	c.closeScope()
}

func (c *Checker) switchStmt(s *syntax.SwitchStatement) {
	c.expr(s.Discriminant)

	c.openScope(s, "switch")
	var all []syntax.Stmt
	for _, cc := range s.Cases {
		all = append(all, cc.Consequent...)
	}
	c.hoist(all)

	c.switchDepth++
	for _, cc := range s.Cases {
		c.expr(cc.Test)
		for _, st := range cc.Consequent {
			c.stmt(st)
		}
	}
	c.switchDepth--
	c.closeScope()
}
