package syntax

// ----------------------------------------------------------------------------
// Program

// program parses statements into prog until end of input. Statements are
// appended as they complete so a recovered panic still leaves them in place.
func (p *parser) program(prog *Program) {
	first := p.tok()
	prog.pos = first.Pos
	for !p.at(_EOF) {
		p.statementInto(&prog.Body)
		prog.end = p.prev().End
	}
	prog.span(first.Pos, p.tok().End)
}

// statementInto parses one statement, appends it to list if it succeeded,
// and resynchronizes after errors. It always makes progress.
func (p *parser) statementInto(list *[]Stmt) {
	before := p.cur
	if s := p.statement(); s != nil {
		*list = append(*list, s)
	}
	if p.panicMode {
		p.synchronize(syncStatement)
	}
	if p.cur == before && !p.at(_EOF) {
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Statements

// statement parses a single statement. It returns nil if nothing usable
// was parsed; the error has then been reported.
func (p *parser) statement() Stmt {
	t := p.tok()
	switch t.Kind {
	case _Error:
		p.advance()
		p.lexError(t)
		return nil

	case _LStm, _RStm:
		// Statement block delimiters only separate statements.
		p.advance()
		return nil

	case _Text:
		p.advance()
		s := &TextStatement{Value: t.Text()}
		s.span(t.Pos, t.End)
		return s

	case _LExp:
		return p.outputStmt()

	case _Semi:
		p.advance()
		s := &EmptyStatement{}
		s.span(t.Pos, t.End)
		return s

	case _LBrace:
		if b := p.blockStmt(); b != nil {
			return b
		}
		return nil

	case _Local, _Const:
		d := p.varDecl()
		if d == nil {
			return nil
		}
		p.semicolon()
		d.span(d.Pos(), p.prev().End)
		return d

	case _Func:
		return p.funcDecl()

	case _If:
		return p.ifStmt()

	case _While:
		return p.whileStmt()

	case _For:
		return p.forStmt()

	case _Return:
		return p.returnStmt()

	case _Break, _Continue:
		return p.branchStmt()

	case _Try:
		if p.peek(1).Kind == _LBrace {
			return p.tryStmt()
		}

	case _Switch:
		return p.switchStmt()

	case _Import:
		return p.importDecl()

	case _Export:
		return p.exportDecl()

	case _Else, _Case, _Default, _In:
		p.advance()
		p.errorAtToken(t, CodeUnexpectedToken, "Unexpected '"+t.Kind.String()+"'")
		return nil
	}

	return p.exprStmt()
}

// body parses the statement governed by a control keyword. Template
// statement-block delimiters before it are skipped.
func (p *parser) body() Stmt {
	for p.at(_LStm) || p.at(_RStm) {
		p.advance()
	}
	return p.statement()
}

// semicolon consumes the ';' ending a statement. A missing ';' is reported
// without entering panic mode. '%}' and '}}' end statements implicitly.
func (p *parser) semicolon() {
	if p.got(_Semi) || p.at(_RStm) || p.at(_RExp) {
		return
	}
	end := p.prev().End
	p.softErrorAt(end, end, CodeMissingSemicolon, "Expected ';' after statement")
}

// exprStmt parses Expression ';'.
func (p *parser) exprStmt() Stmt {
	start := p.tok().Pos
	x := p.expression()
	if x == nil {
		return nil
	}
	p.semicolon()
	s := &ExpressionStatement{Expression: x}
	s.span(start, p.prev().End)
	return s
}

// outputStmt parses {{ Expression }}.
func (p *parser) outputStmt() Stmt {
	open := p.advance()
	if p.at(_RExp) {
		p.errorAtToken(p.tok(), CodeUnexpectedToken, "Expected expression in output block")
		p.advance()
		return nil
	}
	x := p.expression()
	if x == nil {
		return nil
	}
	if _, ok := p.want(_RExp); !ok {
		return nil
	}
	s := &OutputStatement{Expression: x}
	s.span(open.Pos, p.prev().End)
	return s
}

// blockStmt parses { Statements }. A block left open at end of input is
// reported at its opening brace.
func (p *parser) blockStmt() *BlockStatement {
	open, ok := p.want(_LBrace)
	if !ok {
		return nil
	}

	b := &BlockStatement{}
	for !p.at(_RBrace) && !p.at(_EOF) {
		p.statementInto(&b.Body)
	}
	if !p.got(_RBrace) {
		p.errorAtToken(open, CodeUnterminatedBlock, "Expected '}' to close block")
	}
	b.span(open.Pos, p.prev().End)
	return b
}

// varDecl parses let|local|const Declarators without the trailing ';'.
func (p *parser) varDecl() *VariableDeclaration {
	kw := p.advance()
	d := &VariableDeclaration{Kind: "let"}
	if kw.Kind == _Const {
		d.Kind = "const"
	}

	for {
		id := p.bindingName("variable name")
		if id == nil {
			return nil
		}
		v := &VariableDeclarator{ID: id}
		if p.got(_Assign) {
			if v.Init = p.expression(); v.Init == nil {
				return nil
			}
		}
		v.span(id.Pos(), p.prev().End)
		d.Declarations = append(d.Declarations, v)
		if !p.got(_Comma) {
			break
		}
	}

	d.span(kw.Pos, p.prev().End)
	return d
}

// funcDecl parses function Name(Params) Body. A missing name is reported,
// and parsing continues with the parameters.
func (p *parser) funcDecl() Stmt {
	kw := p.advance()
	f := &FunctionDeclaration{}
	if p.at(_LParen) {
		p.softErrorAt(kw.Pos, kw.End, CodeMissingFunctionName, "Function declarations require a name")
	} else if f.ID = p.bindingName("function name"); f.ID == nil {
		return nil
	}

	params, ok := p.params()
	if !ok {
		return nil
	}
	f.Params = params
	if f.Body = p.blockStmt(); f.Body == nil {
		return nil
	}
	f.span(kw.Pos, f.Body.End())
	return f
}

// params parses (Name, Name, ...).
func (p *parser) params() ([]*Identifier, bool) {
	if _, ok := p.want(_LParen); !ok {
		return nil, false
	}
	var list []*Identifier
	for !p.at(_RParen) && !p.at(_EOF) {
		id := p.bindingName("parameter name")
		if id == nil {
			return nil, false
		}
		list = append(list, id)
		if !p.got(_Comma) {
			break
		}
	}
	if _, ok := p.want(_RParen); !ok {
		return nil, false
	}
	return list, true
}

// ifStmt parses if (Test) Consequent [else Alternate].
func (p *parser) ifStmt() Stmt {
	kw := p.advance()
	test := p.parenExpr()
	if test == nil {
		return nil
	}
	s := &IfStatement{Test: test}
	if s.Consequent = p.body(); s.Consequent == nil {
		return nil
	}
	if p.got(_Else) {
		if s.Alternate = p.body(); s.Alternate == nil {
			return nil
		}
	}
	s.span(kw.Pos, p.prev().End)
	return s
}

// whileStmt parses while (Test) Body.
func (p *parser) whileStmt() Stmt {
	kw := p.advance()
	test := p.parenExpr()
	if test == nil {
		return nil
	}
	s := &WhileStatement{Test: test}
	if s.Body = p.body(); s.Body == nil {
		return nil
	}
	s.span(kw.Pos, p.prev().End)
	return s
}

// parenExpr parses ( Expression ).
func (p *parser) parenExpr() Expr {
	if _, ok := p.want(_LParen); !ok {
		return nil
	}
	x := p.expression()
	if x == nil {
		return nil
	}
	if _, ok := p.want(_RParen); !ok {
		return nil
	}
	return x
}

// forStmt parses both for (Left in Right) Body and the three-clause form.
// The clause list is read speculatively first; if no 'in' follows, the
// cursor and any diagnostics are rewound and the classic form is parsed.
func (p *parser) forStmt() Stmt {
	kw := p.advance()
	if _, ok := p.want(_LParen); !ok {
		return nil
	}

	var init Node
	switch {
	case p.at(_Local), p.at(_Const):
		cp := p.checkpoint()
		d := p.varDecl()
		if d != nil && len(d.Declarations) == 1 && d.Declarations[0].Init == nil && p.at(_In) {
			return p.forIn(kw, d)
		}
		p.restore(cp)
		if d = p.varDecl(); d == nil {
			return nil
		}
		init = d

	case !p.at(_Semi):
		cp := p.checkpoint()
		x := p.expression()
		if x != nil && isAssignTarget(x) && p.at(_In) {
			return p.forIn(kw, x)
		}
		p.restore(cp)
		x = p.expression()
		if x == nil {
			return nil
		}
		init = x
	}

	s := &ForStatement{Init: init}
	if _, ok := p.want(_Semi); !ok {
		return nil
	}
	if !p.at(_Semi) {
		if s.Test = p.expression(); s.Test == nil {
			return nil
		}
	}
	if _, ok := p.want(_Semi); !ok {
		return nil
	}
	if !p.at(_RParen) {
		if s.Update = p.expression(); s.Update == nil {
			return nil
		}
	}
	if _, ok := p.want(_RParen); !ok {
		return nil
	}
	if s.Body = p.body(); s.Body == nil {
		return nil
	}
	s.span(kw.Pos, p.prev().End)
	return s
}

// forIn finishes a for-in statement after its left side; the current
// token is 'in'.
func (p *parser) forIn(kw Token, left Node) Stmt {
	p.advance() // in
	s := &ForInStatement{Left: left}
	if s.Right = p.expression(); s.Right == nil {
		return nil
	}
	if _, ok := p.want(_RParen); !ok {
		return nil
	}
	if s.Body = p.body(); s.Body == nil {
		return nil
	}
	s.span(kw.Pos, p.prev().End)
	return s
}

// returnStmt parses return [Argument] ';'.
func (p *parser) returnStmt() Stmt {
	kw := p.advance()
	s := &ReturnStatement{}
	switch p.tok().Kind {
	case _Semi, _RBrace, _EOF, _RStm:
	default:
		if s.Argument = p.expression(); s.Argument == nil {
			return nil
		}
	}
	p.semicolon()
	s.span(kw.Pos, p.prev().End)
	return s
}

// branchStmt parses break ';' and continue ';'.
func (p *parser) branchStmt() Stmt {
	kw := p.advance()
	p.semicolon()
	var s Stmt
	if kw.Kind == _Break {
		b := &BreakStatement{}
		b.span(kw.Pos, p.prev().End)
		s = b
	} else {
		c := &ContinueStatement{}
		c.span(kw.Pos, p.prev().End)
		s = c
	}
	return s
}

// tryStmt parses try Block [catch [(Param)] Block] [finally Block].
// At least one handler is required.
func (p *parser) tryStmt() Stmt {
	kw := p.advance()
	s := &TryStatement{}
	if s.Block = p.blockStmt(); s.Block == nil {
		return nil
	}

	if p.at(_Catch) {
		c := p.advance()
		h := &CatchClause{}
		if p.got(_LParen) {
			if h.Param = p.bindingName("catch parameter"); h.Param == nil {
				return nil
			}
			if _, ok := p.want(_RParen); !ok {
				return nil
			}
		}
		if h.Body = p.blockStmt(); h.Body == nil {
			return nil
		}
		h.span(c.Pos, h.Body.End())
		s.Handler = h
	}

	if p.got(_Finally) {
		if s.Finalizer = p.blockStmt(); s.Finalizer == nil {
			return nil
		}
	}

	if s.Handler == nil && s.Finalizer == nil {
		p.softErrorAt(kw.Pos, kw.End, CodeMissingHandler, "Missing catch or finally after try")
	}
	s.span(kw.Pos, p.prev().End)
	return s
}

// switchStmt parses switch (Discriminant) { case X: ... default: ... }.
func (p *parser) switchStmt() Stmt {
	kw := p.advance()
	disc := p.parenExpr()
	if disc == nil {
		return nil
	}
	open, ok := p.want(_LBrace)
	if !ok {
		return nil
	}

	s := &SwitchStatement{Discriminant: disc}
	for !p.at(_RBrace) && !p.at(_EOF) {
		t := p.tok()
		if t.Kind != _Case && t.Kind != _Default {
			if t.Kind == _LStm || t.Kind == _RStm {
				p.advance()
				continue
			}
			p.errorAtToken(t, CodeUnexpectedToken, "Expected 'case' or 'default' in switch body")
			var discard []Stmt
			p.statementInto(&discard)
			continue
		}

		p.advance()
		c := &SwitchCase{}
		if t.Kind == _Case {
			if c.Test = p.expression(); c.Test == nil {
				p.synchronize(syncStatement)
				continue
			}
		}
		if _, ok := p.want(_Colon); !ok {
			p.synchronize(syncStatement)
		}
		for !p.at(_Case) && !p.at(_Default) && !p.at(_RBrace) && !p.at(_EOF) {
			p.statementInto(&c.Consequent)
		}
		c.span(t.Pos, p.prev().End)
		s.Cases = append(s.Cases, c)
	}

	if !p.got(_RBrace) {
		p.errorAtToken(open, CodeUnterminatedBlock, "Expected '}' to close switch body")
	}
	s.span(kw.Pos, p.prev().End)
	return s
}

// ----------------------------------------------------------------------------
// Modules

// importDecl parses the import forms:
//
//	import "m";
//	import d from "m";
//	import * as ns from "m";
//	import { a, b as c } from "m";
//	import d, { a } from "m";
func (p *parser) importDecl() Stmt {
	kw := p.advance()
	s := &ImportDeclaration{}

	if !p.at(_String) {
		more := true
		if p.at(_Label) {
			id := p.bindingName("import name")
			spec := &ImportDefaultSpecifier{Local: id}
			spec.span(id.Pos(), id.End())
			s.Specifiers = append(s.Specifiers, spec)
			more = p.got(_Comma)
		}

		if more && !p.importClause(s) {
			return nil
		}
		if _, ok := p.want(_From); !ok {
			return nil
		}
	}

	if s.Source = p.moduleSource(); s.Source == nil {
		return nil
	}
	p.semicolon()
	s.span(kw.Pos, p.prev().End)
	return s
}

// importClause parses the namespace or braced part of an import.
func (p *parser) importClause(s *ImportDeclaration) bool {
	switch {
	case p.at(_Mul):
		star := p.advance()
		if !p.contextual("as") {
			return false
		}
		id := p.bindingName("namespace name")
		if id == nil {
			return false
		}
		spec := &ImportNamespaceSpecifier{Local: id}
		spec.span(star.Pos, id.End())
		s.Specifiers = append(s.Specifiers, spec)

	case p.at(_LBrace):
		p.advance()
		for !p.at(_RBrace) && !p.at(_EOF) {
			imported := p.propertyName()
			if imported == nil {
				return false
			}
			spec := &ImportSpecifier{Imported: imported, Local: imported}
			if p.atContextual("as") {
				p.advance()
				if spec.Local = p.bindingName("import name"); spec.Local == nil {
					return false
				}
			}
			spec.span(imported.Pos(), spec.Local.End())
			s.Specifiers = append(s.Specifiers, spec)
			if !p.got(_Comma) {
				break
			}
		}
		if _, ok := p.want(_RBrace); !ok {
			return false
		}

	default:
		p.errorExpected("import specifier")
		return false
	}
	return true
}

// exportDecl parses the export forms:
//
//	export let x = 1;
//	export function f() {}
//	export { a, b as c } [from "m"];
//	export default Expression;
func (p *parser) exportDecl() Stmt {
	kw := p.advance()

	if p.got(_Default) {
		s := &ExportDefaultDeclaration{}
		if p.at(_Func) && p.peek(1).Kind == _Label {
			d := p.funcDecl()
			if d == nil {
				return nil
			}
			s.Declaration = d
		} else {
			x := p.expression()
			if x == nil {
				return nil
			}
			if _, ok := x.(*FunctionExpression); !ok {
				p.semicolon()
			}
			s.Declaration = x
		}
		s.span(kw.Pos, p.prev().End)
		return s
	}

	s := &ExportNamedDeclaration{}
	switch p.tok().Kind {
	case _Local, _Const:
		d := p.varDecl()
		if d == nil {
			return nil
		}
		p.semicolon()
		d.span(d.Pos(), p.prev().End)
		s.Declaration = d

	case _Func:
		d := p.funcDecl()
		if d == nil {
			return nil
		}
		s.Declaration = d

	case _LBrace:
		p.advance()
		for !p.at(_RBrace) && !p.at(_EOF) {
			local := p.propertyName()
			if local == nil {
				return nil
			}
			spec := &ExportSpecifier{Local: local, Exported: local}
			if p.atContextual("as") {
				p.advance()
				if spec.Exported = p.propertyName(); spec.Exported == nil {
					return nil
				}
			}
			spec.span(local.Pos(), spec.Exported.End())
			s.Specifiers = append(s.Specifiers, spec)
			if !p.got(_Comma) {
				break
			}
		}
		if _, ok := p.want(_RBrace); !ok {
			return nil
		}
		if p.got(_From) {
			if s.Source = p.moduleSource(); s.Source == nil {
				return nil
			}
		}
		p.semicolon()

	default:
		p.errorExpected("declaration or export list")
		return nil
	}

	s.span(kw.Pos, p.prev().End)
	return s
}

// moduleSource parses the string naming a module.
func (p *parser) moduleSource() *Literal {
	t, ok := p.want(_String)
	if !ok {
		return nil
	}
	lit := &Literal{Value: t.Text()}
	lit.span(t.Pos, t.End)
	return lit
}

// atContextual reports whether the current token is the identifier name.
func (p *parser) atContextual(name string) bool {
	return p.at(_Label) && p.tok().Text() == name
}

// contextual consumes the identifier name or reports it missing.
func (p *parser) contextual(name string) bool {
	if p.atContextual(name) {
		p.advance()
		return true
	}
	p.errorExpected("'" + name + "'")
	return false
}
