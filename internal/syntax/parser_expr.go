package syntax

import "fmt"

// ----------------------------------------------------------------------------
// Pratt loop

// expression parses a full expression, assignments included.
func (p *parser) expression() Expr {
	return p.parseExpression(precAssignment)
}

// parseExpression parses an expression whose infix operators all bind at
// least as tightly as minPrec. A token with no prefix rule is reported and
// consumed so callers always make progress. A nil result means failure.
func (p *parser) parseExpression(minPrec precedence) Expr {
	tok := p.tok()
	rule := getRule(tok.Kind)
	if rule.prefix == nil {
		p.advance()
		if tok.Kind == _EOF {
			p.errorAtToken(tok, CodeUnexpectedEOF, "Unexpected end of input in expression")
		} else {
			p.errorAtToken(tok, CodeUnexpectedToken, fmt.Sprintf("Unexpected token %s in expression", describe(tok)))
		}
		return nil
	}

	p.advance()
	left := rule.prefix(p, tok)
	for left != nil {
		next := getRule(p.tok().Kind)
		if next.infix == nil || next.prec < minPrec {
			break
		}
		op := p.advance()
		left = next.infix(p, left, op)
	}
	return left
}

// ----------------------------------------------------------------------------
// Prefix rules

func (p *parser) identifier(tok Token) Expr {
	return newIdent(tok)
}

func newIdent(tok Token) *Identifier {
	id := &Identifier{Name: tok.Text()}
	id.span(tok.Pos, tok.End)
	return id
}

// keywordIdent turns a keyword used as a property name into an identifier.
func keywordIdent(tok Token) *Identifier {
	id := newIdent(tok)
	if id.Name == "" {
		id.Name = tok.Kind.String()
	}
	return id
}

func (p *parser) literal(tok Token) Expr {
	lit := &Literal{Value: tok.Value}
	if rv, ok := tok.Value.(RegexpValue); ok {
		lit.Value = nil
		lit.Regex = &rv
	}
	lit.span(tok.Pos, tok.End)
	return lit
}

func (p *parser) thisExpr(tok Token) Expr {
	x := &ThisExpression{}
	x.span(tok.Pos, tok.End)
	return x
}

// softKeyword reinterprets try, catch, finally or from as an identifier.
func (p *parser) softKeyword(tok Token) Expr {
	p.warnAt(tok.Pos, tok.End, CodeKeywordAsIdentifier,
		fmt.Sprintf("'%s' used as identifier", tok.Kind))
	return newIdent(tok)
}

// lexicalError surfaces an ERROR token met in expression position.
func (p *parser) lexicalError(tok Token) Expr {
	p.lexError(tok)
	return nil
}

// grouping parses ( Expression ).
func (p *parser) grouping(tok Token) Expr {
	x := p.expression()
	if x == nil {
		return nil
	}
	if _, ok := p.want(_RParen); !ok {
		return nil
	}
	return x
}

// arrayLit parses [a, , b]. A bare comma is a hole.
func (p *parser) arrayLit(tok Token) Expr {
	a := &ArrayExpression{}
	for !p.at(_RBrack) && !p.at(_EOF) {
		if p.got(_Comma) {
			a.Elements = append(a.Elements, nil)
			continue
		}
		if e := p.expression(); e != nil {
			a.Elements = append(a.Elements, e)
		} else {
			p.synchronize(syncExpression)
		}
		if !p.got(_Comma) {
			break
		}
	}
	if _, ok := p.want(_RBrack); !ok {
		return nil
	}
	a.span(tok.Pos, p.prev().End)
	return a
}

// objectLit parses { key: value, ... }. A missing comma between two
// properties is reported at the end of the first one and parsing resumes
// at the next property without consuming anything. A property that cannot
// start at the current token has that token skipped. A token that can only
// follow the object, such as ';' or a statement keyword, ends it so the
// missing '}' is reported there and statement recovery takes over.
func (p *parser) objectLit(tok Token) Expr {
	o := &ObjectExpression{}
	for !p.at(_RBrace) && !p.at(_EOF) && !p.objectEnds() {
		before := p.cur
		prop := p.property()
		if prop == nil {
			if p.cur == before {
				p.advance()
			}
			continue
		}
		o.Properties = append(o.Properties, prop)
		if p.got(_Comma) || p.at(_RBrace) || p.objectEnds() {
			continue
		}
		p.softErrorAt(prop.End(), prop.End(), CodeExpectedToken, "Expected ',' between object properties")
	}
	if _, ok := p.want(_RBrace); !ok {
		return nil
	}
	o.span(tok.Pos, p.prev().End)
	return o
}

// objectEnds reports whether the current token cannot continue an object
// literal. Keywords followed by ':' are property names.
func (p *parser) objectEnds() bool {
	k := p.tok().Kind
	switch k {
	case _Semi, _RExp, _RStm:
		return true
	case _LBrace, _RBrace:
		return false
	}
	return statementStart[k] && p.peek(1).Kind != _Colon
}

// property parses one object literal entry: name: value, "str": value,
// 1: value, [expr]: value, or shorthand name.
func (p *parser) property() *Property {
	t := p.tok()
	prop := &Property{}

	switch {
	case t.Kind == _LBrack:
		p.advance()
		if prop.Key = p.expression(); prop.Key == nil {
			return nil
		}
		if _, ok := p.want(_RBrack); !ok {
			return nil
		}
		prop.Computed = true

	case t.Kind == _String, t.Kind == _Number, t.Kind == _Double:
		p.advance()
		prop.Key = p.literal(t)

	case t.Kind == _Label, t.Kind.IsKeyword():
		p.advance()
		id := keywordIdent(t)
		prop.Key = id
		if t.Kind == _Label && (p.at(_Comma) || p.at(_RBrace)) {
			prop.Value = id
			prop.Shorthand = true
			prop.span(t.Pos, t.End)
			return prop
		}

	default:
		p.errorExpected("property name")
		return nil
	}

	if _, ok := p.want(_Colon); !ok {
		return nil
	}
	if p.at(_Comma) || p.at(_RBrace) {
		p.errorExpected("property value")
		return nil
	}
	if prop.Value = p.expression(); prop.Value == nil {
		return nil
	}
	prop.span(t.Pos, prop.Value.End())
	return prop
}

// funcExpr parses function [Name](Params) Body.
func (p *parser) funcExpr(tok Token) Expr {
	f := &FunctionExpression{}
	if !p.at(_LParen) {
		if f.ID = p.bindingName("function name"); f.ID == nil {
			return nil
		}
	}
	params, ok := p.params()
	if !ok {
		return nil
	}
	f.Params = params
	if f.Body = p.blockStmt(); f.Body == nil {
		return nil
	}
	f.span(tok.Pos, f.Body.End())
	return f
}

// templateLit parses `chunk ${expr} chunk`.
func (p *parser) templateLit(tok Token) Expr {
	t := &TemplateLiteral{}
	chunk := ""
	for {
		cur := p.tok()
		switch cur.Kind {
		case _TemplateChunk:
			p.advance()
			chunk += cur.Text()
			continue

		case _PlaceholderStart:
			p.advance()
			t.Quasis = append(t.Quasis, chunk)
			chunk = ""
			x := p.expression()
			if x == nil {
				for !p.at(_TemplateEnd) && !p.at(_EOF) {
					p.advance()
				}
				p.got(_TemplateEnd)
				return nil
			}
			t.Expressions = append(t.Expressions, x)
			p.want(_PlaceholderEnd)
			continue

		case _TemplateEnd:
			p.advance()

		case _Error:
			p.advance()
			p.lexError(cur)

		default:
			p.errorExpected("end of template string")
		}
		break
	}
	t.Quasis = append(t.Quasis, chunk)
	t.span(tok.Pos, p.prev().End)
	return t
}

// unary parses ! ~ - + Argument.
func (p *parser) unary(tok Token) Expr {
	arg := p.parseExpression(precUnary)
	if arg == nil {
		return nil
	}
	x := &UnaryExpression{Operator: tok.Kind.String(), Argument: arg}
	x.span(tok.Pos, arg.End())
	return x
}

// prefixUpdate parses ++Argument and --Argument.
func (p *parser) prefixUpdate(tok Token) Expr {
	arg := p.parseExpression(precUnary)
	if arg == nil {
		return nil
	}
	if !isAssignTarget(arg) {
		p.errorAt(arg.Pos(), arg.End(), CodeInvalidAssignmentTarget, "Invalid update target")
		return arg
	}
	x := &UpdateExpression{Operator: tok.Kind.String(), Prefix: true, Argument: arg}
	x.span(tok.Pos, arg.End())
	return x
}

// deleteExpr parses delete Argument.
func (p *parser) deleteExpr(tok Token) Expr {
	arg := p.parseExpression(precUnary)
	if arg == nil {
		return nil
	}
	x := &DeleteExpression{Argument: arg}
	x.span(tok.Pos, arg.End())
	return x
}

// ----------------------------------------------------------------------------
// Infix rules

// binary parses the right operand of a binary operator. ** is right
// associative; everything else is left associative.
func (p *parser) binary(left Expr, op Token) Expr {
	prec := getRule(op.Kind).prec
	if op.Kind != _Pow {
		prec++
	}
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	x := &BinaryExpression{Operator: op.Kind.String(), Left: left, Right: right}
	x.span(left.Pos(), right.End())
	return x
}

// assignment parses the right side of = and the compound assignments.
// An invalid target is reported and the left operand is returned alone.
func (p *parser) assignment(left Expr, op Token) Expr {
	if !isAssignTarget(left) {
		p.errorAt(left.Pos(), left.End(), CodeInvalidAssignmentTarget, "Invalid assignment target")
		p.parseExpression(precAssignment)
		return left
	}
	right := p.parseExpression(precAssignment)
	if right == nil {
		return nil
	}
	x := &AssignmentExpression{Operator: op.Kind.String(), Left: left, Right: right}
	x.span(left.Pos(), right.End())
	return x
}

// conditional parses Test ? Consequent : Alternate.
func (p *parser) conditional(test Expr, op Token) Expr {
	cons := p.parseExpression(precAssignment)
	if cons == nil {
		return nil
	}
	if _, ok := p.want(_Colon); !ok {
		return nil
	}
	alt := p.parseExpression(precAssignment)
	if alt == nil {
		return nil
	}
	x := &ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}
	x.span(test.Pos(), alt.End())
	return x
}

// postfixUpdate parses Argument++ and Argument--.
func (p *parser) postfixUpdate(left Expr, op Token) Expr {
	if !isAssignTarget(left) {
		p.errorAt(left.Pos(), left.End(), CodeInvalidAssignmentTarget, "Invalid update target")
		return left
	}
	x := &UpdateExpression{Operator: op.Kind.String(), Argument: left}
	x.span(left.Pos(), op.End)
	return x
}

// call parses Callee(Arguments).
func (p *parser) call(callee Expr, op Token) Expr {
	return p.finishCall(callee, false)
}

func (p *parser) finishCall(callee Expr, optional bool) Expr {
	x := &CallExpression{Callee: callee, Optional: optional}
	for !p.at(_RParen) && !p.at(_EOF) {
		if a := p.expression(); a != nil {
			x.Arguments = append(x.Arguments, a)
		} else {
			p.synchronize(syncExpression)
		}
		if !p.got(_Comma) {
			break
		}
	}
	p.want(_RParen)
	x.span(callee.Pos(), p.prev().End)
	return x
}

// index parses Object[Property].
func (p *parser) index(obj Expr, op Token) Expr {
	return p.finishIndex(obj, false)
}

func (p *parser) finishIndex(obj Expr, optional bool) Expr {
	prop := p.expression()
	if prop == nil {
		return nil
	}
	if _, ok := p.want(_RBrack); !ok {
		return nil
	}
	x := &MemberExpression{Object: obj, Property: prop, Computed: true, Optional: optional}
	x.span(obj.Pos(), p.prev().End)
	return x
}

// member parses Object.Property.
func (p *parser) member(obj Expr, op Token) Expr {
	return p.finishMember(obj, false)
}

func (p *parser) finishMember(obj Expr, optional bool) Expr {
	name := p.propertyName()
	if name == nil {
		return nil
	}
	x := &MemberExpression{Object: obj, Property: name, Optional: optional}
	x.span(obj.Pos(), name.End())
	return x
}

// optionalChain parses Object?.Property, Object?.[Property] and
// Callee?.(Arguments).
func (p *parser) optionalChain(left Expr, op Token) Expr {
	switch {
	case p.got(_LParen):
		return p.finishCall(left, true)
	case p.got(_LBrack):
		return p.finishIndex(left, true)
	}
	return p.finishMember(left, true)
}

// ----------------------------------------------------------------------------
// Names

// bindingName parses a name being declared. Soft keywords are accepted
// with a warning.
func (p *parser) bindingName(what string) *Identifier {
	t := p.tok()
	switch t.Kind {
	case _Label:
		p.advance()
		return newIdent(t)
	case _Try, _Catch, _Finally, _From:
		p.advance()
		p.warnAt(t.Pos, t.End, CodeKeywordAsIdentifier, fmt.Sprintf("'%s' used as identifier", t.Kind))
		return newIdent(t)
	case _Error:
		p.advance()
		p.lexError(t)
		return nil
	}
	p.errorExpected(what)
	return nil
}

// propertyName parses a name after '.', in import/export lists, or as an
// object key. Keywords are plain names there.
func (p *parser) propertyName() *Identifier {
	t := p.tok()
	switch {
	case t.Kind == _Label:
		p.advance()
		return newIdent(t)
	case t.Kind.IsKeyword():
		p.advance()
		return keywordIdent(t)
	}
	p.errorExpected("property name")
	return nil
}

// isAssignTarget reports whether x may appear on the left of an assignment.
func isAssignTarget(x Expr) bool {
	switch x.(type) {
	case *Identifier, *MemberExpression:
		return true
	}
	return false
}
