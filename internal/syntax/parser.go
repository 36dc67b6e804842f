package syntax

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// DefaultMaxErrors is the error limit used when WithMaxErrors is not given.
const DefaultMaxErrors = 100

// Result is the outcome of a parse. AST is never nil.
type Result struct {
	AST      *Program
	Errors   []*ParseError
	Warnings []*ParseError

	eof int // offset of the EOF token
}

// Incomplete reports whether the input looks cut off rather than wrong:
// some error is anchored at end of input or is an unterminated construct.
func (r *Result) Incomplete() bool {
	for _, e := range r.Errors {
		switch {
		case e.Code == CodeUnterminatedBlock, e.Code == CodeUnexpectedEOF:
			return true
		case e.Code == CodeLexical && e.End >= r.eof && strings.HasPrefix(e.Msg, "Unterminated"):
			return true
		case e.Code != CodeMissingSemicolon && e.Start >= r.eof:
			return true
		}
	}
	return false
}

// HasErrors reports whether the parse produced any error.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// An Option configures a parse.
type Option func(*parser)

// WithSource supplies the source text the tokens came from. Diagnostic
// line and column numbers are then computed from byte offsets.
func WithSource(src string) Option {
	return func(p *parser) { p.lines = NewLineMap(src) }
}

// WithMaxErrors stops parsing after n errors. Zero means no limit.
func WithMaxErrors(n int) Option {
	return func(p *parser) { p.maxErrors = n }
}

// WithLogger sets the logger that receives parse debug records.
func WithLogger(l *slog.Logger) Option {
	return func(p *parser) {
		if l != nil {
			p.logger = l
		}
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// parser holds the state of one parse.
type parser struct {
	toks []Token
	cur  int

	lines  *LineMap
	logger *slog.Logger

	errors    []*ParseError
	warnings  []*ParseError
	panicMode bool // suppress errors until the next synchronization point
	maxErrors int
	abort     bool // error limit reached
}

func newParser(tokens []Token, opts ...Option) *parser {
	p := &parser{
		maxErrors: DefaultMaxErrors,
		logger:    discardLogger,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.toks = make([]Token, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Kind == _Comment {
			continue
		}
		if t.Kind == _EOF {
			break
		}
		p.toks = append(p.toks, t)
	}
	eof := Token{Kind: _EOF, Line: 1, Column: 1}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == _EOF {
		eof = tokens[n-1]
	} else if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		eof.Pos, eof.End = last.End, last.End
		eof.Line, eof.Column = last.Line, last.Column
	}
	p.toks = append(p.toks, eof)
	return p
}

// Parse builds a Program from tokens. It never fails: syntax problems are
// reported in the Result and the Program holds whatever could be built.
func Parse(tokens []Token, opts ...Option) (res *Result) {
	p := newParser(tokens, opts...)
	prog := &Program{}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			tok := p.tok()
			p.errors = append(p.errors, p.newError(tok.Pos, tok.End, SeverityError, CodeInternal,
				fmt.Sprintf("internal parser error: %v", r)))
			p.logger.Error("parser panic", "panic", r, "offset", tok.Pos)
			res = p.result(prog)
		}
		p.logger.Debug("parse finished",
			"tokens", len(p.toks),
			"statements", len(prog.Body),
			"errors", len(res.Errors),
			"warnings", len(res.Warnings),
			"duration", time.Since(start))
	}()

	p.program(prog)
	return p.result(prog)
}

// ParseString tokenizes src in the given mode and parses the result.
func ParseString(src string, mode Mode, opts ...Option) *Result {
	opts = append([]Option{WithSource(src)}, opts...)
	return Parse(Tokenize(src, mode), opts...)
}

func (p *parser) result(prog *Program) *Result {
	return &Result{
		AST:      prog,
		Errors:   p.errors,
		Warnings: p.warnings,
		eof:      p.toks[len(p.toks)-1].Pos,
	}
}

// ----------------------------------------------------------------------------
// Token navigation

// tok returns the current token.
func (p *parser) tok() Token {
	return p.toks[p.cur]
}

// peek returns the token n positions ahead of the current one.
func (p *parser) peek(n int) Token {
	if i := p.cur + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

// prev returns the most recently consumed token.
func (p *parser) prev() Token {
	if p.cur == 0 {
		return Token{Kind: _EOF}
	}
	return p.toks[p.cur-1]
}

// at reports whether the current token has kind k.
func (p *parser) at(k Kind) bool {
	return p.toks[p.cur].Kind == k
}

// advance consumes and returns the current token. It never moves past EOF.
func (p *parser) advance() Token {
	t := p.toks[p.cur]
	if t.Kind != _EOF {
		p.cur++
	}
	return t
}

// got consumes the current token if it has kind k.
func (p *parser) got(k Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// want consumes the current token if it has kind k. Otherwise it reports
// an error at the current token and consumes nothing.
func (p *parser) want(k Kind) (Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorExpected("'" + k.String() + "'")
	return p.tok(), false
}

// errorExpected reports that what was expected at the current token.
func (p *parser) errorExpected(what string) {
	t := p.tok()
	if t.Kind == _EOF {
		p.errorAt(t.Pos, t.End, CodeUnexpectedEOF, "Expected "+what+" but reached end of input")
		return
	}
	p.errorAt(t.Pos, t.End, CodeExpectedToken, fmt.Sprintf("Expected %s but found %s", what, describe(t)))
}

// describe renders a token for error messages.
func describe(t Token) string {
	switch t.Kind {
	case _EOF:
		return "end of input"
	case _Label:
		return fmt.Sprintf("identifier '%s'", t.Text())
	case _Number, _Double, _String, _Regexp:
		return "literal"
	case _Text:
		return "template text"
	}
	return "'" + t.Kind.String() + "'"
}

// ----------------------------------------------------------------------------
// Checkpoints

// checkpoint is a saved parser state for speculative parsing.
type checkpoint struct {
	cur       int
	panicMode bool
	abort     bool
	errors    int
	warnings  int
}

func (p *parser) checkpoint() checkpoint {
	return checkpoint{
		cur:       p.cur,
		panicMode: p.panicMode,
		abort:     p.abort,
		errors:    len(p.errors),
		warnings:  len(p.warnings),
	}
}

// restore rewinds to c and drops diagnostics recorded since.
func (p *parser) restore(c checkpoint) {
	p.cur = c.cur
	p.panicMode = c.panicMode
	p.abort = c.abort
	p.errors = p.errors[:c.errors]
	p.warnings = p.warnings[:c.warnings]
}

// ----------------------------------------------------------------------------
// Error handling

// errorAt records an error for [start, end) unless the parser is in panic
// mode, and enters panic mode.
func (p *parser) errorAt(start, end int, code Code, msg string) {
	if p.panicMode || p.abort {
		return
	}
	p.panicMode = true
	p.record(p.newError(start, end, SeverityError, code, msg))
}

// softErrorAt records an error without entering panic mode. Like errorAt
// it is suppressed while an earlier error still holds panic mode, which
// then stays set.
func (p *parser) softErrorAt(start, end int, code Code, msg string) {
	if p.panicMode {
		return
	}
	p.errorAt(start, end, code, msg)
	p.panicMode = false
}

// errorAtToken is errorAt over the range of t.
func (p *parser) errorAtToken(t Token, code Code, msg string) {
	p.errorAt(t.Pos, t.End, code, msg)
}

// lexError records the message carried by an ERROR token. Lexical errors
// are independent defects, so panic mode does not suppress them.
func (p *parser) lexError(t Token) {
	if p.abort {
		return
	}
	p.panicMode = true
	p.record(p.newError(t.Pos, t.End, SeverityError, CodeLexical, t.Text()))
}

// warnAt records a warning. Warnings do not affect panic mode.
func (p *parser) warnAt(start, end int, code Code, msg string) {
	p.warnings = append(p.warnings, p.newError(start, end, SeverityWarning, code, msg))
}

func (p *parser) record(e *ParseError) {
	p.errors = append(p.errors, e)
	if p.maxErrors > 0 && len(p.errors) >= p.maxErrors {
		p.errors = append(p.errors, p.newError(e.Start, e.End, SeverityError, CodeTooManyErrors,
			fmt.Sprintf("too many errors (%d); parsing stopped", len(p.errors))))
		p.abort = true
		p.cur = len(p.toks) - 1
	}
}

func (p *parser) newError(start, end int, sev Severity, code Code, msg string) *ParseError {
	if end < start {
		end = start
	}
	pos := p.position(start)
	return &ParseError{
		Msg:      msg,
		Start:    start,
		End:      end,
		Line:     pos.Line,
		Column:   pos.Col,
		Severity: sev,
		Code:     code,
	}
}

// position returns the line and column of offs, from the source if known
// and otherwise from the nearest token at or before offs.
func (p *parser) position(offs int) Position {
	if p.lines != nil {
		return p.lines.Position(offs)
	}
	i := sort.Search(len(p.toks), func(i int) bool { return p.toks[i].Pos > offs }) - 1
	if i < 0 {
		return Position{Line: 1, Col: 1}
	}
	t := p.toks[i]
	return Position{Line: t.Line, Col: t.Column + (offs - t.Pos)}
}

// ----------------------------------------------------------------------------
// Synchronization

// syncLevel selects the boundary synchronize advances to.
type syncLevel int

const (
	syncStatement  syncLevel = iota // statement boundary, clears panic mode
	syncExpression                  // expression boundary, keeps panic mode
)

// statementStart holds the kinds that can begin a statement.
var statementStart = map[Kind]bool{
	_LBrace:   true,
	_RBrace:   true,
	_If:       true,
	_While:    true,
	_For:      true,
	_Func:     true,
	_Local:    true,
	_Const:    true,
	_Return:   true,
	_Break:    true,
	_Continue: true,
	_Try:      true,
	_Switch:   true,
	_Import:   true,
	_Export:   true,
	_LStm:     true,
	_RStm:     true,
	_LExp:     true,
	_Text:     true,
}

// synchronize skips tokens until a boundary of the given level.
func (p *parser) synchronize(level syncLevel) {
	for !p.at(_EOF) {
		k := p.tok().Kind
		switch level {
		case syncStatement:
			if p.prev().Kind == _Semi || statementStart[k] {
				p.panicMode = false
				return
			}
		case syncExpression:
			switch k {
			case _Comma, _Semi, _RParen, _RBrack, _RBrace, _RExp, _RStm, _PlaceholderEnd:
				return
			}
		}
		p.advance()
	}
	if level == syncStatement {
		p.panicMode = false
	}
}
