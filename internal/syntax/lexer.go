package syntax

// Mode selects the lexer's initial state.
type Mode uint8

const (
	// TemplateMode treats the input as text with embedded {{ }}, {% %}
	// and {# #} blocks.
	TemplateMode Mode = iota
	// RawMode treats the whole input as code.
	RawMode
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m == RawMode {
		return "raw"
	}
	return "template"
}

// lexState is a state of the lexer's block/token state machine.
type lexState uint8

const (
	stateIdentifyBlock lexState = iota
	stateBlockExpressionEmitTag
	stateBlockStatementEmitTag
	stateBlockComment
	stateIdentifyToken
	statePlaceholderStart
	statePlaceholderEnd
	stateEOF
)

// frameKind identifies an open construct that changes how tokens are read.
type frameKind uint8

const (
	frameExprBlock   frameKind = iota // {{ ... }}
	frameStmtBlock                    // {% ... %}
	frameTemplate                     // `...`
	framePlaceholder                  // ${ ... }
)

// frame is one entry of the lexer's nesting stack.
type frame struct {
	kind   frameKind
	braces int // unmatched '{' opened inside this frame
}

// Lexer converts source text into tokens on demand.
// A Lexer is not safe for concurrent use; independent Lexers are.
type Lexer struct {
	source

	mode  Mode
	state lexState
	stack []frame

	last      Kind // last significant token kind
	noRegexp  bool // a '/' is division, not a regex
	noKeyword bool // identifiers are never keywords (property names)

	// start of the token being scanned
	start     int
	startLine int
	startCol  int
}

// NewLexer creates a Lexer for src in the given mode.
func NewLexer(src string, mode Mode) *Lexer {
	l := &Lexer{mode: mode, last: _EOF}
	l.source.init(src)
	if mode == RawMode {
		l.state = stateIdentifyToken
	} else {
		l.state = stateIdentifyBlock
	}
	return l
}

// Tokenize scans src and returns its tokens without comments.
// The result always ends with exactly one EOF token.
func Tokenize(src string, mode Mode) []Token {
	l := NewLexer(src, mode)
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Kind == _Comment {
			continue
		}
		toks = append(toks, tok)
		if tok.Kind == _EOF {
			return toks
		}
	}
}

// NextToken returns the next token, including comments.
// Once the input is exhausted it keeps returning EOF.
func (l *Lexer) NextToken() Token {
	for {
		if tok, ok := l.next(); ok {
			if tok.Kind != _Comment {
				l.last = tok.Kind
				l.noRegexp = endsOperand(tok.Kind)
				l.noKeyword = tok.Kind == _Dot || tok.Kind == _OptChain
			}
			return tok
		}
	}
}

// next runs one step of the state machine. It returns ok == false when the
// step only changed state and the caller should continue.
func (l *Lexer) next() (Token, bool) {
	switch l.state {
	case stateIdentifyBlock:
		return l.identifyBlock()

	case stateBlockExpressionEmitTag:
		l.begin()
		l.skip(2)
		l.push(frameExprBlock)
		l.state = stateIdentifyToken
		return l.emit(_LExp, "{{"), true

	case stateBlockStatementEmitTag:
		l.begin()
		l.skip(2)
		l.push(frameStmtBlock)
		l.state = stateIdentifyToken
		return l.emit(_LStm, "{%"), true

	case stateBlockComment:
		l.state = stateIdentifyBlock
		return l.scanBlockComment(), true

	case stateIdentifyToken:
		return l.identifyToken()

	case statePlaceholderStart:
		l.begin()
		l.skip(2)
		l.push(framePlaceholder)
		l.state = stateIdentifyToken
		return l.emit(_PlaceholderStart, "${"), true

	case statePlaceholderEnd:
		l.begin()
		l.nextch()
		l.pop()
		l.state = stateIdentifyToken
		return l.emit(_PlaceholderEnd, "}"), true
	}

	l.begin()
	return l.emit(_EOF, nil), true
}

// identifyBlock scans template text up to the next block tag.
func (l *Lexer) identifyBlock() (Token, bool) {
	switch {
	case l.atEOF():
		l.state = stateEOF
		return Token{}, false
	case l.hasPrefix("{{"):
		l.state = stateBlockExpressionEmitTag
		return Token{}, false
	case l.hasPrefix("{%"):
		l.state = stateBlockStatementEmitTag
		return Token{}, false
	case l.hasPrefix("{#"):
		l.state = stateBlockComment
		return Token{}, false
	}

	l.begin()
	for !l.atEOF() && !l.hasPrefix("{{") && !l.hasPrefix("{%") && !l.hasPrefix("{#") {
		l.nextch()
	}
	return l.emit(_Text, l.buf[l.start:l.offs]), true
}

// identifyToken scans one code token.
func (l *Lexer) identifyToken() (Token, bool) {
	if top := l.top(); top != nil && top.kind == frameTemplate {
		return l.scanTemplateChunk()
	}

	for isWhitespace(l.ch) {
		l.nextch()
	}

	if l.atEOF() {
		l.state = stateEOF
		return Token{}, false
	}

	if top := l.top(); top != nil {
		switch {
		case top.kind == frameExprBlock && top.braces == 0 && l.hasPrefix("}}"):
			l.begin()
			l.skip(2)
			l.pop()
			l.state = stateIdentifyBlock
			return l.emit(_RExp, "}}"), true
		case top.kind == frameStmtBlock && l.hasPrefix("%}"):
			l.begin()
			l.skip(2)
			l.pop()
			l.state = stateIdentifyBlock
			return l.emit(_RStm, "%}"), true
		case top.kind == framePlaceholder && top.braces == 0 && l.ch == '}':
			l.state = statePlaceholderEnd
			return Token{}, false
		}
	}

	l.begin()
	switch {
	case isLetter(l.ch):
		return l.scanIdent(), true
	case isDigit(l.ch), l.ch == '.' && isDigit(l.peek()):
		return l.scanNumber(), true
	case l.ch == '"' || l.ch == '\'':
		return l.scanString(), true
	case l.ch == '`':
		l.nextch()
		l.push(frameTemplate)
		return l.emit(_TemplateStart, "`"), true
	case l.hasPrefix("//"):
		return l.scanLineComment(), true
	case l.hasPrefix("/*"):
		return l.scanComment(), true
	case l.ch == '/' && !l.noRegexp:
		return l.scanRegexp(), true
	}

	return l.scanOperator(), true
}

// begin records the start of a token at the current character.
func (l *Lexer) begin() {
	l.start = l.offs
	l.startLine = l.line
	l.startCol = l.col
}

// emit builds a token spanning from the last begin to the current offset.
func (l *Lexer) emit(kind Kind, value any) Token {
	return Token{
		Kind:   kind,
		Value:  value,
		Pos:    l.start,
		End:    l.offs,
		Line:   l.startLine,
		Column: l.startCol,
	}
}

// errorToken builds an ERROR token carrying msg.
func (l *Lexer) errorToken(msg string) Token {
	return l.emit(_Error, msg)
}

func (l *Lexer) push(kind frameKind) {
	l.stack = append(l.stack, frame{kind: kind})
}

func (l *Lexer) pop() {
	if n := len(l.stack); n > 0 {
		l.stack = l.stack[:n-1]
	}
}

func (l *Lexer) top() *frame {
	if n := len(l.stack); n > 0 {
		return &l.stack[n-1]
	}
	return nil
}

// closer returns the block tag that would end the innermost template
// block, or "" if none is open.
func (l *Lexer) closer() string {
	for i := len(l.stack) - 1; i >= 0; i-- {
		switch l.stack[i].kind {
		case frameExprBlock:
			return "}}"
		case frameStmtBlock:
			return "%}"
		}
	}
	return ""
}
