package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------
// Identifiers and numbers

// scanIdent scans an identifier or keyword.
func (l *Lexer) scanIdent() Token {
	for isIdentPart(l.ch) {
		l.nextch()
	}
	lit := l.buf[l.start:l.offs]

	kind := _Label
	if !l.noKeyword {
		kind = LookupKeyword(lit)
	}

	switch kind {
	case _True:
		return l.emit(kind, true)
	case _False:
		return l.emit(kind, false)
	case _Null:
		return l.emit(kind, nil)
	}
	return l.emit(kind, lit)
}

// scanNumber scans a decimal, hexadecimal or floating-point literal.
// Integers that do not fit in int64 become DOUBLE.
func (l *Lexer) scanNumber() Token {
	if l.ch == '0' && lower(l.peek()) == 'x' {
		l.skip(2)
		for isHexDigit(l.ch) {
			l.nextch()
		}
		digits := l.buf[l.start+2 : l.offs]
		if digits == "" {
			return l.errorToken("Invalid hexadecimal literal")
		}
		if v, err := strconv.ParseInt(digits, 16, 64); err == nil {
			return l.emit(_Number, v)
		}
		var f float64
		for _, d := range digits {
			f = f*16 + float64(hexValue(d))
		}
		return l.emit(_Double, f)
	}

	isFloat := false
	for isDigit(l.ch) {
		l.nextch()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		isFloat = true
		l.nextch()
		for isDigit(l.ch) {
			l.nextch()
		}
	}
	if lower(l.ch) == 'e' {
		p := l.peek()
		if isDigit(p) || (p == '+' || p == '-') && l.digitAfterSign() {
			isFloat = true
			l.skip(2)
			for isDigit(l.ch) {
				l.nextch()
			}
		}
	}

	lit := l.buf[l.start:l.offs]
	if !isFloat {
		if v, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return l.emit(_Number, v)
		}
	}
	// ParseFloat returns ±Inf with an error for out-of-range values.
	f, _ := strconv.ParseFloat(lit, 64)
	return l.emit(_Double, f)
}

// digitAfterSign reports whether the exponent marker at l.ch is followed by
// a sign and a digit.
func (l *Lexer) digitAfterSign() bool {
	i := l.source.next + 1
	return i < len(l.buf) && isDigit(rune(l.buf[i]))
}

func hexValue(r rune) int {
	if isDigit(r) {
		return int(r - '0')
	}
	return int(lower(r)-'a') + 10
}

// ----------------------------------------------------------------------------
// Strings

// scanString scans a single- or double-quoted string. Strings may span
// lines. Unknown escapes keep the escaped character.
func (l *Lexer) scanString() Token {
	quote := l.ch
	l.nextch()

	var b strings.Builder
	for {
		switch l.ch {
		case -1:
			return l.errorToken("Unterminated string")
		case quote:
			l.nextch()
			return l.emit(_String, b.String())
		case '\\':
			l.nextch()
			if l.ch < 0 {
				return l.errorToken("Unterminated string")
			}
			b.WriteRune(unescape(l.ch))
			l.nextch()
		default:
			b.WriteRune(l.ch)
			l.nextch()
		}
	}
}

// unescape returns the character denoted by the escape \r.
func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case '0':
		return 0
	}
	return r
}

// scanTemplateChunk scans literal text inside a backtick string up to the
// next placeholder or the closing backtick.
func (l *Lexer) scanTemplateChunk() (Token, bool) {
	switch {
	case l.hasPrefix("${"):
		l.state = statePlaceholderStart
		return Token{}, false
	case l.ch == '`':
		l.begin()
		l.nextch()
		l.pop()
		return l.emit(_TemplateEnd, "`"), true
	}

	l.begin()
	var b strings.Builder
	for {
		switch {
		case l.ch < 0:
			l.pop()
			return l.errorToken("Unterminated template string"), true
		case l.ch == '`', l.hasPrefix("${"):
			return l.emit(_TemplateChunk, b.String()), true
		case l.ch == '\\':
			l.nextch()
			if l.ch < 0 {
				continue
			}
			b.WriteRune(unescape(l.ch))
			l.nextch()
		default:
			b.WriteRune(l.ch)
			l.nextch()
		}
	}
}

// ----------------------------------------------------------------------------
// Regular expressions and comments

// scanRegexp scans /pattern/flags. The pattern ends at the first unescaped
// '/' on the same line.
func (l *Lexer) scanRegexp() Token {
	l.nextch() // '/'

	var b strings.Builder
	for {
		if l.ch < 0 || isLineBreak(l.ch) {
			return l.errorToken("Unterminated regex")
		}
		if l.ch == '/' {
			l.nextch()
			break
		}
		if l.ch == '\\' {
			b.WriteRune(l.ch)
			l.nextch()
			if l.ch < 0 || isLineBreak(l.ch) {
				continue
			}
		}
		b.WriteRune(l.ch)
		l.nextch()
	}

	flags := l.offs
	for isRegexpFlag(l.ch) {
		l.nextch()
	}
	return l.emit(_Regexp, RegexpValue{Pattern: b.String(), Flags: l.buf[flags:l.offs]})
}

// scanLineComment scans a // comment up to the end of the line or the
// closing tag of the enclosing template block.
func (l *Lexer) scanLineComment() Token {
	l.skip(2)
	closer := l.closer()
	for l.ch >= 0 && !isLineBreak(l.ch) && (closer == "" || !l.hasPrefix(closer)) {
		l.nextch()
	}
	return l.emit(_Comment, l.buf[l.start+2:l.offs])
}

// scanComment scans a /* */ comment.
func (l *Lexer) scanComment() Token {
	l.skip(2)
	body := l.offs
	for !l.hasPrefix("*/") {
		if l.atEOF() {
			return l.errorToken("Unterminated comment")
		}
		l.nextch()
	}
	text := l.buf[body:l.offs]
	l.skip(2)
	return l.emit(_Comment, text)
}

// scanBlockComment scans a {# #} template comment.
func (l *Lexer) scanBlockComment() Token {
	l.begin()
	l.skip(2)
	body := l.offs
	for !l.hasPrefix("#}") {
		if l.atEOF() {
			return l.errorToken("Unterminated comment")
		}
		l.nextch()
	}
	text := l.buf[body:l.offs]
	l.skip(2)
	return l.emit(_Comment, text)
}

// ----------------------------------------------------------------------------
// Operators

// scanOperator scans the longest operator at the current character.
func (l *Lexer) scanOperator() Token {
	kind, n := lookupOperator(l.buf, l.offs)
	if n == 0 {
		ch := l.ch
		l.nextch()
		return l.errorToken(fmt.Sprintf("Unexpected character: %c", ch))
	}

	// x?.5:y is a conditional, not an optional chain.
	if kind == _OptChain && l.source.next+1 < len(l.buf) && isDigit(rune(l.buf[l.source.next+1])) {
		kind, n = _Question, 1
	}

	l.skip(n)

	if top := l.top(); top != nil {
		switch kind {
		case _LBrace:
			top.braces++
		case _RBrace:
			if top.braces > 0 {
				top.braces--
			}
		}
	}
	return l.emit(kind, kind.String())
}
