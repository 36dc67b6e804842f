package syntax

import (
	"unicode"
	"unicode/utf8"
)

// keywords maps keyword lexemes to their kind.
// "function" and "let" are spellings of func and local.
var keywords = map[string]Kind{
	"if":       _If,
	"else":     _Else,
	"while":    _While,
	"for":      _For,
	"in":       _In,
	"func":     _Func,
	"function": _Func,
	"local":    _Local,
	"let":      _Local,
	"const":    _Const,
	"try":      _Try,
	"catch":    _Catch,
	"finally":  _Finally,
	"switch":   _Switch,
	"case":     _Case,
	"default":  _Default,
	"return":   _Return,
	"break":    _Break,
	"continue": _Continue,
	"import":   _Import,
	"export":   _Export,
	"from":     _From,
	"delete":   _Delete,
	"this":     _This,
	"true":     _True,
	"false":    _False,
	"null":     _Null,
}

// LookupKeyword returns the kind for the given identifier string.
// If the identifier is a keyword, returns the keyword kind.
// Otherwise, returns the LABEL kind.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Label
}

// operators holds the operator and punctuation lexemes by length.
// The lexer tries operators[2] (3 chars), then [1], then [0].
var operators = [3]map[string]Kind{
	{
		"(": _LParen,
		")": _RParen,
		"[": _LBrack,
		"]": _RBrack,
		"{": _LBrace,
		"}": _RBrace,
		",": _Comma,
		";": _Semi,
		":": _Colon,
		".": _Dot,
		"?": _Question,
		"=": _Assign,
		"|": _Or,
		"^": _Xor,
		"&": _And,
		"<": _Lss,
		">": _Gtr,
		"+": _Add,
		"-": _Sub,
		"*": _Mul,
		"/": _Div,
		"%": _Rem,
		"!": _Not,
		"~": _Tilde,
	},
	{
		"?.": _OptChain,
		"+=": _AddAssign,
		"-=": _SubAssign,
		"*=": _MulAssign,
		"/=": _DivAssign,
		"%=": _RemAssign,
		"&=": _AndAssign,
		"|=": _OrAssign,
		"^=": _XorAssign,
		"??": _Nullish,
		"||": _OrOr,
		"&&": _AndAnd,
		"==": _Eql,
		"!=": _Neq,
		"<=": _Leq,
		">=": _Geq,
		"<<": _Shl,
		">>": _Shr,
		"**": _Pow,
		"++": _Inc,
		"--": _Dec,
	},
	{
		"===": _StrictEql,
		"!==": _StrictNeq,
		"**=": _PowAssign,
		"<<=": _ShlAssign,
		">>=": _ShrAssign,
		"&&=": _AndAndAssign,
		"||=": _OrOrAssign,
		"??=": _NullishAssign,
		">>>": _UShr,
	},
}

// lookupOperator finds the longest operator starting at src[offs:].
// It returns the kind and the lexeme length, or 0 if nothing matches.
func lookupOperator(src string, offs int) (Kind, int) {
	for n := 3; n >= 1; n-- {
		if offs+n > len(src) {
			continue
		}
		if k, ok := operators[n-1][src[offs:offs+n]]; ok {
			return k, n
		}
	}
	return _EOF, 0
}

// Character classification helpers

// isLetter reports whether r can start an identifier.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' || r == '$' ||
		r >= utf8.RuneSelf && unicode.IsLetter(r)
}

// isIdentPart reports whether r can continue an identifier.
func isIdentPart(r rune) bool {
	return isLetter(r) || isDigit(r)
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// isRegexpFlag reports whether r is an accepted regex flag.
// Repeated or conflicting flags are not rejected.
func isRegexpFlag(r rune) bool {
	switch r {
	case 'g', 'i', 'm', 'u', 'y':
		return true
	}
	return false
}

// lower returns the lowercase version of r if r is an ASCII letter.
// OR-ing with 0x20 maps 'A'-'Z' onto 'a'-'z'.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is insignificant whitespace.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\v', '\f', 0xA0, 0xFEFF, 0x2028, 0x2029:
		return true
	}
	return false
}

// isLineBreak reports whether r ends a line.
func isLineBreak(r rune) bool {
	return r == '\n' || r == 0x2028 || r == 0x2029
}

// endsOperand reports whether a token of kind k can end an operand, in
// which case a following '/' is division rather than a regex.
func endsOperand(k Kind) bool {
	switch k {
	case _Label, _Number, _Double, _String, _Regexp,
		_True, _False, _Null, _This,
		_RParen, _RBrack, _RBrace,
		_Inc, _Dec, _TemplateEnd:
		return true
	}
	return false
}
