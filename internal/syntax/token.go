// Package syntax implements lexical and syntactic analysis for the Quill
// scripting language.
package syntax

import "fmt"

// Kind represents the type of a lexical token.
type Kind uint

const (
	// Sentinels
	_EOF     Kind = iota // end of input
	_Error               // lexical error, Value holds the message
	_Comment             // comment, filtered from Tokenize output

	// Template blocks
	_Text // raw template text
	_LExp // {{
	_RExp // }}
	_LStm // {%
	_RStm // %}

	// Template strings
	_TemplateStart    // opening backtick
	_TemplateChunk    // literal text between placeholders
	_PlaceholderStart // ${
	_PlaceholderEnd   // } closing a placeholder
	_TemplateEnd      // closing backtick

	// Literals
	_Label  // identifier
	_Number // integer literal
	_Double // floating-point literal
	_String // string literal
	_Regexp // regular expression literal

	// Punctuation
	_LParen   // (
	_RParen   // )
	_LBrack   // [
	_RBrack   // ]
	_LBrace   // {
	_RBrace   // }
	_Comma    // ,
	_Semi     // ;
	_Colon    // :
	_Dot      // .
	_Question // ?
	_OptChain // ?.

	// Assignment
	_Assign        // =
	_AddAssign     // +=
	_SubAssign     // -=
	_MulAssign     // *=
	_DivAssign     // /=
	_RemAssign     // %=
	_PowAssign     // **=
	_ShlAssign     // <<=
	_ShrAssign     // >>=
	_AndAssign     // &=
	_OrAssign      // |=
	_XorAssign     // ^=
	_AndAndAssign  // &&=
	_OrOrAssign    // ||=
	_NullishAssign // ??=

	// Binary and unary operators
	_Nullish   // ??
	_OrOr      // ||
	_AndAnd    // &&
	_Or        // |
	_Xor       // ^
	_And       // &
	_Eql       // ==
	_Neq       // !=
	_StrictEql // ===
	_StrictNeq // !==
	_Lss       // <
	_Leq       // <=
	_Gtr       // >
	_Geq       // >=
	_Shl       // <<
	_Shr       // >>
	_UShr      // >>>
	_Add       // +
	_Sub       // -
	_Mul       // *
	_Div       // /
	_Rem       // %
	_Pow       // **
	_Not       // !
	_Tilde     // ~
	_Inc       // ++
	_Dec       // --

	// Keywords
	_If
	_Else
	_While
	_For
	_In
	_Func
	_Local
	_Const
	_Try
	_Catch
	_Finally
	_Switch
	_Case
	_Default
	_Return
	_Break
	_Continue
	_Import
	_Export
	_From
	_Delete
	_This
	_True
	_False
	_Null

	kindCount
)

// kindNames maps kinds to their display names.
var kindNames = [...]string{
	_EOF:     "EOF",
	_Error:   "ERROR",
	_Comment: "COMMENT",

	_Text: "TEXT",
	_LExp: "{{",
	_RExp: "}}",
	_LStm: "{%",
	_RStm: "%}",

	_TemplateStart:    "TEMPLATE_START",
	_TemplateChunk:    "TEMPLATE_CHUNK",
	_PlaceholderStart: "${",
	_PlaceholderEnd:   "PLACEHOLDER_END",
	_TemplateEnd:      "TEMPLATE_END",

	_Label:  "LABEL",
	_Number: "NUMBER",
	_Double: "DOUBLE",
	_String: "STRING",
	_Regexp: "REGEXP",

	_LParen:   "(",
	_RParen:   ")",
	_LBrack:   "[",
	_RBrack:   "]",
	_LBrace:   "{",
	_RBrace:   "}",
	_Comma:    ",",
	_Semi:     ";",
	_Colon:    ":",
	_Dot:      ".",
	_Question: "?",
	_OptChain: "?.",

	_Assign:        "=",
	_AddAssign:     "+=",
	_SubAssign:     "-=",
	_MulAssign:     "*=",
	_DivAssign:     "/=",
	_RemAssign:     "%=",
	_PowAssign:     "**=",
	_ShlAssign:     "<<=",
	_ShrAssign:     ">>=",
	_AndAssign:     "&=",
	_OrAssign:      "|=",
	_XorAssign:     "^=",
	_AndAndAssign:  "&&=",
	_OrOrAssign:    "||=",
	_NullishAssign: "??=",

	_Nullish:   "??",
	_OrOr:      "||",
	_AndAnd:    "&&",
	_Or:        "|",
	_Xor:       "^",
	_And:       "&",
	_Eql:       "==",
	_Neq:       "!=",
	_StrictEql: "===",
	_StrictNeq: "!==",
	_Lss:       "<",
	_Leq:       "<=",
	_Gtr:       ">",
	_Geq:       ">=",
	_Shl:       "<<",
	_Shr:       ">>",
	_UShr:      ">>>",
	_Add:       "+",
	_Sub:       "-",
	_Mul:       "*",
	_Div:       "/",
	_Rem:       "%",
	_Pow:       "**",
	_Not:       "!",
	_Tilde:     "~",
	_Inc:       "++",
	_Dec:       "--",

	_If:       "if",
	_Else:     "else",
	_While:    "while",
	_For:      "for",
	_In:       "in",
	_Func:     "func",
	_Local:    "local",
	_Const:    "const",
	_Try:      "try",
	_Catch:    "catch",
	_Finally:  "finally",
	_Switch:   "switch",
	_Case:     "case",
	_Default:  "default",
	_Return:   "return",
	_Break:    "break",
	_Continue: "continue",
	_Import:   "import",
	_Export:   "export",
	_From:     "from",
	_Delete:   "delete",
	_This:     "this",
	_True:     "true",
	_False:    "false",
	_Null:     "null",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool {
	return k >= _If && k <= _Null
}

// IsOperator reports whether k is an operator kind.
func (k Kind) IsOperator() bool {
	return k >= _Assign && k <= _Dec
}

// IsAssign reports whether k is one of the assignment operators.
func (k Kind) IsAssign() bool {
	return k >= _Assign && k <= _NullishAssign
}

// IsLiteral reports whether k is a literal kind.
func (k Kind) IsLiteral() bool {
	return k >= _Number && k <= _Regexp || k == _True || k == _False || k == _Null
}

// IsEOF reports whether k is the end-of-input kind.
func (k Kind) IsEOF() bool {
	return k == _EOF
}

// IsError reports whether k is the lexical error kind.
func (k Kind) IsError() bool {
	return k == _Error
}

// IsComment reports whether k is the comment kind.
func (k Kind) IsComment() bool {
	return k == _Comment
}

// Token is a single lexical token. Pos and End are byte offsets into the
// source forming the half-open range [Pos, End). Line and Column are
// 1-based and refer to Pos.
//
// Value holds the decoded payload: string for labels, strings, keywords,
// operators, text and errors; int64 for NUMBER; float64 for DOUBLE; bool
// for true/false; RegexpValue for REGEXP; nil for null and EOF.
type Token struct {
	Kind   Kind
	Value  any
	Pos    int
	End    int
	Line   int
	Column int
}

// RegexpValue is the payload of a REGEXP token.
type RegexpValue struct {
	Pattern string
	Flags   string
}

// String returns a compact representation of the token for debugging.
func (t Token) String() string {
	switch t.Kind {
	case _EOF:
		return "EOF"
	case _Regexp:
		if rv, ok := t.Value.(RegexpValue); ok {
			return fmt.Sprintf("REGEXP(/%s/%s)", rv.Pattern, rv.Flags)
		}
	}
	return fmt.Sprintf("%s(%v)", t.Kind, t.Value)
}

// Text returns the token value as a string, or "" if it is not one.
func (t Token) Text() string {
	s, _ := t.Value.(string)
	return s
}

// Exported kinds for packages that inspect token streams.
const (
	EOF     = _EOF
	Error   = _Error
	Comment = _Comment
	Label   = _Label
	Text    = _Text
)
