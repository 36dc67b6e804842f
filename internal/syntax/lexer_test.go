package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeRaw(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"declaration", "let x = 1;", []Kind{_Local, _Label, _Assign, _Number, _Semi, _EOF}},
		{"local_alias", "local y", []Kind{_Local, _Label, _EOF}},
		{"function", "function f() {}", []Kind{_Func, _Label, _LParen, _RParen, _LBrace, _RBrace, _EOF}},
		{"strict_equality", "a === b !== c", []Kind{_Label, _StrictEql, _Label, _StrictNeq, _Label, _EOF}},
		{"longest_match", "a >>>= b", []Kind{_Label, _UShr, _Assign, _Label, _EOF}},
		{"compound_assign", "a ??= b **= c", []Kind{_Label, _NullishAssign, _Label, _PowAssign, _Label, _EOF}},
		{"nullish_and_chain", "a ?? b?.c", []Kind{_Label, _Nullish, _Label, _OptChain, _Label, _EOF}},
		{"question_dot_digit", "x?.5:1", []Kind{_Label, _Question, _Double, _Colon, _Number, _EOF}},
		{"regexp", "x = /ab+c/gi;", []Kind{_Label, _Assign, _Regexp, _Semi, _EOF}},
		{"division", "a / b / c", []Kind{_Label, _Div, _Label, _Div, _Label, _EOF}},
		{"division_after_paren", "(a) / 2", []Kind{_LParen, _Label, _RParen, _Div, _Number, _EOF}},
		{"keyword_after_dot", "obj.if", []Kind{_Label, _Dot, _Label, _EOF}},
		{"keyword_after_opt_chain", "obj?.for", []Kind{_Label, _OptChain, _Label, _EOF}},
		{"line_comment", "// note\nx", []Kind{_Label, _EOF}},
		{"block_comment", "a /* b */ c", []Kind{_Label, _Label, _EOF}},
		{"regexp_after_comment", "x = /* c */ /y/", []Kind{_Label, _Assign, _Regexp, _EOF}},
		{"template_string", "`a${b}c`", []Kind{
			_TemplateStart, _TemplateChunk, _PlaceholderStart, _Label,
			_PlaceholderEnd, _TemplateChunk, _TemplateEnd, _EOF,
		}},
		{"template_nested_braces", "`${ {a:1} }`", []Kind{
			_TemplateStart, _PlaceholderStart, _LBrace, _Label, _Colon, _Number,
			_RBrace, _PlaceholderEnd, _TemplateEnd, _EOF,
		}},
		{"template_in_template", "`${`x`}`", []Kind{
			_TemplateStart, _PlaceholderStart, _TemplateStart, _TemplateChunk,
			_TemplateEnd, _PlaceholderEnd, _TemplateEnd, _EOF,
		}},
		{"literals", "true false null this", []Kind{_True, _False, _Null, _This, _EOF}},
		{"unicode_ident", "café", []Kind{_Label, _EOF}},
		{"empty", "", []Kind{_EOF}},
		{"whitespace_only", " \t\n ", []Kind{_EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Tokenize(tt.src, RawMode))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeTemplate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"text_only", "hello", []Kind{_Text, _EOF}},
		{"expression_block", "Hello {{ name }}!", []Kind{_Text, _LExp, _Label, _RExp, _Text, _EOF}},
		{"statement_block", "{% if (x) { %}y{% } %}", []Kind{
			_LStm, _If, _LParen, _Label, _RParen, _LBrace, _RStm,
			_Text, _LStm, _RBrace, _RStm, _EOF,
		}},
		{"comment_block", "{# note #}text", []Kind{_Text, _EOF}},
		{"object_in_expression", "{{ {a: 1} }}", []Kind{_LExp, _LBrace, _Label, _Colon, _Number, _RBrace, _RExp, _EOF}},
		{"nested_braces_close", "{{ {a: {b: 1}} }}", []Kind{
			_LExp, _LBrace, _Label, _Colon, _LBrace, _Label, _Colon, _Number,
			_RBrace, _RBrace, _RExp, _EOF,
		}},
		{"line_comment_stops_at_tag", "{{ x // c }}tail", []Kind{_LExp, _Label, _RExp, _Text, _EOF}},
		{"braces_in_text", "a } b }} c", []Kind{_Text, _EOF}},
		{"unclosed_block", "{{ x", []Kind{_LExp, _Label, _EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Tokenize(tt.src, TemplateMode))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeTemplateText(t *testing.T) {
	toks := Tokenize("Hi {{ n }}!\n", TemplateMode)
	require.Len(t, toks, 6)
	assert.Equal(t, "Hi ", toks[0].Value)
	assert.Equal(t, "n", toks[2].Value)
	assert.Equal(t, "!\n", toks[4].Value)
}

func TestNumberValues(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
		val  any
	}{
		{"42", _Number, int64(42)},
		{"0", _Number, int64(0)},
		{"0x1F", _Number, int64(31)},
		{"0XfF", _Number, int64(255)},
		{"3.14", _Double, 3.14},
		{"1e3", _Double, 1000.0},
		{"2E-2", _Double, 0.02},
		{"5e+1", _Double, 50.0},
		{".5", _Double, 0.5},
		{"9223372036854775807", _Number, int64(9223372036854775807)},
		{"9223372036854775808", _Double, 9223372036854775808.0},
		{"0xFFFFFFFFFFFFFFFF", _Double, 18446744073709551615.0},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := Tokenize(tt.src, RawMode)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.kind, toks[0].Kind)
			assert.Equal(t, tt.val, toks[0].Value)
		})
	}
}

func TestNumberFollowedByDot(t *testing.T) {
	toks := Tokenize("1.x", RawMode)
	assert.Equal(t, []Kind{_Number, _Dot, _Label, _EOF}, kinds(toks))

	toks = Tokenize("1e", RawMode)
	assert.Equal(t, []Kind{_Number, _Label, _EOF}, kinds(toks))
}

func TestStringValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"double", `"abc"`, "abc"},
		{"single", `'abc'`, "abc"},
		{"escapes", `"a\nb\tc\\d\"e"`, "a\nb\tc\\d\"e"},
		{"single_escape", `'it\'s'`, "it's"},
		{"unknown_escape", `"\q\d"`, "qd"},
		{"multiline", "\"a\nb\"", "a\nb"},
		{"other_quote", `"it's"`, "it's"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.src, RawMode)
			require.Len(t, toks, 2)
			assert.Equal(t, _String, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Value)
		})
	}
}

func TestRegexpValue(t *testing.T) {
	toks := Tokenize(`x = /a\/b[0-9]/gimuyg`, RawMode)
	require.Len(t, toks, 4)
	assert.Equal(t, _Regexp, toks[2].Kind)
	assert.Equal(t, RegexpValue{Pattern: `a\/b[0-9]`, Flags: "gimuyg"}, toks[2].Value)
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		mode  Mode
		want  []Kind
		msg   string
		start int
		end   int
	}{
		{"unterminated_string", `"abc`, RawMode, []Kind{_Error, _EOF}, "Unterminated string", 0, 4},
		{"unterminated_string_escape", `'ab\`, RawMode, []Kind{_Error, _EOF}, "Unterminated string", 0, 4},
		{"unterminated_template", "`abc", RawMode, []Kind{_TemplateStart, _Error, _EOF}, "Unterminated template string", 1, 4},
		{"unterminated_comment", "x /* y", RawMode, []Kind{_Label, _Error, _EOF}, "Unterminated comment", 2, 6},
		{"unterminated_regex", "x = /abc", RawMode, []Kind{_Label, _Assign, _Error, _EOF}, "Unterminated regex", 4, 8},
		{"unterminated_block_comment", "a{# x", TemplateMode, []Kind{_Text, _Error, _EOF}, "Unterminated comment", 1, 5},
		{"unexpected_character", "a @ b", RawMode, []Kind{_Label, _Error, _Label, _EOF}, "Unexpected character: @", 2, 3},
		{"empty_hex", "0x", RawMode, []Kind{_Error, _EOF}, "Invalid hexadecimal literal", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.src, tt.mode)
			require.Equal(t, tt.want, kinds(toks))
			for _, tok := range toks {
				if tok.Kind == _Error {
					assert.Equal(t, tt.msg, tok.Value)
					assert.Equal(t, tt.start, tok.Pos)
					assert.Equal(t, tt.end, tok.End)
				}
			}
		})
	}
}

func TestUnterminatedRegexStopsAtLineEnd(t *testing.T) {
	toks := Tokenize("x = /abc\ny;", RawMode)
	assert.Equal(t, []Kind{_Label, _Assign, _Error, _Label, _Semi, _EOF}, kinds(toks))
}

func TestTokenPositions(t *testing.T) {
	toks := Tokenize("a\n  bc é x\u2028y", RawMode)
	require.Len(t, toks, 6)

	tests := []struct {
		idx       int
		pos, end  int
		line, col int
	}{
		{0, 0, 1, 1, 1},   // a
		{1, 4, 6, 2, 3},   // bc
		{2, 7, 9, 2, 6},   // é (2 bytes)
		{3, 10, 11, 2, 8}, // x
		{4, 14, 15, 3, 1}, // y after U+2028 (3 bytes)
	}
	for _, tt := range tests {
		tok := toks[tt.idx]
		assert.Equal(t, tt.pos, tok.Pos, "token %d pos", tt.idx)
		assert.Equal(t, tt.end, tok.End, "token %d end", tt.idx)
		assert.Equal(t, tt.line, tok.Line, "token %d line", tt.idx)
		assert.Equal(t, tt.col, tok.Column, "token %d col", tt.idx)
	}
	assert.Equal(t, _EOF, toks[5].Kind)
	assert.Equal(t, 15, toks[5].Pos)
}

func TestLexerEOFIsIdempotent(t *testing.T) {
	l := NewLexer("x", RawMode)
	assert.Equal(t, _Label, l.NextToken().Kind)
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		assert.Equal(t, _EOF, tok.Kind)
		assert.Equal(t, 1, tok.Pos)
	}
}

func TestLexerReturnsComments(t *testing.T) {
	l := NewLexer("a // c", RawMode)
	assert.Equal(t, _Label, l.NextToken().Kind)
	c := l.NextToken()
	assert.Equal(t, _Comment, c.Kind)
	assert.Equal(t, " c", c.Value)
	assert.Equal(t, _EOF, l.NextToken().Kind)
}

func TestKeywordValues(t *testing.T) {
	toks := Tokenize("function let true null", RawMode)
	require.Len(t, toks, 5)
	assert.Equal(t, "function", toks[0].Value)
	assert.Equal(t, "let", toks[1].Value)
	assert.Equal(t, true, toks[2].Value)
	assert.Nil(t, toks[3].Value)
}

var lexCorpus = []string{
	"let x = 1;",
	"function f(a, b) { return a ** b ** 2; }",
	"for (x in y) { print(x); }",
	"a = /re/g.test(s) ? `v=${v}` : 'no';",
	"Hello {{ user.name }}{% if (x) { %}yes{% } %}{# c #}",
	"\"unterminated",
	"`${",
	"}}}{{{",
	"0x 1e+ .5.5 ?.1",
	"  \r\n",
}

func TestTokenizeInvariants(t *testing.T) {
	for _, src := range lexCorpus {
		for _, mode := range []Mode{RawMode, TemplateMode} {
			toks := Tokenize(src, mode)
			checkTokenInvariants(t, src, toks)
			assert.Equal(t, toks, Tokenize(src, mode), "re-lexing %q", src)
		}
	}
}

func checkTokenInvariants(t *testing.T, src string, toks []Token) {
	t.Helper()
	require.NotEmpty(t, toks)
	last := toks[len(toks)-1]
	assert.Equal(t, _EOF, last.Kind, "last token of %q", src)
	prev := 0
	for i, tok := range toks {
		if tok.Kind == _EOF && i != len(toks)-1 {
			t.Errorf("%q: EOF at index %d of %d", src, i, len(toks))
		}
		if tok.Pos < 0 || tok.Pos > tok.End || tok.End > len(src) {
			t.Errorf("%q: token %v has range [%d,%d)", src, tok, tok.Pos, tok.End)
		}
		if tok.Pos < prev {
			t.Errorf("%q: token %v starts before previous token", src, tok)
		}
		prev = tok.Pos
	}
}

func FuzzTokenize(f *testing.F) {
	for _, src := range lexCorpus {
		f.Add(src)
	}
	f.Fuzz(func(t *testing.T, src string) {
		checkTokenInvariants(t, src, Tokenize(src, RawMode))
		checkTokenInvariants(t, src, Tokenize(src, TemplateMode))
	})
}
