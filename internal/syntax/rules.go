package syntax

// precedence is the binding power of an infix operator.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precConditional
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponential
	precUnary
	precPostfix
	precCall
)

var precNames = [...]string{
	precNone:           "NONE",
	precAssignment:     "ASSIGNMENT",
	precConditional:    "CONDITIONAL",
	precNullish:        "NULLISH",
	precLogicalOr:      "LOGICAL_OR",
	precLogicalAnd:     "LOGICAL_AND",
	precBitwiseOr:      "BITWISE_OR",
	precBitwiseXor:     "BITWISE_XOR",
	precBitwiseAnd:     "BITWISE_AND",
	precEquality:       "EQUALITY",
	precRelational:     "RELATIONAL",
	precShift:          "SHIFT",
	precAdditive:       "ADDITIVE",
	precMultiplicative: "MULTIPLICATIVE",
	precExponential:    "EXPONENTIAL",
	precUnary:          "UNARY",
	precPostfix:        "POSTFIX",
	precCall:           "CALL",
}

func (p precedence) String() string {
	if p >= 0 && int(p) < len(precNames) {
		return precNames[p]
	}
	return "precedence(?)"
}

// prefixFn parses an expression that starts with the already consumed
// token tok. A nil result means parsing failed here.
type prefixFn func(p *parser, tok Token) Expr

// infixFn parses the rest of an expression whose left operand is left and
// whose operator op has already been consumed.
type infixFn func(p *parser, left Expr, op Token) Expr

// parseRule is one entry of the Pratt dispatch table.
type parseRule struct {
	prefix prefixFn
	infix  infixFn
	prec   precedence
}

// rules is indexed by token kind. Kinds without an entry have no prefix,
// no infix and precedence NONE, which ends the climbing loop.
// It is filled in init because the rule functions refer back to it.
var rules [kindCount]parseRule

// noRule is returned for kinds outside the table.
var noRule = parseRule{prec: precNone}

func getRule(k Kind) *parseRule {
	if k >= kindCount {
		return &noRule
	}
	return &rules[k]
}

func init() {
	prefix := func(fn prefixFn, kinds ...Kind) {
		for _, k := range kinds {
			rules[k].prefix = fn
		}
	}
	infix := func(fn infixFn, prec precedence, kinds ...Kind) {
		for _, k := range kinds {
			rules[k].infix = fn
			rules[k].prec = prec
		}
	}

	// Operands
	prefix((*parser).identifier, _Label)
	prefix((*parser).literal, _Number, _Double, _String, _Regexp, _True, _False, _Null)
	prefix((*parser).thisExpr, _This)
	prefix((*parser).softKeyword, _Try, _Catch, _Finally, _From)
	prefix((*parser).grouping, _LParen)
	prefix((*parser).arrayLit, _LBrack)
	prefix((*parser).objectLit, _LBrace)
	prefix((*parser).funcExpr, _Func)
	prefix((*parser).templateLit, _TemplateStart)
	prefix((*parser).lexicalError, _Error)

	// Prefix operators
	prefix((*parser).unary, _Not, _Tilde, _Sub, _Add)
	prefix((*parser).prefixUpdate, _Inc, _Dec)
	prefix((*parser).deleteExpr, _Delete)

	// Infix operators, lowest precedence first
	infix((*parser).assignment, precAssignment,
		_Assign, _AddAssign, _SubAssign, _MulAssign, _DivAssign, _RemAssign,
		_PowAssign, _ShlAssign, _ShrAssign, _AndAssign, _OrAssign, _XorAssign,
		_AndAndAssign, _OrOrAssign, _NullishAssign)
	infix((*parser).conditional, precConditional, _Question)
	infix((*parser).binary, precNullish, _Nullish)
	infix((*parser).binary, precLogicalOr, _OrOr)
	infix((*parser).binary, precLogicalAnd, _AndAnd)
	infix((*parser).binary, precBitwiseOr, _Or)
	infix((*parser).binary, precBitwiseXor, _Xor)
	infix((*parser).binary, precBitwiseAnd, _And)
	infix((*parser).binary, precEquality, _Eql, _Neq, _StrictEql, _StrictNeq)
	infix((*parser).binary, precRelational, _Lss, _Leq, _Gtr, _Geq)
	infix((*parser).binary, precShift, _Shl, _Shr, _UShr)
	infix((*parser).binary, precAdditive, _Add, _Sub)
	infix((*parser).binary, precMultiplicative, _Mul, _Div, _Rem)
	infix((*parser).binary, precExponential, _Pow)
	infix((*parser).postfixUpdate, precPostfix, _Inc, _Dec)
	infix((*parser).call, precCall, _LParen)
	infix((*parser).index, precCall, _LBrack)
	infix((*parser).member, precCall, _Dot)
	infix((*parser).optionalChain, precCall, _OptChain)
}
