package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements. All nodes
// implement the Node interface. A few helper nodes (declarators, properties,
// clauses, specifiers) are plain Nodes.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() int     // byte offset of the first character belonging to the node
	End() int     // byte offset immediately after the node
	Type() string // variant discriminator, e.g. "BinaryExpression"
	aNode()       // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos, end int
}

func (n *node) Pos() int { return n.pos }
func (n *node) End() int { return n.end }
func (n *node) aNode()   {}

// span sets the node's range.
func (n *node) span(pos, end int) {
	n.pos = pos
	if end < pos {
		end = pos
	}
	n.end = end
}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program and statements

// Program is the root of every parse.
type Program struct {
	node
	Body []Stmt
}

// EmptyStatement is a lone ';'.
type EmptyStatement struct {
	stmt
}

// BlockStatement is { Body }.
type BlockStatement struct {
	stmt
	Body []Stmt
}

// ExpressionStatement is Expression ';'.
type ExpressionStatement struct {
	stmt
	Expression Expr
}

// VariableDeclaration is let|const Declarations.
type VariableDeclaration struct {
	stmt
	Kind         string // "let" or "const"
	Declarations []*VariableDeclarator
}

// VariableDeclarator is ID [= Init].
type VariableDeclarator struct {
	node
	ID   *Identifier
	Init Expr // or nil
}

// FunctionDeclaration is function ID(Params) Body.
// ID is nil only after a missing-name error.
type FunctionDeclaration struct {
	stmt
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

// IfStatement is if (Test) Consequent [else Alternate].
type IfStatement struct {
	stmt
	Test       Expr
	Consequent Stmt
	Alternate  Stmt // or nil
}

// WhileStatement is while (Test) Body.
type WhileStatement struct {
	stmt
	Test Expr
	Body Stmt
}

// ForStatement is for (Init; Test; Update) Body.
type ForStatement struct {
	stmt
	Init   Node // *VariableDeclaration, Expr, or nil
	Test   Expr // or nil
	Update Expr // or nil
	Body   Stmt
}

// ForInStatement is for (Left in Right) Body.
type ForInStatement struct {
	stmt
	Left  Node // *VariableDeclaration or Expr
	Right Expr
	Body  Stmt
}

// ReturnStatement is return [Argument] ';'.
type ReturnStatement struct {
	stmt
	Argument Expr // or nil
}

// BreakStatement is break ';'.
type BreakStatement struct {
	stmt
}

// ContinueStatement is continue ';'.
type ContinueStatement struct {
	stmt
}

// TryStatement is try Block [Handler] [finally Finalizer].
type TryStatement struct {
	stmt
	Block     *BlockStatement
	Handler   *CatchClause    // or nil
	Finalizer *BlockStatement // or nil
}

// CatchClause is catch [(Param)] Body.
type CatchClause struct {
	node
	Param *Identifier // or nil
	Body  *BlockStatement
}

// SwitchStatement is switch (Discriminant) { Cases }.
type SwitchStatement struct {
	stmt
	Discriminant Expr
	Cases        []*SwitchCase
}

// SwitchCase is case Test: Consequent, or default: Consequent if Test is nil.
type SwitchCase struct {
	node
	Test       Expr
	Consequent []Stmt
}

// ImportDeclaration is import Specifiers from Source ';'.
type ImportDeclaration struct {
	stmt
	Specifiers []Node // *ImportDefaultSpecifier, *ImportNamespaceSpecifier, *ImportSpecifier
	Source     *Literal
}

// ImportSpecifier is Imported [as Local] inside braces.
type ImportSpecifier struct {
	node
	Imported *Identifier
	Local    *Identifier
}

// ImportDefaultSpecifier is the bare Local in import Local from "m".
type ImportDefaultSpecifier struct {
	node
	Local *Identifier
}

// ImportNamespaceSpecifier is * as Local.
type ImportNamespaceSpecifier struct {
	node
	Local *Identifier
}

// ExportNamedDeclaration is export Declaration, or
// export { Specifiers } [from Source].
type ExportNamedDeclaration struct {
	stmt
	Declaration Stmt // or nil
	Specifiers  []*ExportSpecifier
	Source      *Literal // or nil
}

// ExportSpecifier is Local [as Exported].
type ExportSpecifier struct {
	node
	Local    *Identifier
	Exported *Identifier
}

// ExportDefaultDeclaration is export default Declaration.
type ExportDefaultDeclaration struct {
	stmt
	Declaration Node // *FunctionDeclaration or Expr
}

// TextStatement is literal template text outside any block.
type TextStatement struct {
	stmt
	Value string
}

// OutputStatement is {{ Expression }}.
type OutputStatement struct {
	stmt
	Expression Expr
}

// ----------------------------------------------------------------------------
// Expressions

// Literal is a number, string, boolean, null or regex literal.
// Value is int64, float64, string, bool or nil. For regex literals Value is
// nil and Regex is set.
type Literal struct {
	expr
	Value any
	Regex *RegexpValue
}

// Identifier is a name.
type Identifier struct {
	expr
	Name string
}

// ThisExpression is this.
type ThisExpression struct {
	expr
}

// TemplateLiteral is `Quasis[0] ${Expressions[0]} Quasis[1] ...`.
// len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	expr
	Quasis      []string
	Expressions []Expr
}

// ArrayExpression is [Elements]. A nil element is a hole.
type ArrayExpression struct {
	expr
	Elements []Expr
}

// ObjectExpression is { Properties }.
type ObjectExpression struct {
	expr
	Properties []*Property
}

// Property is Key: Value inside an object literal.
type Property struct {
	node
	Key       Expr
	Value     Expr
	Computed  bool // [Key]: Value
	Shorthand bool // Key alone; Value is the same identifier
}

// FunctionExpression is function [ID](Params) Body.
type FunctionExpression struct {
	expr
	ID     *Identifier // or nil
	Params []*Identifier
	Body   *BlockStatement
}

// UnaryExpression is Operator Argument.
type UnaryExpression struct {
	expr
	Operator string
	Argument Expr
}

// UpdateExpression is ++Argument, Argument++ and the -- forms.
type UpdateExpression struct {
	expr
	Operator string
	Prefix   bool
	Argument Expr
}

// BinaryExpression is Left Operator Right, including && || ??.
type BinaryExpression struct {
	expr
	Operator string
	Left     Expr
	Right    Expr
}

// AssignmentExpression is Left Operator Right where Operator is = or a
// compound assignment. Left is an *Identifier or *MemberExpression.
type AssignmentExpression struct {
	expr
	Operator string
	Left     Expr
	Right    Expr
}

// ConditionalExpression is Test ? Consequent : Alternate.
type ConditionalExpression struct {
	expr
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// CallExpression is Callee(Arguments) or Callee?.(Arguments).
type CallExpression struct {
	expr
	Callee    Expr
	Arguments []Expr
	Optional  bool
}

// MemberExpression is Object.Property, Object[Property] or the ?. forms.
type MemberExpression struct {
	expr
	Object   Expr
	Property Expr
	Computed bool
	Optional bool
}

// DeleteExpression is delete Argument.
type DeleteExpression struct {
	expr
	Argument Expr
}

// ----------------------------------------------------------------------------
// Discriminators

func (*Program) Type() string                  { return "Program" }
func (*EmptyStatement) Type() string           { return "EmptyStatement" }
func (*BlockStatement) Type() string           { return "BlockStatement" }
func (*ExpressionStatement) Type() string      { return "ExpressionStatement" }
func (*VariableDeclaration) Type() string      { return "VariableDeclaration" }
func (*VariableDeclarator) Type() string       { return "VariableDeclarator" }
func (*FunctionDeclaration) Type() string      { return "FunctionDeclaration" }
func (*IfStatement) Type() string              { return "IfStatement" }
func (*WhileStatement) Type() string           { return "WhileStatement" }
func (*ForStatement) Type() string             { return "ForStatement" }
func (*ForInStatement) Type() string           { return "ForInStatement" }
func (*ReturnStatement) Type() string          { return "ReturnStatement" }
func (*BreakStatement) Type() string           { return "BreakStatement" }
func (*ContinueStatement) Type() string        { return "ContinueStatement" }
func (*TryStatement) Type() string             { return "TryStatement" }
func (*CatchClause) Type() string              { return "CatchClause" }
func (*SwitchStatement) Type() string          { return "SwitchStatement" }
func (*SwitchCase) Type() string               { return "SwitchCase" }
func (*ImportDeclaration) Type() string        { return "ImportDeclaration" }
func (*ImportSpecifier) Type() string          { return "ImportSpecifier" }
func (*ImportDefaultSpecifier) Type() string   { return "ImportDefaultSpecifier" }
func (*ImportNamespaceSpecifier) Type() string { return "ImportNamespaceSpecifier" }
func (*ExportNamedDeclaration) Type() string   { return "ExportNamedDeclaration" }
func (*ExportSpecifier) Type() string          { return "ExportSpecifier" }
func (*ExportDefaultDeclaration) Type() string { return "ExportDefaultDeclaration" }
func (*TextStatement) Type() string            { return "TextStatement" }
func (*OutputStatement) Type() string          { return "OutputStatement" }
func (*Literal) Type() string                  { return "Literal" }
func (*Identifier) Type() string               { return "Identifier" }
func (*ThisExpression) Type() string           { return "ThisExpression" }
func (*TemplateLiteral) Type() string          { return "TemplateLiteral" }
func (*ArrayExpression) Type() string          { return "ArrayExpression" }
func (*ObjectExpression) Type() string         { return "ObjectExpression" }
func (*Property) Type() string                 { return "Property" }
func (*FunctionExpression) Type() string       { return "FunctionExpression" }
func (*UnaryExpression) Type() string          { return "UnaryExpression" }
func (*UpdateExpression) Type() string         { return "UpdateExpression" }
func (*BinaryExpression) Type() string         { return "BinaryExpression" }
func (*AssignmentExpression) Type() string     { return "AssignmentExpression" }
func (*ConditionalExpression) Type() string    { return "ConditionalExpression" }
func (*CallExpression) Type() string           { return "CallExpression" }
func (*MemberExpression) Type() string         { return "MemberExpression" }
func (*DeleteExpression) Type() string         { return "DeleteExpression" }
