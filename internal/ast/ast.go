// Package ast defines Neon's abstract syntax tree: a small set of sum
// types (Type, Expression, Statement, TopLevel), each variant an enum tag
// dispatched via a Go type switch, and each node carrying its own source
// Span as a plain field rather than through a base class (spec.md §9's
// explicit composition-over-inheritance guidance).
package ast

import (
	"github.com/samber/lo"

	"github.com/neonlang/neon/internal/token"
)

// Node is satisfied by every AST node.
type Node interface {
	GetSpan() token.Span
}

// Type is the sum type of type expressions (spec.md §3).
type Type interface {
	Node
	typeNode()
}

// Expression is the sum type of value expressions (spec.md §3).
type Expression interface {
	Node
	expressionNode()
}

// Statement is the sum type of statements (spec.md §3).
type Statement interface {
	Node
	statementNode()
}

// TopLevel is the sum type of top-level program items (spec.md §3,
// SPEC_FULL.md §12).
type TopLevel interface {
	Node
	topLevelNode()
}

// ForElement is the sum type of `for`-expression/statement bindings.
type ForElement interface {
	Node
	forElementNode()
}

// Program is the typed AST root: an ordered list of top-level items
// (spec.md §6's "TopLevelProgram").
type Program struct {
	Items []TopLevel
}

// GetSpan combines the spans of every top-level item via lo.Reduce, rather
// than special-casing first/last: an empty Program has a zero Span.
func (p *Program) GetSpan() token.Span {
	spans := lo.Map(p.Items, func(item TopLevel, _ int) token.Span { return item.GetSpan() })
	return lo.Reduce(spans, func(acc token.Span, s token.Span, i int) token.Span {
		if i == 0 {
			return s
		}
		return token.Combine(acc, s)
	}, token.Span{})
}

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

// NamedType is a possibly-qualified type name: `path::name`. Path may be
// empty for an unqualified name.
type NamedType struct {
	Span token.Span
	Path []string
	Name string
}

func (t *NamedType) GetSpan() token.Span { return t.Span }
func (t *NamedType) typeNode()           {}

// OptionalType is `Inner?`.
type OptionalType struct {
	Span  token.Span
	Inner Type
}

func (t *OptionalType) GetSpan() token.Span { return t.Span }
func (t *OptionalType) typeNode()           {}

// TupleType is `(A & B & ...)`, at least two parts.
type TupleType struct {
	Span  token.Span
	Parts []Type
}

func (t *TupleType) GetSpan() token.Span { return t.Span }
func (t *TupleType) typeNode()           {}

// UnionType is `(A | B | ...)`, at least two parts.
type UnionType struct {
	Span  token.Span
	Parts []Type
}

func (t *UnionType) GetSpan() token.Span { return t.Span }
func (t *UnionType) typeNode()           {}

// LambdaType is `(P1, P2, ...) => Ret`; Params may be empty.
type LambdaType struct {
	Span   token.Span
	Params []Type
	Ret    Type
}

func (t *LambdaType) GetSpan() token.Span { return t.Span }
func (t *LambdaType) typeNode()           {}

// SelfType is the bare `Self` type keyword.
type SelfType struct {
	Span token.Span
}

func (t *SelfType) GetSpan() token.Span { return t.Span }
func (t *SelfType) typeNode()           {}

// ---------------------------------------------------------------------
// Expressions: literals
// ---------------------------------------------------------------------

// IntegerLiteral is a literal fitting in a signed 64-bit integer
// (overflow is rejected by the lexer, spec.md §3 invariant).
type IntegerLiteral struct {
	Span  token.Span
	Value int64
}

func (e *IntegerLiteral) GetSpan() token.Span { return e.Span }
func (e *IntegerLiteral) expressionNode()     {}

// DoubleLiteral is a floating-point literal.
type DoubleLiteral struct {
	Span  token.Span
	Value float64
}

func (e *DoubleLiteral) GetSpan() token.Span { return e.Span }
func (e *DoubleLiteral) expressionNode()     {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Span  token.Span
	Value bool
}

func (e *BooleanLiteral) GetSpan() token.Span { return e.Span }
func (e *BooleanLiteral) expressionNode()     {}

// StringLiteral holds the raw lexeme, quotes included; escape-sequence
// interpretation is deferred to semantic analysis (spec.md §9 Open
// Question (b)).
type StringLiteral struct {
	Span token.Span
	Raw  string
}

func (e *StringLiteral) GetSpan() token.Span { return e.Span }
func (e *StringLiteral) expressionNode()     {}

// Identifier is a bare name reference, also used as the LambdaParam /
// ForElement name and as a pattern payload in lambda-parameter
// disambiguation (spec.md §4.4).
type Identifier struct {
	Span token.Span
	Name string
}

func (e *Identifier) GetSpan() token.Span { return e.Span }
func (e *Identifier) expressionNode()     {}

// SelfExpr is the bare `self` value keyword.
type SelfExpr struct {
	Span token.Span
}

func (e *SelfExpr) GetSpan() token.Span { return e.Span }
func (e *SelfExpr) expressionNode()     {}

// ---------------------------------------------------------------------
// Expressions: operators
// ---------------------------------------------------------------------

// BinaryOp enumerates the binary operator tags (spec.md §3); dispatch is
// via this tag rather than one struct type per operator (spec.md §9).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpLogicalOr
	OpLogicalAnd
	OpBitwiseOr
	OpBitwiseAnd
	OpLT
	OpLE
	OpGT
	OpGE
	OpEQ
	OpNEQ
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Span  token.Span
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *BinaryExpr) GetSpan() token.Span { return e.Span }
func (e *BinaryExpr) expressionNode()     {}

// UnaryOp enumerates the prefix operator tags (spec.md §3).
type UnaryOp int

const (
	OpUnaryPlus UnaryOp = iota
	OpUnaryMinus
	OpLogicalNot
)

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	Span    token.Span
	Op      UnaryOp
	Operand Expression
}

func (e *UnaryExpr) GetSpan() token.Span { return e.Span }
func (e *UnaryExpr) expressionNode()     {}

// MemberAccessExpr is `Object.Member` (spec.md §3 binary `MemberAccess`,
// split out of BinaryExpr because its right side is a field name, not an
// arbitrary expression).
type MemberAccessExpr struct {
	Span   token.Span
	Object Expression
	Member *Identifier
}

func (e *MemberAccessExpr) GetSpan() token.Span { return e.Span }
func (e *MemberAccessExpr) expressionNode()     {}

// ---------------------------------------------------------------------
// Expressions: compound forms
// ---------------------------------------------------------------------

// FunctionCall is `Callee(Args...)`.
type FunctionCall struct {
	Span   token.Span
	Callee Expression
	Args   []Expression
}

func (e *FunctionCall) GetSpan() token.Span { return e.Span }
func (e *FunctionCall) expressionNode()     {}

// ElifExpr is one `elif (cond) body` arm of an if-expression.
type ElifExpr struct {
	Span token.Span
	Cond Expression
	Body Expression
}

func (e *ElifExpr) GetSpan() token.Span { return e.Span }

// IfExpr is `if (cond) then (elif (cond) body)* else else` — the else
// branch is mandatory in expression position (spec.md §4.5).
type IfExpr struct {
	Span  token.Span
	Cond  Expression
	Then  Expression
	Elifs []*ElifExpr
	Else  Expression
}

func (e *IfExpr) GetSpan() token.Span { return e.Span }
func (e *IfExpr) expressionNode()     {}

// LambdaParam is a lambda parameter: a name with an optional type
// annotation (spec.md §3).
type LambdaParam struct {
	Span token.Span
	Name *Identifier
	Type Type // nil if unannotated
}

func (p *LambdaParam) GetSpan() token.Span { return p.Span }

// LambdaExpr is `(params) => body`. The parser never sets RetType: a
// `(params): RetType => body` form is not accepted.
type LambdaExpr struct {
	Span    token.Span
	Params  []*LambdaParam
	RetType Type // nil if unannotated
	Body    Expression
}

func (e *LambdaExpr) GetSpan() token.Span { return e.Span }
func (e *LambdaExpr) expressionNode()     {}

// TupleExpr is `(e1, e2, ...)`, at least two elements (spec.md §3
// invariant; a parenthesized single expression collapses to its inner
// value and is never represented as a one-element TupleExpr).
type TupleExpr struct {
	Span     token.Span
	Elements []Expression
}

func (e *TupleExpr) GetSpan() token.Span { return e.Span }
func (e *TupleExpr) expressionNode()     {}

// BlockExpr is `{ stmt (sep stmt)* => expr }`; it always ends with a
// return expression (spec.md §3 invariant).
type BlockExpr struct {
	Span       token.Span
	Stmts      []Statement
	ReturnExpr Expression
}

func (e *BlockExpr) GetSpan() token.Span { return e.Span }
func (e *BlockExpr) expressionNode()     {}

// ForLetElement is `name = rhs` inside a for-expression/statement header.
type ForLetElement struct {
	Span token.Span
	Name *Identifier
	Rhs  Expression
}

func (e *ForLetElement) GetSpan() token.Span { return e.Span }
func (e *ForLetElement) forElementNode()     {}

// ForMonadicElement is `name <- rhs` inside a for-expression/statement
// header (a "monadic for-element", GLOSSARY).
type ForMonadicElement struct {
	Span token.Span
	Name *Identifier
	Rhs  Expression
}

func (e *ForMonadicElement) GetSpan() token.Span { return e.Span }
func (e *ForMonadicElement) forElementNode()     {}

// ForExpr is `for { for_element (sep for_element)* } ret_expr`.
type ForExpr struct {
	Span       token.Span
	Elements   []ForElement
	ReturnExpr Expression
}

func (e *ForExpr) GetSpan() token.Span { return e.Span }
func (e *ForExpr) expressionNode()     {}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// LetAssignment is `let name (: type)? = rhs`. It appears both as a
// statement and (unchanged) as a TopLevel item (spec.md §3,
// SPEC_FULL.md §12).
type LetAssignment struct {
	Span token.Span
	Name *Identifier
	Type Type // nil if unannotated
	Rhs  Expression
}

func (s *LetAssignment) GetSpan() token.Span { return s.Span }
func (s *LetAssignment) statementNode()      {}
func (s *LetAssignment) topLevelNode()       {}

// WhileStmt is `while cond { stmt_list }` (spec.md §9 Open Question (c)).
type WhileStmt struct {
	Span token.Span
	Cond Expression
	Body []Statement
}

func (s *WhileStmt) GetSpan() token.Span { return s.Span }
func (s *WhileStmt) statementNode()      {}

// ElifStmt is one `elif (cond) { body }` arm of an if-statement.
type ElifStmt struct {
	Span token.Span
	Cond Expression
	Body []Statement
}

func (s *ElifStmt) GetSpan() token.Span { return s.Span }

// IfStmt is the statement form of `if`: body is a statement block and
// `else` is optional (spec.md §4.6, distinct from IfExpr).
type IfStmt struct {
	Span  token.Span
	Cond  Expression
	Body  []Statement
	Elifs []*ElifStmt
	Else  []Statement // nil if absent
}

func (s *IfStmt) GetSpan() token.Span { return s.Span }
func (s *IfStmt) statementNode()      {}

// ForStmt is the statement form of `for`.
type ForStmt struct {
	Span     token.Span
	Elements []ForElement
	Body     []Statement
}

func (s *ForStmt) GetSpan() token.Span { return s.Span }
func (s *ForStmt) statementNode()      {}

// ReturnStmt is an explicit return of Expr from a statement block. Neon
// has no `return` keyword, and no parser production constructs it.
type ReturnStmt struct {
	Span token.Span
	Expr Expression
}

func (s *ReturnStmt) GetSpan() token.Span { return s.Span }
func (s *ReturnStmt) statementNode()      {}

// ExpressionStatement wraps a bare Expression used in statement position
// (spec.md §3: `Statement ::= ... | Expression`).
type ExpressionStatement struct {
	Expr Expression
}

func (s *ExpressionStatement) GetSpan() token.Span { return s.Expr.GetSpan() }
func (s *ExpressionStatement) statementNode()      {}

// ---------------------------------------------------------------------
// Top-level items (SPEC_FULL.md §12)
// ---------------------------------------------------------------------

// FunctionDefinition is `fun name(params) (: type)? => body`.
type FunctionDefinition struct {
	Span    token.Span
	Name    *Identifier
	Params  []*LambdaParam
	RetType Type // nil if unannotated
	Body    Expression
}

func (d *FunctionDefinition) GetSpan() token.Span { return d.Span }
func (d *FunctionDefinition) topLevelNode()       {}

// Namespace is `namespace path { items* }`.
type Namespace struct {
	Span  token.Span
	Path  *NamedType
	Items []TopLevel
}

func (d *Namespace) GetSpan() token.Span { return d.Span }
func (d *Namespace) topLevelNode()       {}

// TypeDefinition is `type Name = type`, a type alias binding.
type TypeDefinition struct {
	Span token.Span
	Name *Identifier
	Type Type
}

func (d *TypeDefinition) GetSpan() token.Span { return d.Span }
func (d *TypeDefinition) topLevelNode()       {}

// TypeclassMember is one `name: type` required-signature entry in a
// typeclass definition.
type TypeclassMember struct {
	Span token.Span
	Name *Identifier
	Type Type
}

// TypeclassDefinition is `typeclass Name { (name: type)* }`.
type TypeclassDefinition struct {
	Span    token.Span
	Name    *Identifier
	Members []*TypeclassMember
}

func (d *TypeclassDefinition) GetSpan() token.Span { return d.Span }
func (d *TypeclassDefinition) topLevelNode()       {}

// DirectImport is `import path`.
type DirectImport struct {
	Span token.Span
	Path *NamedType
}

func (d *DirectImport) GetSpan() token.Span { return d.Span }
func (d *DirectImport) topLevelNode()       {}

// TypeclassImport is `import Typeclass for Type`.
type TypeclassImport struct {
	Span      token.Span
	Typeclass *Identifier
	Target    *NamedType
}

func (d *TypeclassImport) GetSpan() token.Span { return d.Span }
func (d *TypeclassImport) topLevelNode()       {}
