package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	p := New(lexer.New(src))
	expr, err := p.ParseExpression()
	require.Nil(t, err, "unexpected parse error for %q: %v", src, err)
	return expr
}

func parseExprErr(t *testing.T, src string) {
	t.Helper()
	p := New(lexer.New(src))
	_, err := p.ParseExpression()
	require.NotNil(t, err, "expected parse error for %q", src)
}

func parseTypeOK(t *testing.T, src string) ast.Type {
	t.Helper()
	p := New(lexer.New(src))
	typ, err := p.ParseType()
	require.Nil(t, err, "unexpected parse error for %q: %v", src, err)
	return typ
}

func parseStmtOK(t *testing.T, src string) ast.Statement {
	t.Helper()
	p := New(lexer.New(src))
	stmt, err := p.ParseStatement()
	require.Nil(t, err, "unexpected parse error for %q: %v", src, err)
	return stmt
}

func parseProgramOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	require.Nil(t, err, "unexpected parse error for %q: %v", src, err)
	return prog
}

func TestParseExpression_PrecedenceMulBeforeAdd(t *testing.T) {
	expr := parseExpr(t, "i + j * k")
	add, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	_, ok = add.Left.(*ast.Identifier)
	require.True(t, ok)
	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
}

func TestParseExpression_LeftAssociativeSubtraction(t *testing.T) {
	expr := parseExpr(t, "a - b - c")
	outer, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, outer.Op)
	inner, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, inner.Op)
	rightID, ok := outer.Right.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "c", rightID.Name)
}

func TestParseExpression_UnaryBindsTighterThanBinary(t *testing.T) {
	expr := parseExpr(t, "-a + b")
	add, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	unary, ok := add.Left.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpUnaryMinus, unary.Op)
}

func TestParseExpression_CallAndMemberAccess(t *testing.T) {
	expr := parseExpr(t, "a.b(c, d)")
	call, ok := expr.(*ast.FunctionCall)
	require.True(t, ok)
	member, ok := call.Callee.(*ast.MemberAccessExpr)
	require.True(t, ok)
	obj, ok := member.Object.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", obj.Name)
	assert.Equal(t, "b", member.Member.Name)
	require.Len(t, call.Args, 2)
}

func TestParseExpression_GroupedExpression(t *testing.T) {
	expr := parseExpr(t, "(a + b) * c")
	mul, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
	_, ok = mul.Left.(*ast.BinaryExpr)
	require.True(t, ok)
}

func TestParseExpression_UnaryLambda(t *testing.T) {
	expr := parseExpr(t, "(a) => a + 1")
	lam, ok := expr.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
	assert.Equal(t, "a", lam.Params[0].Name.Name)
	assert.Nil(t, lam.Params[0].Type)
}

func TestParseExpression_UntypedMultiParamLambda(t *testing.T) {
	expr := parseExpr(t, "(a, b) => a + b")
	lam, ok := expr.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
	assert.Equal(t, "a", lam.Params[0].Name.Name)
	assert.Equal(t, "b", lam.Params[1].Name.Name)
}

func TestParseExpression_TypedLambdaParams(t *testing.T) {
	expr := parseExpr(t, "(a: Int, b: Int) => a + b")
	lam, ok := expr.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
	require.NotNil(t, lam.Params[0].Type)
	nt, ok := lam.Params[0].Type.(*ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, "Int", nt.Name)
}

func TestParseExpression_TypedLambdaMidListTransition(t *testing.T) {
	// The leading params are bare identifiers parsed speculatively as
	// expressions; only upon hitting ':' does the whole list become a
	// typed parameter list.
	expr := parseExpr(t, "(a, b, c: Int) => c")
	lam, ok := expr.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lam.Params, 3)
	assert.Nil(t, lam.Params[0].Type)
	assert.Nil(t, lam.Params[1].Type)
	require.NotNil(t, lam.Params[2].Type)
}

func TestParseExpression_Tuple(t *testing.T) {
	expr := parseExpr(t, "(1, 2, 3)")
	tup, ok := expr.(*ast.TupleExpr)
	require.True(t, ok)
	require.Len(t, tup.Elements, 3)
}

func TestParseExpression_SingleParenIsGrouping(t *testing.T) {
	expr := parseExpr(t, "(1)")
	lit, ok := expr.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Value)
}

func TestParseExpression_IfExpr(t *testing.T) {
	expr := parseExpr(t, "if (a) 1 elif (b) 2 else 3")
	ifExpr, ok := expr.(*ast.IfExpr)
	require.True(t, ok)
	require.Len(t, ifExpr.Elifs, 1)
	require.NotNil(t, ifExpr.Else)
}

func TestParseExpression_IfExprRequiresElse(t *testing.T) {
	parseExprErr(t, "if (a) 1")
}

func TestParseExpression_BlockShortForm(t *testing.T) {
	expr := parseExpr(t, "{ 1 + 2 }")
	block, ok := expr.(*ast.BlockExpr)
	require.True(t, ok)
	assert.Empty(t, block.Stmts)
	require.NotNil(t, block.ReturnExpr)
}

func TestParseExpression_BlockWithStatements(t *testing.T) {
	expr := parseExpr(t, "{ let x = 1; x + 1 }")
	block, ok := expr.(*ast.BlockExpr)
	require.True(t, ok)
	require.Len(t, block.Stmts, 1)
	_, ok = block.Stmts[0].(*ast.LetAssignment)
	require.True(t, ok)
}

func TestParseExpression_ForExpr(t *testing.T) {
	expr := parseExpr(t, "for { x <- xs; y = x + 1 } y")
	forExpr, ok := expr.(*ast.ForExpr)
	require.True(t, ok)
	require.Len(t, forExpr.Elements, 2)
	_, ok = forExpr.Elements[0].(*ast.ForMonadicElement)
	require.True(t, ok)
	_, ok = forExpr.Elements[1].(*ast.ForLetElement)
	require.True(t, ok)
}

func TestParseExpression_StringLiteral(t *testing.T) {
	expr := parseExpr(t, `"hello"`)
	str, ok := expr.(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, `"hello"`, str.Raw)
}

func TestParseExpression_MalformedLambdaParamRejected(t *testing.T) {
	parseExprErr(t, "(1) => 1")
}

func TestParseType_NamedPath(t *testing.T) {
	typ := parseTypeOK(t, "a::b::c")
	nt, ok := typ.(*ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, nt.Path)
	assert.Equal(t, "c", nt.Name)
}

func TestParseType_OptionalChain(t *testing.T) {
	typ := parseTypeOK(t, "Int??")
	outer, ok := typ.(*ast.OptionalType)
	require.True(t, ok)
	inner, ok := outer.Inner.(*ast.OptionalType)
	require.True(t, ok)
	_, ok = inner.Inner.(*ast.NamedType)
	require.True(t, ok)
}

func TestParseType_TupleType(t *testing.T) {
	typ := parseTypeOK(t, "(Int & String)")
	tup, ok := typ.(*ast.TupleType)
	require.True(t, ok)
	require.Len(t, tup.Parts, 2)
}

func TestParseType_UnionType(t *testing.T) {
	typ := parseTypeOK(t, "(Int | Double)")
	uni, ok := typ.(*ast.UnionType)
	require.True(t, ok)
	require.Len(t, uni.Parts, 2)
}

func TestParseType_LambdaTypeFromParenList(t *testing.T) {
	typ := parseTypeOK(t, "(Int, Int) => Int")
	lam, ok := typ.(*ast.LambdaType)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
}

func TestParseType_LambdaTypeFromUnionParam(t *testing.T) {
	typ := parseTypeOK(t, "(Int | Double) => String")
	lam, ok := typ.(*ast.LambdaType)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
	_, ok = lam.Params[0].(*ast.UnionType)
	require.True(t, ok)
}

func TestParseType_ArrowTypeRightAssociative(t *testing.T) {
	typ := parseTypeOK(t, "Int => Int => Int")
	outer, ok := typ.(*ast.LambdaType)
	require.True(t, ok)
	_, ok = outer.Ret.(*ast.LambdaType)
	require.True(t, ok)
}

func TestParseStatement_Let(t *testing.T) {
	stmt := parseStmtOK(t, "let x: Int = 1")
	let, ok := stmt.(*ast.LetAssignment)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name.Name)
	require.NotNil(t, let.Type)
}

func TestParseStatement_While(t *testing.T) {
	stmt := parseStmtOK(t, "while a { b }")
	while, ok := stmt.(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, while.Body, 1)
}

func TestParseStatement_IfWithoutElseIsLegal(t *testing.T) {
	stmt := parseStmtOK(t, "if (a) { b }")
	ifStmt, ok := stmt.(*ast.IfStmt)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
}

func TestParseStatement_IfElifElse(t *testing.T) {
	stmt := parseStmtOK(t, "if (a) { b } elif (c) { d } else { e }")
	ifStmt, ok := stmt.(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Elifs, 1)
	require.Len(t, ifStmt.Else, 1)
}

func TestParseStatement_ExpressionStatement(t *testing.T) {
	stmt := parseStmtOK(t, "a + b")
	_, ok := stmt.(*ast.ExpressionStatement)
	require.True(t, ok)
}

func TestParseProgram_FunctionDefinition(t *testing.T) {
	prog := parseProgramOK(t, "fun add(a: Int, b: Int): Int => a + b")
	require.Len(t, prog.Items, 1)
	fn, ok := prog.Items[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.RetType)
}

func TestParseProgram_Namespace(t *testing.T) {
	prog := parseProgramOK(t, "namespace a::b { type X = Int }")
	require.Len(t, prog.Items, 1)
	ns, ok := prog.Items[0].(*ast.Namespace)
	require.True(t, ok)
	assert.Equal(t, "b", ns.Path.Name)
	require.Len(t, ns.Items, 1)
}

func TestParseProgram_TypeDefinition(t *testing.T) {
	// union_type is only recognized inside the '('-gated form (spec.md
	// §4.2 "inside '(' only"); a bare top-level union is not valid type
	// syntax, so the right-hand side must be parenthesized here.
	prog := parseProgramOK(t, "type X = (Int | String)")
	def, ok := prog.Items[0].(*ast.TypeDefinition)
	require.True(t, ok)
	assert.Equal(t, "X", def.Name.Name)
}

func TestParseProgram_TypeclassDefinition(t *testing.T) {
	prog := parseProgramOK(t, "typeclass Show { show: Self => String }")
	tc, ok := prog.Items[0].(*ast.TypeclassDefinition)
	require.True(t, ok)
	require.Len(t, tc.Members, 1)
	assert.Equal(t, "show", tc.Members[0].Name.Name)
}

func TestParseProgram_DirectImport(t *testing.T) {
	prog := parseProgramOK(t, "import a::b::C")
	imp, ok := prog.Items[0].(*ast.DirectImport)
	require.True(t, ok)
	assert.Equal(t, "C", imp.Path.Name)
}

func TestParseProgram_TypeclassImport(t *testing.T) {
	prog := parseProgramOK(t, "import Show for a::b::C")
	imp, ok := prog.Items[0].(*ast.TypeclassImport)
	require.True(t, ok)
	assert.Equal(t, "Show", imp.Typeclass.Name)
	assert.Equal(t, "C", imp.Target.Name)
}

func TestParseProgram_TopLevelLet(t *testing.T) {
	prog := parseProgramOK(t, "let x = 1")
	_, ok := prog.Items[0].(*ast.LetAssignment)
	require.True(t, ok)
}

func TestParseProgram_MultipleItemsSeparatedByNewlines(t *testing.T) {
	prog := parseProgramOK(t, "type X = Int\nlet x: X = 1\n")
	require.Len(t, prog.Items, 2)
}
