package neon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/token"
)

func TestLex_EmptyInputYieldsEOF(t *testing.T) {
	toks := Lex("")
	require.Len(t, toks, 1)
	assert.Nil(t, toks[0].Err)
	assert.Equal(t, token.EOF, toks[0].Token.Kind)
}

func TestLex_StopsAtFirstError(t *testing.T) {
	toks := Lex("let @")
	last := toks[len(toks)-1]
	require.NotNil(t, last.Err)
}

func TestLex_SkipsNothingButWhitespace(t *testing.T) {
	toks := Lex("let x")
	for _, tok := range toks {
		assert.NotEqual(t, token.WHITESPACE, tok.Token.Kind)
	}
}

func TestParseExpression_ArithmeticPrecedence(t *testing.T) {
	expr, err := ParseExpression("i + j * k")
	require.NoError(t, err)
	add, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	mul, ok := add.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
}

func TestParseExpression_SimpleLambda(t *testing.T) {
	expr, err := ParseExpression("(a, b) => a + b")
	require.NoError(t, err)
	lam, ok := expr.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lam.Params, 2)
}

func TestParseExpression_SurfacesParseError(t *testing.T) {
	_, err := ParseExpression("1 +")
	require.Error(t, err)
}

func TestParseType_OptionalNamedPath(t *testing.T) {
	typ, err := ParseType("a::b::c?")
	require.NoError(t, err)
	opt, ok := typ.(*ast.OptionalType)
	require.True(t, ok)
	named, ok := opt.Inner.(*ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, named.Path)
	assert.Equal(t, "c", named.Name)
}

func TestParseType_UnionLambdaParam(t *testing.T) {
	typ, err := ParseType("(Int | Double) => String")
	require.NoError(t, err)
	lam, ok := typ.(*ast.LambdaType)
	require.True(t, ok)
	require.Len(t, lam.Params, 1)
	_, ok = lam.Params[0].(*ast.UnionType)
	require.True(t, ok)
}

func TestParseStatement_IfElseBlock(t *testing.T) {
	stmt, err := ParseStatement("if (a) { b } else { c }")
	require.NoError(t, err)
	ifStmt, ok := stmt.(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Else, 1)
}

func TestParseProgram_FunctionAndNamespace(t *testing.T) {
	src := `
namespace app {
  fun add(a: Int, b: Int): Int => a + b
}
`
	prog, err := ParseProgram(src)
	require.NoError(t, err)
	require.Len(t, prog.Items, 1)
	ns, ok := prog.Items[0].(*ast.Namespace)
	require.True(t, ok)
	require.Len(t, ns.Items, 1)
	_, ok = ns.Items[0].(*ast.FunctionDefinition)
	require.True(t, ok)
}

func TestParseProgram_PropagatesFirstError(t *testing.T) {
	_, err := ParseProgram("fun broken(")
	require.Error(t, err)
}
