package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// allTokens drains a lexer to EOF (inclusive). On the first lex error it
// stops and returns that error with the tokens read before it, rather than
// failing the test, since lex errors are the thing most of these cases
// actually want to assert on.
func allTokens(t *testing.T, src string) ([]token.Token, *diagnostics.Error) {
	t.Helper()
	lx := New(src)
	var toks []token.Token
	for {
		tok, err := lx.Peek()
		if err != nil {
			return toks, err
		}
		lx.Advance()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexer_EmptyInput(t *testing.T) {
	toks, err := allTokens(t, "")
	require.Nil(t, err)
	assert.Equal(t, []token.Kind{token.EOF}, kinds(toks))
}

func TestLexer_KeywordPrefixIsIdentifier(t *testing.T) {
	// "lets" starts with the keyword "let" but is itself a plain identifier
	// (spec.md §6: keywords must be followed by a non-identifier byte).
	toks, err := allTokens(t, "lets")
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.IDENTIFIER, toks[0].Kind)
	assert.Equal(t, "lets", toks[0].Lexeme)
}

func TestLexer_KeywordExact(t *testing.T) {
	toks, err := allTokens(t, "let")
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.LET, toks[0].Kind)
}

func TestLexer_MultiByteOperatorsPreferLongestMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Kind
	}{
		{"arrow not lt-minus", "<-", []token.Kind{token.L_ARROW, token.EOF}},
		{"lambda arrow not assign-gt", "=>", []token.Kind{token.LAMBDA_ARROW, token.EOF}},
		{"le not lt-assign", "<=", []token.Kind{token.LE, token.EOF}},
		{"ge not gt-assign", ">=", []token.Kind{token.GE, token.EOF}},
		{"eq not assign-assign", "==", []token.Kind{token.EQ, token.EOF}},
		{"neq", "!=", []token.Kind{token.NEQ, token.EOF}},
		{"logical or", "||", []token.Kind{token.LOGICAL_OR, token.EOF}},
		{"logical and", "&&", []token.Kind{token.LOGICAL_AND, token.EOF}},
		{"r arrow", "->", []token.Kind{token.R_ARROW, token.EOF}},
		{"colon colon", "::", []token.Kind{token.COLON_COLON, token.EOF}},
		{"lone lt then minus", "< -", []token.Kind{token.LT, token.MINUS, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := allTokens(t, tt.input)
			require.Nil(t, err)
			assert.Equal(t, tt.expected, kinds(toks))
		})
	}
}

func TestLexer_IntegerVsDouble(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  token.Kind
	}{
		{"bare integer", "0", token.INTEGER},
		{"multi-digit integer", "123", token.INTEGER},
		{"leading dot double", ".5", token.DOUBLE},
		{"trailing dot double", "5.", token.DOUBLE},
		{"full double", "1.5", token.DOUBLE},
		{"exponent double", "1.5e10", token.DOUBLE},
		{"exponent signed double", "1.5e-10", token.DOUBLE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := allTokens(t, tt.input)
			require.Nil(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.kind, toks[0].Kind)
		})
	}
}

func TestLexer_LeadingZeroIntegerRejected(t *testing.T) {
	// Resolved Open Question: multi-digit integers with a leading zero are
	// not a valid INTEGER token (the grammar is `0 | [1-9][0-9]*`); the
	// lexer reports UnknownToken rather than silently truncating to "0".
	_, err := allTokens(t, "007")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.CodeUnknownToken, err.Code)
}

func TestLexer_IntegerOverflow(t *testing.T) {
	_, err := allTokens(t, "99999999999999999999")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.CodeIntegerOverflow, err.Code)
}

func TestLexer_UnclosedString(t *testing.T) {
	_, err := allTokens(t, `"abc`)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.CodeUnclosedString, err.Code)
}

func TestLexer_StringWithEscape(t *testing.T) {
	toks, err := allTokens(t, `"a\"b"`)
	require.Nil(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STANDARD_STRING, toks[0].Kind)
}

func TestLexer_UnknownByte(t *testing.T) {
	_, err := allTokens(t, "@")
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.CodeUnknownToken, err.Code)
}

func TestLexer_LineCommentIsOwnTokenThenNewline(t *testing.T) {
	toks, err := allTokens(t, "// hi\nlet")
	require.Nil(t, err)
	require.True(t, len(toks) >= 1)
	assert.Equal(t, token.LINE_COMMENT_START, toks[0].Kind)
	assert.Equal(t, []token.Kind{token.LINE_COMMENT_START, token.NEWLINE, token.LET, token.EOF}, kinds(toks))
}

func TestLexer_WhitespaceIsNeverEmitted(t *testing.T) {
	toks, err := allTokens(t, "   let   ")
	require.Nil(t, err)
	for _, tok := range toks {
		assert.NotEqual(t, token.WHITESPACE, tok.Kind)
	}
}

func TestLexer_NewlineRunIsSingleToken(t *testing.T) {
	toks, err := allTokens(t, "let\n\n\nlet")
	require.Nil(t, err)
	assert.Equal(t, []token.Kind{token.LET, token.NEWLINE, token.LET, token.EOF}, kinds(toks))
}

func TestLexer_PeekIsIdempotent(t *testing.T) {
	lx := New("let x")
	first, err := lx.Peek()
	require.Nil(t, err)
	second, err := lx.Peek()
	require.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestLexer_StickyErrorOnRepeatedPeek(t *testing.T) {
	lx := New("@")
	_, err1 := lx.Peek()
	require.NotNil(t, err1)
	_, err2 := lx.Peek()
	require.NotNil(t, err2)
	assert.Equal(t, err1, err2)
}
