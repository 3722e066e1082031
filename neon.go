// Package neon implements the front end (lexer and parser) for the Neon
// expression-oriented language. It exposes the five entry points named in
// spec.md §6; everything else lives under internal/.
package neon

import (
	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/lexer"
	"github.com/neonlang/neon/internal/parser"
	"github.com/neonlang/neon/internal/token"
)

// Token pairs a lexed token with the error, if any, produced while
// reaching it. Lex stops (and the final element carries the error) at the
// first lex error, matching the no-recovery propagation policy (spec.md §7).
type Token struct {
	Token token.Token
	Err   error
}

// Lex tokenizes source to END_OF_FILE, returning every non-trivia token
// (spec.md §6). LINE_COMMENT_START is trivia from the parser's perspective
// but is still surfaced here, since tool consumers of the raw token stream
// (syntax highlighters, formatters) need it; NEWLINE is significant to the
// grammar and is always included.
func Lex(source string) []Token {
	lx := lexer.New(source)
	var out []Token
	for {
		tok, err := lx.Peek()
		if err != nil {
			out = append(out, Token{Err: err})
			return out
		}
		lx.Advance()
		out = append(out, Token{Token: tok})
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// ParseExpression parses source as a single expression.
func ParseExpression(source string) (ast.Expression, error) {
	p := parser.New(lexer.New(source))
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseType parses source as a single type expression.
func ParseType(source string) (ast.Type, error) {
	p := parser.New(lexer.New(source))
	typ, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	return typ, nil
}

// ParseStatement parses source as a single statement.
func ParseStatement(source string) (ast.Statement, error) {
	p := parser.New(lexer.New(source))
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// ParseProgram parses source as a full program: a sequence of top-level
// items (function, namespace, type, typeclass, and import definitions, plus
// top-level let-assignments).
func ParseProgram(source string) (*ast.Program, error) {
	p := parser.New(lexer.New(source))
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return prog, nil
}
