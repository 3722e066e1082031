// Package parser implements Neon's recursive-descent parser: statement,
// type, and expression grammars, the latter built on a Pratt-style
// operator-precedence engine (spec.md §4). A single Parser type holds the
// token stream and two-token lookahead buffer; its methods are organized
// into per-construct slices across parser.go (core/precedence/helpers),
// types.go (type grammar), expressions.go (Pratt core + primaries), and
// statements.go (statement + top-level grammar) — one parser type with
// private methods per slice, per spec.md §9's guidance against reproducing
// the source's CRTP-mixin layering.
package parser

import (
	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/pipeline"
	"github.com/neonlang/neon/internal/token"
)

// Parser is a recursive-descent parser with two-token lookahead (cur,
// peek) over a pipeline.TokenStream. There is no error recovery: once a
// lex error occurs, it is latched in err and every subsequent token read
// by the parser resolves to END_OF_FILE so that following/loops terminate
// and the latched error propagates unchanged to the caller (spec.md §7).
type Parser struct {
	stream pipeline.TokenStream

	cur  token.Token
	peek token.Token
	err  *diagnostics.Error
}

// New creates a Parser over stream, priming cur/peek with the stream's
// first two non-trivia tokens.
func New(stream pipeline.TokenStream) *Parser {
	p := &Parser{stream: stream}
	p.advance()
	p.advance()
	return p
}

// pull reads the next non-trivia token from the stream: LINE_COMMENT_START
// is discarded here (spec.md §4.1: "the parser treats it as trivia").
// WHITESPACE never reaches the parser at all — the lexer folds it away
// internally before a token is ever produced.
func (p *Parser) pull() (token.Token, *diagnostics.Error) {
	for {
		tok, err := p.stream.Peek()
		if err != nil {
			return token.Token{}, err
		}
		p.stream.Advance()
		if tok.Kind == token.LINE_COMMENT_START {
			continue
		}
		return tok, nil
	}
}

// advance shifts peek into cur and pulls a new peek token. Once err is
// latched, advance is a no-op that forces both cur and peek to EOF, so any
// `for p.cur.Kind == X { p.advance() }` loop terminates immediately rather
// than spinning on a frozen token.
func (p *Parser) advance() {
	if p.err != nil {
		p.cur = token.Token{Kind: token.EOF}
		p.peek = token.Token{Kind: token.EOF}
		return
	}
	p.cur = p.peek
	tok, err := p.pull()
	if err != nil {
		p.err = err
		p.peek = token.Token{Kind: token.EOF}
		return
	}
	p.peek = tok
}

func (p *Parser) skipNewlines() {
	for p.cur.Kind == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expectIdentifier() (*ast.Identifier, *diagnostics.Error) {
	if p.cur.Kind != token.IDENTIFIER {
		return nil, unexpected(p.cur, token.IDENTIFIER)
	}
	id := &ast.Identifier{Span: p.cur.Span, Name: p.cur.Lexeme}
	p.advance()
	return id, nil
}

func asIdentifier(e ast.Expression) (*ast.Identifier, bool) {
	id, ok := e.(*ast.Identifier)
	return id, ok
}

// ---------------------------------------------------------------------
// Public entry points (spec.md §6)
// ---------------------------------------------------------------------

// ParseExpression parses a single expression and requires the stream to
// be exhausted afterward.
func (p *Parser) ParseExpression() (ast.Expression, *diagnostics.Error) {
	p.skipNewlines()
	expr, err := p.parseExpression(lowestBP)
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.cur.Kind != token.EOF {
		return nil, unexpected(p.cur, token.EOF)
	}
	return expr, nil
}

// ParseType parses a single type expression and requires the stream to be
// exhausted afterward.
func (p *Parser) ParseType() (ast.Type, *diagnostics.Error) {
	p.skipNewlines()
	typ, err := p.parseType()
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.cur.Kind != token.EOF {
		return nil, unexpected(p.cur, token.EOF)
	}
	return typ, nil
}

// ParseStatement parses a single statement and requires the stream to be
// exhausted afterward.
func (p *Parser) ParseStatement() (ast.Statement, *diagnostics.Error) {
	p.skipNewlines()
	stmt, err := p.parseStatement()
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.cur.Kind != token.EOF {
		return nil, unexpected(p.cur, token.EOF)
	}
	return stmt, nil
}

// ParseProgram parses a full top-level program to EOF.
func (p *Parser) ParseProgram() (*ast.Program, *diagnostics.Error) {
	prog, err := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	if err != nil {
		return nil, err
	}
	return prog, nil
}
