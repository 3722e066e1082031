package parser

import (
	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// parseStatement dispatches by the current token's kind (spec.md §4.6):
// `let`/`while`/`if`/`for` each have a dedicated grammar; anything else is
// parsed as an expression statement.
func (p *Parser) parseStatement() (ast.Statement, *diagnostics.Error) {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLetStatement()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.FOR:
		return p.parseForStmt()
	default:
		expr, err := p.parseExpression(lowestBP)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: expr}, nil
	}
}

// parseLetStatement parses `'let' IDENT (':' type)? '=' expr`.
func (p *Parser) parseLetStatement() (*ast.LetAssignment, *diagnostics.Error) {
	letTok := p.cur
	p.advance() // consume 'let'
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var typ ast.Type
	if p.cur.Kind == token.COLON {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = t
	}
	if p.cur.Kind != token.ASSIGN {
		return nil, unexpected(p.cur, token.ASSIGN)
	}
	p.advance()
	rhs, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}
	return &ast.LetAssignment{
		Span: token.Combine(letTok.Span, rhs.GetSpan()),
		Name: name,
		Type: typ,
		Rhs:  rhs,
	}, nil
}

// parseWhileStmt parses `'while' expr '{' stmt_list '}'` (spec.md §9
// resolved Open Question (c); SPEC_FULL.md §3-9).
func (p *Parser) parseWhileStmt() (*ast.WhileStmt, *diagnostics.Error) {
	whileTok := p.cur
	p.advance() // consume 'while'
	cond, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}
	body, bodySpan, err := p.parseStmtBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{
		Span: token.Combine(whileTok.Span, bodySpan),
		Cond: cond,
		Body: body,
	}, nil
}

// parseIfStmt parses the statement form of `if`: both the leading and
// every `elif` condition are parenthesized (spec.md §9 resolved Open
// Question (d)), the bodies are statement blocks, and `else` is optional
// (distinct from the expression form, spec.md §4.6).
func (p *Parser) parseIfStmt() (*ast.IfStmt, *diagnostics.Error) {
	ifTok := p.cur
	p.advance() // consume 'if'
	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	body, bodySpan, err := p.parseStmtBlock()
	if err != nil {
		return nil, err
	}
	lastSpan := bodySpan

	var elifs []*ast.ElifStmt
	for p.cur.Kind == token.ELIF {
		elifTok := p.cur
		p.advance()
		econd, err := p.parseParenCondition()
		if err != nil {
			return nil, err
		}
		ebody, ebodySpan, err := p.parseStmtBlock()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, &ast.ElifStmt{
			Span: token.Combine(elifTok.Span, ebodySpan),
			Cond: econd,
			Body: ebody,
		})
		lastSpan = ebodySpan
	}

	var elseBody []ast.Statement
	if p.cur.Kind == token.ELSE {
		p.advance()
		eb, ebSpan, err := p.parseStmtBlock()
		if err != nil {
			return nil, err
		}
		elseBody = eb
		lastSpan = ebSpan
	}

	return &ast.IfStmt{
		Span:  token.Combine(ifTok.Span, lastSpan),
		Cond:  cond,
		Body:  body,
		Elifs: elifs,
		Else:  elseBody,
	}, nil
}

// parseForStmt parses the statement form of `for`.
func (p *Parser) parseForStmt() (*ast.ForStmt, *diagnostics.Error) {
	forTok := p.cur
	p.advance() // consume 'for'
	elements, err := p.parseForElementsBlock()
	if err != nil {
		return nil, err
	}
	body, bodySpan, err := p.parseStmtBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{
		Span:     token.Combine(forTok.Span, bodySpan),
		Elements: elements,
		Body:     body,
	}, nil
}

// parseStmtBlock parses `'{' stmt ((';' | '\n') stmt)* '}'`: separators
// only appear between statements, with an optional trailing separator
// before `}` (spec.md §4.6).
func (p *Parser) parseStmtBlock() ([]ast.Statement, token.Span, *diagnostics.Error) {
	if p.cur.Kind != token.L_BRACKET {
		return nil, token.Span{}, unexpected(p.cur, token.L_BRACKET)
	}
	lbrace := p.cur
	p.advance()
	p.skipNewlines()

	var stmts []ast.Statement
	for p.cur.Kind != token.R_BRACKET {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, token.Span{}, err
		}
		stmts = append(stmts, stmt)
		if p.cur.Kind == token.SEMICOLON || p.cur.Kind == token.NEWLINE {
			for p.cur.Kind == token.SEMICOLON || p.cur.Kind == token.NEWLINE {
				p.advance()
			}
		} else if p.cur.Kind != token.R_BRACKET {
			return nil, token.Span{}, unexpected(p.cur, token.SEMICOLON, token.NEWLINE, token.R_BRACKET)
		}
	}
	rbrace := p.cur
	p.advance()
	return stmts, token.Combine(lbrace.Span, rbrace.Span), nil
}

// ---------------------------------------------------------------------
// Top-level program (SPEC_FULL.md §12)
// ---------------------------------------------------------------------

// parseProgram parses the full sequence of top-level items to EOF.
func (p *Parser) parseProgram() (*ast.Program, *diagnostics.Error) {
	p.skipNewlinesAndSemicolons()
	var items []ast.TopLevel
	for p.cur.Kind != token.EOF {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipNewlinesAndSemicolons()
	}
	return &ast.Program{Items: items}, nil
}

func (p *Parser) skipNewlinesAndSemicolons() {
	for p.cur.Kind == token.NEWLINE || p.cur.Kind == token.SEMICOLON {
		p.advance()
	}
}

// parseTopLevel dispatches one top-level item by its leading keyword
// (SPEC_FULL.md §12): `fun`, `namespace`, `type`, `typeclass`, `import`,
// or `let` (the last reusing the statement-level grammar unchanged).
func (p *Parser) parseTopLevel() (ast.TopLevel, *diagnostics.Error) {
	switch p.cur.Kind {
	case token.FUN:
		return p.parseFunctionDefinition()
	case token.NAMESPACE:
		return p.parseNamespace()
	case token.TYPE:
		return p.parseTypeDefinition()
	case token.TYPECLASS:
		return p.parseTypeclassDefinition()
	case token.IMPORT:
		return p.parseImport()
	case token.LET:
		return p.parseLetStatement()
	default:
		return nil, unexpected(p.cur, token.FUN, token.NAMESPACE, token.TYPE, token.TYPECLASS, token.IMPORT, token.LET)
	}
}

// parseFunctionDefinition parses
// `'fun' IDENT '(' param_list ')' (':' type)? '=>' expr`
// (SPEC_FULL.md §12); param_list reuses the LambdaParam shape (name with
// an optional type annotation). The return type is parsed as an opt_type,
// so the '=>' after a named, Self or optional return type starts the body;
// an unparenthesized lambda return type is not accepted, and a
// parenthesized return type followed by '=>' is read as a lambda type.
func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, *diagnostics.Error) {
	funTok := p.cur
	p.advance() // consume 'fun'
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.L_PARANTHESIS {
		return nil, unexpected(p.cur, token.L_PARANTHESIS)
	}
	p.advance()

	var params []*ast.LambdaParam
	if p.cur.Kind != token.R_PARANTHESIS {
		for {
			pname, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			span := pname.Span
			var ptype ast.Type
			if p.cur.Kind == token.COLON {
				p.advance()
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				ptype = t
				span = token.Combine(pname.Span, t.GetSpan())
			}
			params = append(params, &ast.LambdaParam{Span: span, Name: pname, Type: ptype})
			if p.cur.Kind != token.COMMA {
				break
			}
			p.advance()
		}
	}
	if p.cur.Kind != token.R_PARANTHESIS {
		return nil, unexpected(p.cur, token.R_PARANTHESIS)
	}
	p.advance()

	var retType ast.Type
	if p.cur.Kind == token.COLON {
		p.advance()
		t, err := p.parseOptType()
		if err != nil {
			return nil, err
		}
		retType = t
	}
	if p.cur.Kind != token.LAMBDA_ARROW {
		return nil, diagnostics.NewMissingLambdaArrow(p.cur.Span)
	}
	p.advance()
	body, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefinition{
		Span:    token.Combine(funTok.Span, body.GetSpan()),
		Name:    name,
		Params:  params,
		RetType: retType,
		Body:    body,
	}, nil
}

// parseNamespace parses `'namespace' NamedType '{' top_level* '}'`.
func (p *Parser) parseNamespace() (*ast.Namespace, *diagnostics.Error) {
	nsTok := p.cur
	p.advance() // consume 'namespace'
	path, err := p.parseNamedTypeValue()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.L_BRACKET {
		return nil, unexpected(p.cur, token.L_BRACKET)
	}
	p.advance()
	p.skipNewlinesAndSemicolons()

	var items []ast.TopLevel
	for p.cur.Kind != token.R_BRACKET {
		item, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipNewlinesAndSemicolons()
	}
	rbrace := p.cur
	p.advance()
	return &ast.Namespace{
		Span:  token.Combine(nsTok.Span, rbrace.Span),
		Path:  path,
		Items: items,
	}, nil
}

// parseTypeDefinition parses `'type' IDENT '=' type`.
func (p *Parser) parseTypeDefinition() (*ast.TypeDefinition, *diagnostics.Error) {
	typeTok := p.cur
	p.advance() // consume 'type'
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.ASSIGN {
		return nil, unexpected(p.cur, token.ASSIGN)
	}
	p.advance()
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeDefinition{
		Span: token.Combine(typeTok.Span, typ.GetSpan()),
		Name: name,
		Type: typ,
	}, nil
}

// parseTypeclassDefinition parses `'typeclass' IDENT '{' (IDENT ':' type)* '}'`.
func (p *Parser) parseTypeclassDefinition() (*ast.TypeclassDefinition, *diagnostics.Error) {
	tcTok := p.cur
	p.advance() // consume 'typeclass'
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.L_BRACKET {
		return nil, unexpected(p.cur, token.L_BRACKET)
	}
	p.advance()
	p.skipNewlinesAndSemicolons()

	var members []*ast.TypeclassMember
	for p.cur.Kind != token.R_BRACKET {
		mname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != token.COLON {
			return nil, unexpected(p.cur, token.COLON)
		}
		p.advance()
		mtype, err := p.parseType()
		if err != nil {
			return nil, err
		}
		members = append(members, &ast.TypeclassMember{
			Span: token.Combine(mname.Span, mtype.GetSpan()),
			Name: mname,
			Type: mtype,
		})
		p.skipNewlinesAndSemicolons()
	}
	rbrace := p.cur
	p.advance()
	return &ast.TypeclassDefinition{
		Span:    token.Combine(tcTok.Span, rbrace.Span),
		Name:    name,
		Members: members,
	}, nil
}

// parseImport parses either `'import' NamedType` (DirectImport) or
// `'import' IDENT 'for' NamedType` (TypeclassImport); the two are
// disambiguated with a single token of lookahead on the identifier right
// after `import` (SPEC_FULL.md §12: TypeclassImport's typeclass name is a
// bare IDENT, never a path, so this never needs more than one peek).
func (p *Parser) parseImport() (ast.TopLevel, *diagnostics.Error) {
	importTok := p.cur
	p.advance() // consume 'import'
	if p.cur.Kind != token.IDENTIFIER {
		return nil, unexpected(p.cur, token.IDENTIFIER)
	}

	if p.peek.Kind == token.FOR {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		p.advance() // consume 'for'
		target, err := p.parseNamedTypeValue()
		if err != nil {
			return nil, err
		}
		return &ast.TypeclassImport{
			Span:      token.Combine(importTok.Span, target.GetSpan()),
			Typeclass: name,
			Target:    target,
		}, nil
	}

	path, err := p.parseNamedTypeValue()
	if err != nil {
		return nil, err
	}
	return &ast.DirectImport{
		Span: token.Combine(importTok.Span, path.GetSpan()),
		Path: path,
	}, nil
}
