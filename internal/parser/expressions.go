package parser

import (
	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// Binding-power table (spec.md §4.3): higher binds tighter; each infix
// operator has an (lbp, rbp) pair, and lbp < rbp encodes left-associativity
// (every binary operator in this table is left-associative).
const (
	lowestBP = 0

	bpLogicalOr  = 1
	bpLogicalAnd = 3
	bpBitwiseOr  = 5
	bpBitwiseAnd = 7
	bpEquality   = 9
	bpRelational = 11
	bpAdditive   = 13
	bpMultiplic  = 15
	bpPrefix     = 17 // rbp for prefix + - !
	bpDot        = 18 // lbp for '.'; rbp is bpDot+1
	bpCall       = 18 // lbp for postfix '('
)

type infixInfo struct {
	lbp, rbp int
	op       ast.BinaryOp
}

var infixTable = map[token.Kind]infixInfo{
	token.LOGICAL_OR:  {bpLogicalOr, bpLogicalOr + 1, ast.OpLogicalOr},
	token.LOGICAL_AND: {bpLogicalAnd, bpLogicalAnd + 1, ast.OpLogicalAnd},
	token.BITWISE_OR:  {bpBitwiseOr, bpBitwiseOr + 1, ast.OpBitwiseOr},
	token.BITWISE_AND: {bpBitwiseAnd, bpBitwiseAnd + 1, ast.OpBitwiseAnd},
	token.EQ:          {bpEquality, bpEquality + 1, ast.OpEQ},
	token.NEQ:         {bpEquality, bpEquality + 1, ast.OpNEQ},
	token.LT:          {bpRelational, bpRelational + 1, ast.OpLT},
	token.LE:          {bpRelational, bpRelational + 1, ast.OpLE},
	token.GT:          {bpRelational, bpRelational + 1, ast.OpGT},
	token.GE:          {bpRelational, bpRelational + 1, ast.OpGE},
	token.PLUS:        {bpAdditive, bpAdditive + 1, ast.OpAdd},
	token.MINUS:       {bpAdditive, bpAdditive + 1, ast.OpSub},
	token.ASTERIX:     {bpMultiplic, bpMultiplic + 1, ast.OpMul},
	token.DIVISION:    {bpMultiplic, bpMultiplic + 1, ast.OpDiv},
	token.PERCENT:     {bpMultiplic, bpMultiplic + 1, ast.OpRem},
}

// parseExpression is the Pratt core (spec.md §4.3):
//
//	parse_expr(min_bp):
//	  lhs = parse_prefix_or_primary()
//	  loop:
//	    if postfix '(' with bp >= min_bp: consume, parse call, continue
//	    if infix (lbp, rbp) with lbp >= min_bp: consume, rhs = parse_expr(rbp), continue
//	    else break
//	  return lhs
func (p *Parser) parseExpression(minBP int) (ast.Expression, *diagnostics.Error) {
	lhs, err := p.parsePrefixOrPrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.cur.Kind == token.L_PARANTHESIS && bpCall >= minBP:
			lhs, err = p.parseCallTail(lhs)
			if err != nil {
				return nil, err
			}

		case p.cur.Kind == token.DOT && bpDot >= minBP:
			p.advance() // consume '.'
			member, err2 := p.expectIdentifier()
			if err2 != nil {
				return nil, err2
			}
			lhs = &ast.MemberAccessExpr{
				Span:   token.Combine(lhs.GetSpan(), member.Span),
				Object: lhs,
				Member: member,
			}

		default:
			info, ok := infixTable[p.cur.Kind]
			if !ok || info.lbp < minBP {
				return lhs, nil
			}
			p.advance()
			rhs, err2 := p.parseExpression(info.rbp)
			if err2 != nil {
				return nil, err2
			}
			lhs = &ast.BinaryExpr{
				Span:  token.Combine(lhs.GetSpan(), rhs.GetSpan()),
				Op:    info.op,
				Left:  lhs,
				Right: rhs,
			}
		}
	}
}

// parsePrefixOrPrimary dispatches prefix operators and every primary form
// (spec.md §4.3/§4.4/§4.5).
func (p *Parser) parsePrefixOrPrimary() (ast.Expression, *diagnostics.Error) {
	switch p.cur.Kind {
	case token.PLUS:
		return p.parseUnary(ast.OpUnaryPlus)
	case token.MINUS:
		return p.parseUnary(ast.OpUnaryMinus)
	case token.LOGICAL_NOT:
		return p.parseUnary(ast.OpLogicalNot)
	case token.INTEGER:
		return p.parseIntegerLiteral()
	case token.DOUBLE:
		return p.parseDoubleLiteral()
	case token.TRUE, token.FALSE:
		return p.parseBooleanLiteral()
	case token.STANDARD_STRING:
		return p.parseStringLiteral()
	case token.SELF_VALUE:
		tok := p.cur
		p.advance()
		return &ast.SelfExpr{Span: tok.Span}, nil
	case token.IDENTIFIER:
		tok := p.cur
		p.advance()
		return &ast.Identifier{Span: tok.Span, Name: tok.Lexeme}, nil
	case token.IF:
		return p.parseIfExpr()
	case token.L_BRACKET:
		return p.parseBlockExpr()
	case token.FOR:
		return p.parseForExpr()
	case token.L_PARANTHESIS:
		return p.parseParenExpr()
	default:
		return nil, unexpected(p.cur,
			token.IDENTIFIER, token.INTEGER, token.DOUBLE, token.STANDARD_STRING,
			token.TRUE, token.FALSE, token.SELF_VALUE, token.IF, token.L_BRACKET,
			token.FOR, token.L_PARANTHESIS, token.PLUS, token.MINUS, token.LOGICAL_NOT)
	}
}

func (p *Parser) parseUnary(op ast.UnaryOp) (ast.Expression, *diagnostics.Error) {
	tok := p.cur
	p.advance()
	operand, err := p.parseExpression(bpPrefix)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{
		Span:    token.Combine(tok.Span, operand.GetSpan()),
		Op:      op,
		Operand: operand,
	}, nil
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, *diagnostics.Error) {
	tok := p.cur
	val, convErr := parseIntegerLexeme(tok.Lexeme)
	if convErr != nil {
		return nil, diagnostics.NewIntegerOverflow(tok.Span)
	}
	p.advance()
	return &ast.IntegerLiteral{Span: tok.Span, Value: val}, nil
}

func (p *Parser) parseDoubleLiteral() (ast.Expression, *diagnostics.Error) {
	tok := p.cur
	val := parseDoubleLexeme(tok.Lexeme)
	p.advance()
	return &ast.DoubleLiteral{Span: tok.Span, Value: val}, nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, *diagnostics.Error) {
	tok := p.cur
	p.advance()
	return &ast.BooleanLiteral{Span: tok.Span, Value: tok.Kind == token.TRUE}, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, *diagnostics.Error) {
	tok := p.cur
	p.advance()
	return &ast.StringLiteral{Span: tok.Span, Raw: tok.Lexeme}, nil
}

// parseCallTail parses a postfix `(args...)` call tail onto an already
// parsed callee (spec.md §4.3 postfix row, bp 18).
func (p *Parser) parseCallTail(callee ast.Expression) (ast.Expression, *diagnostics.Error) {
	p.advance() // consume '('
	args, err := p.parseArgList(token.R_PARANTHESIS)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.R_PARANTHESIS {
		return nil, unexpected(p.cur, token.R_PARANTHESIS)
	}
	rparen := p.cur
	p.advance()
	return &ast.FunctionCall{
		Span:   token.Combine(callee.GetSpan(), rparen.Span),
		Callee: callee,
		Args:   args,
	}, nil
}

// parseArgList parses a comma-separated expression list up to (but not
// consuming) closeKind. Trailing commas are not allowed; an empty list is
// allowed (spec.md §4.3).
func (p *Parser) parseArgList(closeKind token.Kind) ([]ast.Expression, *diagnostics.Error) {
	var args []ast.Expression
	if p.cur.Kind == closeKind {
		return args, nil
	}
	for {
		expr, err := p.parseExpression(lowestBP)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
		if p.cur.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	return args, nil
}

// ---------------------------------------------------------------------
// `(`-initial expression disambiguation (spec.md §4.4)
// ---------------------------------------------------------------------

// parseParenExpr implements the grouped/tuple/lambda disambiguation that
// follows parsing the first expression after '(':
//
//  1. next is ')': grouped expression, or a unary lambda if '=>' follows
//     (the inner expression must then be a bare Identifier).
//  2. next is ':': the leading expression must be an Identifier; this
//     begins a typed lambda parameter list.
//  3. next is ',': gather further expressions; if a ':' appears after one
//     of them, the whole list becomes a typed parameter list (the element
//     immediately before the ':' receives that type); otherwise, after
//     ')', a following '=>' makes it a lambda parameter list (every
//     element must be an Identifier) and its absence makes it a TupleExpr.
//  4. anything else is an error.
func (p *Parser) parseParenExpr() (ast.Expression, *diagnostics.Error) {
	lparen := p.cur
	p.advance() // consume '('

	first, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case token.R_PARANTHESIS:
		rparen := p.cur
		p.advance()
		if p.cur.Kind != token.LAMBDA_ARROW {
			return withExprSpan(first, token.Combine(lparen.Span, rparen.Span)), nil
		}
		name, ok := asIdentifier(first)
		if !ok {
			return nil, diagnostics.NewMalformedLambdaParam(first.GetSpan())
		}
		p.advance() // consume '=>'
		body, err2 := p.parseExpression(lowestBP)
		if err2 != nil {
			return nil, err2
		}
		return &ast.LambdaExpr{
			Span:   token.Combine(lparen.Span, body.GetSpan()),
			Params: []*ast.LambdaParam{{Span: name.Span, Name: name}},
			Body:   body,
		}, nil

	case token.COLON:
		name, ok := asIdentifier(first)
		if !ok {
			return nil, diagnostics.NewMalformedLambdaParam(first.GetSpan())
		}
		return p.parseTypedLambdaTail(lparen, []*ast.LambdaParam{}, name)

	case token.COMMA:
		exprs := []ast.Expression{first}
		for p.cur.Kind == token.COMMA {
			p.advance()
			e, err2 := p.parseExpression(lowestBP)
			if err2 != nil {
				return nil, err2
			}
			exprs = append(exprs, e)
			if p.cur.Kind == token.COLON {
				return p.finishTypedParamListFromExprs(lparen, exprs)
			}
		}
		if p.cur.Kind != token.R_PARANTHESIS {
			return nil, unexpected(p.cur, token.R_PARANTHESIS)
		}
		rparen := p.cur
		p.advance()
		if p.cur.Kind == token.LAMBDA_ARROW {
			params := make([]*ast.LambdaParam, 0, len(exprs))
			for _, e := range exprs {
				name, ok := asIdentifier(e)
				if !ok {
					return nil, diagnostics.NewMalformedLambdaParam(e.GetSpan())
				}
				params = append(params, &ast.LambdaParam{Span: name.Span, Name: name})
			}
			p.advance() // consume '=>'
			body, err2 := p.parseExpression(lowestBP)
			if err2 != nil {
				return nil, err2
			}
			return &ast.LambdaExpr{
				Span:   token.Combine(lparen.Span, body.GetSpan()),
				Params: params,
				Body:   body,
			}, nil
		}
		return &ast.TupleExpr{
			Span:     token.Combine(lparen.Span, rparen.Span),
			Elements: exprs,
		}, nil

	default:
		return nil, unexpected(p.cur, token.R_PARANTHESIS, token.COLON, token.COMMA)
	}
}

// finishTypedParamListFromExprs handles the transition described in
// spec.md §9's flagged case: a comma-separated run of already-parsed bare
// expressions turns out, on encountering ':', to have been a typed lambda
// parameter list all along. The expression immediately before the ':'
// receives the type that follows it; every earlier expression must be a
// bare Identifier (an untyped parameter); parsing then continues as a
// typed parameter list.
func (p *Parser) finishTypedParamListFromExprs(lparen token.Token, exprs []ast.Expression) (ast.Expression, *diagnostics.Error) {
	params := make([]*ast.LambdaParam, 0, len(exprs))
	for _, e := range exprs[:len(exprs)-1] {
		name, ok := asIdentifier(e)
		if !ok {
			return nil, diagnostics.NewMalformedLambdaParam(e.GetSpan())
		}
		params = append(params, &ast.LambdaParam{Span: name.Span, Name: name})
	}
	lastName, ok := asIdentifier(exprs[len(exprs)-1])
	if !ok {
		return nil, diagnostics.NewMalformedLambdaParam(exprs[len(exprs)-1].GetSpan())
	}
	return p.parseTypedLambdaTail(lparen, params, lastName)
}

// parseTypedLambdaTail parses `':' type (',' IDENT (':' type)?)* ')' '=>' body`,
// appending to params (already-gathered untyped leading parameters) a
// parameter for name (annotated with the type that must follow the
// already-current ':') and any further comma-separated parameters.
func (p *Parser) parseTypedLambdaTail(lparen token.Token, params []*ast.LambdaParam, name *ast.Identifier) (ast.Expression, *diagnostics.Error) {
	if p.cur.Kind != token.COLON {
		return nil, unexpected(p.cur, token.COLON)
	}
	p.advance() // consume ':'
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	params = append(params, &ast.LambdaParam{
		Span: token.Combine(name.Span, typ.GetSpan()),
		Name: name,
		Type: typ,
	})

	for p.cur.Kind == token.COMMA {
		p.advance()
		pname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		span := pname.Span
		var ptype ast.Type
		if p.cur.Kind == token.COLON {
			p.advance()
			t, err2 := p.parseType()
			if err2 != nil {
				return nil, err2
			}
			ptype = t
			span = token.Combine(pname.Span, t.GetSpan())
		}
		params = append(params, &ast.LambdaParam{Span: span, Name: pname, Type: ptype})
	}

	if p.cur.Kind != token.R_PARANTHESIS {
		return nil, unexpected(p.cur, token.R_PARANTHESIS)
	}
	p.advance()
	if p.cur.Kind != token.LAMBDA_ARROW {
		return nil, diagnostics.NewMissingLambdaArrow(p.cur.Span)
	}
	p.advance()
	body, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpr{
		Span:   token.Combine(lparen.Span, body.GetSpan()),
		Params: params,
		Body:   body,
	}, nil
}

// withExprSpan returns a copy of e with its Span replaced by span, used to
// extend a grouped expression's span to include its enclosing parens.
func withExprSpan(e ast.Expression, span token.Span) ast.Expression {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.DoubleLiteral:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.BooleanLiteral:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.StringLiteral:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.Identifier:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.SelfExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.BinaryExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.UnaryExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.MemberAccessExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.FunctionCall:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.IfExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.LambdaExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.TupleExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.BlockExpr:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.ForExpr:
		cp := *n
		cp.Span = span
		return &cp
	default:
		return e
	}
}

// ---------------------------------------------------------------------
// if / block / for expressions (spec.md §4.5)
// ---------------------------------------------------------------------

// parseIfExpr parses `'if' '(' cond ')' then ('elif' '(' cond ')' body)* 'else' else`;
// unlike the statement form, `else` is mandatory.
func (p *Parser) parseIfExpr() (ast.Expression, *diagnostics.Error) {
	ifTok := p.cur
	p.advance() // consume 'if'

	cond, err := p.parseParenCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}

	var elifs []*ast.ElifExpr
	for p.cur.Kind == token.ELIF {
		elifTok := p.cur
		p.advance()
		econd, err := p.parseParenCondition()
		if err != nil {
			return nil, err
		}
		ebody, err := p.parseExpression(lowestBP)
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, &ast.ElifExpr{
			Span: token.Combine(elifTok.Span, ebody.GetSpan()),
			Cond: econd,
			Body: ebody,
		})
	}

	if p.cur.Kind != token.ELSE {
		return nil, unexpected(p.cur, token.ELSE)
	}
	p.advance()
	elseExpr, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}

	return &ast.IfExpr{
		Span:  token.Combine(ifTok.Span, elseExpr.GetSpan()),
		Cond:  cond,
		Then:  then,
		Elifs: elifs,
		Else:  elseExpr,
	}, nil
}

func (p *Parser) parseParenCondition() (ast.Expression, *diagnostics.Error) {
	if p.cur.Kind != token.L_PARANTHESIS {
		return nil, unexpected(p.cur, token.L_PARANTHESIS)
	}
	p.advance()
	cond, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.R_PARANTHESIS {
		return nil, unexpected(p.cur, token.R_PARANTHESIS)
	}
	p.advance()
	return cond, nil
}

// parseBlockExpr parses `'{' (stmt sep)* '=>' expr '}'`, also accepting
// the short forms `'{' expr '}'` and `'{' '=>' expr '}'` (spec.md §4.5).
func (p *Parser) parseBlockExpr() (ast.Expression, *diagnostics.Error) {
	lbrace := p.cur
	p.advance() // consume '{'
	p.skipNewlines()

	var stmts []ast.Statement
	for {
		if p.cur.Kind == token.LAMBDA_ARROW {
			p.advance()
			ret, err := p.parseExpression(lowestBP)
			if err != nil {
				return nil, err
			}
			p.skipNewlines()
			if p.cur.Kind != token.R_BRACKET {
				return nil, unexpected(p.cur, token.R_BRACKET)
			}
			rbrace := p.cur
			p.advance()
			return &ast.BlockExpr{Span: token.Combine(lbrace.Span, rbrace.Span), Stmts: stmts, ReturnExpr: ret}, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		separated := p.cur.Kind == token.NEWLINE
		p.skipNewlines()

		if p.cur.Kind == token.R_BRACKET {
			exprStmt, ok := stmt.(*ast.ExpressionStatement)
			if !ok {
				return nil, unexpected(p.cur, token.LAMBDA_ARROW)
			}
			rbrace := p.cur
			p.advance()
			return &ast.BlockExpr{Span: token.Combine(lbrace.Span, rbrace.Span), Stmts: stmts, ReturnExpr: exprStmt.Expr}, nil
		}

		if p.cur.Kind == token.SEMICOLON {
			p.advance()
			separated = true
		}
		if !separated {
			return nil, unexpected(p.cur, token.SEMICOLON, token.NEWLINE, token.R_BRACKET)
		}
		p.skipNewlines()
		stmts = append(stmts, stmt)
	}
}

// parseForExpr parses `'for' '{' for_element (sep for_element)* '}' expr`.
func (p *Parser) parseForExpr() (ast.Expression, *diagnostics.Error) {
	forTok := p.cur
	p.advance() // consume 'for'
	elements, err := p.parseForElementsBlock()
	if err != nil {
		return nil, err
	}
	ret, err := p.parseExpression(lowestBP)
	if err != nil {
		return nil, err
	}
	return &ast.ForExpr{
		Span:       token.Combine(forTok.Span, ret.GetSpan()),
		Elements:   elements,
		ReturnExpr: ret,
	}, nil
}

// parseForElementsBlock parses the `'{' for_element (sep for_element)* '}'`
// header shared by for-expressions and for-statements.
func (p *Parser) parseForElementsBlock() ([]ast.ForElement, *diagnostics.Error) {
	if p.cur.Kind != token.L_BRACKET {
		return nil, unexpected(p.cur, token.L_BRACKET)
	}
	p.advance()
	p.skipNewlines()
	var elems []ast.ForElement
	for p.cur.Kind != token.R_BRACKET {
		el, err := p.parseForElement()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		if p.cur.Kind == token.SEMICOLON || p.cur.Kind == token.NEWLINE {
			for p.cur.Kind == token.SEMICOLON || p.cur.Kind == token.NEWLINE {
				p.advance()
			}
		} else if p.cur.Kind != token.R_BRACKET {
			return nil, unexpected(p.cur, token.SEMICOLON, token.NEWLINE, token.R_BRACKET)
		}
	}
	p.advance() // consume '}'
	return elems, nil
}

// parseForElement parses one `IDENT ('<-' | '=') expr` binding.
func (p *Parser) parseForElement() (ast.ForElement, *diagnostics.Error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	switch p.cur.Kind {
	case token.L_ARROW:
		p.advance()
		rhs, err := p.parseExpression(lowestBP)
		if err != nil {
			return nil, err
		}
		return &ast.ForMonadicElement{Span: token.Combine(name.Span, rhs.GetSpan()), Name: name, Rhs: rhs}, nil
	case token.ASSIGN:
		p.advance()
		rhs, err := p.parseExpression(lowestBP)
		if err != nil {
			return nil, err
		}
		return &ast.ForLetElement{Span: token.Combine(name.Span, rhs.GetSpan()), Name: name, Rhs: rhs}, nil
	default:
		return nil, unexpected(p.cur, token.L_ARROW, token.ASSIGN)
	}
}
