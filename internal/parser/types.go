package parser

import (
	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// parseType is the top-level type grammar entry point (spec.md §4.2):
//
//	type       = arrow_type
//	arrow_type = opt_type ( '=>' arrow_type )?        — right-assoc
//	opt_type   = atom_type ( '?' )*
//	atom_type  = NamedType | SelfType | '(' ... ')'
//
// union_type/tuple_type ('|'/'&') only exist inside the parenthesized
// atom_type form (spec.md §4.2: "inside '(' only") — parseParenType
// implements that disambiguation directly rather than threading an
// insideParens flag through every level.
func (p *Parser) parseType() (ast.Type, *diagnostics.Error) {
	return p.parseArrowType()
}

func (p *Parser) parseArrowType() (ast.Type, *diagnostics.Error) {
	left, err := p.parseOptType()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.LAMBDA_ARROW {
		return left, nil
	}
	p.advance() // consume '=>'
	ret, err := p.parseArrowType()
	if err != nil {
		return nil, err
	}
	return &ast.LambdaType{
		Span:   token.Combine(left.GetSpan(), ret.GetSpan()),
		Params: []ast.Type{left},
		Ret:    ret,
	}, nil
}

func (p *Parser) parseOptType() (ast.Type, *diagnostics.Error) {
	atom, err := p.parseAtomType()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.QUESTIONMARK {
		span := token.Combine(atom.GetSpan(), p.cur.Span)
		p.advance()
		atom = &ast.OptionalType{Span: span, Inner: atom}
	}
	return atom, nil
}

func (p *Parser) parseAtomType() (ast.Type, *diagnostics.Error) {
	switch p.cur.Kind {
	case token.SELF_TYPE:
		tok := p.cur
		p.advance()
		return &ast.SelfType{Span: tok.Span}, nil
	case token.IDENTIFIER:
		nt, err := p.parseNamedTypeValue()
		if err != nil {
			return nil, err
		}
		return nt, nil
	case token.L_PARANTHESIS:
		return p.parseParenType()
	default:
		return nil, unexpected(p.cur, token.IDENTIFIER, token.SELF_TYPE, token.L_PARANTHESIS)
	}
}

// parseNamedTypeValue parses `IDENT ( '::' IDENT )*` and returns the
// concrete *ast.NamedType (rather than the ast.Type interface), for
// callers (import/namespace grammar, SPEC_FULL.md §12) that need the
// concrete path/name fields.
func (p *Parser) parseNamedTypeValue() (*ast.NamedType, *diagnostics.Error) {
	if p.cur.Kind != token.IDENTIFIER {
		return nil, unexpected(p.cur, token.IDENTIFIER)
	}
	startSpan := p.cur.Span
	names := []string{p.cur.Lexeme}
	lastSpan := p.cur.Span
	p.advance()
	for p.cur.Kind == token.COLON_COLON {
		p.advance()
		if p.cur.Kind != token.IDENTIFIER {
			return nil, unexpected(p.cur, token.IDENTIFIER)
		}
		names = append(names, p.cur.Lexeme)
		lastSpan = p.cur.Span
		p.advance()
	}
	return &ast.NamedType{
		Span: token.Combine(startSpan, lastSpan),
		Path: names[:len(names)-1],
		Name: names[len(names)-1],
	}, nil
}

// parseParenType implements the parenthesis-form disambiguation from
// spec.md §4.2: parse one arrow_type, then branch on the token that
// follows it.
func (p *Parser) parseParenType() (ast.Type, *diagnostics.Error) {
	lparen := p.cur
	p.advance() // consume '('

	first, err := p.parseArrowType()
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case token.BITWISE_AND:
		parts := []ast.Type{first}
		for p.cur.Kind == token.BITWISE_AND {
			p.advance()
			next, err := p.parseArrowType()
			if err != nil {
				return nil, err
			}
			parts = append(parts, next)
		}
		if p.cur.Kind != token.R_PARANTHESIS {
			return nil, unexpected(p.cur, token.R_PARANTHESIS)
		}
		rparen := p.cur
		p.advance()
		tup := &ast.TupleType{Span: token.Combine(lparen.Span, rparen.Span), Parts: parts}
		return p.maybeTypeLambdaTail(tup)

	case token.BITWISE_OR:
		parts := []ast.Type{first}
		for p.cur.Kind == token.BITWISE_OR {
			p.advance()
			next, err := p.parseArrowType()
			if err != nil {
				return nil, err
			}
			parts = append(parts, next)
		}
		if p.cur.Kind != token.R_PARANTHESIS {
			return nil, unexpected(p.cur, token.R_PARANTHESIS)
		}
		rparen := p.cur
		p.advance()
		uni := &ast.UnionType{Span: token.Combine(lparen.Span, rparen.Span), Parts: parts}
		return p.maybeTypeLambdaTail(uni)

	case token.COMMA:
		items := []ast.Type{first}
		for p.cur.Kind == token.COMMA {
			p.advance()
			next, err := p.parseArrowType()
			if err != nil {
				return nil, err
			}
			items = append(items, next)
		}
		if p.cur.Kind != token.R_PARANTHESIS {
			return nil, unexpected(p.cur, token.R_PARANTHESIS)
		}
		p.advance() // consume ')'
		if p.cur.Kind != token.LAMBDA_ARROW {
			return nil, diagnostics.NewMissingLambdaArrow(p.cur.Span)
		}
		p.advance() // consume '=>'
		ret, err := p.parseArrowType()
		if err != nil {
			return nil, err
		}
		return &ast.LambdaType{
			Span:   token.Combine(lparen.Span, ret.GetSpan()),
			Params: items,
			Ret:    ret,
		}, nil

	case token.R_PARANTHESIS:
		rparen := p.cur
		p.advance()
		grouped := withTypeSpan(first, token.Combine(lparen.Span, rparen.Span))
		return p.maybeTypeLambdaTail(grouped)

	default:
		return nil, unexpected(p.cur, token.R_PARANTHESIS, token.COMMA, token.BITWISE_AND, token.BITWISE_OR)
	}
}

// maybeTypeLambdaTail checks for a trailing '=> arrow_type' after a
// parenthesized group (spec.md §4.2 "lambda_tail"); inner becomes the
// group's sole parameter.
func (p *Parser) maybeTypeLambdaTail(inner ast.Type) (ast.Type, *diagnostics.Error) {
	if p.cur.Kind != token.LAMBDA_ARROW {
		return inner, nil
	}
	p.advance()
	ret, err := p.parseArrowType()
	if err != nil {
		return nil, err
	}
	return &ast.LambdaType{
		Span:   token.Combine(inner.GetSpan(), ret.GetSpan()),
		Params: []ast.Type{inner},
		Ret:    ret,
	}, nil
}

// withTypeSpan returns a copy of t with its Span replaced by span, used
// to extend a grouped type's span to include its enclosing parens
// (spec.md's GLOSSARY "Grouped expression" applies equally to types).
func withTypeSpan(t ast.Type, span token.Span) ast.Type {
	switch n := t.(type) {
	case *ast.NamedType:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.OptionalType:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.TupleType:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.UnionType:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.LambdaType:
		cp := *n
		cp.Span = span
		return &cp
	case *ast.SelfType:
		cp := *n
		cp.Span = span
		return &cp
	default:
		return t
	}
}
