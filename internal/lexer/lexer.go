// Package lexer turns a Neon source buffer into a stream of tokens.
package lexer

import (
	"strconv"

	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// Lexer is a one-token-lookahead tokenizer over a source buffer. It owns a
// byte cursor and a single-token peek buffer (spec.md §4.1): Peek is
// idempotent until Advance commits the peeked token.
type Lexer struct {
	input string
	pos   int // offset of the next unconsumed byte

	peeked  *token.Token
	lexErr  *diagnostics.Error
	errored bool
}

// New creates a Lexer over source.
func New(source string) *Lexer {
	return &Lexer{input: source}
}

func (l *Lexer) chAt(pos int) byte {
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func (l *Lexer) ch() byte {
	return l.chAt(l.pos)
}

func (l *Lexer) peekByte() byte {
	return l.chAt(l.pos + 1)
}

func (l *Lexer) advanceByte() {
	l.pos++
}

// Peek returns the next token without consuming it. Calling Peek repeatedly
// without an intervening Advance returns the same token. Once a lex error
// has occurred, Peek keeps returning that same error (spec.md §4.1).
func (l *Lexer) Peek() (token.Token, *diagnostics.Error) {
	if l.errored {
		return token.Token{}, l.lexErr
	}
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.lexNext()
	if err != nil {
		l.errored = true
		l.lexErr = err
		return token.Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Advance commits the peeked token so the following Peek lexes the token
// after it.
func (l *Lexer) Advance() {
	l.peeked = nil
}

// Next is a convenience combining Peek and Advance, used by callers that
// only need a forward-only stream (e.g. the public Lex entry point).
func (l *Lexer) Next() (token.Token, *diagnostics.Error) {
	tok, err := l.Peek()
	if err != nil {
		return token.Token{}, err
	}
	l.Advance()
	return tok, nil
}

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isHorizontalSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\f', '\v':
		return true
	}
	return false
}

func simple(kind token.Kind, start int, lexeme string) token.Token {
	return token.Token{Kind: kind, Span: token.Span{Start: start, End: start + len(lexeme)}, Lexeme: lexeme}
}

// lexNext implements the rule order from spec.md §4.1, first match wins.
func (l *Lexer) lexNext() (token.Token, *diagnostics.Error) {
	start := l.pos

	// 1. empty input
	if l.ch() == 0 {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: start, End: start}}, nil
	}

	// 2. horizontal whitespace run
	if isHorizontalSpace(l.ch()) {
		for isHorizontalSpace(l.ch()) {
			l.advanceByte()
		}
		return l.lexNext()
	}

	// 3. newline run
	if l.ch() == '\n' {
		for l.ch() == '\n' {
			l.advanceByte()
		}
		return simple(token.NEWLINE, start, l.input[start:l.pos]), nil
	}

	// 4. keyword / identifier
	if isAlpha(l.ch()) {
		for isAlnum(l.ch()) {
			l.advanceByte()
		}
		lexeme := l.input[start:l.pos]
		return simple(token.LookupIdent(lexeme), start, lexeme), nil
	}

	// 5. numeric: double before integer
	if isDigit(l.ch()) {
		return l.lexNumber(start)
	}
	if l.ch() == '.' && isDigit(l.peekByte()) {
		return l.lexNumber(start)
	}

	// 6. string literal
	if l.ch() == '"' {
		return l.lexString(start)
	}

	// 7. line comment
	if l.ch() == '/' && l.peekByte() == '/' {
		for l.ch() != '\n' && l.ch() != 0 {
			l.advanceByte()
		}
		return simple(token.LINE_COMMENT_START, start, l.input[start:l.pos]), nil
	}

	// 8. multi-byte operators, longest first
	if tok, ok := l.lexMultiByteOperator(start); ok {
		return tok, nil
	}

	// 9. single-byte tokens
	if kind, ok := singleByteKinds[l.ch()]; ok {
		lexeme := l.input[start : start+1]
		l.advanceByte()
		return simple(kind, start, lexeme), nil
	}

	// 10. unknown byte
	l.advanceByte()
	span := token.Span{Start: start, End: start + 1}
	return token.Token{}, diagnostics.NewUnknownToken(span, l.input[start:start+1])
}

var singleByteKinds = map[byte]token.Kind{
	':': token.COLON,
	'.': token.DOT,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.ASTERIX,
	'/': token.DIVISION,
	'%': token.PERCENT,
	'<': token.LT,
	'>': token.GT,
	'=': token.ASSIGN,
	'!': token.LOGICAL_NOT,
	'(': token.L_PARANTHESIS,
	')': token.R_PARANTHESIS,
	'{': token.L_BRACKET,
	'}': token.R_BRACKET,
	'|': token.BITWISE_OR,
	'&': token.BITWISE_AND,
	',': token.COMMA,
	';': token.SEMICOLON,
	'?': token.QUESTIONMARK,
}

type multiByteRule struct {
	lexeme string
	kind   token.Kind
}

// Longer prefixes are listed first so a fixed linear scan never lets a
// shorter rule shadow a longer one (spec.md §4.1 rule 8).
var multiByteRules = []multiByteRule{
	{"->", token.R_ARROW},
	{"<-", token.L_ARROW},
	{"<=", token.LE},
	{">=", token.GE},
	{"==", token.EQ},
	{"!=", token.NEQ},
	{"=>", token.LAMBDA_ARROW},
	{"||", token.LOGICAL_OR},
	{"&&", token.LOGICAL_AND},
	{"::", token.COLON_COLON},
}

func (l *Lexer) lexMultiByteOperator(start int) (token.Token, bool) {
	for _, rule := range multiByteRules {
		if l.matchesAt(start, rule.lexeme) {
			for range rule.lexeme {
				l.advanceByte()
			}
			return simple(rule.kind, start, rule.lexeme), true
		}
	}
	return token.Token{}, false
}

func (l *Lexer) matchesAt(start int, lexeme string) bool {
	if start+len(lexeme) > len(l.input) {
		return false
	}
	return l.input[start:start+len(lexeme)] == lexeme
}

// lexNumber parses the double regex first, then the integer regex, per
// spec.md §4.1 rule 5. Multi-digit integers with a leading zero are
// rejected (resolved Open Question (a), SPEC_FULL.md).
func (l *Lexer) lexNumber(start int) (token.Token, *diagnostics.Error) {
	// Consume leading integer digits (possibly none, if we started on '.').
	digitsStart := l.pos
	for isDigit(l.ch()) {
		l.advanceByte()
	}
	hasIntPart := l.pos > digitsStart

	isDouble := false
	if l.ch() == '.' {
		// Only a double if at least one digit precedes or follows the dot.
		if hasIntPart || isDigit(l.peekByte()) {
			isDouble = true
			l.advanceByte() // consume '.'
			for isDigit(l.ch()) {
				l.advanceByte()
			}
		}
	}
	if (l.ch() == 'e' || l.ch() == 'E') && isDouble {
		save := l.pos
		l.advanceByte()
		if l.ch() == '+' || l.ch() == '-' {
			l.advanceByte()
		}
		if isDigit(l.ch()) {
			for isDigit(l.ch()) {
				l.advanceByte()
			}
		} else {
			l.pos = save // not a valid exponent, back off
		}
	}

	lexeme := l.input[start:l.pos]
	span := token.Span{Start: start, End: l.pos}

	if isDouble {
		return token.Token{Kind: token.DOUBLE, Span: span, Lexeme: lexeme}, nil
	}

	// Integer: reject multi-digit literals with a leading zero.
	if len(lexeme) > 1 && lexeme[0] == '0' {
		return token.Token{}, diagnostics.NewUnknownToken(span, lexeme)
	}
	if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
		return token.Token{}, diagnostics.NewIntegerOverflow(span)
	}
	return token.Token{Kind: token.INTEGER, Span: span, Lexeme: lexeme}, nil
}

// lexString scans to the next unescaped '"'. Escapes are recognized
// lexically as an unread two-byte `\X` sequence (resolved Open Question
// (b), SPEC_FULL.md) but not interpreted; the span covers the outer quotes.
func (l *Lexer) lexString(start int) (token.Token, *diagnostics.Error) {
	l.advanceByte() // consume opening quote
	for {
		switch l.ch() {
		case 0:
			return token.Token{}, diagnostics.NewUnclosedString(token.Span{Start: start, End: l.pos})
		case '\\':
			l.advanceByte()
			if l.ch() != 0 {
				l.advanceByte()
			}
		case '"':
			l.advanceByte()
			lexeme := l.input[start:l.pos]
			return token.Token{Kind: token.STANDARD_STRING, Span: token.Span{Start: start, End: l.pos}, Lexeme: lexeme}, nil
		default:
			l.advanceByte()
		}
	}
}
