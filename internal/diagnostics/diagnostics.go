// Package diagnostics defines the structured error taxonomy produced by
// the lexer and parser (spec.md §7).
package diagnostics

import (
	"fmt"

	"github.com/neonlang/neon/internal/token"
)

// Phase identifies which stage raised an Error.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParser Phase = "parser"
)

// Code enumerates the closed set of parse/lex failures (spec.md §7).
type Code string

const (
	CodeUnknownToken         Code = "UnknownToken"
	CodeUnclosedString       Code = "UnclosedString"
	CodeIntegerOverflow      Code = "IntegerOverflow"
	CodeUnexpectedToken      Code = "UnexpectedToken"
	CodeMalformedLambdaParam Code = "MalformedLambdaParam"
	CodeMissingLambdaArrow   Code = "MissingLambdaArrow"
)

var templates = map[Code]string{
	CodeUnknownToken:         "unknown token %q",
	CodeUnclosedString:       "unclosed string literal",
	CodeIntegerOverflow:      "integer literal overflows 64-bit signed range",
	CodeUnexpectedToken:      "unexpected token %s, expected one of %s",
	CodeMalformedLambdaParam: "malformed lambda parameter: expected an identifier",
	CodeMissingLambdaArrow:   "expected '=>' after typed parameter list",
}

// Error is the single structured error type for both lexer and parser
// failures. There is no recovery: the first Error produced propagates
// unchanged to the caller (spec.md §7 "Propagation policy").
type Error struct {
	Code     Code
	Phase    Phase
	Span     token.Span
	Actual   token.Kind
	Expected []token.Kind
	Lexeme   string
}

func (e *Error) Error() string {
	template := templates[e.Code]
	switch e.Code {
	case CodeUnknownToken:
		return fmt.Sprintf(template, e.Lexeme) + " at " + e.Span.String()
	case CodeUnexpectedToken:
		return fmt.Sprintf(template, e.Actual, kindList(e.Expected)) + " at " + e.Span.String()
	default:
		return template + " at " + e.Span.String()
	}
}

func kindList(kinds []token.Kind) string {
	s := "["
	for i, k := range kinds {
		if i > 0 {
			s += ", "
		}
		s += k.String()
	}
	return s + "]"
}

// NewUnknownToken builds an UnknownToken lex error (spec.md §7).
func NewUnknownToken(span token.Span, lexeme string) *Error {
	return &Error{Code: CodeUnknownToken, Phase: PhaseLexer, Span: span, Lexeme: lexeme}
}

// NewUnclosedString builds an UnclosedString lex error.
func NewUnclosedString(span token.Span) *Error {
	return &Error{Code: CodeUnclosedString, Phase: PhaseLexer, Span: span}
}

// NewIntegerOverflow builds an IntegerOverflow lex error.
func NewIntegerOverflow(span token.Span) *Error {
	return &Error{Code: CodeIntegerOverflow, Phase: PhaseLexer, Span: span}
}

// NewUnexpectedToken builds an UnexpectedToken parse error: the actual
// token kind, its span, and the ordered list of kinds a caller expected.
func NewUnexpectedToken(actual token.Token, expected ...token.Kind) *Error {
	return &Error{
		Code:     CodeUnexpectedToken,
		Phase:    PhaseParser,
		Span:     actual.Span,
		Actual:   actual.Kind,
		Expected: expected,
	}
}

// NewMalformedLambdaParam builds a MalformedLambdaParam parse error: a
// non-identifier expression appeared where a lambda parameter name was
// required.
func NewMalformedLambdaParam(span token.Span) *Error {
	return &Error{Code: CodeMalformedLambdaParam, Phase: PhaseParser, Span: span}
}

// NewMissingLambdaArrow builds a MissingLambdaArrow parse error: a typed
// tuple-like parameter list was not followed by '=>'.
func NewMissingLambdaArrow(span token.Span) *Error {
	return &Error{Code: CodeMissingLambdaArrow, Phase: PhaseParser, Span: span}
}
