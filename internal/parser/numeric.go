package parser

import "strconv"

// parseIntegerLexeme and parseDoubleLexeme are the "Parser utilities"
// component from spec.md §2: small numeric parsers over already-lexed
// token lexemes. The lexer has already validated the digit grammar
// (spec.md §4.1 rule 5) and rejected overflow at lex time for integers, so
// a conversion failure here can only be a genuine 64-bit overflow a test
// harness feeds the parser directly (bypassing the lexer).
func parseIntegerLexeme(lexeme string) (int64, error) {
	return strconv.ParseInt(lexeme, 10, 64)
}

// parseDoubleLexeme parses a lexeme matching the double regex (spec.md
// §6). The double grammar can never produce a strconv syntax error. For an
// out-of-range magnitude strconv returns +/-Inf together with a range
// error; that error is discarded here, so the literal's value is +/-Inf.
func parseDoubleLexeme(lexeme string) float64 {
	val, _ := strconv.ParseFloat(lexeme, 64)
	return val
}
