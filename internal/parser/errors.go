package parser

import (
	"github.com/samber/lo"

	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// unexpected builds an UnexpectedToken diagnostic, de-duplicating the
// expected-kind list callers assemble from more than one production
// alternative (SPEC_FULL.md §11).
func unexpected(actual token.Token, expected ...token.Kind) *diagnostics.Error {
	return diagnostics.NewUnexpectedToken(actual, lo.Uniq(expected)...)
}
