package pipeline

import (
	"github.com/neonlang/neon/internal/diagnostics"
	"github.com/neonlang/neon/internal/token"
)

// Processor is any component that can process a
// PipelineContext and return a modified context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// TokenStream is the one-token-lookahead contract the parser consumes
// (spec.md §4.1). It matches *lexer.Lexer's own method set directly —
// Neon never needs the teacher's n-token ring-buffer window, only the
// single peeked token spec.md §4.1 describes.
type TokenStream interface {
	Peek() (token.Token, *diagnostics.Error)
	Advance()
}
