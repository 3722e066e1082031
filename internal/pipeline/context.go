package pipeline

import (
	"github.com/neonlang/neon/internal/ast"
	"github.com/neonlang/neon/internal/diagnostics"
)

// PipelineContext holds the data passed between pipeline stages: the
// source text, the token stream the lexer stage produces, the AST root
// the parser stage produces, and the diagnostics accumulated so far.
// Trimmed from the teacher's PipelineContext, which additionally carried
// a symbol table, an inferred-type map, trait-dispatch tables, and a
// module loader — all analyzer/evaluator concerns this module does not
// implement (spec.md §1, DESIGN.md "Dropped teacher modules").
type PipelineContext struct {
	SourceCode  string
	TokenStream TokenStream
	AstRoot     ast.Node
	Errors      []*diagnostics.Error
}

// NewPipelineContext creates and initializes a new PipelineContext.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Errors:     []*diagnostics.Error{},
	}
}
