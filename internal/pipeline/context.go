package pipeline

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
)

// PipelineContext holds all the data passed between pipeline stages.
type PipelineContext struct {
	SourceCode  string
	FilePath    string // Path to the source file (if any)
	TokenStream TokenStream
	AstRoot     *ast.Program
	Errors      []*diagnostics.DiagnosticError

	// Module loader - shared between parser-level imports and the
	// analyzer. Declared as interface{} to avoid an import cycle with
	// the modules package.
	Loader interface{}
}

// NewPipelineContext creates and initializes a new PipelineContext.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		SourceCode: source,
		Errors:     []*diagnostics.DiagnosticError{},
	}
}
