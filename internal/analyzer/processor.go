package analyzer

import (
	"github.com/wynlang/wyn/internal/pipeline"
)

// AnalyzerProcessor runs semantic analysis as a pipeline stage.
type AnalyzerProcessor struct {
	Analyzer *Analyzer
}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	a := ap.Analyzer
	if a == nil {
		var err error
		a, err = New()
		if err != nil {
			return ctx
		}
		ap.Analyzer = a
	}
	if loader, ok := ctx.Loader.(ModuleLoader); ok {
		a.SetLoader(loader)
	}
	a.currentFile = ctx.FilePath

	ctx.Errors = append(ctx.Errors, a.Check(ctx.AstRoot)...)
	return ctx
}
