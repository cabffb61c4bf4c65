package parser

import (
	"github.com/wynlang/wyn/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	p := New(ctx.TokenStream)
	ctx.AstRoot = p.ParseProgram()
	ctx.Errors = append(ctx.Errors, p.Errors()...)
	return ctx
}
