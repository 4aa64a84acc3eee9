package parser

import (
	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	parser := New(ctx.SourceCode, ctx)
	ctx.Results = parser.ParseProgram()

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}

// Parse is the standalone front-end boundary: program text in, ordered
// per-recipe results out. The first malformed line fails the whole parse.
func Parse(src string) ([]*ast.RecipeResult, error) {
	ctx := (&ParserProcessor{}).Process(&pipeline.PipelineContext{SourceCode: src})
	if ctx.Failed() {
		return nil, ctx.Errors[0]
	}
	return ctx.Results, nil
}
