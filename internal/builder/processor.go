package builder

import (
	"github.com/l-hoang/chefgo/internal/diagnostics"
	"github.com/l-hoang/chefgo/internal/pipeline"
)

type BuilderProcessor struct{}

func (bp *BuilderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	prog, err := Build(ctx.Results)
	if err != nil {
		if diag, ok := err.(*diagnostics.DiagnosticError); ok {
			if diag.File == "" {
				diag.File = ctx.FilePath
			}
			ctx.Errors = append(ctx.Errors, diag)
		} else {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrR005, 0, "%s", err))
		}
		return ctx
	}
	ctx.Program = prog
	return ctx
}
