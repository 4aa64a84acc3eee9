package pipeline

import (
	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/diagnostics"
)

// PipelineContext carries the work product between stages.
type PipelineContext struct {
	FilePath   string
	SourceCode string

	Results []*ast.RecipeResult // set by the parser stage
	Program *ast.Program        // set by the builder stage

	Errors []*diagnostics.DiagnosticError
}

// Failed reports whether any stage has recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Processor is one stage of the front end.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every error tier is fatal to the run,
// so later stages are skipped once a stage reports an error.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Failed() {
			break
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
