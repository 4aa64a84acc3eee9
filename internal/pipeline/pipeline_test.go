package pipeline_test

import (
	"testing"

	"github.com/l-hoang/chefgo/internal/diagnostics"
	"github.com/l-hoang/chefgo/internal/pipeline"
)

type failingStage struct{}

func (s *failingStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrP001, 1, "boom"))
	return ctx
}

type countingStage struct {
	calls int
}

func (s *countingStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	s.calls++
	return ctx
}

func TestPipelineStopsAfterFailedStage(t *testing.T) {
	later := &countingStage{}
	ctx := pipeline.New(&failingStage{}, later).Run(&pipeline.PipelineContext{})
	if !ctx.Failed() {
		t.Fatal("expected the context to be failed")
	}
	if later.calls != 0 {
		t.Errorf("later stage ran %d times, want 0", later.calls)
	}
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	first := &countingStage{}
	second := &countingStage{}
	ctx := pipeline.New(first, second).Run(&pipeline.PipelineContext{})
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("calls = (%d,%d), want (1,1)", first.calls, second.calls)
	}
}
