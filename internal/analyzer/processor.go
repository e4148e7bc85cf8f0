// Package analyzer holds the semantic build stages: linking the syntax
// tree into the element graph, resolving names and heritage, and
// injecting implicit generalizations.
package analyzer

import (
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/pipeline"
	"github.com/sysmod-lang/sysmod/internal/scope"
)

// LinkProcessor builds the element graph from the syntax tree.
type LinkProcessor struct{}

func (lp *LinkProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Arena == nil {
		return ctx
	}
	ctx.Root = model.Link(ctx.Arena, ctx.AstRoot)
	return ctx
}

// ResolveProcessor links references, imports and heritage edges.
type ResolveProcessor struct{}

func (rp *ResolveProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Root == nil {
		return ctx
	}
	r := scope.NewResolver(ctx.Arena, ctx.Library)
	diags := r.Resolve()
	for _, d := range diags {
		if d.File == "" {
			d.File = ctx.FilePath
		}
	}
	ctx.Errors = append(ctx.Errors, diags...)
	return ctx
}

// ImplicitProcessor injects the implicit library generalizations.
type ImplicitProcessor struct{}

func (ip *ImplicitProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Root == nil {
		return ctx
	}
	model.ResolveImplicits(ctx.Arena, ctx.Library)
	return ctx
}

// Stages returns the full semantic build pipeline for one document.
func Stages() []pipeline.Processor {
	return []pipeline.Processor{
		&LinkProcessor{},
		&ResolveProcessor{},
		&ImplicitProcessor{},
	}
}
