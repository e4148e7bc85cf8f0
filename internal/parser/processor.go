package parser

import (
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/pipeline"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// ParserProcessor is the syntax-tree stage.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP003, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	p := New(ctx.TokenStream)
	ctx.AstRoot = p.ParseFile(ctx.FilePath)
	ctx.Errors = append(ctx.Errors, p.Diagnostics()...)

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
