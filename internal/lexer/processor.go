package lexer

import (
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/pipeline"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// LexerProcessor is the tokenizing stage. Illegal tokens stay in the
// stream so the parser can recover past them; they are reported here.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = New(ctx.Source).Tokenize()
	for _, tok := range ctx.TokenStream {
		if tok.Type == token.ILLEGAL {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(
				diagnostics.ErrL001, tok, "illegal token %q", tok.Lexeme))
		}
	}
	return ctx
}
