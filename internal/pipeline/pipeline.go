package pipeline

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// PipelineContext carries one document through the build stages. Each
// stage reads what earlier stages produced and appends its diagnostics.
type PipelineContext struct {
	FilePath string
	Source   string

	TokenStream []token.Token
	AstRoot     *ast.File

	Arena   *model.Arena
	Root    *model.Element
	Library model.LibraryIndex // may be nil: degraded build

	Errors []*diagnostics.Diagnostic
}

// NewContext creates a build context for one source file.
func NewContext(path, source string, arena *model.Arena, lib model.LibraryIndex) *PipelineContext {
	return &PipelineContext{FilePath: path, Source: source, Arena: arena, Library: lib}
}

// Processor is one build stage.
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

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages
		// (e.g. an IDE needs both parse and semantic errors).
	}
	return ctx
}
