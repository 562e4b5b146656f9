package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdxblog/internal/mdx"
)

// ErrCompile indicates MDX to HTML compilation failed.
var ErrCompile = errors.New("MDX compilation failed")

// Transformer priorities: components first, then the two fence hooks in order.
const (
	componentPriority = 100
	fenceMetaPriority = 200
	tokenizePriority  = 300
)

// MDXCompiler abstracts MDX source to HTML fragment compilation.
type MDXCompiler interface {
	Compile(ctx context.Context, source string) (string, error)
}

// Compiler compiles MDX posts with goldmark (pure Go).
type Compiler struct {
	md           goldmark.Markdown
	preprocessor Preprocessor
}

type compilerConfig struct {
	table  mdx.Table
	logger *slog.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*compilerConfig)

// WithTable sets the renderer override table.
func WithTable(t mdx.Table) CompilerOption {
	return func(c *compilerConfig) { c.table = t }
}

// WithLogger sets the logger of the pipeline hooks.
func WithLogger(l *slog.Logger) CompilerOption {
	return func(c *compilerConfig) { c.logger = l }
}

// NewCompiler creates a Compiler with GFM, footnotes, heading ids, the
// component parsers, both fence hooks and the renderer override table.
func NewCompiler(opts ...CompilerOption) *Compiler {
	cfg := compilerConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.table == nil {
		cfg.table = mdx.DefaultTable(mdx.Options{})
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			mdx.NewRenderer(cfg.table),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Heading anchors
			parser.WithInlineParsers(
				util.Prioritized(NewComponentParser(), 250),
			),
			parser.WithASTTransformers(
				util.Prioritized(NewComponentTransformer(), componentPriority),
				util.Prioritized(NewFenceMetaTransformer(cfg.logger), fenceMetaPriority),
				util.Prioritized(NewTokenizeTransformer(cfg.logger), tokenizePriority),
			),
		),
		// Raw HTML stays escaped; components are the only markup escape hatch.
	)
	return &Compiler{md: md, preprocessor: &MDXPreprocessor{}}
}

// Parse returns the annotated tree of source after both hooks have run.
func (c *Compiler) Parse(source []byte) ast.Node {
	return c.md.Parser().Parse(text.NewReader(source))
}

// Compile converts MDX source to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *Compiler) Compile(ctx context.Context, source string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		src := c.preprocessor.Preprocess(ctx, source)
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(src), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrCompile, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
