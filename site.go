package mdxblog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/alnah/go-mdxblog/internal/assets"
	"github.com/alnah/go-mdxblog/internal/config"
	"github.com/alnah/go-mdxblog/internal/content"
	"github.com/alnah/go-mdxblog/internal/mdx"
	"github.com/alnah/go-mdxblog/internal/pipeline"
)

// Site loads, compiles and writes one blog.
type Site struct {
	cfg     *config.Config
	logger  *slog.Logger
	fsys    fs.FS
	workers int
	assets  assets.AssetLoader
	now     func() time.Time
	timeout time.Duration

	// newRenderer creates PDF renderers for the export pool.
	newRenderer func() pdfRenderer

	mu     sync.RWMutex
	docs   []*content.Document
	loaded bool
	pool   *rendererPool
}

// New creates a Site. The configuration is validated and the code theme
// resolved before any post is read.
func New(opts ...Option) (*Site, error) {
	s := &Site{
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg == nil {
		s.cfg = config.DefaultConfig()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := pipeline.ThemeCSS(s.cfg.Code.Theme); err != nil {
		return nil, err
	}

	if s.assets == nil {
		resolver, err := assets.NewAssetResolver(s.cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		s.assets = resolver
	}
	if s.newRenderer == nil {
		timeout := s.timeout
		s.newRenderer = func() pdfRenderer { return newRodRenderer(timeout) }
	}
	return s, nil
}

// Config returns the site configuration.
func (s *Site) Config() *config.Config { return s.cfg }

// Load reads the posts and compiles their bodies. It replaces the documents
// of a previous Load only when every post compiled.
func (s *Site) Load(ctx context.Context) error {
	start := time.Now()

	fsys := s.fsys
	if fsys == nil {
		fsys = os.DirFS(s.cfg.Content.Dir)
	}

	loader, err := content.NewLoader(fsys, s.cfg.Content.Pattern,
		content.WithWordsPerMinute(s.cfg.Content.WordsPerMinute),
		content.WithDrafts(s.cfg.Content.IncludeDrafts),
		content.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	docs, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.compileAll(ctx, docs); err != nil {
		return err
	}

	s.mu.Lock()
	s.docs = docs
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("posts loaded", "count", len(docs), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// compileAll compiles the bodies of docs with a pool of workers. Each worker
// owns its compiler. Errors are collected per document and joined in order.
func (s *Site) compileAll(ctx context.Context, docs []*content.Document) error {
	if len(docs) == 0 {
		return nil
	}

	n := min(ResolvePoolSize(s.workers), len(docs))
	jobs := make(chan int)
	errs := make([]error, len(docs))

	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			compiler := s.newCompiler()
			for i := range jobs {
				doc := docs[i]
				out, err := compiler.Compile(ctx, doc.Body.Raw)
				if err != nil {
					errs[i] = fmt.Errorf("%s: %w", doc.SourcePath, err)
					continue
				}
				doc.Body.HTML = out
				s.logger.Debug("post compiled", "slug", doc.Slug, "words", doc.ReadingTime.Words)
			}
		})
	}

send:
	for i := range docs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func (s *Site) newCompiler() pipeline.MDXCompiler {
	table := mdx.DefaultTable(mdx.Options{Router: mdx.BasePath(s.cfg.Site.BasePath)})
	return pipeline.NewCompiler(pipeline.WithTable(table), pipeline.WithLogger(s.logger))
}

// Documents returns the loaded posts, newest first.
func (s *Site) Documents() []*content.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.docs)
}

// Document returns the post with slug.
func (s *Site) Document(slug string) (*content.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return content.Find(s.docs, slug)
}

// snapshot returns the loaded posts or ErrNotLoaded.
func (s *Site) snapshot() ([]*content.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return slices.Clone(s.docs), nil
}

// Close releases the PDF renderers. The site stays usable for Build.
func (s *Site) Close() error {
	s.mu.Lock()
	pool := s.pool
	s.pool = nil
	s.mu.Unlock()

	if pool == nil {
		return nil
	}
	return pool.Close()
}
