package content

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultPattern selects Markdown and MDX files at any depth.
const DefaultPattern = "**.{md,mdx}"

// Loader reads posts from a content tree.
type Loader struct {
	fsys           fs.FS
	pattern        glob.Glob
	wordsPerMinute int
	includeDrafts  bool
	logger         *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWordsPerMinute sets the reading speed.
func WithWordsPerMinute(wpm int) LoaderOption {
	return func(l *Loader) { l.wordsPerMinute = wpm }
}

// WithDrafts keeps posts marked as drafts.
func WithDrafts(include bool) LoaderOption {
	return func(l *Loader) { l.includeDrafts = include }
}

// WithLogger sets the loader logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader returns a loader over fsys selecting files whose slash separated
// path matches pattern. An empty pattern uses DefaultPattern.
func NewLoader(fsys fs.FS, pattern string, opts ...LoaderOption) (*Loader, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}

	l := &Loader{
		fsys:           fsys,
		pattern:        g,
		wordsPerMinute: DefaultWordsPerMinute,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Paths lists the matching files in lexical order.
func (l *Loader) Paths(ctx context.Context) ([]string, error) {
	var paths []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if l.pattern.Match(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content: %w", err)
	}
	return paths, nil
}

// Load parses every matching file. Drafts are dropped unless WithDrafts is
// set. The result is sorted newest first, ties broken by slug.
func (l *Loader) Load(ctx context.Context) ([]*Document, error) {
	paths, err := l.Paths(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[doc.Slug]; dup {
			return nil, fmt.Errorf("%w: %q from %s and %s", ErrDuplicateSlug, doc.Slug, prev, p)
		}
		seen[doc.Slug] = p

		if doc.Draft && !l.includeDrafts {
			l.logger.Debug("skipping draft", "slug", doc.Slug)
			continue
		}
		docs = append(docs, doc)
	}

	Sort(docs)
	l.logger.Debug("content loaded", "files", len(paths), "documents", len(docs))
	return docs, nil
}

// LoadFile parses the file at p.
func (l *Loader) LoadFile(p string) (*Document, error) {
	src, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	return ParseDocument(p, src, l.wordsPerMinute)
}

// Sort orders docs newest first, then by slug.
func Sort(docs []*Document) {
	slices.SortStableFunc(docs, func(a, b *Document) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

// Find returns the document with slug.
func Find(docs []*Document, slug string) (*Document, error) {
	for _, d := range docs {
		if d.Slug == slug {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, slug)
}
