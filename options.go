package mdxblog

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/alnah/go-mdxblog/internal/assets"
	"github.com/alnah/go-mdxblog/internal/config"
)

// Option configures a Site.
type Option func(*Site)

// defaultTimeout bounds a PDF page load when the context has no deadline.
const defaultTimeout = 30 * time.Second

// WithConfig sets the site configuration. Without it DefaultConfig is used.
func WithConfig(cfg *config.Config) Option {
	return func(s *Site) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// WithFS reads posts from fsys instead of the configured content directory.
func WithFS(fsys fs.FS) Option {
	return func(s *Site) {
		s.fsys = fsys
	}
}

// WithWorkers sets the number of compile workers and PDF renderers.
// Zero sizes the pool from GOMAXPROCS (see ResolvePoolSize).
func WithWorkers(n int) Option {
	return func(s *Site) {
		s.workers = n
	}
}

// WithAssetLoader sets a custom asset loader.
// Overrides the assets.basePath configuration.
func WithAssetLoader(loader assets.AssetLoader) Option {
	return func(s *Site) {
		s.assets = loader
	}
}

// WithClock sets the time source of the feed build date.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		s.now = now
	}
}

// WithTimeout sets the PDF page load timeout.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdxblog: WithTimeout duration must be positive")
	}
	return func(s *Site) {
		s.timeout = d
	}
}
