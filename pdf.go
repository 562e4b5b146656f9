package mdxblog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdxblog/internal/assets"
	"github.com/alnah/go-mdxblog/internal/fileutil"
	"github.com/alnah/go-mdxblog/internal/process"
)

// pdfRenderer renders a local HTML file to PDF. Abstracted to test the
// export without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

var _ pdfRenderer = (*rodRenderer)(nil)

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.5
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// Sandboxing fails in most CI runners and containers.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.launcher = l
	return nil
}

// Close closes the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// renderers returns the PDF renderer pool, creating it on first use.
func (s *Site) renderers() *rendererPool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool == nil {
		s.pool = newRendererPool(ResolvePoolSize(s.workers), s.newRenderer)
	}
	return s.pool
}

// ExportPDF renders the post with slug to PDF. The page carries its
// stylesheet inline, no script, and site-rooted media resolved against
// output.dir.
func (s *Site) ExportPDF(ctx context.Context, slug string) ([]byte, error) {
	doc, err := s.Document(slug)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.loadTemplate(assets.PostTemplateName)
	if err != nil {
		return nil, err
	}
	style, err := s.stylesheet()
	if err != nil {
		return nil, err
	}
	publicDir, err := filepath.Abs(s.cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	page, err := s.renderPost(tmpl, doc, renderOptions{
		inlineStyle: style,
		publicDir:   publicDir,
		noScript:    true,
	})
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(string(page), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pool := s.renderers()
	r, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Release(r)

	start := time.Now()
	pdf, err := r.RenderFromFile(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("pdf rendered", "slug", slug, "bytes", len(pdf), "duration", time.Since(start).Round(time.Millisecond))
	return pdf, nil
}

// ExportPDFs renders each slug to <outDir>/<slug>.pdf with up to
// ResolvePoolSize renderers in parallel. Nested slugs keep their
// directories. It returns the written paths in slug order and the joined
// errors of the failed exports.
func (s *Site) ExportPDFs(ctx context.Context, slugs []string, outDir string) ([]string, error) {
	paths := make([]string, len(slugs))
	errs := make([]error, len(slugs))

	sem := make(chan struct{}, ResolvePoolSize(s.workers))
	var wg sync.WaitGroup
	for i, slug := range slugs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		}
		wg.Go(func() {
			defer func() { <-sem }()

			pdf, err := s.ExportPDF(ctx, slug)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", slug, err)
				return
			}
			path, err := fileutil.WriteOutput(outDir, slug+".pdf", pdf)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", slug, err)
				return
			}
			paths[i] = path
		})
	}
	wg.Wait()

	written := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, errors.Join(errs...)
}
