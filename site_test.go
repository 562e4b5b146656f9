package mdxblog

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/alnah/go-mdxblog/internal/config"
	"github.com/alnah/go-mdxblog/internal/dom"
	"github.com/alnah/go-mdxblog/internal/pipeline"
)

const firstPost = `---
title: First
publishedAt: 2024-01-02
---
Intro with a [link](/second/) and ![a cat](/images/cat.png).

` + "```js id=ex /x/\nconst x = 1;\nlet y = x;\n```" + `

<RegisterLink id="ex" index={2} href="/second/" />

Hover <H id="ex" index="1-2">both</H> words.
`

const secondPost = `---
title: Second & More
publishedAt: 2024-03-01
---
Plain text.
`

const draftPost = `---
title: Unfinished
publishedAt: 2024-05-01
draft: true
---
Soon.
`

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTree(t testing.TB, files map[string]string) *memoryfs.FS {
	t.Helper()
	fsys := memoryfs.New()
	for name, data := range files {
		if dir := path.Dir(name); dir != "." {
			require.NoError(t, fsys.MkdirAll(dir, 0o755))
		}
		require.NoError(t, fsys.WriteFile(name, []byte(data), 0o644))
	}
	return fsys
}

func testConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Site.Title = "Notes"
	cfg.Site.Description = "Short notes"
	cfg.Site.URL = "https://example.com"
	cfg.Site.BasePath = "/blog"
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func newTestSite(t *testing.T, cfg *config.Config, opts ...Option) *Site {
	t.Helper()
	fsys := newTree(t, map[string]string{
		"first.mdx":         firstPost,
		"notes/second.md":   secondPost,
		"drafts/later.mdx":  draftPost,
		"drafts/readme.txt": "ignored",
	})
	opts = append([]Option{
		WithConfig(cfg),
		WithFS(fsys),
		WithWorkers(2),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)

	s, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// ---------------------------------------------------------------------------
// TestNew - Configuration checks
// ---------------------------------------------------------------------------

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		s, err := New()
		require.NoError(t, err)
		assert.Equal(t, config.DefaultContentDir, s.Config().Content.Dir)
	})

	t.Run("unknown theme", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Code.Theme = "no-such-theme"
		_, err := New(WithConfig(cfg))
		assert.ErrorIs(t, err, pipeline.ErrUnknownTheme)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Site.BasePath = "blog"
		_, err := New(WithConfig(cfg))
		assert.ErrorIs(t, err, config.ErrInvalidValue)
	})
}

// ---------------------------------------------------------------------------
// TestLoad - Reading and compiling posts
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, testConfig(t))
	require.NoError(t, s.Load(context.Background()))

	docs := s.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "notes/second", docs[0].Slug)
	assert.Equal(t, "first", docs[1].Slug)

	for _, doc := range docs {
		assert.NotEmpty(t, doc.Body.HTML, doc.Slug)
	}
	assert.Contains(t, docs[1].Body.HTML, `href="/blog/second/"`)
	assert.Contains(t, docs[1].Body.HTML, `data-register-link`)
}

func TestLoad_IncludeDrafts(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Content.IncludeDrafts = true
	s := newTestSite(t, cfg)
	require.NoError(t, s.Load(context.Background()))

	doc, err := s.Document("drafts/later")
	require.NoError(t, err)
	assert.True(t, doc.Draft)
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSite(t, testConfig(t))
	assert.ErrorIs(t, s.Load(ctx), context.Canceled)

	_, err := s.Document("first")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestLoad_EmptyTree(t *testing.T) {
	t.Parallel()

	s, err := New(WithConfig(testConfig(t)), WithFS(memoryfs.New()))
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Documents())
}

func TestDocument(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, testConfig(t))

	_, err := s.Document("first")
	assert.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, s.Load(context.Background()))

	doc, err := s.Document("first")
	require.NoError(t, err)
	assert.Equal(t, "First", doc.Title)

	_, err = s.Document("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ---------------------------------------------------------------------------
// TestBuild - Output tree
// ---------------------------------------------------------------------------

func TestBuild(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	s := newTestSite(t, cfg)
	require.NoError(t, s.Load(context.Background()))

	out := t.TempDir()
	require.NoError(t, s.Build(context.Background(), out))

	t.Run("post page", func(t *testing.T) {
		page := readFile(t, out, "first/index.html")

		assert.Contains(t, page, `<title>First | Notes</title>`)
		assert.Contains(t, page, `<time datetime="2024-01-02">January 2, 2024</time>`)
		assert.Contains(t, page, `1 min read`)
		assert.Contains(t, page, `href="/blog/assets/site.css"`)
		assert.Contains(t, page, `<script src="/blog/assets/code.js" defer></script>`)
		assert.NotContains(t, page, "data-register-link", "markers are consumed")
		assert.Contains(t, page, `data-highlight-targets="1-2"`)

		doc, err := dom.ParseString(page)
		require.NoError(t, err)
		block := doc.ElementByID("ex")
		require.NotNil(t, block)
		links := dom.Find(block, func(n *html.Node) bool { return n.Data == "a" })
		require.Len(t, links, 1)
		href, _ := dom.Attr(links[0], "href")
		assert.Equal(t, "/blog/second/", href)
		assert.Equal(t, "x", dom.TextContent(links[0]))
	})

	t.Run("nested post", func(t *testing.T) {
		page := readFile(t, out, "notes/second/index.html")
		assert.Contains(t, page, `Second &amp; More`)
	})

	t.Run("index", func(t *testing.T) {
		index := readFile(t, out, "index.html")
		assert.Contains(t, index, `href="/blog/first/"`)
		assert.Contains(t, index, `href="/blog/notes/second/"`)
		assert.Less(t, strings.Index(index, "/blog/notes/second/"), strings.Index(index, "/blog/first/"),
			"newest first")
		assert.NotContains(t, index, "Unfinished")
	})

	t.Run("feed", func(t *testing.T) {
		var feed rssXML
		require.NoError(t, xml.Unmarshal([]byte(readFile(t, out, "feed.xml")), &feed))

		assert.Equal(t, "2.0", feed.Version)
		assert.Equal(t, "Notes", feed.Channel.Title)
		assert.Equal(t, "https://example.com/blog/", feed.Channel.Link)
		assert.Equal(t, fixedNow.Format(time.RFC1123Z), feed.Channel.LastBuildDate)
		require.Len(t, feed.Channel.Items, 2)
		assert.Equal(t, "https://example.com/blog/notes/second/", feed.Channel.Items[0].Link)
		assert.Equal(t, "Plain text.", feed.Channel.Items[0].Description)
	})

	t.Run("assets", func(t *testing.T) {
		assert.Contains(t, readFile(t, out, "assets/site.css"), ".chroma")
		assert.Contains(t, readFile(t, out, "assets/code.js"), "data-highlight-targets")
	})
}

func TestBuild_DraftsListedButNotSyndicated(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Content.IncludeDrafts = true
	s := newTestSite(t, cfg)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Build(context.Background(), ""))

	index := readFile(t, cfg.Output.Dir, "index.html")
	assert.Contains(t, index, "Unfinished")
	assert.Contains(t, index, "draft-badge")

	feed := readFile(t, cfg.Output.Dir, "feed.xml")
	assert.NotContains(t, feed, "Unfinished")
}

func TestBuild_NotLoaded(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, testConfig(t))
	assert.ErrorIs(t, s.Build(context.Background(), t.TempDir()), ErrNotLoaded)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"first paragraph", `<h1>T</h1><p class="paragraph">One  <em>two</em></p><p class="paragraph">x</p>`, "One two"},
		{"no paragraph", `<h1>T</h1>`, ""},
		{"truncated", `<p class="paragraph">` + strings.Repeat("a", maxSummaryRunes+5) + `</p>`, strings.Repeat("a", maxSummaryRunes) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, summary(tt.body))
		})
	}
}

// ---------------------------------------------------------------------------
// TestExportPDF - Browser rendering through a fake renderer
// ---------------------------------------------------------------------------

type fakeRenderer struct {
	mu       sync.Mutex
	pages    []string
	err      error
	closeErr error
	closed   bool
}

func (f *fakeRenderer) RenderFromFile(_ context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.pages = append(f.pages, string(data))
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.closeErr
}

func withFakeRenderer(s *Site, f *fakeRenderer) {
	s.newRenderer = func() pdfRenderer { return f }
}

func TestExportPDF(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	s := newTestSite(t, cfg)
	fake := &fakeRenderer{}
	withFakeRenderer(s, fake)
	require.NoError(t, s.Load(context.Background()))

	pdf, err := s.ExportPDF(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))

	require.Len(t, fake.pages, 1)
	page := fake.pages[0]
	assert.Contains(t, page, "<style>")
	assert.Contains(t, page, ".chroma")
	assert.NotContains(t, page, "<script")
	assert.NotContains(t, page, "site.css")

	publicDir, err := filepath.Abs(cfg.Output.Dir)
	require.NoError(t, err)
	assert.Contains(t, page, "file://"+filepath.ToSlash(filepath.Join(publicDir, "images", "cat.png")))

	require.NoError(t, s.Close())
	assert.True(t, fake.closed)
}

func TestExportPDF_Errors(t *testing.T) {
	t.Parallel()

	t.Run("not loaded", func(t *testing.T) {
		t.Parallel()

		s := newTestSite(t, testConfig(t))
		_, err := s.ExportPDF(context.Background(), "first")
		assert.ErrorIs(t, err, ErrNotLoaded)
	})

	t.Run("unknown slug", func(t *testing.T) {
		t.Parallel()

		s := newTestSite(t, testConfig(t))
		require.NoError(t, s.Load(context.Background()))
		_, err := s.ExportPDF(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("renderer error propagates", func(t *testing.T) {
		t.Parallel()

		s := newTestSite(t, testConfig(t))
		withFakeRenderer(s, &fakeRenderer{err: ErrPageLoad})
		require.NoError(t, s.Load(context.Background()))
		_, err := s.ExportPDF(context.Background(), "first")
		assert.ErrorIs(t, err, ErrPageLoad)
	})
}

func TestExportPDFs(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, testConfig(t))
	withFakeRenderer(s, &fakeRenderer{})
	require.NoError(t, s.Load(context.Background()))

	out := t.TempDir()
	paths, err := s.ExportPDFs(context.Background(), []string{"first", "missing", "notes/second"}, out)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{
		filepath.Join(out, "first.pdf"),
		filepath.Join(out, "notes", "second.pdf"),
	}, paths)
	assert.Equal(t, "%PDF-1.4 fake", readFile(t, out, "notes/second.pdf"))
}

func TestClose_AggregatesErrors(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, testConfig(t))
	withFakeRenderer(s, &fakeRenderer{closeErr: errors.New("browser gone")})
	require.NoError(t, s.Load(context.Background()))
	_, err := s.ExportPDF(context.Background(), "first")
	require.NoError(t, err)

	assert.ErrorContains(t, s.Close(), "browser gone")
	assert.NoError(t, s.Close(), "second close is a no-op")
}
