package content_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-mdxblog/internal/content"
)

func TestSplitFrontMatter(t *testing.T) {
	t.Run("lf", func(t *testing.T) {
		front, body, err := content.SplitFrontMatter([]byte("---\ntitle: A\n---\n# Body\n"))
		require.NoError(t, err)
		assert.Equal(t, "title: A\n", string(front))
		assert.Equal(t, "# Body\n", string(body))
	})

	t.Run("crlf", func(t *testing.T) {
		front, body, err := content.SplitFrontMatter([]byte("---\r\ntitle: A\r\n---\r\nBody"))
		require.NoError(t, err)
		assert.Equal(t, "title: A\r\n", string(front))
		assert.Equal(t, "Body", string(body))
	})

	t.Run("closing delimiter at end of file", func(t *testing.T) {
		_, body, err := content.SplitFrontMatter([]byte("---\ntitle: A\n---"))
		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := content.SplitFrontMatter([]byte("# No front matter\n---\n"))
		assert.ErrorIs(t, err, content.ErrNoFrontMatter)
	})

	t.Run("unterminated", func(t *testing.T) {
		_, _, err := content.SplitFrontMatter([]byte("---\ntitle: A\n# Body\n"))
		assert.ErrorIs(t, err, content.ErrNoFrontMatter)
	})
}

func TestParseDocument(t *testing.T) {
	src := "---\ntitle: \"Hello, World\"\npublishedAt: \"2024-03-01\"\ndraft: true\n---\n\nSome words here.\n"

	doc, err := content.ParseDocument("2024/Hello World.mdx", []byte(src), 0)
	require.NoError(t, err)

	assert.Equal(t, "Hello, World", doc.Title)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), doc.PublishedAt)
	assert.True(t, doc.Draft)
	assert.Equal(t, "2024/hello-world", doc.Slug)
	assert.Equal(t, "2024/Hello World.mdx", doc.SourcePath)
	assert.Equal(t, "\nSome words here.\n", doc.Body.Raw)
	assert.Empty(t, doc.Body.HTML)
	assert.Equal(t, 3, doc.ReadingTime.Words)
	assert.Equal(t, "1 min read", doc.ReadingTime.Text)
}

func TestParseDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no front matter", "# Title\n", content.ErrNoFrontMatter},
		{"empty front matter", "---\n---\nbody", content.ErrMissingField},
		{"missing title", "---\npublishedAt: \"2024-01-01\"\n---\n", content.ErrMissingField},
		{"blank title", "---\ntitle: \"  \"\npublishedAt: \"2024-01-01\"\n---\n", content.ErrMissingField},
		{"missing date", "---\ntitle: A\n---\n", content.ErrMissingField},
		{"bad date", "---\ntitle: A\npublishedAt: \"yesterday\"\n---\n", content.ErrInvalidDate},
		{"bad yaml", "---\ntitle: [unclosed\n---\n", content.ErrFrontMatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.ParseDocument("post.mdx", []byte(tt.src), 0)
			assert.ErrorIs(t, err, tt.want)
			if err != nil {
				assert.Contains(t, err.Error(), "post.mdx")
			}
		})
	}
}

func TestParseFrontMatter_DateForms(t *testing.T) {
	for _, v := range []string{`"2024-03-01T10:30:00Z"`, `"2024-03-01T10:30:00"`} {
		_, got, err := content.ParseFrontMatter([]byte("title: A\npublishedAt: " + v + "\n"))
		require.NoError(t, err, v)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), got, v)
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := map[string]string{
		"hello-world.mdx":        "hello-world",
		"Hello World.md":         "hello-world",
		"2024/intro/index.mdx":   "2024/intro",
		"index.mdx":              "index",
		"./notes/Café Crème.mdx": "notes/cafe-creme",
		"series//part-1.mdx":     "series/part-1",
	}
	for in, want := range tests {
		got, err := content.SlugFromPath(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := content.SlugFromPath("!!!.mdx")
	assert.ErrorIs(t, err, content.ErrInvalidSlug)
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		wpm       int
		wantText  string
		wantWords int
	}{
		{"empty", 0, 300, "0 min read", 0},
		{"under a minute", 10, 300, "1 min read", 10},
		{"exactly two minutes", 600, 300, "2 min read", 600},
		{"just over two minutes", 606, 300, "3 min read", 606},
		{"default speed", 900, 0, "3 min read", 900},
		{"custom speed", 400, 200, "2 min read", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("word ", tt.words))
			got := content.EstimateReadingTime(text, tt.wpm)
			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantWords, got.Words)
		})
	}

	rt := content.EstimateReadingTime(strings.Repeat("w ", 600), 300)
	assert.InDelta(t, 2.0, rt.Minutes, 1e-9)
	assert.Equal(t, 2*time.Minute, rt.Time)
}

func TestCountWords(t *testing.T) {
	tests := map[string]int{
		"":                            0,
		"one two  three":              3,
		"don't re-use snake_case":     3,
		"`code` and **bold**":         3,
		"x := 1":                      2,
		"日本語":                         3,
		"Go は楽しい":                     5,
		"- item\n- other\n\n# Head 2": 4,
	}
	for in, want := range tests {
		assert.Equal(t, want, content.CountWords(in), in)
	}
}
