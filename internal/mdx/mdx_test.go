package mdx_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdxblog/internal/markup"
	"github.com/alnah/go-mdxblog/internal/mdast"
	"github.com/alnah/go-mdxblog/internal/mdx"
	"github.com/alnah/go-mdxblog/internal/pipeline"
)

func compile(t *testing.T, src string, opts ...pipeline.CompilerOption) string {
	t.Helper()
	out, err := pipeline.NewCompiler(opts...).Compile(context.Background(), src)
	require.NoError(t, err)
	return out
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLinks(t *testing.T) {
	table := mdx.DefaultTable(mdx.Options{Router: mdx.BasePath("/blog")})
	out := compile(t, "See [ext](https://example.com) and [post](/posts/a) or [top](#top).",
		pipeline.WithTable(table))

	assert.Contains(t, out,
		`<a href="https://example.com" class="link link-external" target="_blank" rel="noopener">ext</a>`)
	assert.Contains(t, out, `<a href="/blog/posts/a" class="link">post</a>`)
	assert.Contains(t, out, `<a href="#top" class="link">top</a>`)
}

func TestLinks_UnsafeSchemeSanitized(t *testing.T) {
	out := compile(t, "[x](javascript:alert(1))")

	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "about:invalid")
}

func TestAutoLink(t *testing.T) {
	out := compile(t, "Visit https://example.com today.")

	assert.Contains(t, out, `href="https://example.com"`)
	assert.Contains(t, out, `>https://example.com</a>`)
}

func TestImages(t *testing.T) {
	t.Run("markdown image is bare", func(t *testing.T) {
		out := compile(t, "![A cat](/cat.png)")
		assert.Contains(t, out, `<span class="media"><img class="image" src="/cat.png" alt="A cat" loading="lazy"></span>`)
		assert.NotContains(t, out, "figure")
	})

	t.Run("component with caption", func(t *testing.T) {
		out := compile(t, `<Image src="/a.png" alt="A">A caption</Image>`)
		assert.Equal(t,
			`<figure class="figure"><img class="image" src="/a.png" alt="A" loading="lazy">`+
				`<figcaption class="caption">A caption</figcaption></figure>`, out)
	})

	t.Run("component without caption", func(t *testing.T) {
		out := compile(t, "Text.\n\n<Image src=\"/b.png\" />\n")
		assert.Contains(t, out, `<img class="image" src="/b.png" loading="lazy">`)
		assert.NotContains(t, out, "figure")
	})
}

func TestVideo(t *testing.T) {
	out := compile(t, `<Video src="/v.mp4" autoPlay={false} />`)

	assert.Equal(t,
		`<div class="media media-video"><video class="video" src="/v.mp4" autoplay playsinline muted loop></video></div>`,
		out)
}

func TestBox(t *testing.T) {
	out := compile(t, `<Box as="section" className="wide" onClick="alert(1)">Inside</Box>`)

	assert.Equal(t, `<section class="box wide">Inside</section>`, out)
}

func TestBox_UnknownElementFallsBackToDiv(t *testing.T) {
	out := compile(t, `<Box as="script">x</Box>`)

	assert.Equal(t, `<div class="box">x</div>`, out)
}

func TestCodeBlock(t *testing.T) {
	src := "```go title=\"main.go\" id=ex showLineNumbers\nfmt.Println(1)\n```\n"
	out := compile(t, src)

	assert.True(t, strings.HasPrefix(out,
		`<div class="code-figure"><div class="code-title">main.go</div><pre class="chroma code-block" data-code-block id="ex" data-lang="go" data-line-numbers>`),
		out)
	assert.Contains(t, out, `<code class="code language-go"><span class="line" data-line="1">`)
	assert.NotContains(t, out, "copy-button", "the copy control is only present while hovered")
}

func TestCodeBlock_Collapsible(t *testing.T) {
	out := compile(t, "```js collapsible\nfoo()\n```\n")

	assert.Contains(t, out, `data-state="closed"`)
	assert.Contains(t, out, `>Show code</button>`)
	assert.Contains(t, out, `<template data-collapsible-content><code class="code language-js">`)
}

func TestCodeBlock_WordSpanningTokens(t *testing.T) {
	out := compile(t, "```go id=ex /fmt.Println/\nfmt.Println(1)\n```\n")

	assert.Equal(t, 1, strings.Count(out, "highlight-word"), out)
	assert.Contains(t, out, `<span class="highlight-word"><span class="`)
}

func TestHighlightTrigger(t *testing.T) {
	out := compile(t, `Hover <H id="ex" index="1-3">these</H> words.`)

	assert.Equal(t,
		`<p class="paragraph">Hover <code class="code code-inline hover-trigger" data-highlight-for="ex" data-highlight-index="1-3">these</code> words.</p>`,
		out)
}

func TestRegisterLink(t *testing.T) {
	table := mdx.DefaultTable(mdx.Options{Router: mdx.BasePath("/blog")})
	out := compile(t, "Text.\n\n<RegisterLink id=\"ex\" index={2} href=\"/posts/b\" />\n", pipeline.WithTable(table))

	assert.Contains(t, out,
		`<template data-register-link data-code-id="ex" data-index="2" data-href="/blog/posts/b"></template>`)
}

func TestInlineCode(t *testing.T) {
	out := compile(t, "Use `go test` here.")

	assert.Contains(t, out, `<code class="code code-inline">go test</code>`)
}

func TestUnknownComponentRendersChildren(t *testing.T) {
	out := compile(t, `A <Tooltip tip="x">word</Tooltip> here.`)

	assert.Equal(t, `<p class="paragraph">A word here.</p>`, out)
}

func TestMissingEntryFallsBackToDefault(t *testing.T) {
	out := compile(t, "# Hi\n\nSome *em* and **strong**.\n", pipeline.WithTable(mdx.Table{}))

	assert.Contains(t, out, `<h1 id="hi">Hi</h1>`)
	assert.Contains(t, out, `<p>Some <em>em</em> and <strong>strong</strong>.</p>`)
}

func TestCustomEntryOverrides(t *testing.T) {
	table := mdx.DefaultTable(mdx.Options{})
	table[mdast.KindH2] = func(p mdx.Props) templ.Component {
		return markup.Element("h2", []markup.Attr{markup.A("data-custom", "yes")}, p.Children)
	}

	out := compile(t, "## Title", pipeline.WithTable(table))

	assert.Equal(t, `<h2 data-custom="yes">Title</h2>`, out)
}

func TestTableRender_MissingKind(t *testing.T) {
	out := render(t, mdx.Table{}.Render(mdx.Props{Kind: mdast.KindBox, Children: markup.Text("kids")}))

	assert.Equal(t, "kids", out)
}

func TestBasePath(t *testing.T) {
	r := mdx.BasePath("/blog/")

	tests := map[string]string{
		"/posts/a":      "/blog/posts/a",
		"posts/a":       "posts/a",
		"#frag":         "#frag",
		"//cdn.example": "//cdn.example",
		"mailto:a@b.c":  "mailto:a@b.c",
		"/":             "/blog/",
	}
	for in, want := range tests {
		assert.Equal(t, want, r.Resolve(in), in)
	}

	assert.Equal(t, "/x", mdx.BasePath("").Resolve("/x"))
}

func TestCodeLines_UntokenizedFlagsHighlightedLines(t *testing.T) {
	n := ast.NewFencedCodeBlock(nil)
	mdast.SetFence(n, &mdast.Fence{Code: "a\nb\nc\n", Lines: []int{2}})

	out := render(t, mdx.CodeLines(n, nil))

	assert.Contains(t, out, `<span class="line" data-line="1">a`)
	assert.Contains(t, out, `<span class="line hl" data-line="2">b`)
	assert.Contains(t, out, `<span class="line" data-line="3">c`)
}

func TestCodeLines_UnannotatedBlockReadsSource(t *testing.T) {
	source := []byte("a\nb\n")
	n := ast.NewFencedCodeBlock(nil)
	n.Lines().Append(text.NewSegment(0, 2))
	n.Lines().Append(text.NewSegment(2, 4))

	out := render(t, mdx.CodeLines(n, source))

	assert.Contains(t, out, `<span class="line" data-line="1">a`)
	assert.Contains(t, out, `<span class="line" data-line="2">b`)
}
