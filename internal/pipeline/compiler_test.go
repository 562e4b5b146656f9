package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdxblog/internal/dom"
)

// ---------------------------------------------------------------------------
// TestCompile - End to end compilation
// ---------------------------------------------------------------------------

func TestCompile(t *testing.T) {
	t.Parallel()

	src := "import X from './x'\r\n\r\n# Hello\r\n\r\n```js {2} /x/ id=ex\r\nconst x = 1;\r\nlet y = x;\r\n```\r\n"

	out, err := NewCompiler().Compile(context.Background(), src)
	if err != nil {
		t.Fatalf("Compile() unexpected error: %v", err)
	}

	for _, want := range []string{
		`<h1 class="heading heading-1" id="hello">Hello</h1>`,
		`id="ex"`,
		`data-lang="js"`,
		`<span class="line hl" data-line="2">`,
		`class="code language-js"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "import") {
		t.Error("module statement leaked into output")
	}

	doc, err := dom.ParseString(out)
	if err != nil {
		t.Fatal(err)
	}
	words := dom.ElementsByClass(doc.ElementByID("ex"), "highlight-word")
	if len(words) != 2 {
		t.Fatalf("highlight words = %d, want 2", len(words))
	}
	for i, w := range words {
		if dom.TextContent(w) != "x" {
			t.Errorf("word %d text = %q, want x", i+1, dom.TextContent(w))
		}
	}
}

func TestCompile_RawHTMLOmitted(t *testing.T) {
	t.Parallel()

	out, err := NewCompiler().Compile(context.Background(), "<script>alert(1)</script>\n")
	if err != nil {
		t.Fatalf("Compile() unexpected error: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML rendered: %s", out)
	}
}

func TestCompile_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompiler().Compile(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Compile() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestThemeCSS
// ---------------------------------------------------------------------------

func TestThemeCSS(t *testing.T) {
	t.Parallel()

	css, err := ThemeCSS("")
	if err != nil {
		t.Fatalf("ThemeCSS() unexpected error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("theme css not scoped under .chroma: %.80s", css)
	}

	if _, err := ThemeCSS("no-such-style"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("ThemeCSS(unknown) error = %v, want ErrUnknownTheme", err)
	}

	found := false
	for _, name := range Themes() {
		if name == DefaultTheme {
			found = true
		}
	}
	if !found {
		t.Errorf("Themes() does not list %q", DefaultTheme)
	}
}
