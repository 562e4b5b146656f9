package mdx

import (
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-mdxblog/internal/fileutil"
	"github.com/alnah/go-mdxblog/internal/interactive"
	"github.com/alnah/go-mdxblog/internal/markup"
	"github.com/alnah/go-mdxblog/internal/mdast"
)

// Router resolves internal link targets to page addresses.
type Router interface {
	Resolve(href string) string
}

// RouterFunc adapts a function to Router.
type RouterFunc func(href string) string

// Resolve implements Router.
func (f RouterFunc) Resolve(href string) string { return f(href) }

// BasePath returns a Router that prefixes site-rooted targets with base.
// Relative targets, fragments and other schemes are kept.
func BasePath(base string) Router {
	base = strings.TrimSuffix(base, "/")
	return RouterFunc(func(href string) string {
		if base == "" || !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
			return href
		}
		return base + href
	})
}

// Options configures the default table.
type Options struct {
	// Router resolves internal links. Defaults to BasePath("").
	Router Router
}

type components struct {
	router Router
	table  Table
}

// DefaultTable returns the site's override table.
func DefaultTable(opts Options) Table {
	c := &components{router: opts.Router}
	if c.router == nil {
		c.router = BasePath("")
	}

	c.table = Table{
		mdast.KindH1:           c.heading("h1"),
		mdast.KindH2:           c.heading("h2"),
		mdast.KindH3:           c.heading("h3"),
		mdast.KindH4:           c.heading("h4"),
		mdast.KindParagraph:    c.block("p", "paragraph"),
		mdast.KindList:         c.block("ul", "list"),
		mdast.KindOrderedList:  c.block("ol", "list list-ordered"),
		mdast.KindListItem:     c.block("li", "list-item"),
		mdast.KindStrong:       c.block("strong", "strong"),
		mdast.KindBlockquote:   c.block("blockquote", "quote"),
		mdast.KindPreview:      c.block("div", "preview"),
		mdast.KindRule:         c.rule,
		mdast.KindLink:         c.link,
		mdast.KindImg:          c.img,
		mdast.KindImage:        c.image,
		mdast.KindVideo:        c.video,
		mdast.KindIframe:       c.iframe,
		mdast.KindBox:          c.box,
		mdast.KindPre:          c.pre,
		mdast.KindCode:         c.code,
		mdast.KindHighlight:    c.highlight,
		mdast.KindRegisterLink: c.registerLink,
	}
	return c.table
}

// ---------------------------------------------------------------------------
// Markdown elements
// ---------------------------------------------------------------------------

func (c *components) heading(tag string) RenderFunc {
	return c.block(tag, "heading heading-"+tag[1:])
}

// block renders tag with class plus the node's own attributes.
func (c *components) block(tag, class string) RenderFunc {
	return func(p Props) templ.Component {
		attrs := []markup.Attr{markup.A("class", mergeClass(class, p.Attrs))}
		attrs = append(attrs, passthrough(p.Attrs)...)
		return markup.Element(tag, attrs, p.Children)
	}
}

func (c *components) rule(Props) templ.Component {
	return markup.Void("hr", []markup.Attr{markup.A("class", "divider")})
}

// link opens absolute http(s) targets in a new browsing context without an
// opener handle, and routes everything else through the site router.
func (c *components) link(p Props) templ.Component {
	href, _ := p.Attrs.Get("href")

	var attrs []markup.Attr
	if fileutil.IsURL(href) {
		attrs = []markup.Attr{
			markup.A("href", string(templ.URL(href))),
			markup.A("class", "link link-external"),
			markup.A("target", "_blank"),
			markup.A("rel", "noopener"),
		}
	} else {
		attrs = []markup.Attr{
			markup.A("href", string(templ.URL(c.router.Resolve(href)))),
			markup.A("class", "link"),
		}
	}
	attrs = append(attrs, passthrough(p.Attrs, "href", "target", "rel")...)
	return markup.Element("a", attrs, p.Children)
}

// img is the Markdown image: a bare image in an inline media wrapper.
func (c *components) img(p Props) templ.Component {
	return markup.Element("span", []markup.Attr{markup.A("class", "media")}, imageTag(p.Attrs, "image"))
}

// ---------------------------------------------------------------------------
// Components
// ---------------------------------------------------------------------------

// image renders a captioned figure when the invocation has children and a
// bare image otherwise.
func (c *components) image(p Props) templ.Component {
	img := imageTag(p.Attrs, "image")
	if p.Node == nil || !p.Node.HasChildren() {
		return img
	}
	return markup.Element("figure", []markup.Attr{markup.A("class", "figure")},
		img,
		markup.Element("figcaption", []markup.Attr{markup.A("class", "caption")}, p.Children),
	)
}

func imageTag(attrs mdast.Attrs, class string) templ.Component {
	out := []markup.Attr{markup.A("class", mergeClass(class, attrs))}
	out = append(out, passthrough(attrs)...)
	if !attrs.Has("loading") {
		out = append(out, markup.A("loading", "lazy"))
	}
	return markup.Void("img", out)
}

// video always autoplays muted, inline and looping.
func (c *components) video(p Props) templ.Component {
	attrs := []markup.Attr{markup.A("class", mergeClass("video", p.Attrs))}
	attrs = append(attrs, passthrough(p.Attrs, "autoPlay", "autoplay", "playsInline", "playsinline", "muted", "loop")...)
	attrs = append(attrs,
		markup.Flag("autoplay"),
		markup.Flag("playsinline"),
		markup.Flag("muted"),
		markup.Flag("loop"),
	)
	return markup.Element("div", []markup.Attr{markup.A("class", "media media-video")},
		markup.Element("video", attrs))
}

func (c *components) iframe(p Props) templ.Component {
	attrs := []markup.Attr{markup.A("class", mergeClass("iframe", p.Attrs))}
	attrs = append(attrs, passthrough(p.Attrs)...)
	return markup.Element("div", []markup.Attr{markup.A("class", "embed")},
		markup.Element("iframe", attrs))
}

var boxTags = []string{"div", "section", "aside", "span", "article"}

// box is a layout container; `as` picks the element.
func (c *components) box(p Props) templ.Component {
	tag := "div"
	if as, ok := p.Attrs.Get("as"); ok && slices.Contains(boxTags, as) {
		tag = as
	}
	return c.block(tag, "box")(p)
}

// pre delegates to the code block behavior. Its code child goes through the
// table so a collapsible fence gets the collapsible behavior.
func (c *components) pre(p Props) templ.Component {
	fence, ok := mdast.FenceOf(p.Node)
	if !ok {
		fence = &mdast.Fence{}
	}

	block := interactive.NewCodeBlock(fence.Code, interactive.CodeBlockProps{
		ID:              fence.ID,
		Lang:            fence.Lang,
		Theme:           fence.Theme,
		ShowLineNumbers: fence.ShowLineNumbers,
	})

	var codeAttrs mdast.Attrs
	if fence.Lang != "" {
		codeAttrs = append(codeAttrs, mdast.Attr{Name: "class", Value: "language-" + fence.Lang})
	}
	if fence.Collapsible {
		codeAttrs = append(codeAttrs, mdast.Attr{Name: "collapsible", Flag: true})
	}
	code := c.table.Render(Props{
		Kind:     mdast.KindCode,
		Node:     p.Node,
		Source:   p.Source,
		Attrs:    codeAttrs,
		Children: p.Children,
	})

	out := block.Render(code)
	if fence.Title == "" {
		return out
	}
	return markup.Element("div", []markup.Attr{markup.A("class", "code-figure")},
		markup.Element("div", []markup.Attr{markup.A("class", "code-title")}, markup.Text(fence.Title)),
		out,
	)
}

// code renders inline code and the code element of blocks. A collapsible
// attribute puts it behind the collapsible toggle.
func (c *components) code(p Props) templ.Component {
	class := "code"
	if p.Node != nil && p.Node.Kind() == ast.KindCodeSpan {
		class = "code code-inline"
	}
	content := markup.Element("code", []markup.Attr{markup.A("class", mergeClass(class, p.Attrs))}, p.Children)
	return interactive.NewCollapsible(p.Attrs.Has("collapsible")).RenderStatic(content)
}

// highlight is the H trigger: inline code naming a code block and a range
// of its highlight words.
func (c *components) highlight(p Props) templ.Component {
	id, _ := p.Attrs.Get("id")
	index, _ := p.Attrs.Get("index")
	return markup.Element("code", []markup.Attr{
		markup.A("class", "code code-inline hover-trigger"),
		markup.A(interactive.AttrHighlightFor, id),
		markup.A(interactive.AttrHighlightIndex, index),
	}, p.Children)
}

// registerLink leaves an inert marker consumed by hydration.
func (c *components) registerLink(p Props) templ.Component {
	id, _ := p.Attrs.Get("id")
	index, _ := p.Attrs.Get("index")
	href, _ := p.Attrs.Get("href")
	if !fileutil.IsURL(href) {
		href = c.router.Resolve(href)
	}
	return markup.Element("template", []markup.Attr{
		markup.Flag(interactive.AttrRegisterLink),
		markup.A(interactive.AttrCodeID, id),
		markup.A(interactive.AttrIndex, index),
		markup.A(interactive.AttrHref, string(templ.URL(href))),
	})
}

// ---------------------------------------------------------------------------
// Attribute pass-through
// ---------------------------------------------------------------------------

var urlAttrs = map[string]bool{"href": true, "src": true, "poster": true, "action": true}

// passthrough converts invocation attributes to HTML attributes. Event
// handlers are dropped, URL values sanitized, and class names are left to
// mergeClass.
func passthrough(attrs mdast.Attrs, skip ...string) []markup.Attr {
	var out []markup.Attr
	for _, a := range attrs {
		name := a.Name
		if slices.Contains(skip, name) || isHandler(name) {
			continue
		}
		switch name {
		case "class", "className", "as", "css", "collapsible":
			continue
		}

		if a.Flag {
			out = append(out, markup.Flag(name))
			continue
		}
		value := a.Value
		if urlAttrs[strings.ToLower(name)] {
			value = string(templ.URL(value))
		}
		out = append(out, markup.A(name, value))
	}
	return out
}

// isHandler reports event handler attributes such as onClick.
func isHandler(name string) bool {
	return len(name) > 2 && strings.EqualFold(name[:2], "on")
}

// mergeClass appends the invocation's class or className to base.
func mergeClass(base string, attrs mdast.Attrs) string {
	for _, key := range []string{"class", "className"} {
		if v, ok := attrs.Get(key); ok && v != "" {
			base += " " + v
		}
	}
	return base
}
