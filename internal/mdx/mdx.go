// Package mdx renders the annotated content tree through an override table
// keyed by node kind.
//
// Each goldmark node the table can address is classified to an mdast.Kind
// and looked up in the Table. A missing entry is not an error: the node is
// rendered by goldmark's default HTML renderer, and a component without an
// entry renders its children only.
package mdx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdxblog/internal/markup"
	"github.com/alnah/go-mdxblog/internal/mdast"
)

// Props is what a render function receives for one node.
type Props struct {
	Kind     mdast.Kind
	Node     ast.Node
	Source   []byte
	Attrs    mdast.Attrs
	Children templ.Component
}

// RenderFunc renders one node.
type RenderFunc func(p Props) templ.Component

// Table maps node kinds to their render functions.
type Table map[mdast.Kind]RenderFunc

// Render returns the table output for p, or p.Children when the kind has no
// entry.
func (t Table) Render(p Props) templ.Component {
	if fn, ok := t[p.Kind]; ok && fn != nil {
		return fn(p)
	}
	return p.Children
}

// ---------------------------------------------------------------------------
// Classification
// ---------------------------------------------------------------------------

// Classify returns the table kind of n and the attributes the table sees.
// ok is false for nodes the table cannot address.
func Classify(n ast.Node, source []byte) (kind mdast.Kind, attrs mdast.Attrs, ok bool) {
	switch n := n.(type) {
	case *ast.Heading:
		if n.Level < 1 || n.Level > 4 {
			return "", nil, false
		}
		return mdast.Kind(fmt.Sprintf("h%d", n.Level)), nodeAttrs(n), true
	case *ast.Paragraph:
		return mdast.KindParagraph, nodeAttrs(n), true
	case *ast.List:
		if n.IsOrdered() {
			attrs := nodeAttrs(n)
			if n.Start != 1 {
				attrs = append(attrs, mdast.Attr{Name: "start", Value: fmt.Sprint(n.Start)})
			}
			return mdast.KindOrderedList, attrs, true
		}
		return mdast.KindList, nodeAttrs(n), true
	case *ast.ListItem:
		return mdast.KindListItem, nodeAttrs(n), true
	case *ast.Emphasis:
		if n.Level != 2 {
			return "", nil, false
		}
		return mdast.KindStrong, nil, true
	case *ast.Link:
		attrs := mdast.Attrs{{Name: "href", Value: string(n.Destination)}}
		if len(n.Title) > 0 {
			attrs = append(attrs, mdast.Attr{Name: "title", Value: string(n.Title)})
		}
		return mdast.KindLink, attrs, true
	case *ast.AutoLink:
		url := string(n.URL(source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return mdast.KindLink, mdast.Attrs{{Name: "href", Value: url}}, true
	case *ast.Image:
		attrs := mdast.Attrs{
			{Name: "src", Value: string(n.Destination)},
			{Name: "alt", Value: plainText(n, source)},
		}
		if len(n.Title) > 0 {
			attrs = append(attrs, mdast.Attr{Name: "title", Value: string(n.Title)})
		}
		return mdast.KindImg, attrs, true
	case *ast.Blockquote:
		return mdast.KindBlockquote, nodeAttrs(n), true
	case *ast.ThematicBreak:
		return mdast.KindRule, nil, true
	case *ast.FencedCodeBlock:
		return mdast.KindPre, fenceAttrs(n), true
	case *ast.CodeSpan:
		return mdast.KindCode, nil, true
	case *mdast.Component:
		return mdast.Kind(n.Name), n.Attrs, true
	case *mdast.ComponentBlock:
		return mdast.Kind(n.Name), n.Attrs, true
	}
	return "", nil, false
}

// nodeAttrs returns the string attributes goldmark attached to n, such as
// heading ids.
func nodeAttrs(n ast.Node) mdast.Attrs {
	var attrs mdast.Attrs
	for _, a := range n.Attributes() {
		switch v := a.Value.(type) {
		case []byte:
			attrs = append(attrs, mdast.Attr{Name: string(a.Name), Value: string(v)})
		case string:
			attrs = append(attrs, mdast.Attr{Name: string(a.Name), Value: v})
		}
	}
	return attrs
}

func fenceAttrs(n ast.Node) mdast.Attrs {
	f, ok := mdast.FenceOf(n)
	if !ok {
		return nil
	}
	var attrs mdast.Attrs
	for _, kv := range [][2]string{{"lang", f.Lang}, {"title", f.Title}, {"id", f.ID}, {"theme", f.Theme}} {
		if kv[1] != "" {
			attrs = append(attrs, mdast.Attr{Name: kv[0], Value: kv[1]})
		}
	}
	if f.ShowLineNumbers {
		attrs = append(attrs, mdast.Attr{Name: "showLineNumbers", Flag: true})
	}
	if f.Collapsible {
		attrs = append(attrs, mdast.Attr{Name: "collapsible", Flag: true})
	}
	return attrs
}

// plainText concatenates the text of n's descendants.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// ---------------------------------------------------------------------------
// goldmark integration
// ---------------------------------------------------------------------------

// handledKinds are the goldmark kinds routed through the table.
var handledKinds = []ast.NodeKind{
	ast.KindHeading,
	ast.KindParagraph,
	ast.KindList,
	ast.KindListItem,
	ast.KindEmphasis,
	ast.KindLink,
	ast.KindAutoLink,
	ast.KindImage,
	ast.KindBlockquote,
	ast.KindThematicBreak,
	ast.KindFencedCodeBlock,
	ast.KindCodeSpan,
	mdast.KindComponent,
	mdast.KindComponentBlock,
}

// Renderer is a goldmark extension rendering through a Table.
type Renderer struct {
	table    Table
	fallback renderer.NodeRenderer
	defaults map[ast.NodeKind]renderer.NodeRendererFunc
	md       goldmark.Markdown
}

// NewRenderer returns the extension for table.
func NewRenderer(table Table) *Renderer {
	r := &Renderer{
		table:    table,
		fallback: html.NewRenderer(),
		defaults: make(map[ast.NodeKind]renderer.NodeRendererFunc),
	}
	r.fallback.RegisterFuncs(recorder(r.defaults))
	return r
}

type recorder map[ast.NodeKind]renderer.NodeRendererFunc

func (rec recorder) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	rec[kind] = fn
}

// Extend implements goldmark.Extender.
func (r *Renderer) Extend(m goldmark.Markdown) {
	r.md = m
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(r, 100),
	))
}

// SetOption forwards renderer options to the default HTML renderer.
func (r *Renderer) SetOption(name renderer.OptionName, value any) {
	if so, ok := r.fallback.(renderer.SetOptioner); ok {
		so.SetOption(name, value)
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for _, kind := range handledKinds {
		reg.Register(kind, r.render)
	}
}

func (r *Renderer) render(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	kind, attrs, ok := Classify(n, source)
	fn := r.table[kind]
	if !ok || fn == nil {
		return r.renderDefault(w, source, n, entering)
	}
	if !entering {
		return ast.WalkContinue, nil
	}

	p := Props{Kind: kind, Node: n, Source: source, Attrs: attrs}
	switch n := n.(type) {
	case *ast.AutoLink:
		p.Children = markup.Text(string(n.Label(source)))
	case *ast.FencedCodeBlock:
		p.Children = CodeLines(n, source)
	default:
		p.Children = r.children(source, n)
	}

	if err := fn(p).Render(context.Background(), w); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderDefault(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if fn, ok := r.defaults[n.Kind()]; ok {
		return fn(w, source, n, entering)
	}
	return ast.WalkContinue, nil
}

// children renders the child nodes of n with the full goldmark renderer.
func (r *Renderer) children(source []byte, n ast.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := r.md.Renderer().Render(w, source, c); err != nil {
				return err
			}
		}
		return nil
	})
}
