package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdxblog/internal/mdast"
)

// Component tags: capitalised names plus the iframe intrinsic.
var (
	openTag = regexp.MustCompile(
		`^<([A-Z][A-Za-z0-9]*|iframe)` +
			`((?:\s+[A-Za-z_:][-A-Za-z0-9_:.]*(?:\s*=\s*(?:"[^"]*"|'[^']*'|\{[^}]*\}|[^\s"'=<>{}/]+))?)*)` +
			`\s*(/?)>`)

	attrPattern = regexp.MustCompile(
		`([A-Za-z_:][-A-Za-z0-9_:.]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|\{([^}]*)\}|([^\s"'=<>{}/]+)))?`)
)

// blockComponents render as block elements and are lifted out of paragraphs.
var blockComponents = map[string]bool{
	string(mdast.KindImage):   true,
	string(mdast.KindVideo):   true,
	string(mdast.KindIframe):  true,
	string(mdast.KindBox):     true,
	string(mdast.KindPreview): true,
}

// ParseAttrs reads JSX-style attributes in source order. Expression values
// such as {2} or {"x"} are reduced to their literal text.
func ParseAttrs(s string) mdast.Attrs {
	var attrs mdast.Attrs
	for _, m := range attrPattern.FindAllStringSubmatchIndex(s, -1) {
		attr := mdast.Attr{Name: s[m[2]:m[3]], Flag: true}
		for g := 4; g <= 10; g += 2 {
			if m[g] < 0 {
				continue
			}
			attr.Value = s[m[g]:m[g+1]]
			attr.Flag = false
			if g == 8 {
				attr.Value = unquoteExpr(attr.Value)
			}
			break
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// unquoteExpr strips surrounding space and quotes from a JSX expression.
func unquoteExpr(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		switch q := v[0]; q {
		case '"', '\'', '`':
			if v[len(v)-1] == q {
				return v[1 : len(v)-1]
			}
		}
	}
	return v
}

// ---------------------------------------------------------------------------
// Inline component parser
// ---------------------------------------------------------------------------

type componentParser struct{}

// NewComponentParser returns an inline parser for <Name ...>text</Name> and
// <Name ... /> on a single line.
func NewComponentParser() parser.InlineParser {
	return &componentParser{}
}

func (p *componentParser) Trigger() []byte {
	return []byte{'<'}
}

func (p *componentParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	m := openTag.FindSubmatchIndex(line)
	if m == nil {
		return nil
	}

	name := string(line[m[2]:m[3]])
	node := mdast.NewComponent(name, ParseAttrs(string(line[m[4]:m[5]])))
	if m[7] > m[6] {
		block.Advance(m[1])
		return node
	}

	closeTag := []byte("</" + name + ">")
	idx := bytes.Index(line[m[1]:], closeTag)
	if idx < 0 {
		return nil
	}

	if idx > 0 {
		start := seg.Start + m[1]
		node.AppendChild(node, ast.NewTextSegment(text.NewSegment(start, start+idx)))
	}
	block.Advance(m[1] + idx + len(closeTag))
	return node
}

// ---------------------------------------------------------------------------
// Block component transformer
// ---------------------------------------------------------------------------

type componentTransformer struct{}

// NewComponentTransformer returns an AST transformer that turns HTML blocks
// holding a component invocation into mdast.ComponentBlock nodes, and lifts
// block components written alone in a paragraph out of it.
func NewComponentTransformer() parser.ASTTransformer {
	return &componentTransformer{}
}

func (t *componentTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var htmlBlocks []*ast.HTMLBlock
	var paragraphs []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.HTMLBlock:
			htmlBlocks = append(htmlBlocks, n)
		case *ast.Paragraph:
			paragraphs = append(paragraphs, n)
		}
		return ast.WalkContinue, nil
	})

	for _, hb := range htmlBlocks {
		if cb := blockFromHTML(hb, source); cb != nil {
			hb.Parent().ReplaceChild(hb.Parent(), hb, cb)
		}
	}
	for _, p := range paragraphs {
		liftComponent(p)
	}
}

// blockFromHTML parses an HTML block consisting of exactly one component
// invocation. It returns nil for anything else.
func blockFromHTML(hb *ast.HTMLBlock, source []byte) *mdast.ComponentBlock {
	var buf bytes.Buffer
	lines := hb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	if hb.HasClosure() {
		buf.Write(hb.ClosureLine.Value(source))
	}
	content := bytes.TrimSpace(buf.Bytes())

	m := openTag.FindSubmatchIndex(content)
	if m == nil {
		return nil
	}

	name := string(content[m[2]:m[3]])
	cb := mdast.NewComponentBlock(name, ParseAttrs(string(content[m[4]:m[5]])))
	rest := content[m[1]:]
	if m[7] > m[6] {
		if len(bytes.TrimSpace(rest)) != 0 {
			return nil
		}
		return cb
	}

	closeTag := []byte("</" + name + ">")
	if !bytes.HasSuffix(rest, closeTag) {
		return nil
	}
	inner := bytes.TrimSpace(rest[:len(rest)-len(closeTag)])
	if len(inner) > 0 {
		cb.AppendChild(cb, ast.NewString(bytes.Clone(inner)))
	}
	return cb
}

// liftComponent replaces a paragraph whose only content is a block component
// with the component itself.
func liftComponent(p *ast.Paragraph) {
	var only *mdast.Component
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok && t.Segment.IsEmpty() {
			continue
		}
		comp, ok := c.(*mdast.Component)
		if !ok || only != nil {
			return
		}
		only = comp
	}
	if only == nil || !blockComponents[only.Name] {
		return
	}

	cb := mdast.NewComponentBlock(only.Name, only.Attrs)
	for c := only.FirstChild(); c != nil; {
		next := c.NextSibling()
		cb.AppendChild(cb, c)
		c = next
	}
	p.Parent().ReplaceChild(p.Parent(), p, cb)
}
