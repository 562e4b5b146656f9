// Package mdast defines the content node model shared by the pipeline hooks
// and the renderer override table: the enumerated node kinds, component
// invocation nodes and the annotation attached to fenced code blocks.
package mdast

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/yuin/goldmark/ast"
)

// Kind tags a content node the renderer table can address.
type Kind string

// Node kinds. Lower-case kinds mirror HTML elements produced from Markdown;
// capitalised kinds are component invocations.
const (
	KindH1           Kind = "h1"
	KindH2           Kind = "h2"
	KindH3           Kind = "h3"
	KindH4           Kind = "h4"
	KindParagraph    Kind = "p"
	KindList         Kind = "ul"
	KindOrderedList  Kind = "ol"
	KindListItem     Kind = "li"
	KindStrong       Kind = "strong"
	KindLink         Kind = "a"
	KindImg          Kind = "img"
	KindBlockquote   Kind = "blockquote"
	KindRule         Kind = "hr"
	KindPre          Kind = "pre"
	KindCode         Kind = "code"
	KindIframe       Kind = "iframe"
	KindImage        Kind = "Image"
	KindVideo        Kind = "Video"
	KindBox          Kind = "Box"
	KindPreview      Kind = "Preview"
	KindHighlight    Kind = "H"
	KindRegisterLink Kind = "RegisterLink"
)

// HighlightWordClass is the shared marker class of highlight words.
const HighlightWordClass = "highlight-word"

// Attr is one component attribute. Value is empty for bare flags.
type Attr struct {
	Name  string
	Value string
	Flag  bool
}

// Attrs keeps attributes in source order.
type Attrs []Attr

// Get returns the value of the named attribute.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether the named attribute is present, as a flag or a value.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// KindComponent is the goldmark kind of an inline component invocation.
var KindComponent = ast.NewNodeKind("Component")

// KindComponentBlock is the goldmark kind of a block component invocation.
var KindComponentBlock = ast.NewNodeKind("ComponentBlock")

// Component is an inline component invocation such as <H id="x" index="1-3">.
type Component struct {
	ast.BaseInline
	Name  string
	Attrs Attrs
}

// Kind implements ast.Node.
func (n *Component) Kind() ast.NodeKind { return KindComponent }

// Dump implements ast.Node.
func (n *Component) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// NewComponent returns an inline component node.
func NewComponent(name string, attrs Attrs) *Component {
	return &Component{Name: name, Attrs: attrs}
}

// ComponentBlock is a block-level component invocation such as
// <Image src="/a.png">caption</Image> standing on its own lines.
type ComponentBlock struct {
	ast.BaseBlock
	Name  string
	Attrs Attrs
}

// Kind implements ast.Node.
func (n *ComponentBlock) Kind() ast.NodeKind { return KindComponentBlock }

// Dump implements ast.Node.
func (n *ComponentBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// NewComponentBlock returns a block component node.
func NewComponentBlock(name string, attrs Attrs) *ComponentBlock {
	return &ComponentBlock{Name: name, Attrs: attrs}
}

// ComponentOf returns name and attributes when n is a component invocation.
func ComponentOf(n ast.Node) (string, Attrs, bool) {
	switch c := n.(type) {
	case *Component:
		return c.Name, c.Attrs, true
	case *ComponentBlock:
		return c.Name, c.Attrs, true
	}
	return "", nil, false
}

// Token is one lexical token of a highlighted code line.
// Word is the 1-based highlight-word ordinal, or 0. A highlight word that
// spans several lexer tokens keeps them in Parts; Value is then their
// concatenation.
type Token struct {
	Type  chroma.TokenType
	Value string
	Word  int
	Parts []Token
}

// Class returns the CSS class chroma uses for the token type, falling back
// to its sub-category and category. Plain text has no class.
func (t Token) Class() string {
	for _, candidate := range []chroma.TokenType{t.Type, t.Type.SubCategory(), t.Type.Category()} {
		if class, ok := chroma.StandardTypes[candidate]; ok {
			return class
		}
	}
	return ""
}

// Row is one tokenized line of a code block.
type Row struct {
	Number      int
	Highlighted bool
	Tokens      []Token
}

// Fence is the annotation attached to a fenced code block by the pipeline
// hooks. Meta fields are set by fence meta extraction; Rows and WordCount by
// syntax tokenization.
type Fence struct {
	Lang            string
	Title           string
	ID              string
	Theme           string
	ShowLineNumbers bool
	Collapsible     bool
	Lines           []int
	Words           []string
	Code            string

	Rows      []Row
	WordCount int
}

// Tokenized reports whether the tokenization hook has run on the fence.
func (f *Fence) Tokenized() bool {
	return f.Rows != nil
}

const fenceAttr = "mdx-fence"

// SetFence attaches f to a fenced code block node.
func SetFence(n ast.Node, f *Fence) {
	n.SetAttributeString(fenceAttr, f)
}

// FenceOf returns the annotation attached to n, if any.
func FenceOf(n ast.Node) (*Fence, bool) {
	v, ok := n.AttributeString(fenceAttr)
	if !ok {
		return nil, false
	}
	f, ok := v.(*Fence)
	return f, ok
}
