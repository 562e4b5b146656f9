// Package dom is a small headless page model over golang.org/x/net/html.
//
// A Document owns an explicit id registry scoped to its lifetime, so
// behaviors locate elements through the page they were mounted on instead
// of a global lookup. Event listeners are kept per element and dispatched
// synchronously.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for document operations.
var (
	ErrParse       = errors.New("failed to parse HTML")
	ErrDuplicateID = errors.New("duplicate element id")
)

// EventType names a pointer or activation event.
type EventType string

// Supported event types.
const (
	PointerEnter EventType = "pointerenter"
	PointerLeave EventType = "pointerleave"
	Click        EventType = "click"
)

type listener struct {
	fn func()
}

// Document is a parsed HTML page or fragment.
type Document struct {
	root       *html.Node
	fragment   bool
	ids        map[string]*html.Node
	duplicates []string
	listeners  map[*html.Node]map[EventType][]*listener
}

// Parse reads a full HTML document or a body fragment.
func Parse(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	root, fragment, err := parseHTML(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	d := &Document{
		root:      root,
		fragment:  fragment,
		ids:       make(map[string]*html.Node),
		listeners: make(map[*html.Node]map[EventType][]*listener),
	}
	d.indexIDs(root)
	return d, nil
}

// ParseString is Parse for string input.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// parseHTML detects whether content is a full document or a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

func (d *Document) indexIDs(root *html.Node) {
	walk(root, func(n *html.Node) bool {
		if id, ok := Attr(n, "id"); ok && id != "" {
			if err := d.Register(id, n); err != nil {
				d.duplicates = append(d.duplicates, id)
			}
		}
		return true
	})
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Register adds an element to the id registry. The first registration of an
// id wins; later ones return ErrDuplicateID.
func (d *Document) Register(id string, n *html.Node) error {
	if existing, ok := d.ids[id]; ok && existing != n {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	d.ids[id] = n
	return nil
}

// Unregister removes id from the registry.
func (d *Document) Unregister(id string) {
	delete(d.ids, id)
}

// ElementByID returns the registered element, or nil.
func (d *Document) ElementByID(id string) *html.Node {
	return d.ids[id]
}

// Duplicates lists ids that appeared more than once at parse time.
func (d *Document) Duplicates() []string {
	return d.duplicates
}

// Render writes the document back as HTML. Fragments are written without
// the html/head/body wrapper.
func (d *Document) Render(w io.Writer) error {
	if !d.fragment {
		return html.Render(w, d.root)
	}
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// AddEventListener attaches fn to n for typ and returns a function that
// detaches it again.
func (d *Document) AddEventListener(n *html.Node, typ EventType, fn func()) (remove func()) {
	l := &listener{fn: fn}
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[EventType][]*listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], l)

	return func() {
		list := d.listeners[n][typ]
		for i, candidate := range list {
			if candidate == l {
				d.listeners[n][typ] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(d.listeners[n][typ]) == 0 {
			delete(d.listeners[n], typ)
		}
		if len(d.listeners[n]) == 0 {
			delete(d.listeners, n)
		}
	}
}

// Dispatch invokes the listeners registered on n for typ, in order.
func (d *Document) Dispatch(n *html.Node, typ EventType) {
	list := append([]*listener(nil), d.listeners[n][typ]...)
	for _, l := range list {
		l.fn()
	}
}

// ListenerCount returns the number of listeners attached to n.
func (d *Document) ListenerCount(n *html.Node) int {
	total := 0
	for _, list := range d.listeners[n] {
		total += len(list)
	}
	return total
}
