package interactive

import (
	"fmt"
	"sync"

	"github.com/a-h/templ"

	"github.com/alnah/go-mdxblog/internal/markup"
)

// Toggle labels.
const (
	LabelHide = "Hide code"
	LabelShow = "Show code"
)

// Collapsible is the open state of one inline code element. Collapsible
// elements start closed; others are always open and render no toggle.
type Collapsible struct {
	collapsible bool

	mu   sync.Mutex
	open bool
}

// NewCollapsible returns the widget for an element with or without the
// collapsible attribute.
func NewCollapsible(collapsible bool) *Collapsible {
	return &Collapsible{collapsible: collapsible, open: !collapsible}
}

// Toggle flips the open state of a collapsible element.
func (c *Collapsible) Toggle() {
	if !c.collapsible {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
}

// Open reports whether content is rendered.
func (c *Collapsible) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Label is the toggle text for the current state.
func (c *Collapsible) Label() string {
	if c.Open() {
		return LabelHide
	}
	return LabelShow
}

// Render returns content behind a toggle. Closed output omits content.
func (c *Collapsible) Render(content templ.Component) templ.Component {
	return c.render(content, false)
}

// RenderStatic is Render for static pages: closed output also carries the
// content inside an inert <template> for the browser runtime to reveal.
func (c *Collapsible) RenderStatic(content templ.Component) templ.Component {
	return c.render(content, true)
}

func (c *Collapsible) render(content templ.Component, static bool) templ.Component {
	if !c.collapsible {
		return content
	}

	open := c.Open()
	state := "closed"
	if open {
		state = "open"
	}

	toggle := markup.Element("button", []markup.Attr{
		markup.A("type", "button"),
		markup.A("class", "code-toggle"),
		markup.A("aria-expanded", fmt.Sprint(open)),
	}, markup.Text(c.Label()))

	var body templ.Component
	switch {
	case open:
		body = markup.Element("div", []markup.Attr{markup.A("class", "collapsible-content")}, content)
	case static:
		body = markup.Element("template", []markup.Attr{markup.Flag("data-collapsible-content")}, content)
	}

	return markup.Element("div", []markup.Attr{
		markup.A("class", "collapsible"),
		markup.Flag("data-collapsible"),
		markup.A("data-state", state),
	}, toggle, body)
}
