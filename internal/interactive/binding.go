package interactive

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-mdxblog/internal/dom"
	"github.com/alnah/go-mdxblog/internal/fileutil"
	"github.com/alnah/go-mdxblog/internal/mdast"
	"github.com/alnah/go-mdxblog/internal/numrange"
)

// OnClass marks a highlight word while its hover trigger is hovered.
const OnClass = "on"

// Binding is mounted on a document and later unmounted. Mount reports
// whether the binding took effect; false means it was a no-op.
type Binding interface {
	Name() string
	Mount(doc *dom.Document) bool
	Unmount()
}

// HighlightWords returns the highlight words of the code block with id, in
// source order. ok is false when the block does not exist.
func HighlightWords(doc *dom.Document, id string) (words []*html.Node, ok bool) {
	block := doc.ElementByID(id)
	if block == nil {
		return nil, false
	}
	return dom.ElementsByClass(block, mdast.HighlightWordClass), true
}

// ---------------------------------------------------------------------------
// LinkBinding
// ---------------------------------------------------------------------------

// LinkBinding turns highlight word Index of block CodeID into an anchor to
// Href. The replacement is applied once and never undone.
type LinkBinding struct {
	CodeID string
	Index  int
	Href   string
}

// Name implements Binding.
func (l *LinkBinding) Name() string { return "RegisterLink#" + l.CodeID }

// Mount replaces the word with an anchor keeping its class and content.
// A missing block or an out-of-range index leaves the document untouched.
func (l *LinkBinding) Mount(doc *dom.Document) bool {
	words, ok := HighlightWords(doc, l.CodeID)
	if !ok || l.Index < 1 || l.Index > len(words) {
		return false
	}

	word := words[l.Index-1]
	attrs := []html.Attribute{{Key: "href", Val: l.Href}}
	if class, ok := dom.Attr(word, "class"); ok {
		attrs = append(attrs, html.Attribute{Key: "class", Val: class})
	}
	if fileutil.IsURL(l.Href) {
		attrs = append(attrs,
			html.Attribute{Key: "target", Val: "_blank"},
			html.Attribute{Key: "rel", Val: "noopener"},
		)
	}

	anchor := dom.NewElement("a", attrs...)
	dom.MoveChildren(anchor, word)
	dom.ReplaceWith(word, anchor)
	return true
}

// Unmount is a no-op: the replacement is permanent.
func (l *LinkBinding) Unmount() {}

// ---------------------------------------------------------------------------
// HoverBinding
// ---------------------------------------------------------------------------

// HoverBinding toggles OnClass on a range of highlight words of block CodeID
// while Trigger is hovered.
type HoverBinding struct {
	Trigger *html.Node
	CodeID  string
	Range   string

	targets []int
	remove  []func()
}

// Name implements Binding.
func (h *HoverBinding) Name() string { return "H#" + h.CodeID }

// Mount attaches pointerenter and pointerleave listeners to the trigger.
// It attaches nothing when the block is missing, the range is empty or the
// largest requested ordinal exceeds the current word count.
func (h *HoverBinding) Mount(doc *dom.Document) bool {
	words, ok := HighlightWords(doc, h.CodeID)
	if !ok || h.Trigger == nil {
		return false
	}

	indices := numrange.Indices(h.Range)
	if len(indices) == 0 || numrange.Max(h.Range) > len(words) {
		return false
	}

	targets := make([]*html.Node, len(indices))
	h.targets = make([]int, len(indices))
	for i, idx := range indices {
		targets[i] = words[idx]
		h.targets[i] = idx + 1
	}

	h.remove = append(h.remove,
		doc.AddEventListener(h.Trigger, dom.PointerEnter, func() {
			for _, t := range targets {
				dom.AddClass(t, OnClass)
			}
		}),
		doc.AddEventListener(h.Trigger, dom.PointerLeave, func() {
			for _, t := range targets {
				dom.RemoveClass(t, OnClass)
			}
		}),
	)
	return true
}

// Targets returns the bound 1-based ordinals.
func (h *HoverBinding) Targets() []int { return h.targets }

// Unmount detaches both listeners.
func (h *HoverBinding) Unmount() {
	for _, remove := range h.remove {
		remove()
	}
	h.remove = nil
}
