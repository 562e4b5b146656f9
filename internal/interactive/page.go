package interactive

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/alnah/go-mdxblog/internal/dom"
	"github.com/alnah/go-mdxblog/internal/numrange"
)

// Page scopes bindings to one render lifetime of a document.
type Page struct {
	doc    *dom.Document
	logger *slog.Logger

	mu      sync.Mutex
	mounted []Binding
}

// NewPage returns a page over doc. A nil logger discards.
func NewPage(doc *dom.Document, logger *slog.Logger) *Page {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Page{doc: doc, logger: logger}
}

// Document returns the page document.
func (p *Page) Document() *dom.Document { return p.doc }

// Mount mounts b and keeps it for Unmount when it took effect. A panic in b
// is logged and reported as not mounted.
func (p *Page) Mount(b Binding) (mounted bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("binding panicked", "binding", b.Name(), "panic", fmt.Sprint(r))
			mounted = false
		}
	}()

	if !b.Mount(p.doc) {
		p.logger.Debug("binding skipped", "binding", b.Name())
		return false
	}

	p.mu.Lock()
	p.mounted = append(p.mounted, b)
	p.mu.Unlock()
	return true
}

// Len returns the number of mounted bindings.
func (p *Page) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.mounted)
}

// Unmount detaches every mounted binding in reverse mount order.
func (p *Page) Unmount() {
	p.mu.Lock()
	mounted := p.mounted
	p.mounted = nil
	p.mu.Unlock()

	for _, b := range slices.Backward(mounted) {
		p.unmount(b)
	}
}

func (p *Page) unmount(b Binding) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("binding unmount panicked", "binding", b.Name(), "panic", fmt.Sprint(r))
		}
	}()
	b.Unmount()
}

// Marker attributes written by the renderer and consumed by Hydrate.
const (
	AttrRegisterLink     = "data-register-link"
	AttrCodeID           = "data-code-id"
	AttrIndex            = "data-index"
	AttrHref             = "data-href"
	AttrHighlightFor     = "data-highlight-for"
	AttrHighlightIndex   = "data-highlight-index"
	AttrHighlightTargets = "data-highlight-targets"
)

// Report summarises a hydration pass.
type Report struct {
	Links         int
	LinksSkipped  int
	Hovers        int
	HoversSkipped int
	DuplicateIDs  []string
}

// Hydrate applies the link markers of a rendered post and mounts its hover
// triggers on a new Page. Each resolved trigger is tagged with its target
// ordinals for the browser runtime. resolve maps link targets; nil keeps
// them as written. The caller unmounts the returned page.
func Hydrate(doc *dom.Document, resolve func(string) string, logger *slog.Logger) (*Page, Report) {
	page := NewPage(doc, logger)
	report := Report{DuplicateIDs: doc.Duplicates()}
	for _, id := range report.DuplicateIDs {
		page.logger.Warn("duplicate element id", "id", id)
	}

	for _, marker := range dom.ElementsByAttr(doc.Root(), AttrRegisterLink) {
		codeID, _ := dom.Attr(marker, AttrCodeID)
		rawIndex, _ := dom.Attr(marker, AttrIndex)
		href, _ := dom.Attr(marker, AttrHref)
		if resolve != nil {
			href = resolve(href)
		}
		index, err := strconv.Atoi(rawIndex)
		if err != nil {
			index = 0
		}

		if page.Mount(&LinkBinding{CodeID: codeID, Index: index, Href: href}) {
			report.Links++
		} else {
			report.LinksSkipped++
		}
		dom.Remove(marker)
	}

	for _, trigger := range dom.ElementsByAttr(doc.Root(), AttrHighlightFor) {
		codeID, _ := dom.Attr(trigger, AttrHighlightFor)
		spec, _ := dom.Attr(trigger, AttrHighlightIndex)

		binding := &HoverBinding{Trigger: trigger, CodeID: codeID, Range: spec}
		if !page.Mount(binding) {
			report.HoversSkipped++
			continue
		}
		report.Hovers++
		dom.SetAttr(trigger, AttrHighlightTargets, numrange.Format(binding.Targets()))
	}

	return page, report
}
