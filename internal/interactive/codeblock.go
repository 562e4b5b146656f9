package interactive

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/alnah/go-mdxblog/internal/markup"
)

// CopyFeedback is how long the copied indicator stays on.
const CopyFeedback = 2000 * time.Millisecond

// CodeBlockProps are the presentational attributes of a code block.
type CodeBlockProps struct {
	ID              string
	Lang            string
	Theme           string
	ShowLineNumbers bool
}

// CodeBlock is the hover-to-copy state of one rendered code block.
//
// The feedback timer is owned by the block: a new copy, a pointer leave or
// Unmount cancels the pending reset, and a reset that fires after being
// superseded is ignored.
type CodeBlock struct {
	props     CodeBlockProps
	text      string
	clipboard Clipboard
	scheduler Scheduler

	mu      sync.Mutex
	hovered bool
	copied  bool
	pending Timer
	gen     uint64
}

// CodeBlockOption configures a CodeBlock.
type CodeBlockOption func(*CodeBlock)

// WithClipboard sets the clipboard copy writes to.
func WithClipboard(c Clipboard) CodeBlockOption {
	return func(b *CodeBlock) { b.clipboard = c }
}

// WithScheduler sets the scheduler of the feedback reset.
func WithScheduler(s Scheduler) CodeBlockOption {
	return func(b *CodeBlock) { b.scheduler = s }
}

// NewCodeBlock returns a block whose copy action writes text.
func NewCodeBlock(text string, props CodeBlockProps, opts ...CodeBlockOption) *CodeBlock {
	b := &CodeBlock{
		props:     props,
		text:      text,
		scheduler: SystemScheduler{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PointerEnter marks the block hovered.
func (b *CodeBlock) PointerEnter() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hovered = true
}

// PointerLeave clears both hovered and copied.
func (b *CodeBlock) PointerLeave() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hovered = false
	b.copied = false
	b.cancelLocked()
}

// Copy writes the block text to the clipboard and turns the copied indicator
// on for CopyFeedback. It does nothing while the block is not hovered.
// A clipboard failure is returned and leaves copied unchanged.
func (b *CodeBlock) Copy(ctx context.Context) error {
	b.mu.Lock()
	if !b.hovered {
		b.mu.Unlock()
		return nil
	}
	clipboard, text := b.clipboard, b.text
	b.mu.Unlock()

	if clipboard == nil {
		return ErrNoClipboard
	}
	if err := clipboard.WriteText(ctx, text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hovered {
		return nil
	}
	b.cancelLocked()
	b.copied = true
	gen := b.gen
	b.pending = b.scheduler.AfterFunc(CopyFeedback, func() { b.reset(gen) })
	return nil
}

// Unmount cancels any pending reset and clears the state.
func (b *CodeBlock) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()
	b.hovered = false
	b.copied = false
}

// Hovered reports the hovered flag.
func (b *CodeBlock) Hovered() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hovered
}

// Copied reports the copied flag.
func (b *CodeBlock) Copied() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copied
}

// Text returns the text a copy writes.
func (b *CodeBlock) Text() string { return b.text }

func (b *CodeBlock) reset(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return
	}
	b.copied = false
	b.pending = nil
}

// cancelLocked stops the pending reset and invalidates it if it already fired.
func (b *CodeBlock) cancelLocked() {
	b.gen++
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
}

// Render returns the <pre> element wrapping children. The copy control is
// present only while hovered; its icon reflects copied.
func (b *CodeBlock) Render(children templ.Component) templ.Component {
	b.mu.Lock()
	hovered, copied := b.hovered, b.copied
	b.mu.Unlock()

	attrs := []markup.Attr{
		markup.A("class", "chroma code-block"),
		markup.Flag("data-code-block"),
	}
	if b.props.ID != "" {
		attrs = append(attrs, markup.A("id", b.props.ID))
	}
	if b.props.Lang != "" {
		attrs = append(attrs, markup.A("data-lang", b.props.Lang))
	}
	if b.props.Theme != "" {
		attrs = append(attrs, markup.A("data-theme", b.props.Theme))
	}
	if b.props.ShowLineNumbers {
		attrs = append(attrs, markup.Flag("data-line-numbers"))
	}

	var control templ.Component
	if hovered {
		control = CopyButton(copied)
	}
	return markup.Element("pre", attrs, control, children)
}

// CopyButton renders the copy control with the check icon when copied.
func CopyButton(copied bool) templ.Component {
	icon, label := copyIcon, "Copy to Clipboard"
	if copied {
		icon, label = checkIcon, "Copied"
	}
	return markup.Element("button", []markup.Attr{
		markup.A("type", "button"),
		markup.A("class", "copy-button"),
		markup.A("aria-label", label),
		markup.A("data-copied", fmt.Sprint(copied)),
	}, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, icon)
		return err
	}))
}

const (
	copyIcon = `<svg data-icon="copy" width="15" height="15" viewBox="0 0 15 15" fill="none" aria-hidden="true">` +
		`<path d="M1 9.5V1.5A.5.5 0 0 1 1.5 1h8a.5.5 0 0 1 .5.5V3H5.5A2.5 2.5 0 0 0 3 5.5V10H1.5a.5.5 0 0 1-.5-.5z` +
		`M5.5 4h8a1.5 1.5 0 0 1 1.5 1.5v8a1.5 1.5 0 0 1-1.5 1.5h-8A1.5 1.5 0 0 1 4 13.5v-8A1.5 1.5 0 0 1 5.5 4z" ` +
		`fill="currentColor"/></svg>`
	checkIcon = `<svg data-icon="check" width="15" height="15" viewBox="0 0 15 15" fill="none" aria-hidden="true">` +
		`<path d="M11.47 3.84a.5.5 0 0 1 .69.69l-5.5 7a.5.5 0 0 1-.75.04l-3-3a.5.5 0 1 1 .7-.7l2.6 2.6 5.26-6.63z" ` +
		`fill="currentColor"/></svg>`
)
