// Package interactive implements the behaviors layered onto rendered code
// blocks: hover-to-copy with timed feedback, collapsible code, highlight-word
// links and hover bindings between a trigger and a range of highlight words.
//
// Widgets (CodeBlock, Collapsible) hold local state and render templ
// components. Bindings (LinkBinding, HoverBinding) operate on a dom.Document
// and are mounted through a Page, whose lifetime scopes every registration.
// Hydrate runs the bindings over a rendered post at build time.
//
// Binding failures never surface to the reader: a missing block or an
// out-of-range ordinal is a no-op, and a panic inside one binding is logged
// and contained so sibling bindings still mount.
package interactive
