// Package markup builds templ components for plain HTML elements.
package markup

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Attr is one HTML attribute. Bool attributes are written without a value.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// A returns a name="value" attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// Flag returns a valueless boolean attribute.
func Flag(name string) Attr { return Attr{Name: name, Bool: true} }

// WriteOpen writes <tag attrs...>.
func WriteOpen(w io.Writer, tag string, attrs []Attr) error {
	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	for _, a := range attrs {
		if a.Name == "" {
			continue
		}
		s := " " + a.Name
		if !a.Bool {
			s += `="` + templ.EscapeString(a.Value) + `"`
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, ">")
	return err
}

// Element renders <tag attrs>children</tag>.
func Element(tag string, attrs []Attr, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := WriteOpen(w, tag, attrs); err != nil {
			return err
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Void renders an element without content or closing tag, such as <img>.
func Void(tag string, attrs []Attr) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return WriteOpen(w, tag, attrs)
	})
}

// Text renders escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Group renders components one after another.
func Group(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if p == nil {
				continue
			}
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
