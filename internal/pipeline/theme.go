package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "github"

// ErrUnknownTheme indicates the requested chroma style does not exist.
var ErrUnknownTheme = errors.New("unknown code theme")

// ThemeCSS returns the class-based stylesheet of a chroma style. Rules are
// scoped under the .chroma class carried by rendered code blocks.
func ThemeCSS(name string) (string, error) {
	if name == "" {
		name = DefaultTheme
	}
	style, ok := styles.Registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing theme css: %w", err)
	}
	return buf.String(), nil
}

// Themes lists the available chroma style names.
func Themes() []string {
	return styles.Names()
}
