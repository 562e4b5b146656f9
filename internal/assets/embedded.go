package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed styles templates scripts
var embedded embed.FS

// EmbeddedLoader loads the built-in assets.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in stylesheet.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(Style, name)
}

// LoadTemplate loads a built-in page template.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(Template, name)
}

// LoadScript loads a built-in browser script.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return e.load(Script, name)
}

func (e *EmbeddedLoader) load(k Kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := embedded.ReadFile(k.path(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.NotFound, name)
	}
	return string(content), nil
}

// Names lists the built-in assets of kind k.
func (e *EmbeddedLoader) Names(k Kind) []string {
	entries, err := fs.ReadDir(embedded, k.Dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if path.Ext(entry.Name()) == k.Ext {
			names = append(names, strings.TrimSuffix(entry.Name(), k.Ext))
		}
	}
	slices.Sort(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
