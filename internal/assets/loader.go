package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName  = "default"
	PostTemplateName  = "post"
	IndexTemplateName = "index"
	CodeScriptName    = "code"
)

// AssetLoader loads site assets by name, without directory or extension.
// Implementations return ErrInvalidAssetName for unsafe names and the
// kind's not-found sentinel for missing assets.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
	LoadScript(name string) (string, error)
}

// Kind is a category of asset: its directory, extension and not-found error.
type Kind struct {
	Dir      string
	Ext      string
	NotFound error
}

// Asset kinds.
var (
	Style    = Kind{Dir: "styles", Ext: ".css", NotFound: ErrStyleNotFound}
	Template = Kind{Dir: "templates", Ext: ".html", NotFound: ErrTemplateNotFound}
	Script   = Kind{Dir: "scripts", Ext: ".js", NotFound: ErrScriptNotFound}
)

// path returns the slash separated path of name relative to a base.
func (k Kind) path(name string) string {
	return k.Dir + "/" + name + k.Ext
}

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Names must be non-empty and free of path separators and dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// isNotFoundError reports whether err means the asset does not exist.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrScriptNotFound)
}
