package content

import "errors"

// Sentinel errors for post loading.
var (
	ErrNoFrontMatter  = errors.New("missing front matter")
	ErrFrontMatter    = errors.New("invalid front matter")
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidDate    = errors.New("invalid publishedAt date")
	ErrInvalidSlug    = errors.New("cannot derive slug from path")
	ErrDuplicateSlug  = errors.New("duplicate slug")
	ErrInvalidPattern = errors.New("invalid content pattern")
	ErrNotFound       = errors.New("document not found")
)
