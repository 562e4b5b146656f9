package mdxblog

import (
	"errors"

	"github.com/alnah/go-mdxblog/internal/content"
)

// Sentinel errors for site operations.
var (
	ErrNotLoaded  = errors.New("site not loaded")
	ErrRender     = errors.New("page rendering failed")
	ErrPoolClosed = errors.New("renderer pool closed")

	// ErrNotFound reports an unknown slug.
	ErrNotFound = content.ErrNotFound

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
