package main

import (
	"errors"
	"os"

	mdxblog "github.com/alnah/go-mdxblog"
	"github.com/alnah/go-mdxblog/internal/assets"
	"github.com/alnah/go-mdxblog/internal/config"
	"github.com/alnah/go-mdxblog/internal/content"
	"github.com/alnah/go-mdxblog/internal/dateutil"
	"github.com/alnah/go-mdxblog/internal/fileutil"
	"github.com/alnah/go-mdxblog/internal/pipeline"
)

// Exit codes for the mdxblog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or content
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdxblog.ErrBrowserConnect) ||
		errors.Is(err, mdxblog.ErrPageCreate) ||
		errors.Is(err, mdxblog.ErrPageLoad) ||
		errors.Is(err, mdxblog.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrOutsideRoot) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	// Usage/config/content errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, content.ErrNoFrontMatter) ||
		errors.Is(err, content.ErrFrontMatter) ||
		errors.Is(err, content.ErrMissingField) ||
		errors.Is(err, content.ErrInvalidDate) ||
		errors.Is(err, content.ErrInvalidSlug) ||
		errors.Is(err, content.ErrDuplicateSlug) ||
		errors.Is(err, content.ErrInvalidPattern) ||
		errors.Is(err, mdxblog.ErrNotFound) ||
		errors.Is(err, pipeline.ErrUnknownTheme) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrScriptNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}
