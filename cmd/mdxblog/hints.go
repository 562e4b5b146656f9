package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	mdxblog "github.com/alnah/go-mdxblog"
	"github.com/alnah/go-mdxblog/internal/config"
	"github.com/alnah/go-mdxblog/internal/content"
	"github.com/alnah/go-mdxblog/internal/fileutil"
	"github.com/alnah/go-mdxblog/internal/hints"
	"github.com/alnah/go-mdxblog/internal/pipeline"
)

// contentDirError carries the directory a content error refers to.
type contentDirError struct {
	dir string
	err error
}

func (e *contentDirError) Error() string { return e.err.Error() }
func (e *contentDirError) Unwrap() error { return e.err }

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdxblog.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mdxblog.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigPaths())
	case errors.Is(err, pipeline.ErrUnknownTheme):
		return hints.ForThemeNotFound(pipeline.Themes())
	case errors.Is(err, content.ErrDuplicateSlug):
		return hints.ForDuplicateSlug()
	case errors.Is(err, content.ErrNoFrontMatter),
		errors.Is(err, content.ErrFrontMatter),
		errors.Is(err, content.ErrMissingField),
		errors.Is(err, content.ErrInvalidDate):
		return hints.ForFrontMatter()
	case errors.Is(err, fileutil.ErrOutsideRoot), errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}

	var dirErr *contentDirError
	if errors.As(err, &dirErr) && errors.Is(err, os.ErrNotExist) {
		return hints.ForContentDir(dirErr.dir)
	}
	return ""
}

// userConfigPaths lists the user config locations of the default config name.
func userConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppName, defaultConfigName+".yaml")}
}
