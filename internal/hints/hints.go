// Package hints appends actionable advice to CLI error messages.
// Every hint has the form "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdxblog/internal/fileutil"
)

// IsInContainer reports whether the process runs inside a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for headless Chrome launch failures
// during PDF export.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint for exports that ran out of time.
func ForTimeout() string {
	return format("for long posts, raise the --timeout flag")
}

// ForConfigNotFound suggests --config and the user config location among
// searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/blog.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), ".config/go-mdxblog") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForContentDir returns a hint for a missing or empty content directory.
func ForContentDir(dir string) string {
	return format("posts are read from " + dir + "; set content.dir or use --content")
}

// ForFrontMatter explains the expected post header.
func ForFrontMatter() string {
	return format(`start each post with a "---" block declaring title and publishedAt (YYYY-MM-DD)`)
}

// ForDuplicateSlug returns a hint for two files mapping to the same slug.
func ForDuplicateSlug() string {
	return format("slugs come from file paths; rename one file or move it to another directory")
}

// ForThemeNotFound lists the available code themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
