package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdxblog/internal/dom"
)

// RewriteAssetPaths converts site-rooted image and video paths to file://
// URLs under publicDir, so a page opened from disk (PDF export) finds them.
// basePath is the site prefix stripped before resolution. If publicDir is
// empty, the document is unchanged.
//
// Rewrites:
//   - img[src]
//   - video[src], video[poster], source[src]
//
// Does NOT rewrite:
//   - a[href] (links keep pointing at the site)
//   - URLs, anchors, data: URIs
//   - paths escaping publicDir
func RewriteAssetPaths(doc *dom.Document, publicDir, basePath string) error {
	if publicDir == "" {
		return nil
	}

	absDir, err := filepath.Abs(publicDir)
	if err != nil {
		return err
	}

	for _, n := range dom.Find(doc.Root(), func(n *html.Node) bool {
		return n.Data == "img" || n.Data == "video" || n.Data == "source"
	}) {
		rewriteAttr(n, "src", absDir, basePath)
		if n.Data == "video" {
			rewriteAttr(n, "poster", absDir, basePath)
		}
	}
	return nil
}

// rewriteAttr rewrites a single attribute if it's a local asset path.
func rewriteAttr(n *html.Node, attrName, dir, basePath string) {
	val, ok := dom.Attr(n, attrName)
	if !ok || !isLocalPath(val) {
		return
	}

	rel := strings.TrimPrefix(val, strings.TrimSuffix(basePath, "/"))
	absPath := filepath.Join(dir, filepath.FromSlash(rel))

	// Security: validate path is under dir (prevent traversal)
	if !isPathUnderDir(absPath, dir) {
		return
	}

	dom.SetAttr(n, attrName, pathToFileURL(absPath))
}

// isLocalPath returns true if the path should be rewritten.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//", "#"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
