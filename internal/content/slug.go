package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/extemporalgenome/slug"
)

// SlugFromPath derives a slug from a slash separated path relative to the
// content root: the extension and a trailing index segment are dropped and
// every remaining segment is normalised. A root index file keeps "index".
func SlugFromPath(rel string) (string, error) {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel != "index" {
		rel = strings.TrimSuffix(rel, "/index")
	}

	segments := strings.Split(rel, "/")
	out := segments[:0]
	for _, seg := range segments {
		if s := slug.Slug(seg); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, rel)
	}
	return strings.Join(out, "/"), nil
}
