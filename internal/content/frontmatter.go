package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-mdxblog/internal/yamlutil"
)

const frontMatterDelim = "---"

// dateLayouts lists the accepted publishedAt forms, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// FrontMatter holds the declared fields of a post.
type FrontMatter struct {
	Title       string `yaml:"title"`
	PublishedAt any    `yaml:"publishedAt"`
	Draft       bool   `yaml:"draft"`
}

// SplitFrontMatter separates the leading front matter block from the body.
// The opening delimiter must be the first line of src.
func SplitFrontMatter(src []byte) (front, body []byte, err error) {
	src = bytes.TrimPrefix(src, []byte("\uFEFF"))

	line, rest, found := bytes.Cut(src, []byte("\n"))
	if !found || !isDelim(line) {
		return nil, nil, ErrNoFrontMatter
	}

	offset := 0
	for len(rest[offset:]) > 0 {
		line, _, found := bytes.Cut(rest[offset:], []byte("\n"))
		if isDelim(line) {
			front = rest[:offset]
			body = rest[offset+len(line):]
			body = bytes.TrimPrefix(body, []byte("\n"))
			return front, body, nil
		}
		if !found {
			break
		}
		offset += len(line) + 1
	}
	return nil, nil, fmt.Errorf("%w: unterminated block", ErrNoFrontMatter)
}

func isDelim(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == frontMatterDelim
}

// ParseFrontMatter decodes and validates a front matter block.
func ParseFrontMatter(front []byte) (FrontMatter, time.Time, error) {
	var fm FrontMatter
	if len(bytes.TrimSpace(front)) == 0 {
		return fm, time.Time{}, fmt.Errorf("%w: title", ErrMissingField)
	}
	if err := yamlutil.Unmarshal(front, &fm); err != nil {
		return fm, time.Time{}, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	fm.Title = strings.TrimSpace(fm.Title)
	if fm.Title == "" {
		return fm, time.Time{}, fmt.Errorf("%w: title", ErrMissingField)
	}
	if fm.PublishedAt == nil {
		return fm, time.Time{}, fmt.Errorf("%w: publishedAt", ErrMissingField)
	}

	published, err := parseDate(fm.PublishedAt)
	if err != nil {
		return fm, time.Time{}, err
	}
	return fm, published, nil
}

// parseDate accepts a decoded timestamp or one of dateLayouts.
func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC(), nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, fmt.Errorf("%w: publishedAt", ErrMissingField)
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	default:
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, v)
	}
}
