package content

import (
	"fmt"
	"time"
)

// Body is the raw source of a post and its compiled HTML.
type Body struct {
	Raw  string
	HTML string
}

// Document is one post. It is unique by Slug.
type Document struct {
	Title       string
	PublishedAt time.Time
	Draft       bool
	Slug        string
	ReadingTime ReadingTime
	Body        Body
	SourcePath  string
}

// ParseDocument builds a document from the source of the file at rel, a
// slash separated path relative to the content root.
func ParseDocument(rel string, src []byte, wpm int) (*Document, error) {
	front, body, err := SplitFrontMatter(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	fm, published, err := ParseFrontMatter(front)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	slug, err := SlugFromPath(rel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	raw := string(body)
	return &Document{
		Title:       fm.Title,
		PublishedAt: published,
		Draft:       fm.Draft,
		Slug:        slug,
		ReadingTime: EstimateReadingTime(raw, wpm),
		Body:        Body{Raw: raw},
		SourcePath:  rel,
	}, nil
}
