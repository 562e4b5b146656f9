package mdxblog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-mdxblog/internal/config"
	"github.com/alnah/go-mdxblog/internal/content"
	"github.com/alnah/go-mdxblog/internal/dom"
)

// maxSummaryRunes bounds the feed item description.
const maxSummaryRunes = 280

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Generator     string    `xml:"generator"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderFeed encodes the published posts as an RSS 2.0 document. Drafts are
// never syndicated.
func (s *Site) renderFeed(docs []*content.Document) ([]byte, error) {
	items := make([]rssItem, 0, len(docs))
	for _, doc := range docs {
		if doc.Draft {
			continue
		}
		link := s.absoluteURL(s.postURL(doc.Slug))
		items = append(items, rssItem{
			Title:       doc.Title,
			Link:        link,
			Description: summary(doc.Body.HTML),
			PubDate:     doc.PublishedAt.Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:         s.cfg.Site.Title,
			Link:          s.absoluteURL(s.urlPath("")),
			Description:   s.cfg.Site.Description,
			Generator:     config.AppName,
			LastBuildDate: s.now().UTC().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("%w: feed: %v", ErrRender, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// absoluteURL joins the site origin and a site path. Without site.url the
// path is kept relative to the host.
func (s *Site) absoluteURL(p string) string {
	return strings.TrimSuffix(s.cfg.Site.URL, "/") + p
}

// summary returns the text of the first paragraph of a compiled body.
func summary(body string) string {
	tree, err := dom.ParseString(body)
	if err != nil {
		return ""
	}
	paras := dom.ElementsByClass(tree.Root(), "paragraph")
	if len(paras) == 0 {
		return ""
	}

	text := strings.Join(strings.Fields(dom.TextContent(paras[0])), " ")
	if utf8.RuneCountInString(text) <= maxSummaryRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxSummaryRunes])) + "…"
}
