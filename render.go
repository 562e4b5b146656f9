package mdxblog

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-mdxblog/internal/assets"
	"github.com/alnah/go-mdxblog/internal/content"
	"github.com/alnah/go-mdxblog/internal/dateutil"
	"github.com/alnah/go-mdxblog/internal/dom"
	"github.com/alnah/go-mdxblog/internal/interactive"
	"github.com/alnah/go-mdxblog/internal/pipeline"
)

// Page language of the templates.
const defaultLang = "en"

// Site relative output paths.
const (
	indexFile      = "index.html"
	feedFile       = "feed.xml"
	stylesheetFile = "assets/site.css"
	scriptFile     = "assets/code.js"
)

type siteData struct {
	Title       string
	Description string
	Author      string
}

type postData struct {
	Title       string
	ISODate     string
	Date        string
	ReadingTime string
	Content     template.HTML
}

type postPage struct {
	Lang        string
	Site        siteData
	Post        postData
	Stylesheet  string
	InlineStyle template.CSS
	Feed        string
	Home        string
	Script      string
}

type indexEntry struct {
	URL         string
	Title       string
	Draft       bool
	ISODate     string
	Date        string
	ReadingTime string
}

type indexPage struct {
	Lang       string
	Site       siteData
	Posts      []indexEntry
	Stylesheet string
	Feed       string
	Home       string
}

// renderOptions selects between the published page and the PDF page.
type renderOptions struct {
	inlineStyle string // Replaces the stylesheet link when set
	publicDir   string // Rewrites site-rooted media to file:// URLs when set
	noScript    bool
}

// urlPath prefixes a site relative path with the configured base path.
func (s *Site) urlPath(rel string) string {
	return strings.TrimSuffix(s.cfg.Site.BasePath, "/") + "/" + rel
}

func (s *Site) postURL(slug string) string {
	return s.urlPath(slug + "/")
}

func (s *Site) siteData() siteData {
	return siteData{
		Title:       s.cfg.Site.Title,
		Description: s.cfg.Site.Description,
		Author:      s.cfg.Site.Author,
	}
}

// hydrateBody applies the interactive bindings to a compiled body and
// serializes the result before the page is unmounted.
func (s *Site) hydrateBody(doc *content.Document, opts renderOptions) (string, error) {
	tree, err := dom.ParseString(doc.Body.HTML)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, doc.Slug, err)
	}

	logger := s.logger.With("slug", doc.Slug)
	page, report := interactive.Hydrate(tree, nil, logger)
	defer page.Unmount()

	logger.Debug("post hydrated",
		"links", report.Links, "linksSkipped", report.LinksSkipped,
		"hovers", report.Hovers, "hoversSkipped", report.HoversSkipped)

	if opts.publicDir != "" {
		if err := pipeline.RewriteAssetPaths(tree, opts.publicDir, s.cfg.Site.BasePath); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRender, doc.Slug, err)
		}
	}
	return tree.String(), nil
}

// renderPost renders the full page of doc with the post template.
func (s *Site) renderPost(tmpl *template.Template, doc *content.Document, opts renderOptions) ([]byte, error) {
	body, err := s.hydrateBody(doc, opts)
	if err != nil {
		return nil, err
	}
	date, err := dateutil.FormatDate(s.cfg.DateFormat, doc.PublishedAt)
	if err != nil {
		return nil, err
	}

	data := postPage{
		Lang: defaultLang,
		Site: s.siteData(),
		Post: postData{
			Title:       doc.Title,
			ISODate:     doc.PublishedAt.Format("2006-01-02"),
			Date:        date,
			ReadingTime: doc.ReadingTime.Text,
			Content:     template.HTML(body), // #nosec G203 -- produced by the renderer table
		},
		Stylesheet:  s.urlPath(stylesheetFile),
		InlineStyle: template.CSS(opts.inlineStyle), // #nosec G203 -- site stylesheet
		Feed:        s.urlPath(feedFile),
		Home:        s.urlPath(""),
	}
	if !opts.noScript {
		data.Script = s.urlPath(scriptFile)
	}

	return execute(tmpl, data)
}

// renderIndex renders the post list with the index template.
func (s *Site) renderIndex(tmpl *template.Template, docs []*content.Document) ([]byte, error) {
	entries := make([]indexEntry, 0, len(docs))
	for _, doc := range docs {
		date, err := dateutil.FormatDate(s.cfg.DateFormat, doc.PublishedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, indexEntry{
			URL:         s.postURL(doc.Slug),
			Title:       doc.Title,
			Draft:       doc.Draft,
			ISODate:     doc.PublishedAt.Format("2006-01-02"),
			Date:        date,
			ReadingTime: doc.ReadingTime.Text,
		})
	}

	return execute(tmpl, indexPage{
		Lang:       defaultLang,
		Site:       s.siteData(),
		Posts:      entries,
		Stylesheet: s.urlPath(stylesheetFile),
		Feed:       s.urlPath(feedFile),
		Home:       s.urlPath(""),
	})
}

// loadTemplate loads and parses a page template from the asset loader.
func (s *Site) loadTemplate(name string) (*template.Template, error) {
	src, err := s.assets.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", ErrRender, name, err)
	}
	return tmpl, nil
}

// stylesheet returns the base style followed by the code theme rules.
func (s *Site) stylesheet() (string, error) {
	base, err := s.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", err
	}
	theme, err := pipeline.ThemeCSS(s.cfg.Code.Theme)
	if err != nil {
		return "", err
	}
	return base + "\n" + theme, nil
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
