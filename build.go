package mdxblog

import (
	"context"
	"time"

	"github.com/alnah/go-mdxblog/internal/assets"
	"github.com/alnah/go-mdxblog/internal/fileutil"
)

// Build writes the site into outDir: one page per post, the index, the
// feed, the stylesheet and the browser runtime. An empty outDir uses
// output.dir. Load must have succeeded first.
func (s *Site) Build(ctx context.Context, outDir string) error {
	start := time.Now()

	docs, err := s.snapshot()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = s.cfg.Output.Dir
	}

	postTmpl, err := s.loadTemplate(assets.PostTemplateName)
	if err != nil {
		return err
	}
	indexTmpl, err := s.loadTemplate(assets.IndexTemplateName)
	if err != nil {
		return err
	}
	style, err := s.stylesheet()
	if err != nil {
		return err
	}
	script, err := s.assets.LoadScript(assets.CodeScriptName)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := s.renderPost(postTmpl, doc, renderOptions{})
		if err != nil {
			return err
		}
		if err := s.write(outDir, doc.Slug+"/"+indexFile, page); err != nil {
			return err
		}
	}

	index, err := s.renderIndex(indexTmpl, docs)
	if err != nil {
		return err
	}
	feed, err := s.renderFeed(docs)
	if err != nil {
		return err
	}

	files := []struct {
		rel  string
		data []byte
	}{
		{indexFile, index},
		{feedFile, feed},
		{stylesheetFile, []byte(style)},
		{scriptFile, []byte(script)},
	}
	for _, f := range files {
		if err := s.write(outDir, f.rel, f.data); err != nil {
			return err
		}
	}

	s.logger.Info("site built", "dir", outDir, "posts", len(docs), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *Site) write(outDir, rel string, data []byte) error {
	path, err := fileutil.WriteOutput(outDir, rel, data)
	if err != nil {
		return err
	}
	s.logger.Debug("wrote file", "path", path, "bytes", len(data))
	return nil
}
