// Package mdxblog compiles a directory of MDX posts into a static blog.
//
// # Quick Start
//
// Create a site, load the posts and write the pages:
//
//	site, err := mdxblog.New(mdxblog.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer site.Close()
//
//	if err := site.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := site.Build(ctx, "public"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Pipeline
//
// Each post goes through these stages:
//
//  1. Front matter and slug from the file path (internal/content)
//  2. MDX preprocessing, parsing and the two fence hooks (internal/pipeline)
//  3. Rendering through the override table (internal/mdx)
//  4. Hydration of RegisterLink markers and H triggers (internal/interactive)
//  5. Page template and asset output
//
// Bodies are compiled concurrently by a worker pool sized with WithWorkers.
//
// # Output Layout
//
//	public/
//	├── index.html
//	├── feed.xml
//	├── assets/
//	│   ├── site.css
//	│   └── code.js
//	└── <slug>/
//	    └── index.html
//
// # PDF Export
//
// ExportPDF renders a single post with headless Chrome (go-rod). The browser
// is downloaded on first run (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to
// point at an installed Chrome binary.
package mdxblog
