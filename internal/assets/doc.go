// Package assets provides the stylesheet, page templates and browser script
// of the generated site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled into the binary
//	    ├── FilesystemLoader  - assets from a directory on disk
//	    └── AssetResolver     - filesystem first, embedded as fallback
//
// AssetResolver is what the site builder uses: a theme directory only needs
// the files it overrides.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/{name}.css        # base stylesheet (default.css)
//	├── templates/{name}.html    # html/template pages (post.html, index.html)
//	└── scripts/{name}.js        # browser runtime (code.js)
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
