// Package content loads blog posts from a content tree.
//
// A post is a Markdown file with embedded component invocations, starting
// with a YAML front matter block:
//
//	---
//	title: Hello
//	publishedAt: 2024-03-01
//	draft: false
//	---
//
// Loading derives the slug from the file path and the reading time from the
// raw body. Compiling the body to HTML is left to the caller, which sets
// Body.HTML once.
package content
