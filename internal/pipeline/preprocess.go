package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Top-level MDX module statements
	moduleStatement = regexp.MustCompile(`^(import\s.+\sfrom\s|import\s+['"]|export\s+(const|let|var|function|default)\b)`)

	// Opening or closing code fence
	fenceLine = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// Preprocessor defines the contract for source preprocessing.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// MDXPreprocessor prepares MDX source for the Markdown parser.
type MDXPreprocessor struct{}

// Preprocess normalizes line endings, drops top-level import and export
// statements and limits runs of blank lines to one. Fenced code is left as
// written.
func (p *MDXPreprocessor) Preprocess(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	return rewriteOutsideFences(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// rewriteOutsideFences drops module statements and compresses blank lines
// in the prose portions of content.
func rewriteOutsideFences(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	var fence string
	blank := 0
	for _, line := range lines {
		if fence != "" {
			out = append(out, line)
			if m := fenceLine.FindStringSubmatch(line); m != nil &&
				m[1][0] == fence[0] && len(m[1]) >= len(fence) &&
				strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), fence[:1])) == "" {
				fence = ""
			}
			continue
		}

		if m := fenceLine.FindStringSubmatch(line); m != nil {
			fence = m[1]
			blank = 0
			out = append(out, line)
			continue
		}

		if moduleStatement.MatchString(line) {
			continue
		}

		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
