package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdxblog/internal/mdast"
	"github.com/alnah/go-mdxblog/internal/numrange"
)

// ErrFenceMeta indicates a fence info string could not be tokenized.
var ErrFenceMeta = errors.New("invalid fence meta")

var (
	reInfo        = regexp.MustCompile(`^\s*([\w#+.-]+)?\s*(.*)$`)
	reLineBraces  = regexp.MustCompile(`\{([\d\s,.-]+)\}`)
	reWordPattern = regexp.MustCompile(`(?:^|\s)/([^/]+)/`)
)

// ParseFenceInfo reads a fence info string such as
//
//	ts {2-3} showLineNumbers title="a.ts" /foo/ id=ex
//
// The language is the first word unless it is a key=value pair, a brace
// range or a word pattern. Unknown keys are ignored.
func ParseFenceInfo(info string) (*mdast.Fence, error) {
	f := &mdast.Fence{}

	m := reInfo.FindStringSubmatch(info)
	lang, meta := m[1], m[2]
	if lang != "" && strings.HasPrefix(meta, "=") {
		lang, meta = "", strings.TrimSpace(info)
	}
	f.Lang = lang

	for _, braces := range reLineBraces.FindAllStringSubmatch(meta, -1) {
		f.Lines = append(f.Lines, numrange.Parse(braces[1])...)
	}
	meta = reLineBraces.ReplaceAllString(meta, " ")
	f.Words, meta = cutWordPatterns(meta)

	words, err := shlex.Split(meta)
	if err != nil {
		return f, fmt.Errorf("%w: %v", ErrFenceMeta, err)
	}

	for _, word := range words {
		key, value, hasValue := strings.Cut(word, "=")
		if !hasValue {
			switch key {
			case "showLineNumbers":
				f.ShowLineNumbers = true
			case "collapsible":
				f.Collapsible = true
			}
			continue
		}

		switch key {
		case "title":
			f.Title = value
		case "id":
			f.ID = value
		case "theme":
			f.Theme = value
		case "line", "lines", "highlight":
			f.Lines = append(f.Lines, numrange.Parse(strings.Trim(value, "{}"))...)
		case "showLineNumbers":
			f.ShowLineNumbers = value != "false"
		case "collapsible":
			f.Collapsible = value != "false"
		}
	}

	f.Lines = numrange.Parse(numrange.Format(f.Lines))
	return f, nil
}

// cutWordPatterns removes the /word/ patterns from meta, spaces included,
// and returns them in order with the remaining meta. A pattern starts the
// meta or follows whitespace, and ends it or is followed by whitespace.
func cutWordPatterns(meta string) ([]string, string) {
	var words []string
	var rest strings.Builder
	last := 0
	for _, m := range reWordPattern.FindAllStringSubmatchIndex(meta, -1) {
		end := m[1]
		if end < len(meta) && !unicode.IsSpace(rune(meta[end])) {
			continue
		}
		words = append(words, meta[m[2]:m[3]])
		rest.WriteString(meta[last:m[0]])
		rest.WriteByte(' ')
		last = end
	}
	rest.WriteString(meta[last:])
	return words, rest.String()
}

// ---------------------------------------------------------------------------
// Hook 1: fence meta extraction
// ---------------------------------------------------------------------------

type fenceMetaTransformer struct {
	logger *slog.Logger
}

// NewFenceMetaTransformer returns the AST transformer that attaches an
// mdast.Fence to every fenced code block. A malformed info string keeps the
// language and drops the rest.
func NewFenceMetaTransformer(logger *slog.Logger) parser.ASTTransformer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &fenceMetaTransformer{logger: logger}
}

func (t *fenceMetaTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info string
		if fcb.Info != nil {
			info = string(fcb.Info.Segment.Value(source))
		}
		fence, err := ParseFenceInfo(info)
		if err != nil {
			t.logger.Warn("fence meta ignored", "info", info, "error", err)
			fence = &mdast.Fence{Lang: fence.Lang}
		}
		fence.Code = codeText(fcb, source)

		mdast.SetFence(fcb, fence)
		return ast.WalkSkipChildren, nil
	})
}

// codeText returns the raw content lines of a code block.
func codeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}
