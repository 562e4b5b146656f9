package mdx

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-mdxblog/internal/markup"
	"github.com/alnah/go-mdxblog/internal/mdast"
)

// CodeLines renders the tokenized lines of a fenced code block. Each line is
// a span.line, flagged hl when highlighted; tokens carry chroma classes and
// highlight words carry mdast.HighlightWordClass. A block the hooks did not
// annotate renders as plain lines.
func CodeLines(n ast.Node, source []byte) templ.Component {
	f, ok := mdast.FenceOf(n)
	if !ok {
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		f = &mdast.Fence{Code: b.String()}
	}

	rows := f.Rows
	if !f.Tokenized() {
		rows = plainRows(f)
	}

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for _, row := range rows {
			if err := writeRow(w, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func plainRows(f *mdast.Fence) []mdast.Row {
	code := f.Code
	if code == "" {
		return nil
	}
	lines := strings.SplitAfter(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows := make([]mdast.Row, len(lines))
	for i, line := range lines {
		rows[i] = mdast.Row{
			Number:      i + 1,
			Highlighted: slices.Contains(f.Lines, i+1),
			Tokens:      []mdast.Token{{Value: line}},
		}
	}
	return rows
}

func writeRow(w io.Writer, row mdast.Row) error {
	class := "line"
	if row.Highlighted {
		class += " hl"
	}
	if err := markup.WriteOpen(w, "span", []markup.Attr{
		markup.A("class", class),
		markup.A("data-line", fmt.Sprint(row.Number)),
	}); err != nil {
		return err
	}

	for _, tok := range row.Tokens {
		if err := writeToken(w, tok); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</span>")
	return err
}

func writeToken(w io.Writer, tok mdast.Token) error {
	if len(tok.Parts) > 0 {
		return writeSpanningWord(w, tok)
	}

	class := tok.Class()
	if tok.Word > 0 {
		class = strings.TrimSpace(mdast.HighlightWordClass + " " + class)
	}
	if class == "" {
		_, err := io.WriteString(w, templ.EscapeString(tok.Value))
		return err
	}

	if err := markup.WriteOpen(w, "span", []markup.Attr{markup.A("class", class)}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, templ.EscapeString(tok.Value)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</span>")
	return err
}

// writeSpanningWord wraps the differently typed parts of one highlight word
// in a single highlight-word element, so word ordinals match elements.
func writeSpanningWord(w io.Writer, tok mdast.Token) error {
	if err := markup.WriteOpen(w, "span", []markup.Attr{markup.A("class", mdast.HighlightWordClass)}); err != nil {
		return err
	}
	for _, part := range tok.Parts {
		if err := writeToken(w, part); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</span>")
	return err
}
