package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdxblog/internal/mdast"
)

// ErrTokenize indicates the lexer failed on a code block.
var ErrTokenize = errors.New("tokenization failed")

// Tokenize fills f.Rows and f.WordCount from f.Code. Lines listed in f.Lines
// are flagged, and every occurrence of a pattern from f.Words becomes its
// own token numbered 1..n in source order.
func Tokenize(f *mdast.Fence) error {
	lexer := lexers.Get(f.Lang)
	if lexer == nil {
		lexer = lexers.Analyse(f.Code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, f.Code)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenize, err)
	}

	word := 0
	lines := chroma.SplitTokensIntoLines(it.Tokens())
	rows := make([]mdast.Row, 0, len(lines))
	for i, line := range lines {
		row := mdast.Row{
			Number:      i + 1,
			Highlighted: slices.Contains(f.Lines, i+1),
		}
		row.Tokens, word = splitLine(line, f.Words, word)
		rows = append(rows, row)
	}

	f.Rows = rows
	f.WordCount = word
	return nil
}

// piece is a slice of a lexer token; match is the index of the highlight
// word match covering it, or -1.
type piece struct {
	typ   chroma.TokenType
	value string
	match int
}

// splitLine cuts the tokens of one line at the boundaries of the pattern
// matches found in the whole line text, so a match may span several lexer
// tokens. Each match becomes one token numbered after word; a match made of
// differently typed pieces keeps them as Parts.
func splitLine(line []chroma.Token, words []string, word int) ([]mdast.Token, int) {
	var lineText strings.Builder
	for _, tok := range line {
		lineText.WriteString(tok.Value)
	}
	matches := matchWords(lineText.String(), words)

	var pieces []piece
	pos, mi := 0, 0
	for _, tok := range line {
		v := tok.Value
		for off := 0; off < len(v); {
			abs := pos + off
			for mi < len(matches) && matches[mi][1] <= abs {
				mi++
			}
			if mi < len(matches) && matches[mi][0] <= abs {
				end := min(matches[mi][1]-pos, len(v))
				pieces = append(pieces, piece{typ: tok.Type, value: v[off:end], match: mi})
				off = end
				continue
			}
			next := len(v)
			if mi < len(matches) {
				next = min(next, matches[mi][0]-pos)
			}
			pieces = append(pieces, piece{typ: tok.Type, value: v[off:next], match: -1})
			off = next
		}
		pos += len(v)
	}

	tokens := make([]mdast.Token, 0, len(pieces))
	for i := 0; i < len(pieces); {
		p := pieces[i]
		if p.match < 0 {
			tokens = append(tokens, mdast.Token{Type: p.typ, Value: p.value})
			i++
			continue
		}

		j := i
		for j < len(pieces) && pieces[j].match == p.match {
			j++
		}
		word++
		t := mdast.Token{Type: p.typ, Value: p.value, Word: word}
		if j-i > 1 {
			var value strings.Builder
			t.Parts = make([]mdast.Token, 0, j-i)
			for _, part := range pieces[i:j] {
				value.WriteString(part.value)
				t.Parts = append(t.Parts, mdast.Token{Type: part.typ, Value: part.value})
			}
			t.Value = value.String()
		}
		tokens = append(tokens, t)
		i = j
	}
	return tokens, word
}

// matchWords returns the [start, end) byte offsets of the pattern matches in
// s, taking the leftmost, then longest, pattern at each step.
func matchWords(s string, words []string) [][2]int {
	var out [][2]int
	for from := 0; from < len(s); {
		at, size := -1, 0
		for _, w := range words {
			if w == "" {
				continue
			}
			i := strings.Index(s[from:], w)
			if i < 0 {
				continue
			}
			if at < 0 || i < at || (i == at && len(w) > size) {
				at, size = i, len(w)
			}
		}
		if at < 0 {
			break
		}
		out = append(out, [2]int{from + at, from + at + size})
		from += at + size
	}
	return out
}

// ---------------------------------------------------------------------------
// Hook 2: syntax tokenization
// ---------------------------------------------------------------------------

type tokenizeTransformer struct {
	logger *slog.Logger
}

// NewTokenizeTransformer returns the AST transformer that tokenizes every
// annotated fenced code block. It must run after the fence meta transformer.
func NewTokenizeTransformer(logger *slog.Logger) parser.ASTTransformer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &tokenizeTransformer{logger: logger}
}

func (t *tokenizeTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindFencedCodeBlock {
			return ast.WalkContinue, nil
		}
		fence, ok := mdast.FenceOf(n)
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		if err := Tokenize(fence); err != nil {
			t.logger.Warn("code block left plain", "lang", fence.Lang, "error", err)
		}
		return ast.WalkSkipChildren, nil
	})
}
