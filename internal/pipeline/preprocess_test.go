package pipeline

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPreprocess - Source preprocessing
// ---------------------------------------------------------------------------

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "crlf normalized",
			input: "a\r\nb\rc",
			want:  "a\nb\nc",
		},
		{
			name:  "module statements dropped",
			input: "import Chart from './chart'\nexport const meta = {}\n\n# Title",
			want:  "\n# Title",
		},
		{
			name:  "blank lines compressed",
			input: "a\n\n\n\nb",
			want:  "a\n\nb",
		},
		{
			name:  "fenced code kept as written",
			input: "```js\nimport x from 'y'\n\n\n\nexport default x\n```\nimport z from 'z'",
			want:  "```js\nimport x from 'y'\n\n\n\nexport default x\n```",
		},
		{
			name:  "prose starting with import kept",
			input: "important note\nexports grew",
			want:  "important note\nexports grew",
		},
		{
			name:  "tilde fence",
			input: "~~~\n\n\n\n~~~",
			want:  "~~~\n\n\n\n~~~",
		},
	}

	p := &MDXPreprocessor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := p.Preprocess(context.Background(), tt.input)
			if got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocess_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := "a\r\n\n\n\nb"
	if got := (&MDXPreprocessor{}).Preprocess(ctx, in); got != in {
		t.Errorf("Preprocess() with cancelled context = %q, want input unchanged", got)
	}
}
