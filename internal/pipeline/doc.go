// Package pipeline compiles MDX posts to HTML fragments.
//
// The stages run in a fixed order:
//   - Preprocessing (line endings, module statements, blank lines)
//   - Parsing with goldmark, plus inline and block component invocations
//   - Hook 1: fence meta extraction, attaching an mdast.Fence to each
//     fenced code block
//   - Hook 2: syntax tokenization with chroma, flagging highlighted lines
//     and numbering highlight words
//   - Rendering through the mdx override table
//
// The renderer assumes both hooks have run. Interactive bindings are
// applied afterwards on the rendered fragment by the interactive package.
package pipeline
