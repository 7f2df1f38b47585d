// Package render produces an HTML preview of a page. Blocks are rendered as
// fenced code through goldmark, each inside a wrapper whose id is the anchor
// of its ordinal, so the numbering seen by the browser is the one used to
// locate blocks for editing.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ezerfernandes/codeblockedit/internal/anchor"
	"github.com/ezerfernandes/codeblockedit/internal/block"
)

// WrapperClass is the class of the element around each rendered block.
const WrapperClass = "codeblockedit-wrapper"

const minFence = 3

// Renderer converts page text to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer. Markup outside blocks is passed to goldmark as is.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe())),
	}
}

// Render writes the HTML of text to w.
func (r *Renderer) Render(w io.Writer, text string) error {
	if err := r.md.Convert([]byte(Source(text)), w); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}

// String returns the HTML of text.
func (r *Renderer) String(text string) (string, error) {
	var buf bytes.Buffer

	if err := r.Render(&buf, text); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Source returns the Markdown handed to goldmark: the normalized text with
// every block replaced by a wrapped fenced code block.
func Source(text string) string {
	text = block.Normalize(text)

	var (
		sb  strings.Builder
		pos int
	)

	for _, match := range block.Scan(text) {
		start := match.Start - len(match.OpenTag)

		sb.WriteString(text[pos:start])
		writeBlock(&sb, match)

		pos = match.End + len(match.CloseTag)
	}

	sb.WriteString(text[pos:])

	return sb.String()
}

func writeBlock(sb *strings.Builder, match *block.Match) {
	code := strings.TrimPrefix(match.Content, "\n")
	if len(code) != 0 && !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	fence := strings.Repeat("`", max(minFence, longestRun(code, '`')+1))

	fmt.Fprintf(sb, "\n\n<div class=\"%s %s\" id=\"%s\">\n\n", WrapperClass, match.Kind(), anchor.For(match.Index))
	sb.WriteString(fence)
	sb.WriteString(match.Lang())
	sb.WriteByte('\n')
	sb.WriteString(code)
	sb.WriteString(fence)
	sb.WriteString("\n\n</div>\n\n")
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0

	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0

			continue
		}

		run++
		longest = max(longest, run)
	}

	return longest
}
