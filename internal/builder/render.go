// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(newArticleLinkTransformer(), 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	// goldmark passes raw HTML through; everything it emits is cleaned here.
	htmlSanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts an article body with goldmark and sanitizes the result.
func renderMarkdown(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	return string(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil
}
