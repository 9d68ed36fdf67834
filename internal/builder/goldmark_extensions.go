// internal/builder/goldmark_extensions.go
package builder

import (
	"bytes"
	"path"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// articleLinkTransformer rewrites links between help articles. All articles end
// up on help.html, so "billing.md" becomes "#billing", the id of that card.
type articleLinkTransformer struct{}

func newArticleLinkTransformer() parser.ASTTransformer {
	return &articleLinkTransformer{}
}

func (t *articleLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if anchor, ok := articleLinkTarget(link.Destination); ok {
			link.Destination = anchor
		}
		return ast.WalkContinue, nil
	})
}

// articleLinkTarget maps a relative ".md" destination to its card anchor.
// Absolute URLs are left alone.
func articleLinkTarget(dest []byte) ([]byte, bool) {
	if bytes.Contains(dest, []byte("://")) || !bytes.HasSuffix(dest, []byte(".md")) {
		return nil, false
	}
	return []byte("#" + articleAnchor(path.Base(string(dest)))), true
}
