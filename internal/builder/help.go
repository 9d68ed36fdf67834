// internal/builder/help.go
package builder

import (
	"bytes"
	"fmt"
	"html/template"
	"kbsite/internal/config"
	"kbsite/internal/records"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"
)

// helpMeta is the optional metadata block at the top of a help article.
type helpMeta struct {
	Title string `yaml:"title"`
}

// helpSource picks the folder of markdown articles: the help folder, or the
// llm-data folder when there is no help folder and it holds markdown.
func (b *siteBuilder) helpSource() (string, []string) {
	if dir, ok := b.resolver.Resolve(records.Help); ok {
		files, err := records.ListFiles(dir, ".md")
		if err != nil {
			b.log.Warn("could not list help articles", zap.String("dir", dir), zap.Error(err))
		}
		return dir, files
	}
	if dir, ok := b.resolver.Resolve(records.LLMData); ok {
		files, err := records.ListFiles(dir, ".md")
		if err != nil {
			b.log.Warn("could not list help articles", zap.String("dir", dir), zap.Error(err))
		}
		if len(files) > 0 {
			return dir, files
		}
	}
	return "", nil
}

// helpPage renders every markdown article as a card.
func (b *siteBuilder) helpPage() (pageContent, error) {
	const title = "Help Center"
	dir, files := b.helpSource()
	if dir == "" {
		return pageContent{
			Title:       title,
			Content:     placeholder(title, "No help-articles folder found yet. Add .md files to schemas/help-articles (or help-articles/) to populate this page."),
			Placeholder: true,
		}, nil
	}
	if len(files) == 0 {
		return pageContent{Title: title, Content: placeholder(title, "No .md help articles found yet."), Placeholder: true}, nil
	}

	var articles []string
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return pageContent{}, fmt.Errorf("failed to read help article %s: %w", filepath.Base(path), err)
		}
		art, err := b.renderArticle(path, raw)
		if err != nil {
			return pageContent{}, err
		}
		articles = append(articles, art)
	}
	return pageContent{Title: title, Content: template.HTML(strings.Join(articles, "")), Records: len(articles)}, nil
}

func (b *siteBuilder) renderArticle(path string, raw []byte) (string, error) {
	meta := helpMeta{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		b.log.Warn("ignoring malformed metadata block", zap.String("file", path), zap.Error(err))
		meta = helpMeta{}
		body = raw
	}

	if clean, err := cleanEditMarks(body); err != nil {
		b.log.Warn("ignoring malformed review markup", zap.String("file", path), zap.Error(err))
	} else {
		body = clean
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = records.TitleFromFilename(path)
	}

	var bodyHTML string
	if b.opts.Site.HelpRenderer == config.HelpRendererMarkdown {
		bodyHTML, err = renderMarkdown(body)
		if err != nil {
			return "", fmt.Errorf("failed to render help article %s: %w", filepath.Base(path), err)
		}
	} else {
		bodyHTML = renderLines(string(body))
	}

	return fmt.Sprintf(`
        <div class="card" id="%s">
            <h2>%s</h2>
            %s
        </div>
        `, esc(articleAnchor(path)), esc(title), bodyHTML), nil
}

// articleAnchor is the element id of an article card, derived from its file
// name so that links between articles can target it.
func articleAnchor(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return records.Slugify(strings.ReplaceAll(base, "_", "-"))
}

// renderLines maps a markdown body to HTML one line at a time: "# " and "## "
// headings, "- " and "* " bullets, blank lines as breaks, anything else as a
// paragraph.
func renderLines(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.TrimSuffix(body, "\n")
	if body == "" {
		return ""
	}
	var sb strings.Builder
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			sb.WriteString("<h2>" + esc(line[3:]) + "</h2>")
		case strings.HasPrefix(line, "# "):
			sb.WriteString("<h1>" + esc(line[2:]) + "</h1>")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			sb.WriteString("<p>• " + esc(line[2:]) + "</p>")
		case strings.TrimSpace(line) == "":
			sb.WriteString("<br/>")
		default:
			sb.WriteString("<p>" + esc(line) + "</p>")
		}
	}
	return sb.String()
}
