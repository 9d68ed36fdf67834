// internal/builder/index.go
package builder

import (
	"fmt"
	"html/template"
	"kbsite/internal/records"
	"kbsite/internal/util"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var quickLinks = []NavLink{
	{Label: "About Us", Href: "about.html"},
	{Label: "Our Services", Href: "services.html"},
	{Label: "Testimonials", Href: "testimonials.html"},
	{Label: "FAQs", Href: "faqs.html"},
	{Label: "Help Center", Href: "help.html"},
	{Label: "Contact Us", Href: "contact.html"},
	{Label: "Browse All Files", Href: "#files"},
}

// indexPage is the landing page: quick navigation plus a listing of every
// machine-readable file under the marker folders.
func (b *siteBuilder) indexPage() (pageContent, error) {
	var quick strings.Builder
	for i, l := range quickLinks {
		if i > 0 {
			quick.WriteString("\n")
		}
		fmt.Fprintf(&quick, `<li style="margin: 0.5rem 0;"><a href="%s" style="font-size: 1.1em; font-weight: 500;">%s</a></li>`, l.Href, esc(l.Label))
	}

	files := b.dataFiles()
	items := make([]string, 0, len(files))
	base := b.opts.Site.RawBaseURL()
	for _, f := range files {
		display := strings.TrimPrefix(f.rel, "schemas/")
		href := f.local
		if base != "" {
			href = base + "/" + f.rel
		}
		items = append(items, fmt.Sprintf(`<li><a href="%s" target="_blank">%s</a></li>`, safeURL(href), esc(display)))
	}
	sort.Strings(items)

	listing := `<li class="muted">No files found yet.</li>`
	if len(items) > 0 {
		listing = strings.Join(items, "")
	}

	content := fmt.Sprintf(`
    <p>Welcome to our AI-optimized public data hub. Use the quick navigation below, or browse all machine-readable files.</p>
    <h2>🚀 Quick Navigation</h2>
    <ul style="list-style: none; padding: 0;">
        %s
    </ul>
    <h2 id="files">📁 All Files</h2>
    <ul>
        %s
    </ul>
`, quick.String(), listing)

	return pageContent{
		Title:   "Welcome to " + b.meta.Name,
		Content: template.HTML(content),
		Records: len(files),
	}, nil
}

type dataFile struct {
	rel   string // slash-separated, relative to the repository root
	local string // slash-separated, relative to the output directory
}

func (b *siteBuilder) dataFiles() []dataFile {
	var out []dataFile
	for _, m := range records.Markers {
		dir := filepath.Join(b.opts.Root, m)
		if !util.IsDir(dir) {
			continue
		}
		paths, err := records.ListFiles(dir, records.ListingExts...)
		if err != nil {
			b.log.Warn("could not list data files", zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, p := range paths {
			rel, err := filepath.Rel(b.opts.Root, p)
			if err != nil {
				continue
			}
			local, err := filepath.Rel(b.opts.Output, p)
			if err != nil {
				local = rel
			}
			out = append(out, dataFile{rel: filepath.ToSlash(rel), local: filepath.ToSlash(local)})
		}
	}
	return out
}
