// internal/builder/builder.go
package builder

import (
	"bytes"
	"errors"
	"fmt"
	"kbsite/internal/config"
	"kbsite/internal/records"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// ErrBuildIncomplete is returned by Build when at least one page failed. All
// other pages have still been written.
var ErrBuildIncomplete = errors.New("build finished with errors")

// MarkerFile disables Jekyll processing on GitHub Pages.
const MarkerFile = ".nojekyll"

// Options configure a build.
type Options struct {
	Root   string // repository root holding the data folders
	Output string // directory the pages are written to
	Site   config.SiteConfig
	Logger *zap.Logger
	Now    func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = o.Site.Root
	}
	if o.Output == "" {
		o.Output = o.Site.Output
	}
	if o.Output == "" {
		o.Output = o.Root
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Site.ThemeColor == "" {
		o.Site.ThemeColor = "#2c3e50"
	}
	if o.Site.HelpRenderer == "" {
		o.Site.HelpRenderer = config.HelpRendererLines
	}
	return o
}

// page is one of the fixed outputs of a build.
type page struct {
	Name  string
	File  string
	Nav   string
	build func(*siteBuilder) (pageContent, error)
}

// pages lists every output in build order. Each renderer depends only on the
// data folders and the shared SiteMeta, never on another page.
var pages = []page{
	{Name: "index", File: "index.html", Nav: "Home", build: (*siteBuilder).indexPage},
	{Name: "about", File: "about.html", Nav: "About", build: (*siteBuilder).aboutPage},
	{Name: "services", File: "services.html", Nav: "Services", build: (*siteBuilder).servicesPage},
	{Name: "awards", File: "awards.html", Nav: "Awards", build: (*siteBuilder).awardsPage},
	{Name: "testimonials", File: "testimonials.html", Nav: "Testimonials", build: (*siteBuilder).testimonialsPage},
	{Name: "faqs", File: "faqs.html", Nav: "FAQs", build: (*siteBuilder).faqsPage},
	{Name: "help", File: "help.html", Nav: "Help", build: (*siteBuilder).helpPage},
	{Name: "contact", File: "contact.html", Nav: "Contact", build: (*siteBuilder).contactPage},
}

// OutputFiles returns the file names Build writes, marker file excluded.
func OutputFiles() []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.File)
	}
	return out
}

type siteBuilder struct {
	opts     Options
	log      *zap.Logger
	resolver records.Resolver
	meta     SiteMeta
	nav      []NavLink
}

// Build renders every page into opts.Output. Pages are built one after the
// other; a failing page is logged and recorded in the report and the rest are
// still built. The returned error wraps ErrBuildIncomplete in that case.
func Build(opts Options) (Report, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	if err := os.MkdirAll(opts.Output, 0755); err != nil {
		return Report{}, fmt.Errorf("could not create output directory: %w", err)
	}

	failures := 0
	if err := atomic.WriteFile(filepath.Join(opts.Output, MarkerFile), bytes.NewReader(nil)); err != nil {
		log.Error("could not write marker file", zap.String("file", MarkerFile), zap.Error(err))
		failures++
	} else {
		log.Debug("wrote marker file", zap.String("file", MarkerFile))
	}

	for _, p := range pages {
		path := filepath.Join(opts.Output, p.File)
		err := os.Remove(path)
		switch {
		case err == nil:
			log.Debug("deleted old page", zap.String("file", p.File))
		case !errors.Is(err, os.ErrNotExist):
			log.Warn("could not delete old page", zap.String("file", p.File), zap.Error(err))
		}
	}

	b := newSiteBuilder(opts)
	report := Report{}
	for _, p := range pages {
		res := b.run(p)
		report.Pages = append(report.Pages, res)
		if res.Err != nil {
			failures++
			log.Error("failed generating page", zap.String("file", p.File), zap.Error(res.Err))
			continue
		}
		log.Info("generated page",
			zap.String("file", p.File),
			zap.Int("records", res.Records),
			zap.Bool("placeholder", res.Placeholder))
	}

	if failures > 0 {
		return report, fmt.Errorf("%w: %d failure(s)", ErrBuildIncomplete, failures)
	}
	return report, nil
}

func newSiteBuilder(opts Options) *siteBuilder {
	b := &siteBuilder{
		opts:     opts,
		log:      opts.Logger,
		resolver: records.Resolver{Root: opts.Root},
	}
	b.meta = b.loadSiteMeta()
	for _, p := range pages {
		b.nav = append(b.nav, NavLink{Label: p.Nav, Href: p.File})
	}
	return b
}

// run builds and writes one page. A panic inside a renderer is turned into an
// error so it fails only that page.
func (b *siteBuilder) run(p page) (res PageResult) {
	res = PageResult{Name: p.Name, File: p.File}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("renderer panicked: %v", r)
		}
	}()

	content, err := p.build(b)
	if err != nil {
		res.Err = err
		return res
	}
	res.Records = content.Records
	res.Placeholder = content.Placeholder

	out, err := b.renderPage(content)
	if err != nil {
		res.Err = err
		return res
	}
	if err := atomic.WriteFile(filepath.Join(b.opts.Output, p.File), bytes.NewReader(out)); err != nil {
		res.Err = fmt.Errorf("failed to write %s: %w", p.File, err)
	}
	return res
}

func (b *siteBuilder) renderPage(c pageContent) ([]byte, error) {
	now := b.opts.Now().UTC()
	docTitle := b.meta.Name
	if c.Title != "" {
		docTitle = b.meta.Name + " — " + c.Title
	}
	heading := c.Title
	if heading == "" {
		heading = b.meta.Name
	}
	favicon := b.meta.Favicon
	if favicon == "" {
		favicon = "favicon.ico"
	}
	return renderShell(PageData{
		DocTitle:   docTitle,
		Heading:    heading,
		SiteName:   b.meta.Name,
		Favicon:    favicon,
		ThemeColor: b.opts.Site.ThemeColor,
		Nav:        b.nav,
		Content:    c.Content,
		Year:       now.Year(),
		Updated:    now.Format("2006-01-02 15:04") + " UTC",
	})
}

// loadSiteMeta reads branding from the first organization record, by sorted
// file name. Later organization files are ignored rather than merged.
func (b *siteBuilder) loadSiteMeta() SiteMeta {
	meta := SiteMeta{}
	if dir, ok := b.resolver.Resolve(records.Organization); ok {
		if e, ok := records.FirstRecord(dir); ok {
			org := e.Record
			meta.Org = org
			meta.OrgFile = e.File
			meta.Name = org.First("entity_name", "name", "legal_name", "brand", "site_title")
			meta.Logo = org.First("logo_url", "logo")
			meta.Favicon = org.First("favicon", "favicon_url")
			meta.Website = org.First("website", "url")
			b.log.Debug("loaded organization", zap.String("file", e.File))
		} else {
			b.log.Warn("no usable organization record", zap.String("dir", dir))
		}
	}
	if meta.Name == "" {
		meta.Name = b.opts.Site.SiteNameFallback()
	}
	return meta
}

// load resolves and loads one category, logging each file that failed to parse.
// ok is false when no folder exists for the category.
func (b *siteBuilder) load(c records.Category) (records.DirResult, bool) {
	dir, ok := b.resolver.Resolve(c)
	if !ok {
		b.log.Debug("no folder for category", zap.String("category", string(c)))
		return records.DirResult{}, false
	}
	res := records.LoadDir(dir)
	for _, err := range res.Errors {
		b.log.Warn("skipping unreadable file", zap.String("category", string(c)), zap.Error(err))
	}
	b.log.Debug("loaded category",
		zap.String("category", string(c)),
		zap.String("dir", dir),
		zap.Int("files", res.Files),
		zap.Int("records", len(res.Entries)))
	return res, true
}
