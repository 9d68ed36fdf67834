// internal/builder/models.go
package builder

import (
	"html/template"
	"kbsite/internal/records"
)

// SiteMeta holds the branding shared by every page. It is read once per run
// from the first organization record.
type SiteMeta struct {
	Name    string
	Logo    string
	Favicon string
	Website string

	// Org is the organization record itself (nil when none was found) and
	// OrgFile the file it came from.
	Org     records.Record
	OrgFile string
}

// PageData is the struct passed to the page shell template.
type PageData struct {
	DocTitle   string // <title>, "Site — Page"
	Heading    string // the <h1> in the page header
	SiteName   string
	Favicon    string
	ThemeColor string
	Nav        []NavLink
	Content    template.HTML
	Year       int
	Updated    string // "2006-01-02 15:04 UTC"
}

// NavLink is one entry of the top navigation bar.
type NavLink struct {
	Label string
	Href  string
}

// pageContent is what a renderer produces before it is wrapped in the shell.
type pageContent struct {
	Title       string
	Content     template.HTML
	Records     int
	Placeholder bool
}

// PageResult reports the outcome of one page build.
type PageResult struct {
	Name        string
	File        string
	Records     int
	Placeholder bool
	Err         error
}

// Report is the outcome of a whole build, one result per page in build order.
type Report struct {
	Pages []PageResult
}

// Failed returns the pages whose renderer returned an error.
func (r Report) Failed() []PageResult {
	var out []PageResult
	for _, p := range r.Pages {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}
