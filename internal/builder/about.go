// internal/builder/about.go
package builder

import (
	"fmt"
	"html/template"
	"kbsite/internal/records"
	"math"
	"sort"
	"strings"
)

// aboutFacts are the cross-folder aggregates shown in "Facts at a Glance".
type aboutFacts struct {
	Services int
	Ratings  []float64
	Areas    []string
	Phone    string
	Email    string
}

// AverageRating returns the mean of the ratings and false when there are none.
func (f aboutFacts) AverageRating() (float64, bool) {
	if len(f.Ratings) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, r := range f.Ratings {
		sum += r
	}
	return sum / float64(len(f.Ratings)), true
}

// starBar renders avg as five stars, rounding half to even.
func starBar(avg float64) string {
	filled := int(math.RoundToEven(avg))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

func (b *siteBuilder) gatherFacts() aboutFacts {
	facts := aboutFacts{}

	if res, ok := b.load(records.Services); ok {
		facts.Services = len(res.Entries)
	}

	if res, ok := b.load(records.Locations); ok {
		areas := map[string]bool{}
		for _, e := range res.Entries {
			for _, a := range records.ServiceAreas(e.Record) {
				areas[a] = true
			}
			if facts.Phone == "" {
				facts.Phone = e.Record.First("phone", "telephone")
			}
			if facts.Email == "" {
				facts.Email = e.Record.First("email")
			}
		}
		for a := range areas {
			facts.Areas = append(facts.Areas, a)
		}
		sort.Strings(facts.Areas)
	}

	if res, ok := b.load(records.Reviews); ok {
		for _, e := range res.Entries {
			if r, ok := records.Rating(e.Record); ok && r > 0 {
				facts.Ratings = append(facts.Ratings, r)
			}
		}
	}
	return facts
}

// aboutPage describes the organization and summarizes services, locations and
// reviews.
func (b *siteBuilder) aboutPage() (pageContent, error) {
	org := b.meta.Org
	if org == nil {
		org = records.Record{}
	}

	name := records.FirstNonEmpty(org.First("entity_name", "name"), b.meta.Name)
	if name == "" {
		name = "About Us"
	}
	logo := records.FirstNonEmpty(org.First("logo_url", "logo"), b.meta.Logo)
	desc := org.First("description", "about")
	if desc == "" {
		desc = name + " is a professional firm serving our community with a client-first approach."
	}

	var parts []string
	if logo != "" {
		parts = append(parts, fmt.Sprintf(`<img src="%s" alt="%s" style="max-height: 120px; margin-bottom: 2rem;">`, safeURL(logo), esc(name)))
	}
	parts = append(parts, "<p>"+esc(desc)+"</p>")

	facts := b.gatherFacts()
	var rows []string
	if facts.Services > 0 {
		rows = append(rows, fmt.Sprintf("<strong>Services offered:</strong> %d", facts.Services))
	}
	if avg, ok := facts.AverageRating(); ok {
		rows = append(rows, fmt.Sprintf("<strong>Average rating:</strong> %.1f %s", avg, starBar(avg)))
	}
	if len(facts.Areas) > 0 {
		rows = append(rows, "<strong>Service areas:</strong> "+esc(strings.Join(head(facts.Areas, 10), ", ")))
	}
	if facts.Phone != "" {
		rows = append(rows, "<strong>Phone:</strong> "+esc(facts.Phone))
	}
	if facts.Email != "" {
		rows = append(rows, fmt.Sprintf(`<strong>Email:</strong> <a href="mailto:%s">%s</a>`, safeURL(facts.Email), esc(facts.Email)))
	}
	if len(rows) > 0 {
		var sb strings.Builder
		sb.WriteString(`<div class="card"><h2>Facts at a Glance</h2><ul>`)
		for _, r := range rows {
			sb.WriteString("<li>" + r + "</li>")
		}
		sb.WriteString("</ul></div>")
		parts = append(parts, sb.String())
	}

	website := records.FirstNonEmpty(org.First("website", "url"), b.meta.Website)
	sameAs := org.List("sameAs", "same_as")
	if website != "" || len(sameAs) > 0 {
		var links []string
		if website != "" {
			links = append(links, fmt.Sprintf(`<li><a href="%s" target="_blank" rel="nofollow">Website</a></li>`, safeURL(website)))
		}
		for _, s := range head(sameAs, 12) {
			links = append(links, fmt.Sprintf(`<li><a href="%s" target="_blank" rel="nofollow">%s</a></li>`, safeURL(s), esc(s)))
		}
		parts = append(parts, "<h2>Links</h2><ul>"+strings.Join(links, "")+"</ul>")
	}

	parts = append(parts, `
    <div class="card">
        <h2>Ready to Talk?</h2>
        <p>Have a project in mind or need guidance? We’re here to help.</p>
        <p><a href="contact.html">Contact us</a> to get started.</p>
    </div>
    `)

	count := 0
	if b.meta.Org != nil {
		count = 1
	}
	return pageContent{
		Title:   name,
		Content: template.HTML(strings.Join(parts, "\n")),
		Records: count,
	}, nil
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
