// internal/builder/services.go
package builder

import (
	"fmt"
	"html/template"
	"kbsite/internal/records"
	"kbsite/internal/util"
	"strings"
)

// serviceTitle falls back from the declared title to the first two keywords
// and finally to the file name.
func serviceTitle(e records.Entry) string {
	title := e.Record.First("title", "service_name", "name")
	if records.IsPlaceholderTitle(title) {
		if kws := e.Record.List("keywords"); len(kws) > 0 {
			title = util.TitleCase(strings.Join(head(kws, 2), " / "))
		}
	}
	if records.IsPlaceholderTitle(title) {
		title = records.TitleFromFilename(e.File)
	}
	return title
}

func serviceCard(e records.Entry) string {
	r := e.Record
	title := serviceTitle(e)
	slug := r.First("slug")
	if slug == "" {
		slug = records.Slugify(title)
	}

	badge := ""
	if r.Bool("featured", "is_featured") {
		badge = `<span class="badge">Featured</span>`
	}

	desc := ""
	if d := records.Description(r); d != "" {
		desc = "<p>" + esc(d) + "</p>"
	}

	bullets := ""
	if bs := records.BulletPoints(r); len(bs) > 0 {
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, bp := range bs {
			sb.WriteString("<li>" + esc(bp) + "</li>")
		}
		sb.WriteString("</ul>")
		bullets = sb.String()
	}

	return fmt.Sprintf(`
            <div class="card" id="%[1]s">
                <h2>%[2]s %[3]s</h2>
                %[4]s
                %[5]s
                <p><strong>Starting at:</strong> %[6]s</p>
                <a href="#%[1]s" style="display: inline-block; margin-top: 1rem;">🔗 Permalink</a>
            </div>
            `, esc(slug), esc(title), badge, desc, bullets, esc(records.Price(r)))
}

// servicesPage lists every service record with its price and highlights.
func (b *siteBuilder) servicesPage() (pageContent, error) {
	const title = "Our Services"
	res, ok := b.load(records.Services)
	if !ok {
		return pageContent{
			Title:       title,
			Content:     placeholder(title, "No services folder found yet. Add JSON/YAML files to schemas/services (or services/) to populate this page."),
			Placeholder: true,
		}, nil
	}

	var items []string
	for _, e := range res.Entries {
		items = append(items, serviceCard(e))
	}
	if len(items) == 0 {
		return pageContent{Title: title, Content: placeholder(title, "No usable services found yet."), Placeholder: true}, nil
	}
	return pageContent{Title: title, Content: template.HTML(strings.Join(items, "")), Records: len(items)}, nil
}

var awardTitleKeys = []string{
	"title", "award_name", "certification_name", "accreditation_name",
	"license_name", "name", "issuer", "organization",
}

const noAwards = "No awards have been published yet."

// awardsPage lists awards, certifications and accreditations.
func (b *siteBuilder) awardsPage() (pageContent, error) {
	const title = "Awards"
	res, ok := b.load(records.Awards)
	if !ok {
		return pageContent{Title: title, Content: placeholder(title, noAwards), Placeholder: true}, nil
	}

	var items []string
	for _, e := range res.Entries {
		r := e.Record
		name := records.Title(r, e.File, awardTitleKeys...)
		desc := r.First("description", "summary", "details", "notes")
		date := r.First("date", "awarded_date", "year")
		issuer := r.First("issuer", "awarding_body", "organization")

		var extra []string
		if date != "" {
			extra = append(extra, "<strong>Date:</strong> "+esc(date))
		}
		if issuer != "" {
			extra = append(extra, "<strong>Issuer:</strong> "+esc(issuer))
		}

		descHTML, extraHTML := "", ""
		if desc != "" {
			descHTML = "<p>" + esc(desc) + "</p>"
		}
		if len(extra) > 0 {
			extraHTML = "<p>" + strings.Join(extra, "<br>") + "</p>"
		}
		items = append(items, fmt.Sprintf(`
            <div class="card">
                <h2>%s</h2>
                %s
                %s
            </div>
            `, esc(name), descHTML, extraHTML))
	}
	if len(items) == 0 {
		return pageContent{Title: title, Content: placeholder(title, noAwards), Placeholder: true}, nil
	}
	return pageContent{Title: title, Content: template.HTML(strings.Join(items, "")), Records: len(items)}, nil
}
