// internal/builder/contact.go
package builder

import (
	"fmt"
	"html/template"
	"kbsite/internal/records"
	"strings"
)

// location is the display form of one location record.
type location struct {
	Name    string
	Phone   string
	Email   string
	Person  string
	Address string
	Hours   string
	Website string
	Socials []string
	MapURL  string
}

func newLocation(r records.Record) location {
	cp := r.Sub("contactPoint")
	if cp == nil {
		cp = records.Record{}
	}
	loc := location{
		Name:    r.First("entity_name", "location_name", "name"),
		Phone:   records.FirstNonEmpty(r.First("phone", "telephone"), cp.First("telephone")),
		Email:   records.FirstNonEmpty(r.First("email"), cp.First("email")),
		Person:  r.First("contact_person", "contact", "contact_name"),
		Address: records.Address(r),
		Hours:   records.Hours(r),
		Website: r.First("website", "url", "homepage"),
		Socials: r.List("sameAs", "same_as", "social", "social_links"),
	}
	if loc.Name == "" {
		loc.Name = "Location"
	}
	loc.MapURL = records.MapEmbedURL(r, loc.Address)
	return loc
}

// card renders a location without phone or email; those appear once, in the
// quick contact block.
func (l location) card() string {
	var sb strings.Builder
	sb.WriteString("<div class='card'>")
	sb.WriteString("<h3>" + esc(l.Name) + "</h3><p>")
	if l.Person != "" {
		sb.WriteString("<strong>Contact:</strong> " + esc(l.Person) + "<br>")
	}
	if l.Address != "" {
		sb.WriteString("<strong>Address:</strong> " + esc(l.Address) + "<br>")
	}
	if l.Hours != "" {
		sb.WriteString("<strong>Hours:</strong> " + esc(l.Hours) + "<br>")
	}
	if l.Website != "" {
		fmt.Fprintf(&sb, "<strong>Website:</strong> <a href='%s' target='_blank' rel='nofollow'>%s</a><br>", safeURL(l.Website), esc(l.Website))
	}
	sb.WriteString("</p>")

	if len(l.Socials) > 0 {
		links := make([]string, 0, len(l.Socials))
		for _, s := range head(l.Socials, 8) {
			links = append(links, fmt.Sprintf("<a href='%s' target='_blank' rel='nofollow'>%s</a>", safeURL(s), esc(s)))
		}
		sb.WriteString("<p><strong>Find us:</strong> " + strings.Join(links, " • ") + "</p>")
	}

	if l.MapURL != "" {
		fmt.Fprintf(&sb, `
                <div style="margin-top: 1rem;">
                    <iframe src="%s" width="100%%" height="320"
                            style="border:0; border-radius: 8px;" allowfullscreen loading="lazy"></iframe>
                </div>
                `, safeURL(l.MapURL))
	}
	sb.WriteString("</div>")
	return sb.String()
}

// quickContact renders the first name, phone and email found across all
// locations, or "" when none exist.
func quickContact(name, phone, email string) string {
	if name == "" && phone == "" && email == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<div class='card'><h2>Quick Contact</h2>")
	if name != "" {
		sb.WriteString("<p><strong>" + esc(name) + "</strong></p>")
	}
	if phone != "" {
		fmt.Fprintf(&sb, "<p><strong>Phone:</strong> <a href='tel:%s'>%s</a></p>", safeURL(phone), esc(phone))
	}
	if email != "" {
		fmt.Fprintf(&sb, "<p><strong>Email:</strong> <a href='mailto:%s'>%s</a></p>", safeURL(email), esc(email))
	}
	sb.WriteString("</div>")
	return sb.String()
}

// contactPage renders the quick contact block followed by one card per location.
func (b *siteBuilder) contactPage() (pageContent, error) {
	const title = "Contact Us"
	res, ok := b.load(records.Locations)
	if !ok {
		return pageContent{
			Title:       title,
			Content:     placeholder(title, "No locations folder found yet. Add location JSON/YAML files to your locations folder (or schemas/locations) to populate this page."),
			Placeholder: true,
		}, nil
	}

	var (
		items                 []string
		firstName, firstPhone string
		firstEmail            string
	)
	for _, e := range res.Entries {
		loc := newLocation(e.Record)
		if firstName == "" {
			firstName = loc.Name
		}
		if firstPhone == "" {
			firstPhone = loc.Phone
		}
		if firstEmail == "" {
			firstEmail = loc.Email
		}
		items = append(items, loc.card())
	}

	var sb strings.Builder
	sb.WriteString("<p>We’d love to hear from you. Reach out using the details below or visit us at our offices.</p>")
	sb.WriteString(quickContact(firstName, firstPhone, firstEmail))
	placeholderOnly := len(items) == 0
	if placeholderOnly {
		reason := fmt.Sprintf("No usable locations found (scanned %d files, %d records).", res.Files, len(res.Entries))
		sb.WriteString(string(placeholder("Locations", reason)))
	} else {
		sb.WriteString(strings.Join(items, ""))
	}
	return pageContent{
		Title:       title,
		Content:     template.HTML(sb.String()),
		Records:     len(items),
		Placeholder: placeholderOnly,
	}, nil
}
