// internal/builder/reviews.go
package builder

import (
	"fmt"
	"html/template"
	"kbsite/internal/records"
	"strings"
)

// reviewStars truncates the rating to a whole number of stars between 1 and 5.
// A review without a readable rating shows five.
func reviewStars(r records.Record) int {
	stars := 5
	if _, present := r["rating"]; present {
		if v, ok := records.Rating(r); ok {
			stars = int(v)
		}
	}
	if stars < 1 {
		stars = 1
	}
	if stars > 5 {
		stars = 5
	}
	return stars
}

func reviewAuthor(r records.Record) string {
	if a := r.Sub("author"); a != nil {
		if name := a.First("name"); name != "" {
			return name
		}
	}
	if a := r.First("customer_name", "author"); a != "" {
		return a
	}
	return "Anonymous"
}

// testimonialsPage quotes each review with its author and star rating.
func (b *siteBuilder) testimonialsPage() (pageContent, error) {
	const title = "Testimonials"
	res, ok := b.load(records.Reviews)
	if !ok {
		return pageContent{
			Title:       title,
			Content:     placeholder(title, "No reviews folder found yet. Add JSON/YAML files to schemas/reviews (or reviews/) to populate this page."),
			Placeholder: true,
		}, nil
	}

	var items []string
	for _, e := range res.Entries {
		r := e.Record
		quote := r.First("review_body", "reviewBody", "quote", "review_title")
		if quote == "" {
			quote = "No review text provided."
		}
		byline := esc(reviewAuthor(r))
		if entity := r.First("entity_name"); entity != "" {
			byline += ", " + esc(entity)
		}
		date := ""
		if d := r.First("date", "datePublished"); d != "" {
			date = "<br/><small>" + esc(d) + "</small>"
		}
		n := reviewStars(r)
		items = append(items, fmt.Sprintf(`
            <blockquote class="card" style="font-style: italic;">
                <p>“%s”</p>
                <footer style="margin-top: 1rem; font-style: normal;">
                    — %s
                    %s
                </footer>
                <div class="stars">%s</div>
            </blockquote>
            `, esc(quote), byline, date, strings.Repeat("★", n)+strings.Repeat("☆", 5-n)))
	}
	if len(items) == 0 {
		return pageContent{Title: title, Content: placeholder(title, "No usable reviews found yet."), Placeholder: true}, nil
	}
	return pageContent{Title: title, Content: template.HTML(strings.Join(items, "")), Records: len(items)}, nil
}

func faqAnswer(r records.Record) string {
	if a := r.First("answer"); a != "" {
		return a
	}
	if accepted := r.Sub("acceptedAnswer"); accepted != nil {
		return accepted.First("text")
	}
	return ""
}

// faqsPage renders question/answer cards. Records without a question are skipped.
func (b *siteBuilder) faqsPage() (pageContent, error) {
	const title = "Frequently Asked Questions"
	res, ok := b.load(records.FAQs)
	if !ok {
		return pageContent{
			Title:       title,
			Content:     placeholder("FAQs", "No FAQ folder found yet. Add JSON/YAML files to schemas/faqs (or faq-schemas/) to populate this page."),
			Placeholder: true,
		}, nil
	}

	var items []string
	for _, e := range res.Entries {
		q := e.Record.First("question", "name")
		if q == "" {
			continue
		}
		items = append(items, fmt.Sprintf(`
            <div class="card">
                <h3 style="margin: 0 0 0.5rem 0;">%s</h3>
                <p>%s</p>
            </div>
            `, esc(q), esc(faqAnswer(e.Record))))
	}
	if len(items) == 0 {
		return pageContent{Title: title, Content: placeholder("FAQs", "No usable FAQs found yet."), Placeholder: true}, nil
	}
	return pageContent{Title: title, Content: template.HTML(strings.Join(items, "")), Records: len(items)}, nil
}
