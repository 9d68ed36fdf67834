// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"kbsite/internal/config"
	"kbsite/internal/records"
	"os"
	"path/filepath"
	"sort"
	"text/template"
)

// ErrExists is returned when a scaffold file is already present.
var ErrExists = errors.New("file already exists")

// canonicalDirs is where new records of each category are written.
var canonicalDirs = map[records.Category]string{
	records.Organization: "schemas/organization",
	records.Services:     "schemas/services",
	records.Reviews:      "schemas/reviews",
	records.FAQs:         "schemas/faqs",
	records.Help:         "schemas/help-articles",
	records.Locations:    "schemas/locations",
	records.Awards:       "schemas/awards",
	records.LLMData:      "llm-data",
}

// CreateSite lays out a new data repository in dir with one sample record per
// category and a config file. Nothing is written if any target already exists.
// It returns the created files relative to dir.
func CreateSite(dir string) ([]string, error) {
	paths := make([]string, 0, len(siteFiles))
	for p := range siteFiles {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p))); err == nil {
			return nil, fmt.Errorf("%s: %w", p, ErrExists)
		}
	}
	for _, p := range paths {
		if err := writeNew(filepath.Join(dir, filepath.FromSlash(p)), []byte(siteFiles[p])); err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", p, err)
		}
	}
	return paths, nil
}

// NewRecord writes a record stub titled title into the canonical folder of c
// below root and returns its path.
func NewRecord(root string, c records.Category, title string) (string, error) {
	dir, ok := canonicalDirs[c]
	tmplText, hasTmpl := recordArchetypes[c]
	if !ok || !hasTmpl {
		return "", fmt.Errorf("no record template for category %q", c)
	}

	tmpl, err := template.New(string(c)).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", c, err)
	}
	data := struct {
		Title string
		Slug  string
	}{
		Title: title,
		Slug:  records.Slugify(title),
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", c, err)
	}

	ext := ".yaml"
	if c == records.Help {
		ext = ".md"
	}
	path := filepath.Join(root, filepath.FromSlash(dir), data.Slug+ext)
	if err := writeNew(path, out.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func writeNew(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var siteFiles = map[string]string{
	config.DefaultFile: `# Settings for kbsite. Flags and KBSITE_* environment variables override these.
# repository: owner/name
branch: main
help_renderer: lines
theme_color: "#2c3e50"
`,
	"schemas/organization/organization.yaml": `entity_name: Example Firm
description: Example Firm is a professional firm serving our community.
website: https://example.com
sameAs:
  - https://www.linkedin.com/company/example
`,
	"schemas/services/consulting.yaml": `title: Consulting
description: Practical advice for growing businesses.
price: Starting at $150/hour
features:
  - Free first call
  - Written recommendations
featured: true
`,
	"schemas/reviews/reviews.json": `[
  {
    "author": "Jordan P.",
    "rating": 5,
    "review_body": "Clear advice and quick answers."
  }
]
`,
	"schemas/faqs/general.yaml": `faqs:
  - question: How do I book an appointment?
    answer: Call us or send an email and we will reply within one business day.
`,
	"schemas/help-articles/getting-started.md": `---
title: Getting Started
---
# Welcome
- Browse our services
- Contact us with any question
`,
	"schemas/locations/main-office.yaml": `name: Main Office
phone: 555-0100
email: hello@example.com
address:
  streetAddress: 1 Main St
  city: Springfield
  state: IL
  postalCode: "62701"
hours: Mon-Fri 9:00-17:00
service_areas:
  - Springfield
`,
	"schemas/awards/best-of.yaml": `award_name: Best of Springfield
issuer: Springfield Gazette
year: 2024
`,
	"llm-data/README.md": `Machine-readable files in this repository are listed on the site index.
`,
}

var recordArchetypes = map[records.Category]string{
	records.Services: `title: {{ printf "%q" .Title }}
slug: {{ .Slug }}
description: ""
price: ""
features: []
`,
	records.Reviews: `author: ""
rating: 5
review_body: {{ printf "%q" .Title }}
`,
	records.FAQs: `question: {{ printf "%q" .Title }}
answer: ""
`,
	records.Help: `---
title: {{ printf "%q" .Title }}
---
Write the article here.
`,
	records.Locations: `name: {{ printf "%q" .Title }}
phone: ""
email: ""
address: ""
hours: ""
`,
	records.Awards: `award_name: {{ printf "%q" .Title }}
issuer: ""
year: ""
`,
}
