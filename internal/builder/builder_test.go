package builder

import (
	"errors"
	"kbsite/internal/config"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC) }

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readPage(t *testing.T, dir, file string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, file))
	require.NoError(t, err)
	return string(b)
}

func testOptions(t *testing.T, root string) Options {
	return Options{
		Root:   root,
		Output: root,
		Site:   config.SiteConfig{Root: root, Output: root, Branch: "main", HelpRenderer: config.HelpRendererLines},
		Logger: zaptest.NewLogger(t),
		Now:    fixedNow,
	}
}

func build(t *testing.T, opts Options) Report {
	t.Helper()
	report, err := Build(opts)
	require.NoError(t, err)
	return report
}

func TestBuild_EmptyRepositoryWritesEveryPage(t *testing.T) {
	root := t.TempDir()
	report := build(t, testOptions(t, root))

	require.Len(t, report.Pages, 8)
	for _, file := range OutputFiles() {
		assert.FileExists(t, filepath.Join(root, file))
	}
	info, err := os.Stat(filepath.Join(root, MarkerFile))
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	placeholders := map[string]string{
		"services.html":     "No services folder found yet.",
		"awards.html":       "No awards have been published yet.",
		"testimonials.html": "No reviews folder found yet.",
		"faqs.html":         "No FAQ folder found yet.",
		"help.html":         "No help-articles folder found yet.",
		"contact.html":      "No locations folder found yet.",
		"index.html":        "No files found yet.",
	}
	for file, text := range placeholders {
		assert.Contains(t, readPage(t, root, file), text, file)
	}
	for _, p := range report.Pages {
		if p.Name != "index" && p.Name != "about" {
			assert.True(t, p.Placeholder, p.Name)
		}
	}

	about := readPage(t, root, "about.html")
	assert.Contains(t, about, "Site is a professional firm serving our community")
	assert.Contains(t, about, "<title>Site — Site</title>")
}

func TestBuild_EmptyFolderShowsNoUsableRecords(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "schemas/services/notes.md", "Nothing structured here")
	writeFile(t, root, "faqs/empty.json", "[]")

	build(t, testOptions(t, root))
	assert.Contains(t, readPage(t, root, "services.html"), "No usable services found yet.")
	assert.Contains(t, readPage(t, root, "faqs.html"), "No usable FAQs found yet.")
}

func TestBuild_MalformedFileDoesNotHideValidOne(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "schemas/services/a-broken.json", `{"title": "Broken", `)
	writeFile(t, root, "schemas/services/b-mediation.yaml", "title: Mediation\ndescription: Settle out of court\n")

	report := build(t, testOptions(t, root))
	page := readPage(t, root, "services.html")
	assert.Contains(t, page, "Mediation")
	assert.Contains(t, page, "Settle out of court")
	assert.NotContains(t, page, "Broken")
	assert.Equal(t, 1, report.Pages[2].Records)
}

func TestBuild_RemovesStalePages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "faqs.html", "stale content")

	build(t, testOptions(t, root))
	page := readPage(t, root, "faqs.html")
	assert.NotContains(t, page, "stale content")
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
}

func TestBuild_FailingPageDoesNotStopOthers(t *testing.T) {
	root := t.TempDir()
	// A non-empty directory where faqs.html should go cannot be replaced.
	writeFile(t, root, "faqs.html/keep", "x")
	writeFile(t, root, "schemas/faqs/q.yaml", "question: Why?\nanswer: Because.\n")

	report, err := Build(testOptions(t, root))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBuildIncomplete))

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "faqs", failed[0].Name)

	for _, file := range OutputFiles() {
		if file == "faqs.html" {
			continue
		}
		assert.FileExists(t, filepath.Join(root, file))
	}
}

func TestBuild_SeparateOutputDirectory(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	writeFile(t, root, "schemas/faqs/q.yaml", "question: Why?\nanswer: Because.\n")

	opts := testOptions(t, root)
	opts.Output = out
	build(t, opts)

	assert.Contains(t, readPage(t, out, "faqs.html"), "Why?")
	assert.NoFileExists(t, filepath.Join(root, "faqs.html"))
	assert.Contains(t, readPage(t, out, "index.html"), `href="../`)
}

func TestBuild_IsDeterministic(t *testing.T) {
	root := t.TempDir()
	seedRepository(t, root)

	build(t, testOptions(t, root))
	first := map[string]string{}
	for _, f := range OutputFiles() {
		first[f] = readPage(t, root, f)
	}

	build(t, testOptions(t, root))
	for _, f := range OutputFiles() {
		assert.Equal(t, first[f], readPage(t, root, f), f)
	}

	later := testOptions(t, root)
	later.Now = func() time.Time { return fixedNow().Add(26 * time.Hour) }
	build(t, later)
	for _, f := range OutputFiles() {
		a := strings.Split(first[f], "\n")
		b := strings.Split(readPage(t, root, f), "\n")
		require.Equal(t, len(a), len(b), f)
		var changed []string
		for i := range a {
			if a[i] != b[i] {
				changed = append(changed, b[i])
			}
		}
		require.Len(t, changed, 1, f)
		assert.Contains(t, changed[0], "Last updated: 2026-03-15 11:26 UTC")
	}
}

func TestBuild_SiteMetaFromFirstOrganization(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "organization/a.yaml", "name: Harbor Dental\nfavicon: /img/fav.png\nlogo: https://cdn.example/logo.png\n")
	writeFile(t, root, "organization/b.yaml", "name: Somebody Else\n")

	build(t, testOptions(t, root))
	page := readPage(t, root, "faqs.html")
	assert.Contains(t, page, "<title>Harbor Dental — Frequently Asked Questions</title>")
	assert.Contains(t, page, `<link rel="icon" href="/img/fav.png">`)
	assert.NotContains(t, page, "Somebody Else")

	about := readPage(t, root, "about.html")
	assert.Contains(t, about, `<img src="https://cdn.example/logo.png" alt="Harbor Dental"`)
}

func TestBuild_SiteNameFromRepository(t *testing.T) {
	root := t.TempDir()
	opts := testOptions(t, root)
	opts.Site.Repository = "acme/smith-law-group"

	build(t, opts)
	assert.Contains(t, readPage(t, root, "index.html"), "Welcome to Smith Law Group")
}

func TestBuild_NavigationListsEveryPage(t *testing.T) {
	root := t.TempDir()
	build(t, testOptions(t, root))

	page := readPage(t, root, "contact.html")
	for _, f := range OutputFiles() {
		assert.Contains(t, page, `<a href="`+f+`"`)
	}
	assert.Contains(t, page, "© 2026 — Auto-generated from structured data. Last updated: 2026-03-14 09:26 UTC")
}

// seedRepository lays out one record of every kind across canonical and legacy
// folder names.
func seedRepository(t *testing.T, root string) {
	t.Helper()
	writeFile(t, root, "schemas/organization/org.json", `{
  "entity_name": "Harbor Dental",
  "description": "Family dentistry since 1998.",
  "website": "https://harbor.example",
  "sameAs": ["https://social.example/harbor"]
}`)
	writeFile(t, root, "schemas/services/cleaning.yaml", `
title: Teeth Cleaning
price: $120
features: [Gentle, Fast]
featured: true
`)
	writeFile(t, root, "schemas/services/whitening.yaml", "title: Service\nkeywords: [whitening, cosmetic, bright]\n")
	writeFile(t, root, "reviews/r.json", `[
  {"author": "Ana", "rating": 5, "review_body": "Great!"},
  {"author": "Ben", "rating": 3, "review_body": "Fine."},
  {"customer_name": "Cy", "rating": "4", "quote": "Good."}
]`)
	writeFile(t, root, "faq-schemas/faq.yaml", "faqs:\n  - question: Do you take insurance?\n    answer: Most plans.\n")
	writeFile(t, root, "locations/main.yaml", `
name: Main Office
phone: 555-0100
email: hi@harbor.example
address:
  city: Springfield
  state: IL
service_areas: [Springfield, Chatham]
`)
	writeFile(t, root, "schemas/awards/best.json", `{"award_name": "Best of Springfield", "year": 2024}`)
	writeFile(t, root, "schemas/help-articles/first-visit.md", "---\ntitle: Your First Visit\n---\n## Before you come\n- Bring ID\n")
}
