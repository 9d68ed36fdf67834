// internal/builder/shell.go
package builder

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// shellTemplate is the page layout shared by all eight pages. "main" is the
// entry point; "nav" and "footer" are partials, as in a theme directory.
var shellTemplate = template.Must(template.New("shell").Parse(shellLayout + shellNav + shellFooter))

const shellLayout = `{{ define "main" }}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{ .DocTitle }}</title>
    <meta name="application-name" content="{{ .SiteName }}">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="theme-color" content="{{ .ThemeColor }}">
    <link rel="icon" href="{{ .Favicon }}">
    <link rel="icon" type="image/png" sizes="32x32" href="icons/favicon-32.png">
    <link rel="icon" type="image/png" sizes="16x16" href="icons/favicon-16.png">
    <link rel="apple-touch-icon" sizes="180x180" href="icons/apple-touch-icon.png">
    <link rel="manifest" href="site.webmanifest">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; line-height: 1.7; }
        h1, h2, h3 { color: #2c3e50; }
        a { color: #3498db; text-decoration: none; }
        a:hover { text-decoration: underline; }
        img { max-width: 100%; height: auto; }
        .page-header { background: #ecf0f1; padding: 2rem; border-radius: 8px; margin-bottom: 2rem; text-align: center; }
        .card { border: 1px solid #eee; padding: 1.5rem; border-radius: 8px; margin: 2rem 0; }
        .badge { background: #3498db; color: white; padding: 0.25rem 0.5rem; border-radius: 4px; font-size: 0.9em; }
        .muted { color: #6b7280; }
        .stars { margin-top: 0.5rem; color: #f39c12; }
        code { background: #f3f4f6; padding: 0.1rem 0.25rem; border-radius: 4px; }
    </style>
</head>
<body>
{{ template "nav" . }}
    <div class="page-header">
        <h1>{{ .Heading }}</h1>
    </div>
{{ .Content }}
{{ template "footer" . }}
</body>
</html>
{{ end }}`

const shellNav = `{{ define "nav" }}    <nav style="background: #2c3e50; padding: 1rem; margin-bottom: 2rem;">
        <ul style="list-style: none; display: flex; gap: 2rem; margin: 0; padding: 0; flex-wrap: wrap; justify-content: center;">
{{- range .Nav }}
            <li><a href="{{ .Href }}" style="color: white; text-decoration: none;">{{ .Label }}</a></li>
{{- end }}
        </ul>
    </nav>{{ end }}`

// The footer carries the only time-dependent text on a page, on one line.
const shellFooter = `{{ define "footer" }}    <footer style="margin-top: 4rem; padding-top: 2rem; border-top: 1px solid #eee; text-align: center; color: #7f8c8d;">
        <p>© {{ .Year }} — Auto-generated from structured data. Last updated: {{ .Updated }}</p>
    </footer>{{ end }}`

// renderShell wraps content in the shared layout.
func renderShell(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := shellTemplate.ExecuteTemplate(&buf, "main", data); err != nil {
		return nil, fmt.Errorf("failed to execute page shell: %w", err)
	}
	return buf.Bytes(), nil
}

// placeholder is the card shown instead of data that could not be found.
func placeholder(title, reason string) template.HTML {
	return template.HTML(fmt.Sprintf(
		"\n    <div class=\"card\">\n        <h2>%s</h2>\n        <p class=\"muted\">%s</p>\n    </div>\n",
		esc(title), esc(reason)))
}

func esc(s string) string {
	return html.EscapeString(s)
}

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

// safeURL escapes a record-supplied URL for use in an attribute and neutralizes
// script-capable schemes.
func safeURL(raw string) string {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	for _, s := range unsafeSchemes {
		if strings.HasPrefix(lower, s) {
			return "#"
		}
	}
	return esc(u)
}
