// internal/records/resolve.go
package records

import (
	"kbsite/internal/util"
	"path/filepath"
)

// Category names a kind of business record. Each category can live under
// several folder names depending on how the repository was set up.
type Category string

const (
	Organization Category = "organization"
	Services     Category = "services"
	Reviews      Category = "reviews"
	FAQs         Category = "faqs"
	Help         Category = "help"
	Locations    Category = "locations"
	Awards       Category = "awards"
	LLMData      Category = "llm-data"
)

// candidates lists folder names per category, canonical schemas/* layout first,
// then legacy and custom names seen in older repositories.
var candidates = map[Category][]string{
	Organization: {"schemas/organization", "schemas/organizations", "schemas/company", "schemas/entity", "schemas/business", "organization", "company", "business"},
	Services:     {"schemas/services", "services", "practice-areas", "practice_areas"},
	Reviews:      {"schemas/reviews", "reviews", "testimonials"},
	FAQs:         {"schemas/faqs", "faqs", "faq-schemas", "faq_schemas"},
	Help:         {"schemas/help-articles", "help-articles", "help_articles", "llm-data/help-articles", "llm-data/help_articles"},
	Locations:    {"schemas/locations", "locations", "offices", "office-locations", "office_locations"},
	Awards:       {"schemas/awards", "awards", "certifications", "accreditations"},
	LLMData:      {"llm-data", "llm_data", "llm", "data"},
}

// Markers are the top-level folders whose presence identifies a repository root.
var Markers = []string{"schemas", "faq-schemas", "organization", "locations", "llm-data"}

// Candidates returns the ordered folder names probed for c, slash-separated
// and relative to the repository root.
func Candidates(c Category) []string {
	out := make([]string, len(candidates[c]))
	copy(out, candidates[c])
	return out
}

// Categories returns every known category in a stable order.
func Categories() []Category {
	return []Category{Organization, Services, Reviews, FAQs, Help, Locations, Awards, LLMData}
}

// Resolver locates category folders below Root.
type Resolver struct {
	Root string
}

// Resolve returns the first existing candidate directory for c. A category
// with no folder at all is not an error; callers render a placeholder.
func (r Resolver) Resolve(c Category) (string, bool) {
	for _, cand := range candidates[c] {
		dir := filepath.Join(r.Root, filepath.FromSlash(cand))
		if util.IsDir(dir) {
			return dir, true
		}
	}
	return "", false
}

// FindRoot walks upward from each start directory in turn, checking at most
// maxDepth directories per start, and returns the first one holding any of the
// Markers folders.
func FindRoot(starts []string, maxDepth int) (string, bool) {
	for _, start := range starts {
		if start == "" {
			continue
		}
		cur, err := filepath.Abs(start)
		if err != nil {
			continue
		}
		for i := 0; i < maxDepth; i++ {
			if hasMarker(cur) {
				return cur, true
			}
			parent := filepath.Dir(cur)
			if parent == cur {
				break
			}
			cur = parent
		}
	}
	return "", false
}

func hasMarker(dir string) bool {
	for _, m := range Markers {
		if util.IsDir(filepath.Join(dir, m)) {
			return true
		}
	}
	return false
}
