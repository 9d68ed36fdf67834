// internal/records/fields.go
package records

import (
	"encoding/json"
	"fmt"
	"kbsite/internal/util"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// FirstNonEmpty returns the first usable display value: a non-blank string
// (trimmed), a number, or a JSON-LD style {"@value": "..."} mapping.
func FirstNonEmpty(vals ...any) string {
	for _, v := range vals {
		if s, ok := scalarString(v); ok {
			return s
		}
	}
	return ""
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s, true
		}
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case json.Number:
		if s := strings.TrimSpace(t.String()); s != "" {
			return s, true
		}
	case float64:
		if !math.IsNaN(t) {
			return formatFloat(t), true
		}
	case float32:
		if !math.IsNaN(float64(t)) {
			return formatFloat(float64(t)), true
		}
	case map[string]any:
		if s, ok := t["@value"].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// First returns FirstNonEmpty over the values of keys, in order.
func (r Record) First(keys ...string) string {
	for _, k := range keys {
		if s, ok := scalarString(r[k]); ok {
			return s
		}
	}
	return ""
}

// Value returns the value of the first key holding something truthy.
func (r Record) Value(keys ...string) any {
	for _, k := range keys {
		if truthy(r[k]) {
			return r[k]
		}
	}
	return nil
}

// Sub returns the nested mapping under key, or nil.
func (r Record) Sub(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// List returns AsList of the first truthy value among keys.
func (r Record) List(keys ...string) []string {
	return AsList(r.Value(keys...))
}

// Bool reports whether any of keys holds a truthy value.
func (r Record) Bool(keys ...string) bool {
	return r.Value(keys...) != nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// AsList turns a sequence or a comma-separated string into trimmed, non-empty items.
func AsList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if item == nil {
				continue
			}
			s, ok := scalarString(item)
			if !ok {
				s = strings.TrimSpace(fmt.Sprint(item))
			}
			if s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

var (
	placeholderTitles = map[string]bool{
		"service": true, "unnamed service": true, "untitled": true,
		"n/a": true, "na": true, "tbd": true,
	}
	numberedTitle = regexp.MustCompile(`^(service|item|entry)\s*\d+$`)
)

// IsPlaceholderTitle reports whether s is blank or a generic stand-in such as
// "Service", "TBD" or "item 3".
func IsPlaceholderTitle(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return true
	}
	return placeholderTitles[t] || numberedTitle.MatchString(t)
}

// TitleFromFilename turns "family-law_services.yaml" into "Family Law Services".
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return util.TitleCase(strings.TrimSpace(base))
}

// Title picks the first of keys that is not a placeholder title and falls back
// to the title derived from file.
func Title(r Record, file string, keys ...string) string {
	if t := r.First(keys...); !IsPlaceholderTitle(t) {
		return t
	}
	return TitleFromFilename(file)
}

// Description is the first of the usual prose fields.
func Description(r Record) string {
	return r.First("description", "summary", "details", "body", "content", "answer", "copy")
}

// DefaultPrice is shown when a service carries no price.
const DefaultPrice = "Contact for pricing"

// Price is the first of the price-like fields, or DefaultPrice.
func Price(r Record) string {
	if p := r.First("price", "price_range", "starting_price", "min_price", "cost", "fee"); p != "" {
		return p
	}
	return DefaultPrice
}

// BulletPoints returns at most four highlight lines: up to three features (or
// specialties when there are none) and a service-area summary. Duplicates are
// dropped case-insensitively.
func BulletPoints(r Record) []string {
	feats := r.List("features", "benefits", "highlights")
	specs := r.List("specialties", "capabilities")
	areas := r.List("service_areas", "areas", "locations_served")

	var bullets []string
	bullets = append(bullets, head(feats, 3)...)
	if len(bullets) == 0 {
		bullets = append(bullets, head(specs, 3)...)
	}
	if len(areas) > 0 {
		bullets = append(bullets, "Service areas: "+strings.Join(head(areas, 5), ", "))
	}

	seen := make(map[string]bool, len(bullets))
	uniq := bullets[:0]
	for _, b := range bullets {
		key := strings.ToLower(b)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, b)
	}
	return head(uniq, 4)
}

// ServiceAreas returns the areas a record declares it serves.
func ServiceAreas(r Record) []string {
	return r.List("service_areas", "areas", "locations_served")
}

// Rating reads a positive or zero numeric rating, accepting numeric strings.
func Rating(r Record) (float64, bool) {
	switch t := r["rating"].(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return finite(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	case map[string]any:
		// schema.org reviewRating
		return Rating(Record{"rating": t["ratingValue"]})
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

var (
	slugStrip = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugSpace = regexp.MustCompile(`\s+`)
)

// Slugify makes an anchor-safe identifier, "item" when nothing is left.
func Slugify(s string) string {
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	if s == "" {
		return "item"
	}
	return s
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
