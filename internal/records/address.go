// internal/records/address.go
package records

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Address formats a postal address from either a plain "address" string, a
// structured "address" mapping, or address components stored on the record
// itself. Components are joined as "line1 line2 City, ST 12345"; missing
// components are left out together with their separators.
func Address(r Record) string {
	switch addr := r["address"].(type) {
	case string:
		if s := strings.TrimSpace(addr); s != "" {
			return s
		}
	case map[string]any:
		a := Record(addr)
		return joinAddress(
			a.First("streetAddress", "address1", "addressLine1"),
			a.First("address2", "addressLine2", "suite"),
			a.First("addressLocality", "city"),
			a.First("addressRegion", "state"),
			a.First("postalCode", "zip", "zipCode"),
		)
	}
	return joinAddress(
		r.First("address_street", "streetAddress", "street"),
		r.First("address2", "suite"),
		r.First("address_city", "city"),
		r.First("address_state", "state", "addressRegion"),
		r.First("address_postal_code", "postalCode", "zip"),
	)
}

func joinAddress(line1, line2, city, state, postal string) string {
	var locality []string
	for _, p := range []string{city, state} {
		if p != "" {
			locality = append(locality, p)
		}
	}
	var parts []string
	for _, p := range []string{line1, line2, strings.Join(locality, ", "), postal} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Hours summarizes opening hours. A free-text field wins; otherwise a
// structured openingHoursSpecification list is rendered as
// "Monday: 09:00 – 17:00; Tuesday: ..." with "—" standing in for a missing time.
func Hours(r Record) string {
	if h := r.First("hours", "openingHours", "opening_hours", "business_hours"); h != "" {
		return h
	}
	spec, ok := r.Value("openingHoursSpecification", "opening_hours_specification").([]any)
	if !ok {
		return ""
	}
	var rows []string
	for _, item := range spec {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := Record(m)
		day := dayName(row.Value("dayOfWeek", "day", "weekday"))
		opens := row.First("opens", "openingTime")
		closes := row.First("closes", "closingTime")
		if day == "" || (opens == "" && closes == "") {
			continue
		}
		rows = append(rows, fmt.Sprintf("%s: %s – %s", day, orDash(opens), orDash(closes)))
	}
	return strings.Join(rows, "; ")
}

// dayName accepts "Monday", ["Monday", ...] or "https://schema.org/Monday".
func dayName(v any) string {
	day := FirstNonEmpty(v)
	if list, ok := v.([]any); ok && len(list) > 0 {
		day = FirstNonEmpty(list[0])
	}
	if i := strings.LastIndex(day, "/"); i >= 0 {
		day = day[i+1:]
	}
	return day
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// MapEmbedURL picks the iframe source for a location: explicit numeric
// coordinates first, then an explicit map URL, then a geocoding query for the
// address. It returns "" when none is available.
func MapEmbedURL(r Record, address string) string {
	geo := r.Sub("geo")
	lat, latOK := coordinate(r["latitude"], geo, "latitude")
	lng, lngOK := coordinate(r["longitude"], geo, "longitude")
	if latOK && lngOK {
		return fmt.Sprintf("https://www.google.com/maps?q=%s,%s&z=15&output=embed", lat, lng)
	}
	if u := r.First("map_embed_url", "map", "map_iframe"); u != "" {
		return u
	}
	if u := r.First("google_maps_url", "maps_url", "map_url"); u != "" {
		return u
	}
	if address != "" {
		return "https://www.google.com/maps?q=" + url.QueryEscape(address) + "&output=embed"
	}
	return ""
}

// coordinate only accepts real numbers; strings are not trusted as coordinates.
func coordinate(v any, geo Record, key string) (string, bool) {
	if !truthy(v) && geo != nil {
		v = geo[key]
	}
	switch v.(type) {
	case int, int64, float64, json.Number:
		return FirstNonEmpty(v), true
	}
	return "", false
}
