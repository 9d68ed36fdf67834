package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"plain string", Record{"address": " 1 Main St, Austin TX "}, "1 Main St, Austin TX"},
		{
			"structured full",
			Record{"address": map[string]any{
				"streetAddress": "1 Main St", "suite": "Ste 200",
				"addressLocality": "Austin", "addressRegion": "TX", "postalCode": "78701",
			}},
			"1 Main St Ste 200 Austin, TX 78701",
		},
		{
			"structured city and state only",
			Record{"address": map[string]any{"city": "Springfield", "state": "IL"}},
			"Springfield, IL",
		},
		{
			"structured state only",
			Record{"address": map[string]any{"state": "IL", "zip": 62701}},
			"IL 62701",
		},
		{
			"flat components",
			Record{"address_street": "9 Elm", "address_city": "Reno", "zip": "89501"},
			"9 Elm Reno 89501",
		},
		{"nothing", Record{"name": "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.rec))
		})
	}
}

func TestHours(t *testing.T) {
	assert.Equal(t, "Mon-Fri 9-5", Hours(Record{"openingHours": "Mon-Fri 9-5"}))

	r := Record{"openingHoursSpecification": []any{
		map[string]any{"dayOfWeek": "https://schema.org/Monday", "opens": "09:00", "closes": "17:00"},
		map[string]any{"dayOfWeek": []any{"Saturday", "Sunday"}, "opens": "10:00"},
		map[string]any{"day": "Holiday"},
		"junk",
	}}
	assert.Equal(t, "Monday: 09:00 – 17:00; Saturday: 10:00 – —", Hours(r))

	assert.Equal(t, "", Hours(Record{}))
}

func TestMapEmbedURL(t *testing.T) {
	addr := "1 Main St Austin, TX"

	assert.Equal(t,
		"https://www.google.com/maps?q=30.2672,-97.7431&z=15&output=embed",
		MapEmbedURL(Record{"latitude": 30.2672, "longitude": -97.7431, "map": "https://x"}, addr))

	assert.Equal(t,
		"https://www.google.com/maps?q=30,-97&z=15&output=embed",
		MapEmbedURL(Record{"geo": map[string]any{"latitude": 30, "longitude": -97}}, addr))

	assert.Equal(t, "https://maps.example/embed",
		MapEmbedURL(Record{"latitude": "30.1", "longitude": "-97", "map_embed_url": "https://maps.example/embed"}, addr))

	assert.Equal(t, "https://maps.example/link",
		MapEmbedURL(Record{"maps_url": "https://maps.example/link"}, addr))

	assert.Equal(t,
		"https://www.google.com/maps?q=1+Main+St+Austin%2C+TX&output=embed",
		MapEmbedURL(Record{}, addr))

	assert.Equal(t, "", MapEmbedURL(Record{}, ""))
}
