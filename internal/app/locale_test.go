package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_surprise/internal/app"
	"trip_surprise/internal/domain"
)

func testLocales() domain.LocaleConfig {
	return domain.LocaleConfig{
		Countries: []string{"Brazil", "USA", "Canada", "Portugal"},
		States: map[string][]string{
			"BRAZIL": {"Acre", "Bahia", "São Paulo"},
			"USA":    {"California", "New York", "Texas"},
			"CANADA": {"Ontario", "Quebec"},
		},
		Defaults: domain.LocaleDefaults{
			OriginCountry:      "Brazil",
			DestinationCountry: "USA",
			OriginState:        map[string]string{"Brazil": "São Paulo", "Canada": "Yukon"},
			DestinationState:   map[string]string{"USA": "New York"},
		},
	}
}

func TestSubdivisions_DefaultIsAlwaysListed(t *testing.T) {
	cfg := testLocales()
	r := app.NewLocaleResolver(cfg)

	for key, list := range cfg.States {
		for _, side := range []domain.Side{domain.Origin, domain.Destination} {
			c := r.Subdivisions(side, key)
			assert.False(t, c.FreeText, key)
			assert.Contains(t, list, c.Default, "%s/%s", key, side)
		}
	}
}

func TestSubdivisions_ConfiguredDefaultWins(t *testing.T) {
	r := app.NewLocaleResolver(testLocales())

	c := r.Subdivisions(domain.Origin, "Brazil")
	assert.Equal(t, "São Paulo", c.Default)
	assert.Equal(t, "Origin State", c.Label)

	c = r.Subdivisions(domain.Destination, "usa")
	assert.Equal(t, "New York", c.Default, "country keys match case-insensitively")
}

func TestSubdivisions_OffListDefaultFallsBackToFirst(t *testing.T) {
	r := app.NewLocaleResolver(testLocales())

	c := r.Subdivisions(domain.Origin, "Canada")
	assert.Equal(t, "Ontario", c.Default, "Yukon is not configured for Canada")
	assert.Equal(t, "Origin Province", c.Label)
	assert.Equal(t, []string{"Ontario", "Quebec"}, c.Options)
}

func TestSubdivisions_UnlistedCountryIsFreeText(t *testing.T) {
	r := app.NewLocaleResolver(testLocales())

	for _, country := range []string{"Portugal", "Atlantis", ""} {
		c := r.Subdivisions(domain.Destination, country)
		assert.True(t, c.FreeText, country)
		assert.NotEmpty(t, c.Default)
		assert.Equal(t, app.SubdivisionPlaceholder, c.Default)
		assert.Empty(t, c.Options)
		assert.Equal(t, "Destination State/Province", c.Label)
	}
}

func TestResolve(t *testing.T) {
	r := app.NewLocaleResolver(testLocales())

	tests := []struct {
		name                 string
		side                 domain.Side
		country, sub, city   string
		wantCountry, wantSub string
	}{
		{"listed member kept", domain.Origin, "Brazil", "Bahia", "Salvador", "Brazil", "Bahia"},
		{"off-list member replaced", domain.Origin, "Brazil", "Texas", "Salvador", "Brazil", "São Paulo"},
		{"empty member defaulted", domain.Destination, "USA", "", "NYC", "USA", "New York"},
		{"free text kept", domain.Destination, "Portugal", "Lisboa", "Lisbon", "Portugal", "Lisboa"},
		{"free text blank gets placeholder", domain.Destination, "Portugal", "  ", "Lisbon", "Portugal", app.SubdivisionPlaceholder},
		{"blank country uses side default", domain.Destination, "", "", "Austin", "USA", "New York"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(tc.side, tc.country, tc.sub, tc.city)
			assert.Equal(t, tc.wantCountry, got.Country)
			assert.Equal(t, tc.wantSub, got.Subdivision)
			assert.Equal(t, tc.city, got.City)
		})
	}
}

func TestDefaultCountry(t *testing.T) {
	cfg := testLocales()
	r := app.NewLocaleResolver(cfg)
	require.Equal(t, "Brazil", r.DefaultCountry(domain.Origin))
	require.Equal(t, "USA", r.DefaultCountry(domain.Destination))

	cfg.Defaults.DestinationCountry = "Narnia"
	r = app.NewLocaleResolver(cfg)
	require.Equal(t, "Brazil", r.DefaultCountry(domain.Destination), "unlisted default falls back to the first country")
}
