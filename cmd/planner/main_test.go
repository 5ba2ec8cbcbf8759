package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_surprise/internal/adapters/localeyaml"
	"trip_surprise/internal/app"
	"trip_surprise/internal/domain"
)

func TestReadForms_OverlaysDefaults(t *testing.T) {
	cfg, err := localeyaml.Load("")
	require.NoError(t, err)
	locales := app.NewLocaleResolver(cfg)

	path := filepath.Join(t.TempDir(), "trips.yaml")
	doc := `trips:
  - destination_country: Canada
    destination_city: Montreal
    age: 45
    trip_duration: "7 days"
  - departure_date: 2024-12-20T00:00:00Z
    trip_goals_and_plans: ski
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	now := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
	forms, err := readForms(path, locales, now)
	require.NoError(t, err)
	require.Len(t, forms, 2)

	assert.Equal(t, "Montreal", forms[0].DestinationCity)
	assert.Equal(t, 45, forms[0].Age)
	assert.Equal(t, "São Paulo", forms[0].OriginCity, "unset fields keep the defaults")
	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC), forms[0].DepartureDate)

	assert.Equal(t, time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC), forms[1].DepartureDate)
	assert.Equal(t, "ski", forms[1].GoalsText)
	assert.Equal(t, app.DefaultDuration, forms[1].DurationChoice)
}

func TestReadForms_Errors(t *testing.T) {
	locales := app.NewLocaleResolver(mustLocales(t))

	_, err := readForms(filepath.Join(t.TempDir(), "missing.yaml"), locales, time.Now())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trips:\n  - age: old\n"), 0o600))
	_, err = readForms(path, locales, time.Now())
	assert.ErrorContains(t, err, "trip 1")
}

func mustLocales(t *testing.T) domain.LocaleConfig {
	t.Helper()
	c, err := localeyaml.Load("")
	require.NoError(t, err)
	return c
}
