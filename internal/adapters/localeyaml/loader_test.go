package localeyaml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Builtin(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Brazil", cfg.Defaults.OriginCountry)
	assert.Equal(t, "USA", cfg.Defaults.DestinationCountry)
	assert.Contains(t, cfg.States["BRAZIL"], "São Paulo")
	assert.Contains(t, cfg.States["USA"], "New York")
	assert.Len(t, cfg.States["CANADA"], 13)
	assert.Contains(t, cfg.Countries, "Portugal")
	assert.NotContains(t, cfg.States, "PORTUGAL")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	doc := "countries: [Brazil, Peru]\nstates:\n  BRAZIL: [Bahia]\ndefaults:\n  origin_country: Peru\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil", "Peru"}, cfg.Countries)
	assert.Equal(t, "Peru", cfg.Defaults.OriginCountry)
	assert.Empty(t, cfg.Defaults.DestinationCountry)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("states: {}\n"))
	assert.ErrorIs(t, err, ErrNoCountries)

	_, err = Parse([]byte("countries: [Brazil]\nregions: {}\n"))
	assert.Error(t, err, "unknown keys are rejected")
}
