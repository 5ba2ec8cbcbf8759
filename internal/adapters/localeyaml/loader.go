// Package localeyaml loads the country and subdivision lists that drive the trip form.
package localeyaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"trip_surprise/internal/domain"
)

//go:embed countries.yaml
var builtin []byte

var ErrNoCountries = errors.New("locale config lists no countries")

// Load reads the locale config at path, or the built-in one when path is empty.
func Load(path string) (domain.LocaleConfig, error) {
	if path == "" {
		return Parse(builtin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.LocaleConfig{}, fmt.Errorf("read locales %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return domain.LocaleConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Str("path", path).Int("countries", len(cfg.Countries)).Msg("locales loaded")
	return cfg, nil
}

// Parse decodes a countries document. Unknown top-level keys are rejected.
func Parse(b []byte) (domain.LocaleConfig, error) {
	var cfg domain.LocaleConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return domain.LocaleConfig{}, fmt.Errorf("parse locales: %w", err)
	}
	if len(cfg.Countries) == 0 {
		return domain.LocaleConfig{}, ErrNoCountries
	}
	for k, list := range cfg.States {
		if len(list) == 0 {
			log.Warn().Str("country", k).Msg("empty subdivision list; country will use free text")
		}
	}
	return cfg, nil
}
