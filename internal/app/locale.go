package app

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"trip_surprise/internal/domain"
)

// SubdivisionPlaceholder is the free-text default for countries without a configured list.
const SubdivisionPlaceholder = "State/Province"

// LocaleResolver answers subdivision questions against a loaded LocaleConfig. It is read-only after construction.
type LocaleResolver struct {
	cfg    domain.LocaleConfig
	states map[string][]string // keyed by countryKey
	upper  cases.Caser
}

func NewLocaleResolver(cfg domain.LocaleConfig) *LocaleResolver {
	r := &LocaleResolver{cfg: cfg, states: make(map[string][]string, len(cfg.States)), upper: cases.Upper(language.Und)}
	for k, list := range cfg.States {
		if len(list) == 0 {
			continue
		}
		r.states[r.countryKey(k)] = list
	}
	return r
}

func (r *LocaleResolver) countryKey(country string) string {
	return r.upper.String(strings.TrimSpace(country))
}

// Countries returns the configured country list in order.
func (r *LocaleResolver) Countries() []string { return r.cfg.Countries }

// DefaultCountry is the configured default for the side when it is a listed country, else the first country.
func (r *LocaleResolver) DefaultCountry(side domain.Side) string {
	def := r.cfg.Defaults.OriginCountry
	if side == domain.Destination {
		def = r.cfg.Defaults.DestinationCountry
	}
	if lo.Contains(r.cfg.Countries, def) || len(r.cfg.Countries) == 0 {
		return def
	}
	return r.cfg.Countries[0]
}

// Subdivisions describes the subdivision widget for country on the given side.
// A configured default that is not in the country's list is ignored in favour of the first entry.
func (r *LocaleResolver) Subdivisions(side domain.Side, country string) domain.SubdivisionChoice {
	prefix := sideLabel(side)
	list, ok := r.states[r.countryKey(country)]
	if !ok {
		return domain.SubdivisionChoice{
			Label:    prefix + " State/Province",
			Default:  SubdivisionPlaceholder,
			FreeText: true,
		}
	}

	label := prefix + " State"
	if r.countryKey(country) == "CANADA" {
		label = prefix + " Province"
	}

	def := list[0]
	if want, found := r.configuredDefault(side, country); found && lo.Contains(list, want) {
		def = want
	}
	return domain.SubdivisionChoice{Label: label, Options: list, Default: def}
}

func (r *LocaleResolver) configuredDefault(side domain.Side, country string) (string, bool) {
	table := r.cfg.Defaults.OriginState
	if side == domain.Destination {
		table = r.cfg.Defaults.DestinationState
	}
	if v, ok := table[country]; ok {
		return v, true
	}
	key := r.countryKey(country)
	for k, v := range table {
		if r.countryKey(k) == key {
			return v, true
		}
	}
	return "", false
}

// Resolve builds the LocationSpec for one side of the form.
// For listed countries an off-list or empty subdivision becomes the widget default;
// for free-text countries an empty subdivision becomes the placeholder.
func (r *LocaleResolver) Resolve(side domain.Side, country, subdivision, city string) domain.LocationSpec {
	country = strings.TrimSpace(country)
	if country == "" {
		country = r.DefaultCountry(side)
	}
	choice := r.Subdivisions(side, country)
	sub := strings.TrimSpace(subdivision)
	switch {
	case choice.FreeText && sub == "":
		sub = choice.Default
	case !choice.FreeText && !lo.Contains(choice.Options, sub):
		sub = choice.Default
	}
	return domain.LocationSpec{Country: country, Subdivision: sub, City: city}
}

func sideLabel(side domain.Side) string {
	if side == domain.Destination {
		return "Destination"
	}
	return "Origin"
}
