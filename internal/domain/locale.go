package domain

import "fmt"

// LocationSpec is one end of a trip as entered on the form.
type LocationSpec struct {
	Country     string
	Subdivision string
	City        string
}

// String formats the location the way the planning engine expects it: "{city}, {subdivision}, {country}".
func (l LocationSpec) String() string {
	return fmt.Sprintf("%s, %s, %s", l.City, l.Subdivision, l.Country)
}

// Side tells which end of the trip a form field belongs to.
type Side string

const (
	Origin      Side = "origin"
	Destination Side = "destination"
)

// LocaleConfig mirrors countries.yaml. States is keyed by upper-cased country name.
type LocaleConfig struct {
	Countries []string            `yaml:"countries" json:"countries"`
	States    map[string][]string `yaml:"states" json:"states"`
	Defaults  LocaleDefaults      `yaml:"defaults" json:"defaults"`
}

type LocaleDefaults struct {
	OriginCountry      string            `yaml:"origin_country" json:"origin_country"`
	DestinationCountry string            `yaml:"destination_country" json:"destination_country"`
	OriginState        map[string]string `yaml:"origin_state" json:"origin_state"`
	DestinationState   map[string]string `yaml:"destination_state" json:"destination_state"`
}

// SubdivisionChoice describes the subdivision widget for a country.
// FreeText choices have no Options and Default is a placeholder.
type SubdivisionChoice struct {
	Label    string   `json:"label"`
	Options  []string `json:"options,omitempty"`
	Default  string   `json:"default"`
	FreeText bool     `json:"free_text"`
}
