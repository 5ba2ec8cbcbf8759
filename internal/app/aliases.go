package app

import (
	"strconv"
	"strings"
)

/********** alias registries (single source of truth) **********/

// Candidate keys per logical field, in priority order. Dots walk nested objects.
// New spellings the engine starts producing only need a new entry here.

var documentAliases = map[string][]string{
	"title":   {"name", "title", "trip_name", "itinerary_name", "itinerary.name", "itinerary.title"},
	"hotel":   {"hotel", "hotel_info", "accommodation", "lodging", "itinerary.hotel", "itinerary.hotel_info"},
	"days":    {"day_plans", "itinerary", "itinerary.day_plans", "itinerary.days", "days", "plan"},
	"content": {"content", "text", "details", "itinerary.content"},
}

var dayAliases = map[string][]string{
	"label":       {"date", "day", "label", "title"},
	"activities":  {"activities", "events", "schedule"},
	"restaurants": {"restaurants", "dining", "meals"},
	"flight":      {"flight", "flight_info", "flight_information"},
}

var activityAliases = map[string][]string{
	"name":        {"name", "title", "activity"},
	"location":    {"location", "address", "place"},
	"description": {"description", "details", "summary"},
	"cuisine":     {"cousine", "cuisine"},
	"suitability": {"why_its_suitable", "why_it_is_suitable", "suitability", "why_suitable"},
	"rating":      {"rating", "score", "stars"},
	"reviews":     {"reviews", "review_snippets", "testimonials"},
}

// wrapperKeys may hold the whole document one level down.
var wrapperKeys = []string{"data", "result", "output", "response"}

// object parts used when a scalar field arrives as an object (hotel, flight)
var compositeParts = []string{
	"name", "hotel_name", "airline", "flight_number", "number",
	"address", "location", "neighborhood", "departure", "arrival", "time", "description",
}

// list items that arrive as objects
var itemTextKeys = []string{"text", "review", "comment", "content", "name", "title", "description"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// scalarText renders strings, numbers and booleans; anything else is not a scalar.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// composeObject joins the known descriptive parts of an object, e.g. {name, address}.
func composeObject(m map[string]any) string {
	parts := make([]string, 0, 4)
	for _, k := range compositeParts {
		if s, ok := scalarText(m[k]); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// firstText resolves a scalar field: the first alias holding a scalar (or a describable object) wins.
// An empty winning value means absent; later aliases are not consulted.
func firstText(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case nil:
			continue
		case map[string]any:
			return ptrStr(composeObject(v))
		case []any:
			continue
		default:
			s, ok := scalarText(v)
			if !ok {
				continue
			}
			return ptrStr(s)
		}
	}
	return nil
}

// firstList resolves a sequence field: the first alias holding an array wins.
func firstList(m map[string]any, aliases map[string][]string, key string) ([]any, bool) {
	for _, p := range aliases[key] {
		if raw, ok := lookupAny(m, p).([]any); ok {
			return raw, true
		}
	}
	return nil, false
}

// firstStrings resolves a list of display strings; items may be strings, numbers or objects.
// A lone string is accepted as a one-item list. Missing lists decode to an empty slice.
func firstStrings(m map[string]any, aliases map[string][]string, key string) []string {
	out := []string{}
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case []any:
			for _, it := range v {
				if s := itemText(it); s != "" {
					out = append(out, s)
				}
			}
			return out
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
			return out
		}
	}
	return out
}

func itemText(it any) string {
	if obj, ok := it.(map[string]any); ok {
		for _, k := range itemTextKeys {
			if s, ok := scalarText(obj[k]); ok && s != "" {
				return s
			}
		}
		return ""
	}
	s, _ := scalarText(it)
	return s
}

// knownTopLevel lists first path segments of the given registry.
func knownTopLevel(aliases map[string][]string) map[string]struct{} {
	set := make(map[string]struct{}, 16)
	for _, paths := range aliases {
		for _, path := range paths {
			top := path
			if i := strings.IndexByte(top, '.'); i >= 0 {
				top = top[:i]
			}
			set[top] = struct{}{}
		}
	}
	return set
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
