package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"trip_surprise/internal/domain"
)

// DecodeResult turns the engine's raw text into an ItineraryDocument.
// It fails only when no JSON value can be recovered from the text; missing fields are never an error.
func DecodeResult(raw string) (*domain.ItineraryDocument, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResultMalformed, err)
	}

	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResultMalformed, err)
	}

	compact := new(bytes.Buffer)
	if err := json.Compact(compact, payload); err != nil {
		compact.Reset()
		compact.Write(payload)
	}
	doc := &domain.ItineraryDocument{Days: []domain.DayPlan{}, RawJSON: compact.Bytes()}

	switch root := v.(type) {
	case map[string]any:
		decodeDocument(doc, unwrap(root))
	case []any:
		// a bare list of day plans
		doc.Days = decodeDays(root)
	case string:
		doc.Content = ptrStr(strings.TrimSpace(root))
	default:
		return nil, fmt.Errorf("%w: unexpected top-level %T", domain.ErrResultMalformed, v)
	}

	log.Debug().
		Bool("title", doc.Title != nil).
		Bool("hotel", doc.Hotel != nil).
		Int("days", len(doc.Days)).
		Msg("result decoded")
	return doc, nil
}

func decodeDocument(doc *domain.ItineraryDocument, m map[string]any) {
	doc.Title = firstText(m, documentAliases, "title")
	doc.Hotel = firstText(m, documentAliases, "hotel")
	doc.Content = firstText(m, documentAliases, "content")
	if days, ok := firstList(m, documentAliases, "days"); ok {
		doc.Days = decodeDays(days)
	}
}

// unwrap descends into {"data": {...}}-style envelopes that hide every known key.
func unwrap(m map[string]any) map[string]any {
	known := knownTopLevel(documentAliases)
	for depth := 0; depth < 3; depth++ {
		for k := range m {
			if _, ok := known[k]; ok {
				return m
			}
		}
		next, found := map[string]any(nil), false
		for _, w := range wrapperKeys {
			if inner, ok := m[w].(map[string]any); ok {
				next, found = inner, true
				break
			}
		}
		if !found {
			return m
		}
		m = next
	}
	return m
}

func decodeDays(in []any) []domain.DayPlan {
	out := make([]domain.DayPlan, 0, len(in))
	for _, it := range in {
		d, ok := it.(map[string]any)
		if !ok {
			// a day given as plain text keeps its slot as a label-only day
			if s := itemText(it); s != "" {
				out = append(out, domain.DayPlan{Label: &s, Activities: []domain.Activity{}, Restaurants: []string{}})
			}
			continue
		}
		out = append(out, domain.DayPlan{
			Label:       firstText(d, dayAliases, "label"),
			Activities:  decodeActivities(d),
			Restaurants: firstStrings(d, dayAliases, "restaurants"),
			Flight:      firstText(d, dayAliases, "flight"),
		})
	}
	return out
}

func decodeActivities(day map[string]any) []domain.Activity {
	raw, _ := firstList(day, dayAliases, "activities")
	out := make([]domain.Activity, 0, len(raw))
	for _, it := range raw {
		a, ok := it.(map[string]any)
		if !ok {
			if s := itemText(it); s != "" {
				out = append(out, domain.Activity{Name: &s, Reviews: []string{}})
			}
			continue
		}
		out = append(out, domain.Activity{
			Name:            firstText(a, activityAliases, "name"),
			Location:        firstText(a, activityAliases, "location"),
			Description:     firstText(a, activityAliases, "description"),
			Cuisine:         firstText(a, activityAliases, "cuisine"),
			SuitabilityNote: firstText(a, activityAliases, "suitability"),
			Rating:          firstText(a, activityAliases, "rating"),
			Reviews:         firstStrings(a, activityAliases, "reviews"),
		})
	}
	return out
}

/********** JSON recovery **********/

// codeBlockPattern matches markdown code blocks with an optional language tag.
var codeBlockPattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// extractJSON returns the JSON value in s: the text itself if it parses,
// else a json/untagged fenced block, else the first balanced {...}, else the first balanced [...].
func extractJSON(s string) ([]byte, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("empty result")
	}
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	for _, m := range codeBlockPattern.FindAllStringSubmatch(trimmed, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		body := strings.TrimSpace(m[2])
		if json.Valid([]byte(body)) {
			return []byte(body), nil
		}
	}

	// objects first: prose often carries stray brackets like "[1]"
	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexByte(trimmed, pair[0])
		if start < 0 {
			continue
		}
		if candidate := matchBracket(trimmed[start:], pair[1]); candidate != "" && json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}
	return nil, fmt.Errorf("no valid JSON value found")
}

// matchBracket returns the prefix of s up to the bracket closing s[0], skipping string literals.
func matchBracket(s string, closeChar byte) string {
	open := s[0]
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == closeChar:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
