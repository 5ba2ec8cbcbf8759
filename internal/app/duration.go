package app

import "strings"

// CustomDuration is the sentinel choice that enables the free-text override.
const CustomDuration = "Custom..."

// DurationOptions are the canonical choices offered by the form, in display order.
var DurationOptions = []string{"3 days", "5 days", "7 days", "10 days", "14 days", "21 days", "30 days", CustomDuration}

// DefaultDuration is preselected on the form.
const DefaultDuration = "14 days"

// NormalizeDuration reduces a duration choice plus optional custom text to the string sent to the engine.
// A non-empty trimmed custom text replaces the sentinel. An empty one leaves the sentinel itself in place;
// consumers must cope with that non-numeric value.
func NormalizeDuration(choice, custom string) string {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return DefaultDuration
	}
	if choice != CustomDuration {
		return choice
	}
	if c := strings.TrimSpace(custom); c != "" {
		return c
	}
	return choice
}
