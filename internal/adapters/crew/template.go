package crew

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
)

var placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)

// interpolate replaces each {key} in s with inputs[key]. Every referenced key must be present.
func interpolate(s string, inputs map[string]any) (string, error) {
	var missing []string
	out := placeholder.ReplaceAllStringFunc(s, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := inputs[key]
		if !ok {
			missing = append(missing, key)
			return m
		}
		return fmt.Sprint(v)
	})
	if len(missing) > 0 {
		missing = lo.Uniq(missing)
		sort.Strings(missing)
		return "", fmt.Errorf("missing template inputs: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

func renderTask(t Task, inputs map[string]any) (Task, error) {
	var err error
	if t.Description, err = interpolate(t.Description, inputs); err != nil {
		return t, fmt.Errorf("task %s: %w", t.Name, err)
	}
	if t.ExpectedOutput, err = interpolate(t.ExpectedOutput, inputs); err != nil {
		return t, fmt.Errorf("task %s: %w", t.Name, err)
	}
	if t.SearchHint, err = interpolate(t.SearchHint, inputs); err != nil {
		return t, fmt.Errorf("task %s: %w", t.Name, err)
	}
	return t, nil
}
