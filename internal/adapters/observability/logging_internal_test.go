package observability

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "warn")

	l.Info().Msg("dropped")
	l.Warn().Str("submission", "abc").Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"submission":"abc"`) || !strings.Contains(out, `"service":"trip-surprise"`) {
		t.Fatalf("unexpected JSON log: %s", out)
	}
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "nonsense")
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
