package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		var buf bytes.Buffer
		if err := Init(level, &buf); err != nil {
			t.Errorf("Init(%q) failed: %s", level, err)
		}
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("loud", &buf); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := Init("info", &buf); err != nil {
		t.Fatal(err)
	}
	Get().Debug("hidden")
	Get().Info("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("info line missing: %q", out)
	}
}
