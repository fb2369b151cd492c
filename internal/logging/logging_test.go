package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
)

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	level.Info(logger).Log("msg", "hidden")
	level.Warn(logger).Log("msg", "shown", "field", "lorenz")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line passed warn filter: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "field=lorenz") {
		t.Errorf("missing warn line: %q", out)
	}
}

func TestUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
