package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/export"
)

func TestPhasePortraitBins(t *testing.T) {
	states := []dynamo.State{{-1, 0, -1}, {1, 0, 1}, {1, 5, 1}, {math.NaN(), 0, 0}}
	p := NewPhasePortrait(states, export.XZ, 10, 5)
	if p == nil {
		t.Fatal("nil portrait")
	}
	total := 0
	for _, row := range p.Counts {
		for _, n := range row {
			total += n
		}
	}
	if total != 3 {
		t.Errorf("binned %d states, want 3", total)
	}
	if p.Max != 2 {
		t.Errorf("max = %d, want 2 (two states share a cell)", p.Max)
	}

	out := p.String()
	if got := strings.Count(out, "\n"); got != 5 {
		t.Errorf("rows = %d", got)
	}
	if !strings.ContainsRune(out, '@') || !strings.ContainsRune(out, '.') {
		t.Errorf("density ramp missing:\n%s", out)
	}
	if !strings.ContainsRune(out, '│') || !strings.ContainsRune(out, '─') {
		t.Errorf("axes missing:\n%s", out)
	}
}

func TestPhasePortraitEmpty(t *testing.T) {
	if NewPhasePortrait(nil, export.XY, 10, 5) != nil {
		t.Error("empty input gave a portrait")
	}
	if NewPhasePortrait([]dynamo.State{{1, 2, 3}}, export.XY, 0, 5) != nil {
		t.Error("zero width gave a portrait")
	}
	var p *PhasePortrait2D
	if p.String() != "" {
		t.Error("nil portrait rendered")
	}
}
