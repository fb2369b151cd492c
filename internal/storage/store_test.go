package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vladimirovertheworld/attractors/internal/experiment"
)

func runLorenz(t *testing.T, samples int) *experiment.Result {
	t.Helper()
	cfg := experiment.DefaultConfig("lorenz")
	cfg.Samples = samples
	cfg.TMax = float64(samples) * 0.01
	res, err := experiment.New(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := runLorenz(t, 50)
	runID, err := st.Save("", res, map[string]float64{"boundedness": 1})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "lorenz_") {
		t.Errorf("run id = %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Field != "lorenz" || meta.Samples != 50 || meta.Params["rho"] != 28 {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Metrics["boundedness"] != 1 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 50 || len(times) != 50 {
		t.Fatalf("got %d states, %d times", len(states), len(times))
	}
	for i := range states {
		if states[i] != res.States[i] {
			t.Fatalf("state %d = %v, want %v", i, states[i], res.States[i])
		}
	}
}

func TestStoreNamedRunCollision(t *testing.T) {
	st := New(t.TempDir())
	res := runLorenz(t, 5)
	if _, err := st.Save("baseline", res, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("baseline", res, nil); !errors.Is(err, ErrRunExists) {
		t.Errorf("err = %v, want ErrRunExists", err)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if runs, err := st.List(); err != nil || len(runs) != 0 {
		t.Fatalf("empty list = %v, %v", runs, err)
	}

	res := runLorenz(t, 5)
	for _, name := range []string{"a", "b"} {
		if _, err := st.Save(name, res, nil); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}

	if err := st.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if runs, _ := st.List(); len(runs) != 1 {
		t.Errorf("expected 1 run after delete, got %d", len(runs))
	}
	if err := st.Delete("missing"); err == nil {
		t.Error("deleting a missing run succeeded")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	res := runLorenz(t, 10)
	runID, _ := st.Save("export", res, nil)

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Field != "lorenz" || len(data.States) != 10 || len(data.Times) != 10 {
		t.Errorf("export = %+v", data.RunMetadata)
	}
	if data.States[0] != [3]float64{1, 1, 1} {
		t.Errorf("first state = %v", data.States[0])
	}
}

func TestExportCSV(t *testing.T) {
	st := New(t.TempDir())
	runID, _ := st.Save("csv", runLorenz(t, 3), nil)

	var buf bytes.Buffer
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 || lines[0] != "time,x,y,z" || lines[1] != "0,1,1,1" {
		t.Errorf("csv = %q", buf.String())
	}
}
