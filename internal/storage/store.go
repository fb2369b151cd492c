// Package storage persists batch runs as a metadata.json and a states.csv
// per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
)

// ErrRunExists is returned when saving under a name already on disk.
var ErrRunExists = errors.New("storage: run already exists")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Field     string             `json:"field"`
	Timestamp time.Time          `json:"timestamp"`
	Params    map[string]float64 `json:"params"`
	Initial   [3]float64         `json:"initial"`
	Dt        float64            `json:"dt"`
	T0        float64            `json:"t0"`
	TMax      float64            `json:"t_max"`
	Samples   int                `json:"samples"`
	Diverged  int                `json:"diverged"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes a run under name, or under field_<unix nanos> when name is
// empty, and returns the run ID.
func (s *Store) Save(name string, res *experiment.Result, metrics map[string]float64) (string, error) {
	runID := name
	if runID == "" {
		runID = fmt.Sprintf("%s_%d", res.Field, time.Now().UnixNano())
	}
	runDir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(runDir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrRunExists, runID)
	}
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	var t0, tMax float64
	if n := len(res.Times); n > 0 {
		t0 = res.Times[0]
		tMax = t0 + float64(n)*res.Dt
	}
	meta := RunMetadata{
		ID:        runID,
		Field:     res.Field,
		Timestamp: time.Now(),
		Params:    res.Params,
		Initial:   res.Initial,
		Dt:        res.Dt,
		T0:        t0,
		TMax:      tMax,
		Samples:   len(res.States),
		Diverged:  res.Diverged,
		Metrics:   metrics,
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteCSV(f, res.Times, res.States); err != nil {
		return "", err
	}
	return runID, f.Close()
}

// WriteCSV writes a time,x,y,z table.
func WriteCSV(w io.Writer, times []float64, states []dynamo.State) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "x", "y", "z"}); err != nil {
		return err
	}
	for i, st := range states {
		t := 0.0
		if i < len(times) {
			t = times[i]
		}
		row := []string{formatFloat(t), formatFloat(st[0]), formatFloat(st[1]), formatFloat(st[2])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads back the sampled trajectory of a run. Rows that do not
// parse are skipped.
func (s *Store) LoadStates(runID string) ([]dynamo.State, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []dynamo.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]dynamo.State, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var vals [4]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		times = append(times, vals[0])
		states = append(states, dynamo.State{vals[1], vals[2], vals[3]})
	}
	return states, times, nil
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	dir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(dir, "metadata.json")); err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

type ExportData struct {
	RunMetadata
	Times  []float64    `json:"times"`
	States [][3]float64 `json:"states"`
}

// ExportJSON writes metadata and states of a run as one JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	data := ExportData{RunMetadata: *meta, Times: times, States: make([][3]float64, len(states))}
	for i, st := range states {
		data.States[i] = st
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies the states table of a run to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}
