// Package storage persists recorded runs as a directory of
// metadata.json + frames.csv, one subdirectory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/LucasVChaves/cloth-sim/internal/config"
	"github.com/LucasVChaves/cloth-sim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata and per-frame metric series and returns
// the generated run ID.
func (s *Store) Save(cfg *config.Config, dt float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("cloth_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Config:    *cfg,
		Dt:        dt,
		Frames:    result.Frames,
		Metrics:   result.Final,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, name := range names {
			series := result.Series[name]
			if i < len(series) {
				row = append(row, strconv.FormatFloat(series[i], 'f', 6, 64))
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads back a run's frame times and named metric series.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, map[string][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(header)-1)
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for j, name := range header[1:] {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				val = 0
			}
			series[name] = append(series[name], val)
		}
	}

	return times, series, nil
}
