// Package storage persists sweep runs as per-run directories with JSON
// metadata and a CSV error curve.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kasakh/quadlab/internal/experiment"
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
	ID        string    `json:"id"`
	Integrand string    `json:"integrand"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
	Dim       int       `json:"dim"`
	Trials    int       `json:"trials"`
	Seed      int64     `json:"seed"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
	TrueValue float64   `json:"true_value"`
	FitOrder  float64   `json:"fit_order"`
	FitR2     float64   `json:"fit_r2"`
}

// Curve is the persisted error curve of one sweep.
type Curve struct {
	Ns        []int     `json:"ns"`
	Samples   []int     `json:"samples"`
	Estimates []float64 `json:"estimates"`
	Errors    []float64 `json:"errors"`
}

// Save writes metadata.json and errors.csv under a fresh run directory
// and returns the run id.
func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", meta.Integrand, meta.Method, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.TrueValue = result.TrueValue

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

	csvFile, err := os.Create(filepath.Join(runDir, "errors.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"n", "samples", "estimate", "abs_error"}); err != nil {
		return "", err
	}

	for i := range result.Ns {
		row := []string{
			strconv.Itoa(result.Ns[i]),
			strconv.Itoa(result.Samples[i]),
			strconv.FormatFloat(result.Estimates[i], 'g', -1, 64),
			strconv.FormatFloat(result.Errors[i], 'g', -1, 64),
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

func (s *Store) LoadCurve(runID string) (*Curve, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "errors.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	curve := &Curve{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		n, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		samples, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		estimate, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		absErr, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}

		curve.Ns = append(curve.Ns, n)
		curve.Samples = append(curve.Samples, samples)
		curve.Estimates = append(curve.Estimates, estimate)
		curve.Errors = append(curve.Errors, absErr)
	}

	return curve, nil
}

// ExportJSON writes a run's metadata and curve as one JSON document.
func (s *Store) ExportJSON(runID string, out *json.Encoder) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	curve, err := s.LoadCurve(runID)
	if err != nil {
		return err
	}

	doc := struct {
		Meta  *RunMetadata `json:"meta"`
		Curve *Curve       `json:"curve"`
	}{meta, curve}

	return out.Encode(doc)
}
