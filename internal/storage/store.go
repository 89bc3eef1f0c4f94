// Package storage persists training runs: configuration, loss history,
// trained weights and the evaluation grid, one directory per run.
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

	"github.com/lvb5/solve-PDEs-with-PINN/internal/config"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/nn"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/train"
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
	Elapsed   float64            `json:"elapsed_seconds"`
	Config    *config.Config     `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one completed run and returns its ID.
func (s *Store) Save(cfg *config.Config, history []float64, netA, netB *nn.Network, ev *train.Evaluation, elapsed time.Duration) (string, error) {
	runID := fmt.Sprintf("pinn_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Elapsed:   elapsed.Seconds(),
		Config:    cfg,
		Metrics:   ev.Metrics(),
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	if err := writeHistory(filepath.Join(runDir, "history.csv"), history); err != nil {
		return "", err
	}
	if err := netA.Save(filepath.Join(runDir, "weights_A.json")); err != nil {
		return "", err
	}
	if err := netB.Save(filepath.Join(runDir, "weights_B.json")); err != nil {
		return "", err
	}
	if err := writeGrid(filepath.Join(runDir, "eval_grid.csv"), ev); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadHistory(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var history []float64
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad loss value at row %d: %w", i, err)
		}
		history = append(history, v)
	}
	return history, nil
}

func (s *Store) LoadNetworks(runID string) (*nn.Network, *nn.Network, error) {
	runDir := filepath.Join(s.baseDir, runID)
	netA, err := nn.Load(filepath.Join(runDir, "weights_A.json"))
	if err != nil {
		return nil, nil, err
	}
	netB, err := nn.Load(filepath.Join(runDir, "weights_B.json"))
	if err != nil {
		return nil, nil, err
	}
	return netA, netB, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHistory(path string, history []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"iteration", "loss"}); err != nil {
		return err
	}
	for i, l := range history {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(l, 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeGrid(path string, ev *train.Evaluation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"r", "A_pred", "A_analytic", "B_pred", "B_analytic"}); err != nil {
		return err
	}
	for i := range ev.R {
		row := []string{
			strconv.FormatFloat(ev.R[i], 'f', 6, 64),
			strconv.FormatFloat(ev.PredA[i], 'g', 17, 64),
			strconv.FormatFloat(ev.AnaA[i], 'g', 17, 64),
			strconv.FormatFloat(ev.PredB[i], 'g', 17, 64),
			strconv.FormatFloat(ev.AnaB[i], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
