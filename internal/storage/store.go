// Package storage persists solved game runs.
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

	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/experiment"
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
	ID         string             `json:"id"`
	Game       string             `json:"game"`
	Timestamp  time.Time          `json:"timestamp"`
	Horizon    int                `json:"horizon"`
	Dt         float64            `json:"dt"`
	NumPlayers int                `json:"num_players"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json, states.csv, and one
// controls_p<i>.csv per player. It returns the run ID.
func (s *Store) Save(game string, horizon int, dt float64, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", game, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Game:       game,
		Timestamp:  time.Now(),
		Horizon:    horizon,
		Dt:         dt,
		NumPlayers: len(result.Controls),
		Metrics:    result.Metrics,
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

	if err := writeVectorCSV(filepath.Join(runDir, "states.csv"), dt, vecRows(result.States)); err != nil {
		return "", err
	}
	for i, ctrl := range result.Controls {
		path := filepath.Join(runDir, fmt.Sprintf("controls_p%d.csv", i))
		if err := writeVectorCSV(path, dt, vecRows(ctrl)); err != nil {
			return "", err
		}
	}

	return runID, nil
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
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip partial or foreign directories
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

// LoadStates reads a run's state trajectory: one row per step, the leading
// time column stripped.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	return readVectorCSV(filepath.Join(s.baseDir, runID, "states.csv"))
}

// LoadControls reads one player's control trajectory.
func (s *Store) LoadControls(runID string, player int) ([][]float64, []float64, error) {
	return readVectorCSV(filepath.Join(s.baseDir, runID, fmt.Sprintf("controls_p%d.csv", player)))
}

func vecRows(vecs []*mat.VecDense) [][]float64 {
	rows := make([][]float64, len(vecs))
	for k, v := range vecs {
		row := make([]float64, v.Len())
		for d := range row {
			row[d] = v.AtVec(d)
		}
		rows[k] = row
	}
	return rows
}

func writeVectorCSV(path string, dt float64, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for k, row := range rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.FormatFloat(float64(k)*dt, 'g', -1, 64))
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func readVectorCSV(path string) ([][]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]float64, len(records))
	times := make([]float64, len(records))
	for k, record := range records {
		times[k], err = strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}
		row := make([]float64, len(record)-1)
		for d, field := range record[1:] {
			row[d], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, err
			}
		}
		rows[k] = row
	}
	return rows, times, nil
}
