package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/san-kum/globalkin/internal/dynamo"
	"github.com/san-kum/globalkin/internal/tecplot"
)

const (
	catalogFile    = "catalog.db"
	metadataFile   = "metadata.json"
	statesFile     = "states.csv"
	trajectoryFile = "trajectory.tec"
)

// Store keeps one directory per run under baseDir and indexes the runs in a
// SQLite catalog.
type Store struct {
	baseDir string
	db      *sql.DB
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	_, err := s.catalog()
	return err
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Network      string             `json:"network"`
	Timestamp    time.Time          `json:"timestamp"`
	Temperature  float64            `json:"temperature"`
	T0           float64            `json:"t0"`
	TEnd         float64            `json:"t_end"`
	Dt           float64            `json:"dt"`
	Guard        string             `json:"guard"`
	Integrator   string             `json:"integrator"`
	Steps        int                `json:"steps"`
	Degraded     bool               `json:"degraded"`
	DegradedStep int                `json:"degraded_step,omitempty"`
	Labels       []string           `json:"labels"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes the run directory and catalogs it. The ID, timestamp, step
// count, labels, metrics and degradation fields of meta are filled in from
// the trajectory.
func (s *Store) Save(meta RunMetadata, result *dynamo.Trajectory) (string, error) {
	db, err := s.catalog()
	if err != nil {
		return "", err
	}

	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Network, now.UnixNano())
	meta.Timestamp = now
	meta.Steps = result.Len()
	meta.Labels = result.Labels
	meta.Metrics = finiteMetrics(result.Metrics)
	if result.Degraded != nil {
		meta.Degraded = true
		meta.DegradedStep = result.Degraded.Step
	}

	payload, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), payload, 0644); err != nil {
		return "", err
	}

	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", fmt.Errorf("write states: %w", err)
	}

	if err := tecplot.WriteFile(filepath.Join(runDir, trajectoryFile), tecplot.FromTrajectory(meta.ID, result)); err != nil {
		return "", fmt.Errorf("write tecplot: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO runs (id, network, created_at, temperature, dt, steps, degraded, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Network, now.UnixNano(), meta.Temperature, meta.Dt, meta.Steps, meta.Degraded, payload); err != nil {
		return "", fmt.Errorf("catalog run: %w", err)
	}

	return meta.ID, nil
}

// finiteMetrics drops NaN and Inf values, which JSON cannot carry. A run
// that produced them is already marked degraded.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}

func writeStates(path string, result *dynamo.Trajectory) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	if len(result.States) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for i := range result.States[0] {
		if i < len(result.Labels) {
			header = append(header, result.Labels[i])
		} else {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for i := range result.States {
		row = row[:0]
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the cataloged runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	if _, err := os.Stat(s.baseDir); errors.Is(err, os.ErrNotExist) {
		return []RunMetadata{}, nil
	}
	db, err := s.catalog()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT payload FROM runs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		var meta RunMetadata
		if err := json.Unmarshal(payload, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// Delete removes a run directory and its catalog entry.
func (s *Store) Delete(runID string) error {
	db, err := s.catalog()
	if err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("unknown run: %s", runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, statesFile)
	file, err := os.Open(csvPath)
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
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		state := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}
		states = append(states, state)
	}

	return states, times, nil
}

// LoadTrajectory rebuilds a stored run as a trajectory.
func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, *RunMetadata, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	tr := dynamo.NewTrajectory(len(times))
	tr.Labels = meta.Labels
	for i := range times {
		tr.Append(times[i], states[i])
	}
	tr.StepsTaken = meta.Steps
	for k, v := range meta.Metrics {
		tr.Metrics[k] = v
	}
	if meta.Degraded {
		tr.Mark(dynamo.Degradation{Step: meta.DegradedStep})
	}
	return tr, meta, nil
}

// TecplotPath is the Tecplot copy of a stored run.
func (s *Store) TecplotPath(runID string) string {
	return filepath.Join(s.baseDir, runID, trajectoryFile)
}

func (s *Store) catalog() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filepath.Join(s.baseDir, catalogFile))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		network TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		temperature REAL NOT NULL,
		dt REAL NOT NULL,
		steps INTEGER NOT NULL,
		degraded INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	s.db = db
	return db, nil
}
