// Package storage persists simulation runs: one directory per run with
// JSON metadata and a CSV of per-particle snapshots. Every derived column
// (Cartesian position and velocity, kinetic energy, conjugate momentum) is
// recomputed from the angular state through the geometry layer at save
// time.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
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

// RunMetadata is the per-run record: shape, seed, timing, and final metric
// values.
type RunMetadata struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Timestamp    time.Time          `json:"timestamp"`
	Particles    int                `json:"particles"`
	A            float64            `json:"a"`
	B            float64            `json:"b"`
	Eccentricity float64            `json:"eccentricity"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	Duration     float64            `json:"duration"`
	Elapsed      float64            `json:"elapsed"`
	Integrator   string             `json:"integrator"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id. States are expected in
// the [angles..., angular velocities...] layout with meta.Particles
// particles.
func (s *Store) Save(meta RunMetadata, shape geom.Ellipse, mass float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.A = shape.A
	meta.B = shape.B
	meta.Eccentricity = shape.Eccentricity()
	meta.Metrics = result.Metrics

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return runID, nil
	}

	n := meta.Particles
	if n <= 0 {
		n = len(result.States[0]) / 2
	}

	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header,
			fmt.Sprintf("theta_%d", i),
			fmt.Sprintf("theta_dot_%d", i),
			fmt.Sprintf("x_%d", i),
			fmt.Sprintf("y_%d", i),
			fmt.Sprintf("vx_%d", i),
			fmt.Sprintf("vy_%d", i),
			fmt.Sprintf("energy_%d", i),
			fmt.Sprintf("momentum_%d", i),
		)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for row := range result.States {
		state := result.States[row]
		record := []string{fmtFloat(result.Times[row])}
		for i := 0; i < n; i++ {
			theta := state[i]
			thetaDot := state[n+i]
			x, y := shape.Position(theta)
			vx, vy := shape.Velocity(theta, thetaDot)
			record = append(record,
				fmtFloat(theta),
				fmtFloat(thetaDot),
				fmtFloat(x),
				fmtFloat(y),
				fmtFloat(vx),
				fmtFloat(vy),
				fmtFloat(shape.KineticEnergy(theta, thetaDot, mass)),
				fmtFloat(shape.Momentum(theta, thetaDot, mass)),
			)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
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

// LoadStates reads back the snapshot table: column names, times, and one
// row of floats per snapshot.
func (s *Store) LoadStates(runID string) (header []string, states [][]float64, times []float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return nil, [][]float64{}, []float64{}, nil
	}

	header = records[0][1:]
	times = make([]float64, 0, len(records)-1)
	states = make([][]float64, 0, len(records)-1)

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

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		states = append(states, row)
	}

	return header, states, times, nil
}
