package env

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Trace records the best chromosome of every generation of one run
type Trace struct {
	Problem string  `json:"problem"`
	Seed    int64   `json:"seed"`
	Frames  []Frame `json:"frames"`
}

// Frame is one generation of a trace
type Frame struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Average    float64 `json:"average"`
	Genes      string  `json:"genes"`
}

// NewTrace creates a new trace recorder
func NewTrace(problem string, seed int64) *Trace {
	return &Trace{
		Problem: problem,
		Seed:    seed,
		Frames:  make([]Frame, 0, 256),
	}
}

// Record adds a generation to the trace
func (t *Trace) Record(f Frame) {
	t.Frames = append(t.Frames, f)
}

// Save writes the trace to a file
func (t *Trace) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTrace loads a trace from a file
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
