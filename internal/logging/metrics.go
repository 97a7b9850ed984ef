package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gonum.org/v1/gonum/stat"

	"evolve/internal/ga"
)

// Logger writes per-generation summaries as CSV rows and JSON lines.
// It is safe for concurrent use by parallel runs.
type Logger struct {
	csvPath     string
	jsonPath    string
	console     *slog.Logger
	mu          sync.Mutex
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// NewLogger creates a new logger. console may be nil.
func NewLogger(csvPath, jsonPath string, console *slog.Logger) (*Logger, error) {
	l := &Logger{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  console,
	}

	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}

	return l, nil
}

// Init opens the log files and writes the CSV header
func (l *Logger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{"run", "seed", "generation", "best", "worst", "mean", "std", "best_genes"}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close flushes and closes all log files
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		firstErr = l.csvWriter.Error()
	}
	if l.csvFile != nil {
		if err := l.csvFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if l.jsonFile != nil {
		if err := l.jsonFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.initialized = false
	return firstErr
}

// Summary holds per-generation statistics of one run
type Summary struct {
	Run        string  `json:"run"`
	Seed       int64   `json:"seed"`
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Worst      float64 `json:"worst"`
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	BestGenes  string  `json:"best_genes"`
}

// Summarize computes a generation summary. Best and worst follow the
// problem direction: with minimize set the lowest fitness is the best.
func Summarize[T comparable](pop *ga.Population[T], minimize bool, render func(*ga.Chromosome[T]) string) (Summary, error) {
	if pop.Count() == 0 {
		return Summary{}, ga.ErrEmptyPopulation
	}

	values := make([]float64, 0, pop.Count())
	for i, c := range pop.Chromosomes() {
		f, err := c.Fitness()
		if err != nil {
			return Summary{}, fmt.Errorf("summarize chromosome %d: %w", i, err)
		}
		values = append(values, f)
	}

	best, worst := pop.HighestFitnessChromosome(), pop.LowestFitnessChromosome()
	if minimize {
		best, worst = worst, best
	}
	bf, err := best.Fitness()
	if err != nil {
		return Summary{}, fmt.Errorf("summarize best: %w", err)
	}
	wf, err := worst.Fitness()
	if err != nil {
		return Summary{}, fmt.Errorf("summarize worst: %w", err)
	}

	s := Summary{Best: bf, Worst: wf}
	s.Mean, s.Std = stat.PopMeanStdDev(values, nil)
	if render != nil {
		s.BestGenes = render(best)
	}
	return s, nil
}

// LogGeneration writes a summary to the CSV and JSON files and the console
func (l *Logger) LogGeneration(s Summary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.console != nil {
		l.console.Debug("generation",
			"run", s.Run,
			"seed", s.Seed,
			"gen", s.Generation,
			"best", s.Best,
			"mean", s.Mean,
			"std", s.Std,
			"genes", s.BestGenes,
		)
	}

	if !l.initialized {
		return nil
	}

	row := []string{
		s.Run,
		strconv.FormatInt(s.Seed, 10),
		strconv.Itoa(s.Generation),
		strconv.FormatFloat(s.Best, 'g', -1, 64),
		strconv.FormatFloat(s.Worst, 'g', -1, 64),
		fmt.Sprintf("%.6f", s.Mean),
		fmt.Sprintf("%.6f", s.Std),
		s.BestGenes,
	}
	if err := l.csvWriter.Write(row); err != nil {
		return err
	}
	l.csvWriter.Flush()
	if err := l.csvWriter.Error(); err != nil {
		return err
	}

	line, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = l.jsonFile.Write(append(line, '\n'))
	return err
}

// NewConsole returns a text slog logger on stderr at the named level
func NewConsole(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// Champion is the best chromosome found across all runs
type Champion struct {
	Problem    string  `json:"problem"`
	Seed       int64   `json:"seed"`
	Generation int     `json:"generation"`
	Fitness    float64 `json:"fitness"`
	Genes      string  `json:"genes"`
}

// SaveChampion saves the champion to a file
func SaveChampion(path string, champion Champion) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(champion, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadChampion loads a champion from a file
func LoadChampion(path string) (Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Champion{}, err
	}

	var saved Champion
	if err := json.Unmarshal(data, &saved); err != nil {
		return Champion{}, err
	}
	return saved, nil
}
