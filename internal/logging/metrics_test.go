package logging

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolve/internal/ga"
)

func populationOf(t *testing.T, fitness ...float64) *ga.Population[int] {
	t.Helper()
	pop := ga.NewPopulation[int](0, ga.NewRand(1))
	for i, f := range fitness {
		c := ga.NewChromosome[int](nil, []int{i})
		c.SetFitness(f)
		require.NoError(t, pop.Add(c))
	}
	return pop
}

func render(c *ga.Chromosome[int]) string {
	g, _ := c.Gene(0)
	return strings.Repeat("#", g+1)
}

func TestSummarize(t *testing.T) {
	pop := populationOf(t, 2, 3, 1)

	s, err := Summarize(pop, false, render)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Best)
	assert.Equal(t, 1.0, s.Worst)
	assert.InDelta(t, 2.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), s.Std, 1e-12)
	assert.Equal(t, "##", s.BestGenes)

	s, err = Summarize(pop, true, render)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Best)
	assert.Equal(t, 3.0, s.Worst)
	assert.Equal(t, "###", s.BestGenes)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(ga.NewPopulation[int](0, ga.NewRand(1)), false, nil)
	assert.ErrorIs(t, err, ga.ErrEmptyPopulation)
}

func TestSummarizePropagatesFitnessErrors(t *testing.T) {
	pop := populationOf(t, 2, 3, 1)
	c, err := pop.Chromosome(1)
	require.NoError(t, err)
	// drops the assigned fitness; the chromosome has no function to recompute it
	require.NoError(t, c.SetGene(0, 5))

	_, err = Summarize(pop, false, render)
	assert.ErrorIs(t, err, ga.ErrNoFitness)
}

func TestLoggerWritesCSVAndJSON(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "runs", "run.csv")
	jsonPath := filepath.Join(dir, "runs", "run.jsonl")

	l, err := NewLogger(csvPath, jsonPath, nil)
	require.NoError(t, err)
	require.NoError(t, l.Init())

	var wg sync.WaitGroup
	for gen := 0; gen < 4; gen++ {
		wg.Add(1)
		go func(gen int) {
			defer wg.Done()
			assert.NoError(t, l.LogGeneration(Summary{Run: "r", Seed: 7, Generation: gen, Best: float64(gen)}))
		}(gen)
	}
	wg.Wait()
	require.NoError(t, l.Close())

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"run", "seed", "generation", "best", "worst", "mean", "std", "best_genes"}, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, "r", row[0])
		assert.Equal(t, "7", row[1])
	}

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	seen := map[int]bool{}
	for _, line := range lines {
		var s Summary
		require.NoError(t, json.Unmarshal([]byte(line), &s))
		assert.Equal(t, float64(s.Generation), s.Best)
		seen[s.Generation] = true
	}
	assert.Len(t, seen, 4)
}

func TestLoggerBeforeInitIsNoop(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(filepath.Join(dir, "a.csv"), filepath.Join(dir, "a.jsonl"), nil)
	require.NoError(t, err)
	assert.NoError(t, l.LogGeneration(Summary{Generation: 1}))
	assert.NoFileExists(t, filepath.Join(dir, "a.csv"))
}

func TestNewConsoleLevel(t *testing.T) {
	ctx := context.Background()
	assert.True(t, NewConsole("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewConsole("warn").Enabled(ctx, slog.LevelInfo))
	assert.False(t, NewConsole("nonsense").Enabled(ctx, slog.LevelDebug))
	assert.True(t, NewConsole("nonsense").Enabled(ctx, slog.LevelInfo))
}

func TestChampionSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts", "champion.json")
	champ := Champion{Problem: "word", Seed: 3, Generation: 12, Fitness: 1, Genes: "hello"}

	require.NoError(t, SaveChampion(path, champ))
	loaded, err := LoadChampion(path)
	require.NoError(t, err)
	assert.Equal(t, champ, loaded)
}
