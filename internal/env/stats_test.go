package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	results := []RunResult{
		{Seed: 1, Generations: 10, BestFitness: 1, Solved: true},
		{Seed: 2, Generations: 30, BestFitness: 3},
	}

	maximize := Aggregate(results, false)
	assert.Equal(t, 2, maximize.Runs)
	assert.Equal(t, 1, maximize.Solved)
	assert.InDelta(t, 0.5, maximize.SuccessRate(), 1e-12)
	assert.InDelta(t, 2.0, maximize.BestMean, 1e-12)
	assert.InDelta(t, 1.0, maximize.BestStd, 1e-12)
	assert.InDelta(t, 20.0, maximize.GenerationsMean, 1e-12)
	assert.Equal(t, int64(2), maximize.Champion.Seed)

	minimize := Aggregate(results, true)
	assert.Equal(t, int64(1), minimize.Champion.Seed)
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil, false)
	assert.Equal(t, 0, agg.Runs)
	assert.Equal(t, 0.0, agg.SuccessRate())
}

func TestTraceSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.json")

	trace := NewTrace("word", 42)
	trace.Record(Frame{Generation: 0, Best: 0.25, Average: 0.1, Genes: "abcd"})
	trace.Record(Frame{Generation: 1, Best: 0.5, Average: 0.2, Genes: "abzz"})
	require.NoError(t, trace.Save(path))

	loaded, err := LoadTrace(path)
	require.NoError(t, err)
	assert.Equal(t, trace, loaded)

	_, err = LoadTrace(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
