package ga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed draws and fails the test when it runs dry.
type scriptedRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedRand) Int(lo, hi int) int {
	s.t.Helper()
	require.NotEmpty(s.t, s.ints, "scripted Int(%d, %d) exhausted", lo, hi)
	v := s.ints[0]
	s.ints = s.ints[1:]
	require.GreaterOrEqual(s.t, v, lo)
	require.Less(s.t, v, hi)
	return v
}

func (s *scriptedRand) Float64() float64 {
	s.t.Helper()
	require.NotEmpty(s.t, s.floats, "scripted Float64 exhausted")
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// recordingRand forwards to a seeded source and keeps every Int draw.
type recordingRand struct {
	*SeededRand
	draws []int
}

func (r *recordingRand) Int(lo, hi int) int {
	v := r.SeededRand.Int(lo, hi)
	r.draws = append(r.draws, v)
	return v
}

func sumGenes(c *Chromosome[int]) float64 {
	total := 0
	for _, g := range c.genes {
		total += g
	}
	return float64(total)
}

func fixedFitness(values ...float64) []*Chromosome[int] {
	cs := make([]*Chromosome[int], len(values))
	for i, v := range values {
		cs[i] = NewChromosome[int](nil, []int{i})
		cs[i].SetFitness(v)
	}
	return cs
}

func populationOf(t *testing.T, rng Rand, cs []*Chromosome[int]) *Population[int] {
	t.Helper()
	p := NewPopulation[int](0, rng)
	for _, c := range cs {
		require.NoError(t, p.Add(c))
	}
	return p
}

// requireAggregates recomputes the fitness aggregates from scratch and
// compares them with what the population maintained.
func requireAggregates[T comparable](t *testing.T, p *Population[T]) {
	t.Helper()
	var total float64
	var hi, lo *Chromosome[T]
	var hiF, loF float64
	for i := 0; i < p.Count(); i++ {
		c, err := p.Chromosome(i)
		require.NoError(t, err)
		f, err := c.Fitness()
		require.NoError(t, err)
		total += f
		if hi == nil || f > hiF {
			hi, hiF = c, f
		}
		if lo == nil || f < loF {
			lo, loF = c, f
		}
	}
	require.InDelta(t, total, p.SumFitness(), 1e-9)
	if p.Count() == 0 {
		require.Nil(t, p.HighestFitnessChromosome())
		require.Nil(t, p.LowestFitnessChromosome())
		return
	}
	gotHi, err := p.HighestFitnessChromosome().Fitness()
	require.NoError(t, err)
	gotLo, err := p.LowestFitnessChromosome().Fitness()
	require.NoError(t, err)
	require.Equal(t, hiF, gotHi)
	require.Equal(t, loF, gotLo)
}
