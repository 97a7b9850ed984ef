package ga

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitnessIsCachedUntilGenesChange(t *testing.T) {
	calls := 0
	c := NewChromosome(func(c *Chromosome[int]) float64 {
		calls++
		return sumGenes(c)
	}, []int{1, 1, 1})

	f, err := c.Fitness()
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)
	_, _ = c.Fitness()
	assert.Equal(t, 1, calls)

	require.NoError(t, c.SetGene(0, 5))
	assert.False(t, c.HasFitness())
	f, err = c.Fitness()
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)
	assert.Equal(t, 2, calls)

	c.Add(2)
	f, _ = c.Fitness()
	assert.Equal(t, 9.0, f)

	c.AddGenes(1, 1)
	f, _ = c.Fitness()
	assert.Equal(t, 11.0, f)
	assert.Equal(t, 4, calls)
}

func TestSetFitnessOverridesCache(t *testing.T) {
	c := NewChromosome(sumGenes, []int{1, 2})
	c.SetFitness(42)
	f, err := c.Fitness()
	require.NoError(t, err)
	assert.Equal(t, 42.0, f)
}

func TestFitnessWithoutSource(t *testing.T) {
	c := NewChromosome[int](nil, []int{1})
	_, err := c.Fitness()
	assert.ErrorIs(t, err, ErrNoFitness)

	c.SetFitness(0.5)
	f, err := c.Fitness()
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)
}

func TestGenesRangeIsInclusive(t *testing.T) {
	c := NewChromosome[string](nil, []string{"a", "b", "c", "d"})

	got, err := c.Genes(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got, err = c.Genes(3, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, got)

	for _, tc := range []struct{ start, end int }{{-1, 2}, {0, 4}, {2, 1}} {
		_, err := c.Genes(tc.start, tc.end)
		assert.ErrorIs(t, err, ErrInvalidRange, "range [%d, %d]", tc.start, tc.end)
	}
}

func TestGeneBounds(t *testing.T) {
	c := NewChromosome[int](nil, []int{7, 8})

	g, err := c.Gene(1)
	require.NoError(t, err)
	assert.Equal(t, 8, g)

	_, err = c.Gene(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	err = c.SetGene(-1, 0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, []int{7, 8}, c.ToSlice())
}

func TestToSliceIsACopy(t *testing.T) {
	src := []int{1, 2, 3}
	c := NewChromosome[int](nil, src)
	src[0] = 99

	out := c.ToSlice()
	out[1] = 99
	assert.Equal(t, []int{1, 2, 3}, c.ToSlice())
}

func TestChromosomeString(t *testing.T) {
	c := NewChromosome(sumGenes, []int{1, 0, 1})
	assert.Equal(t, "Genes: 1, 0, 1 | Fitness: No fitness", c.String())

	_, _ = c.Fitness()
	assert.Equal(t, "Genes: 1, 0, 1 | Fitness: 2", c.String())
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewChromosome(sumGenes, []int{1, 2})
	_, _ = c.Fitness()

	clone := c.Clone()
	require.True(t, clone.HasFitness())
	require.NoError(t, clone.SetGene(0, 10))

	f, _ := c.Fitness()
	assert.Equal(t, 3.0, f)
	f, _ = clone.Fitness()
	assert.Equal(t, 12.0, f)
}
