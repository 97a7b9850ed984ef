package ga

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneGenerators(t *testing.T) {
	rng := NewRand(17)

	for _, b := range BinaryGenes(50, rng) {
		assert.Contains(t, []int{0, 1}, b)
	}
	for _, r := range RuneGenes(50, 'a', 'e', rng) {
		assert.True(t, r >= 'a' && r <= 'e')
	}
	for _, f := range FloatGenes(50, 2, 3, rng) {
		assert.True(t, f >= 2 && f < 3)
	}

	perm := PermutationGenes(10, rng)
	sort.Ints(perm)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, perm)
}

func TestBinaryToInt(t *testing.T) {
	assert.Equal(t, 0, BinaryToInt(nil))
	assert.Equal(t, 5, BinaryToInt([]int{1, 0, 1}))
	assert.Equal(t, 63, BinaryToInt([]int{1, 1, 1, 1, 1, 1}))
}

func TestSeededRandIsReproducible(t *testing.T) {
	a, b := NewRand(5), NewRand(5)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Int(3, 9), b.Int(3, 9))
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, 4, a.Int(4, 4))
}
