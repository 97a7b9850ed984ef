package ga

import (
	"fmt"
	"strconv"
	"strings"
)

// FitnessFunc scores a chromosome. It must be pure.
type FitnessFunc[T comparable] func(*Chromosome[T]) float64

// Chromosome is an ordered sequence of genes with a lazily computed fitness.
// Structural changes drop the cached fitness so the next read recomputes it.
type Chromosome[T comparable] struct {
	genes     []T
	fitnessFn FitnessFunc[T]
	fitness   float64
	cached    bool
}

// NewChromosome creates a chromosome owning a copy of genes.
// fitness may be nil, in which case fitness has to be assigned with SetFitness.
func NewChromosome[T comparable](fitness FitnessFunc[T], genes []T) *Chromosome[T] {
	return &Chromosome[T]{
		genes:     append(make([]T, 0, len(genes)), genes...),
		fitnessFn: fitness,
	}
}

// Count returns the number of genes
func (c *Chromosome[T]) Count() int {
	return len(c.genes)
}

// Gene returns the gene at index
func (c *Chromosome[T]) Gene(index int) (T, error) {
	if index < 0 || index >= len(c.genes) {
		var zero T
		return zero, fmt.Errorf("gene %d of %d: %w", index, len(c.genes), ErrIndexOutOfRange)
	}
	return c.genes[index], nil
}

// SetGene replaces the gene at index
func (c *Chromosome[T]) SetGene(index int, gene T) error {
	if index < 0 || index >= len(c.genes) {
		return fmt.Errorf("gene %d of %d: %w", index, len(c.genes), ErrIndexOutOfRange)
	}
	c.genes[index] = gene
	c.invalidate()
	return nil
}

// Genes returns a copy of genes[start..end], both ends inclusive.
func (c *Chromosome[T]) Genes(start, end int) ([]T, error) {
	if start < 0 || end >= len(c.genes) || start > end {
		return nil, fmt.Errorf("genes [%d, %d] of %d: %w", start, end, len(c.genes), ErrInvalidRange)
	}
	return append(make([]T, 0, end-start+1), c.genes[start:end+1]...), nil
}

// Add appends a gene
func (c *Chromosome[T]) Add(gene T) {
	c.genes = append(c.genes, gene)
	c.invalidate()
}

// AddGenes appends genes in order
func (c *Chromosome[T]) AddGenes(genes ...T) {
	c.genes = append(c.genes, genes...)
	c.invalidate()
}

// ToSlice returns a copy of the gene sequence
func (c *Chromosome[T]) ToSlice() []T {
	return append(make([]T, 0, len(c.genes)), c.genes...)
}

// Fitness returns the cached fitness, computing and caching it through the
// bound fitness function when the cache is empty.
func (c *Chromosome[T]) Fitness() (float64, error) {
	if c.cached {
		return c.fitness, nil
	}
	if c.fitnessFn == nil {
		return 0, ErrNoFitness
	}
	c.fitness = c.fitnessFn(c)
	c.cached = true
	return c.fitness, nil
}

// SetFitness force-sets the cached fitness
func (c *Chromosome[T]) SetFitness(v float64) {
	c.fitness = v
	c.cached = true
}

// HasFitness reports whether a fitness value is cached
func (c *Chromosome[T]) HasFitness() bool {
	return c.cached
}

// Clone returns a deep copy that keeps the fitness function and cache
func (c *Chromosome[T]) Clone() *Chromosome[T] {
	clone := NewChromosome(c.fitnessFn, c.genes)
	clone.fitness = c.fitness
	clone.cached = c.cached
	return clone
}

func (c *Chromosome[T]) String() string {
	parts := make([]string, len(c.genes))
	for i, g := range c.genes {
		parts[i] = fmt.Sprint(g)
	}
	fitness := "No fitness"
	if c.cached {
		fitness = strconv.FormatFloat(c.fitness, 'g', -1, 64)
	}
	return fmt.Sprintf("Genes: %s | Fitness: %s", strings.Join(parts, ", "), fitness)
}

func (c *Chromosome[T]) invalidate() {
	c.cached = false
	c.fitness = 0
}

// child builds an offspring bound to the same fitness function
func (c *Chromosome[T]) child(genes []T) *Chromosome[T] {
	return &Chromosome[T]{genes: genes, fitnessFn: c.fitnessFn}
}
