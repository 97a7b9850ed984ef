package ga

import (
	"fmt"
	"strings"
)

// CrossoverMethod names a population-level recombination strategy
type CrossoverMethod int

const (
	OnePoint CrossoverMethod = iota
	TwoPoint
	ShuffleOnePoint
)

func (m CrossoverMethod) String() string {
	switch m {
	case OnePoint:
		return "onepointcrossover"
	case TwoPoint:
		return "twopointcrossover"
	case ShuffleOnePoint:
		return "shuffleonepoint"
	default:
		return "unknown"
	}
}

func (m CrossoverMethod) valid() bool {
	return m >= OnePoint && m <= ShuffleOnePoint
}

// ParseCrossoverMethod resolves a case-insensitive crossover name
func ParseCrossoverMethod(name string) (CrossoverMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "onepointcrossover", "onepoint":
		return OnePoint, nil
	case "twopointcrossover", "twopoint", "twopointscrossover":
		return TwoPoint, nil
	case "shuffleonepoint", "shuffleonepointcrossover":
		return ShuffleOnePoint, nil
	default:
		return 0, fmt.Errorf("crossover method %q: %w", name, ErrUnsupportedMethod)
	}
}

func cross[T comparable](m CrossoverMethod, a, b *Chromosome[T], r Rand) (*Chromosome[T], *Chromosome[T], error) {
	switch m {
	case OnePoint:
		return a.OnePointCrossover(b, r)
	case TwoPoint:
		return a.TwoPointsCrossover(b, r)
	case ShuffleOnePoint:
		return a.ShuffleOnePointCrossover(b, r)
	default:
		return nil, nil, fmt.Errorf("crossover method %d: %w", int(m), ErrUnsupportedMethod)
	}
}

// OnePointCrossover splits both chromosomes after a random point p in
// [1, n-2] and swaps the tails. Both chromosomes must have the same length.
// Chromosomes of two genes are recombined by a fixed swap.
func (c *Chromosome[T]) OnePointCrossover(parent *Chromosome[T], r Rand) (*Chromosome[T], *Chromosome[T], error) {
	if err := c.checkMate(parent); err != nil {
		return nil, nil, err
	}
	n := parent.Count()
	if n <= 2 {
		c1, c2 := c.smallSwap(parent)
		return c1, c2, nil
	}

	p := r.Int(1, n-1)

	child1 := make([]T, 0, n)
	child1 = append(child1, c.genes[:p+1]...)
	child1 = append(child1, parent.genes[p+1:]...)

	child2 := make([]T, 0, n)
	child2 = append(child2, parent.genes[:p+1]...)
	child2 = append(child2, c.genes[p+1:]...)

	return c.child(child1), c.child(child2), nil
}

// ShuffleOnePointCrossover is an order-preserving one-point crossover for
// permutation genotypes. Each child keeps its own head up to the crossover
// point and is completed with the missing genes in the other parent's order,
// scanning from the crossover point and wrapping around.
func (c *Chromosome[T]) ShuffleOnePointCrossover(parent *Chromosome[T], r Rand) (*Chromosome[T], *Chromosome[T], error) {
	if err := c.checkMate(parent); err != nil {
		return nil, nil, err
	}
	n := parent.Count()
	if n <= 2 {
		c1, c2 := c.smallSwap(parent)
		return c1, c2, nil
	}

	p := r.Int(1, n-1)
	child1 := orderFill(c.genes[:p+1], parent.genes, p, n)
	child2 := orderFill(parent.genes[:p+1], c.genes, p, n)
	return c.child(child1), c.child(child2), nil
}

// TwoPointsCrossover is declared for completeness and always fails.
func (c *Chromosome[T]) TwoPointsCrossover(parent *Chromosome[T], _ Rand) (*Chromosome[T], *Chromosome[T], error) {
	return nil, nil, fmt.Errorf("two points crossover: %w", ErrNotImplemented)
}

func (c *Chromosome[T]) checkMate(parent *Chromosome[T]) error {
	if parent == nil {
		return fmt.Errorf("crossover parent is nil: %w", ErrInvalidArgument)
	}
	if parent.Count() != c.Count() {
		return fmt.Errorf("crossover %d with %d genes: %w", c.Count(), parent.Count(), ErrLengthMismatch)
	}
	if parent.Count() < 2 {
		return fmt.Errorf("crossover needs at least 2 genes, got %d: %w", parent.Count(), ErrIndexOutOfRange)
	}
	return nil
}

func (c *Chromosome[T]) smallSwap(parent *Chromosome[T]) (*Chromosome[T], *Chromosome[T]) {
	child1 := []T{parent.genes[1], c.genes[0]}
	child2 := []T{c.genes[1], parent.genes[0]}
	return c.child(child1), c.child(child2)
}

func orderFill[T comparable](head, donor []T, start, size int) []T {
	genes := make([]T, 0, size)
	seen := make(map[T]struct{}, size)
	for _, g := range head {
		genes = append(genes, g)
		seen[g] = struct{}{}
	}
	for k := 0; k < len(donor) && len(genes) < size; k++ {
		g := donor[(start+k)%len(donor)]
		if _, ok := seen[g]; ok {
			continue
		}
		genes = append(genes, g)
		seen[g] = struct{}{}
	}
	return genes
}
