package ga

import (
	"fmt"
	"math"
	"strings"
)

// Number is the set of gene types the typed mutation variants convert from
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// MutationMethod names a population-level mutation strategy
type MutationMethod int

const (
	Binary MutationMethod = iota
	CharRandom
	FloatRandom
	Shuffle
)

func (m MutationMethod) String() string {
	switch m {
	case Binary:
		return "binary"
	case CharRandom:
		return "charrandom"
	case FloatRandom:
		return "dblrandom"
	case Shuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// ParseMutationMethod resolves a case-insensitive mutation name
func ParseMutationMethod(name string) (MutationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binary":
		return Binary, nil
	case "charrandom":
		return CharRandom, nil
	case "dblrandom", "floatrandom":
		return FloatRandom, nil
	case "shuffle":
		return Shuffle, nil
	default:
		return 0, fmt.Errorf("mutation method %q: %w", name, ErrUnsupportedMethod)
	}
}

// Mutate replaces each gene with probability rate by fn(index).
func (c *Chromosome[T]) Mutate(rate float64, fn func(index int) T, r Rand) {
	for i := range c.genes {
		if r.Float64() < rate {
			c.genes[i] = fn(i)
			c.invalidate()
		}
	}
}

// Shuffle permutes the genes in place. Index j is drawn from [i, n) for each
// i from the last index down to 1.
func (c *Chromosome[T]) Shuffle(r Rand) {
	n := len(c.genes)
	for i := n - 1; i > 0; i-- {
		j := r.Int(i, n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}
	c.invalidate()
}

// BinaryMutation returns a new integer chromosome where each gene is flipped
// with probability rate (1 becomes 0, anything else becomes 1).
func BinaryMutation[T Number](c *Chromosome[T], rate float64, r Rand) *Chromosome[int] {
	out := &Chromosome[int]{genes: make([]int, len(c.genes))}
	for i, g := range c.genes {
		v := int(g)
		if r.Float64() < rate {
			if v == 1 {
				v = 0
			} else {
				v = 1
			}
		}
		out.genes[i] = v
	}
	return out
}

// CharRandomMutation returns a new rune chromosome where each gene is replaced
// with probability rate by a uniform rune in [lo, hi].
func CharRandomMutation[T Number](c *Chromosome[T], rate float64, lo, hi rune, r Rand) *Chromosome[rune] {
	out := &Chromosome[rune]{genes: make([]rune, len(c.genes))}
	for i, g := range c.genes {
		if r.Float64() < rate {
			out.genes[i] = rune(r.Int(int(lo), int(hi)+1))
		} else {
			out.genes[i] = rune(g)
		}
	}
	return out
}

// FloatRandomMutation returns a new float chromosome where each gene is
// replaced with probability rate by a uniform value in [lo, hi).
func FloatRandomMutation[T Number](c *Chromosome[T], rate, lo, hi float64, r Rand) *Chromosome[float64] {
	out := &Chromosome[float64]{genes: make([]float64, len(c.genes))}
	for i, g := range c.genes {
		if r.Float64() < rate {
			out.genes[i] = Float64Range(r, lo, hi)
		} else {
			out.genes[i] = float64(g)
		}
	}
	return out
}

// Mutator produces the mutated replacement of a chromosome for
// Population.Mutation. rate is the per-gene mutation probability.
type Mutator[T comparable] interface {
	Method() MutationMethod
	Mutate(c *Chromosome[T], rate float64, r Rand) *Chromosome[T]
}

// ValidateMutator checks the mutator's parameters when it exposes a
// Validate method. Population.Mutation calls it before drawing anything.
func ValidateMutator[T comparable](m Mutator[T]) error {
	if m == nil {
		return fmt.Errorf("mutation: no mutator: %w", ErrUnsupportedMethod)
	}
	if v, ok := m.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

// BinaryMutator flips binary integer genes
type BinaryMutator struct{}

func (BinaryMutator) Method() MutationMethod { return Binary }

func (BinaryMutator) Mutate(c *Chromosome[int], rate float64, r Rand) *Chromosome[int] {
	out := BinaryMutation(c, rate, r)
	out.fitnessFn = c.fitnessFn
	return out
}

// CharMutator redraws rune genes in [Min, Max]
type CharMutator struct {
	Min, Max rune
}

func (CharMutator) Method() MutationMethod { return CharRandom }

// Validate rejects an inverted rune range
func (m CharMutator) Validate() error {
	if m.Min > m.Max {
		return fmt.Errorf("char mutation range [%q, %q]: %w", m.Min, m.Max, ErrInvalidRange)
	}
	return nil
}

func (m CharMutator) Mutate(c *Chromosome[rune], rate float64, r Rand) *Chromosome[rune] {
	out := CharRandomMutation(c, rate, m.Min, m.Max, r)
	out.fitnessFn = c.fitnessFn
	return out
}

// FloatMutator redraws float genes in [Min, Max)
type FloatMutator struct {
	Min, Max float64
}

func (FloatMutator) Method() MutationMethod { return FloatRandom }

// Validate rejects an inverted or non-finite range
func (m FloatMutator) Validate() error {
	if !(m.Min <= m.Max) || math.IsInf(m.Min, 0) || math.IsInf(m.Max, 0) {
		return fmt.Errorf("float mutation range [%v, %v): %w", m.Min, m.Max, ErrInvalidRange)
	}
	return nil
}

func (m FloatMutator) Mutate(c *Chromosome[float64], rate float64, r Rand) *Chromosome[float64] {
	out := FloatRandomMutation(c, rate, m.Min, m.Max, r)
	out.fitnessFn = c.fitnessFn
	return out
}

// ShuffleMutator shuffles a copy of the chromosome. The per-gene rate is not
// used: a selected chromosome is always fully reshuffled.
type ShuffleMutator[T comparable] struct{}

func (ShuffleMutator[T]) Method() MutationMethod { return Shuffle }

func (ShuffleMutator[T]) Mutate(c *Chromosome[T], _ float64, r Rand) *Chromosome[T] {
	out := c.Clone()
	out.Shuffle(r)
	return out
}
