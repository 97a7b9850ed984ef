package ga

import (
	"fmt"
	"sort"
	"strings"
)

// Population is an ordered, optionally bounded collection of chromosomes.
// The fitness sum and the highest/lowest chromosomes are kept in step with
// the collection after every mutating call.
type Population[T comparable] struct {
	chromosomes []*Chromosome[T]
	capacity    int
	rng         Rand

	// evaluate is the function last passed to Evaluation. Offspring with no
	// fitness source of their own are bound to it.
	evaluate FitnessFunc[T]

	agg aggregates[T]
}

// NewPopulation creates an empty population. capacity <= 0 means unbounded.
func NewPopulation[T comparable](capacity int, rng Rand) *Population[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Population[T]{
		chromosomes: make([]*Chromosome[T], 0, capacity),
		capacity:    capacity,
		rng:         rng,
	}
}

// Count returns the number of chromosomes
func (p *Population[T]) Count() int {
	return len(p.chromosomes)
}

// Capacity returns the size limit, 0 when unbounded
func (p *Population[T]) Capacity() int {
	return p.capacity
}

// GetRNG returns the population's random source
func (p *Population[T]) GetRNG() Rand {
	return p.rng
}

// HighestFitnessChromosome returns the first chromosome with the highest fitness, nil when empty
func (p *Population[T]) HighestFitnessChromosome() *Chromosome[T] {
	return p.agg.highest
}

// LowestFitnessChromosome returns the first chromosome with the lowest fitness, nil when empty
func (p *Population[T]) LowestFitnessChromosome() *Chromosome[T] {
	return p.agg.lowest
}

// SumFitness returns the total fitness
func (p *Population[T]) SumFitness() float64 {
	return p.agg.total
}

// AverageFitness returns SumFitness / Count
func (p *Population[T]) AverageFitness() (float64, error) {
	if len(p.chromosomes) == 0 {
		return 0, ErrEmptyPopulation
	}
	return p.agg.total / float64(len(p.chromosomes)), nil
}

// Chromosome returns the chromosome at index
func (p *Population[T]) Chromosome(index int) (*Chromosome[T], error) {
	if index < 0 || index >= len(p.chromosomes) {
		return nil, fmt.Errorf("chromosome %d of %d: %w", index, len(p.chromosomes), ErrIndexOutOfRange)
	}
	return p.chromosomes[index], nil
}

// Chromosomes returns the chromosomes in iteration order
func (p *Population[T]) Chromosomes() []*Chromosome[T] {
	return append([]*Chromosome[T](nil), p.chromosomes...)
}

// Add appends a chromosome and updates the aggregates incrementally.
func (p *Population[T]) Add(c *Chromosome[T]) error {
	if c == nil {
		return fmt.Errorf("add nil chromosome: %w", ErrInvalidArgument)
	}
	if p.full() {
		return fmt.Errorf("add to population of %d: %w", p.capacity, ErrCapacityExceeded)
	}
	p.adopt(c)
	f, err := c.Fitness()
	if err != nil {
		return fmt.Errorf("add chromosome: %w", err)
	}

	p.chromosomes = append(p.chromosomes, c)
	p.agg.add(c, f)
	return nil
}

// AddRange appends chromosomes in order. The capacity is checked before each
// insert; chromosomes added before a failure stay in the population.
func (p *Population[T]) AddRange(cs []*Chromosome[T]) error {
	var err error
	for _, c := range cs {
		if c == nil {
			err = fmt.Errorf("add nil chromosome: %w", ErrInvalidArgument)
			break
		}
		if p.full() {
			err = fmt.Errorf("add to population of %d: %w", p.capacity, ErrCapacityExceeded)
			break
		}
		p.adopt(c)
		if _, ferr := c.Fitness(); ferr != nil {
			err = fmt.Errorf("add chromosome: %w", ferr)
			break
		}
		p.chromosomes = append(p.chromosomes, c)
	}
	if rerr := p.recalculate(); rerr != nil {
		return rerr
	}
	return err
}

// Delete removes the chromosome at index
func (p *Population[T]) Delete(index int) error {
	if index < 0 || index >= len(p.chromosomes) {
		return fmt.Errorf("delete chromosome %d of %d: %w", index, len(p.chromosomes), ErrIndexOutOfRange)
	}
	next := make([]*Chromosome[T], 0, len(p.chromosomes)-1)
	next = append(next, p.chromosomes[:index]...)
	next = append(next, p.chromosomes[index+1:]...)
	return p.replace(next)
}

// Sort orders the chromosomes by fitness
func (p *Population[T]) Sort(ascending bool) error {
	values, err := fitnessValues(p.chromosomes)
	if err != nil {
		return err
	}
	order := rank(values, !ascending)
	sorted := make([]*Chromosome[T], len(order))
	for i, idx := range order {
		sorted[i] = p.chromosomes[idx]
	}
	p.chromosomes = sorted
	return nil
}

// Evaluation assigns fn(c) as the fitness of every chromosome, bypassing any
// bound fitness function, and recomputes the aggregates. fn is remembered:
// chromosomes added or produced later without a fitness source are scored
// with it.
func (p *Population[T]) Evaluation(fn FitnessFunc[T]) error {
	if fn == nil {
		return fmt.Errorf("evaluation function is nil: %w", ErrInvalidArgument)
	}
	p.evaluate = fn
	for _, c := range p.chromosomes {
		c.SetFitness(fn(c))
	}
	return p.recalculate()
}

// Selection replaces the population with a newly selected set of the same
// size. Elites, when enabled, are carried first and stay eligible for the
// sampling step.
func (p *Population[T]) Selection(opts SelectionOptions) error {
	opts = opts.withDefaults()
	if !opts.Method.valid() {
		return fmt.Errorf("selection method %d: %w", int(opts.Method), ErrUnsupportedMethod)
	}
	size := len(p.chromosomes)

	pf, err := precompute(p.chromosomes, opts.Invert)
	if err != nil {
		return err
	}

	next := make([]*Chromosome[T], 0, size)
	if opts.Elitism {
		for _, idx := range rank(pf.fitness, !opts.Invert) {
			if len(next) >= opts.EliteCount {
				break
			}
			next = append(next, p.chromosomes[idx])
		}
	}

	for len(next) < size {
		var idx int
		switch opts.Method {
		case Roulette:
			idx = p.rouletteIndex(pf)
		case Tournament:
			idx = p.tournamentIndex(pf, opts.TournamentSize, opts.Invert)
		default:
			return fmt.Errorf("selection method %d: %w", int(opts.Method), ErrUnsupportedMethod)
		}
		next = append(next, p.chromosomes[idx])
	}

	return p.replace(next)
}

// Crossover recombines consecutive pairs (i, i+1 mod n). Each pair is
// replaced by its children with probability rate. The result is truncated
// to the size the population had before the call.
func (p *Population[T]) Crossover(method CrossoverMethod, rate float64) error {
	if !method.valid() {
		return fmt.Errorf("crossover method %d: %w", int(method), ErrUnsupportedMethod)
	}
	size := len(p.chromosomes)
	next := make([]*Chromosome[T], 0, size+1)

	for i := 0; i < size; i += 2 {
		parent1 := p.chromosomes[i]
		parent2 := p.chromosomes[(i+1)%size]

		if p.rng.Float64() < rate {
			child1, child2, err := cross(method, parent1, parent2, p.rng)
			if err != nil {
				return fmt.Errorf("crossover pair %d: %w", i/2, err)
			}
			next = append(next, child1, child2)
		} else {
			next = append(next, parent1, parent2)
		}
	}

	if len(next) > size {
		next = next[:size]
	}
	return p.replace(next)
}

// Mutation replaces each chromosome with probability populationRate by its
// mutated copy. chromosomeRate is the per-gene mutation probability.
func (p *Population[T]) Mutation(m Mutator[T], populationRate, chromosomeRate float64) error {
	if err := ValidateMutator(m); err != nil {
		return err
	}
	next := make([]*Chromosome[T], len(p.chromosomes))
	for i, c := range p.chromosomes {
		next[i] = c
		if p.rng.Float64() < populationRate {
			next[i] = m.Mutate(c, chromosomeRate, p.rng)
		}
	}
	return p.replace(next)
}

func (p *Population[T]) String() string {
	var sb strings.Builder
	sb.WriteString("Population:\n")
	for i, c := range p.chromosomes {
		fmt.Fprintf(&sb, "Chromosome %d: %s\n", i, c)
	}
	return sb.String()
}

func (p *Population[T]) full() bool {
	return p.capacity > 0 && len(p.chromosomes) >= p.capacity
}

// adopt binds the evaluation function to a chromosome that has neither a
// fitness function nor an assigned fitness
func (p *Population[T]) adopt(c *Chromosome[T]) {
	if p.evaluate != nil && c.fitnessFn == nil && !c.cached {
		c.fitnessFn = p.evaluate
	}
}

// replace commits next only when its aggregates can be computed
func (p *Population[T]) replace(next []*Chromosome[T]) error {
	for _, c := range next {
		p.adopt(c)
	}
	agg, err := aggregate(next)
	if err != nil {
		return err
	}
	p.chromosomes = next
	p.agg = agg
	return nil
}

func (p *Population[T]) recalculate() error {
	return p.replace(p.chromosomes)
}

type aggregates[T comparable] struct {
	total   float64
	highest *Chromosome[T]
	lowest  *Chromosome[T]
	hi, lo  float64
}

// add folds one fitness value in; strict comparisons keep the first-inserted on ties
func (a *aggregates[T]) add(c *Chromosome[T], f float64) {
	a.total += f
	if a.highest == nil || f > a.hi {
		a.highest, a.hi = c, f
	}
	if a.lowest == nil || f < a.lo {
		a.lowest, a.lo = c, f
	}
}

func aggregate[T comparable](cs []*Chromosome[T]) (aggregates[T], error) {
	var agg aggregates[T]
	for i, c := range cs {
		f, err := c.Fitness()
		if err != nil {
			return aggregates[T]{}, fmt.Errorf("chromosome %d: %w", i, err)
		}
		agg.add(c, f)
	}
	return agg, nil
}

func fitnessValues[T comparable](cs []*Chromosome[T]) ([]float64, error) {
	values := make([]float64, len(cs))
	for i, c := range cs {
		f, err := c.Fitness()
		if err != nil {
			return nil, fmt.Errorf("chromosome %d: %w", i, err)
		}
		values[i] = f
	}
	return values, nil
}

// rank returns indexes ordered by value, ties kept in input order
func rank(values []float64, descending bool) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if descending {
			return values[order[a]] > values[order[b]]
		}
		return values[order[a]] < values[order[b]]
	})
	return order
}
