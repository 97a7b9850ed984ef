package ga

import (
	"fmt"
	"math"
	"strings"
)

// SelectionMethod names a sampling strategy for Population.Selection
type SelectionMethod int

const (
	Roulette SelectionMethod = iota
	Tournament
)

func (m SelectionMethod) String() string {
	switch m {
	case Roulette:
		return "roulette"
	case Tournament:
		return "tournament"
	default:
		return "unknown"
	}
}

func (m SelectionMethod) valid() bool {
	return m == Roulette || m == Tournament
}

// ParseSelectionMethod resolves a case-insensitive selection name
func ParseSelectionMethod(name string) (SelectionMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "roulette":
		return Roulette, nil
	case "tournament":
		return Tournament, nil
	default:
		return 0, fmt.Errorf("selection method %q: %w", name, ErrUnsupportedMethod)
	}
}

// SelectionOptions configures Population.Selection.
// Invert makes lower fitness better (minimisation). Inverted roulette weighs
// each chromosome by 1/fitness, so a zero fitness gets an infinite weight and
// wins every spin.
type SelectionOptions struct {
	Method         SelectionMethod
	Invert         bool
	TournamentSize int // default 3
	Elitism        bool
	EliteCount     int // default 1
}

func (o SelectionOptions) withDefaults() SelectionOptions {
	if o.TournamentSize <= 0 {
		o.TournamentSize = 3
	}
	if o.Elitism && o.EliteCount <= 0 {
		o.EliteCount = 1
	}
	return o
}

// precomputedFitness holds the per-chromosome fitness and roulette weights
// for the duration of one Selection call.
type precomputedFitness struct {
	fitness []float64
	weights []float64
	total   float64
}

func precompute[T comparable](cs []*Chromosome[T], invert bool) (precomputedFitness, error) {
	fitness, err := fitnessValues(cs)
	if err != nil {
		return precomputedFitness{}, err
	}
	pf := precomputedFitness{
		fitness: fitness,
		weights: make([]float64, len(fitness)),
	}
	for i, f := range fitness {
		w := f
		if invert {
			w = 1.0 / f
		}
		pf.weights[i] = w
		pf.total += w
	}
	return pf, nil
}

// rouletteIndex spins the wheel once; the last chromosome is the fallback
func (p *Population[T]) rouletteIndex(pf precomputedFitness) int {
	spin := p.rng.Float64() * pf.total
	cumulative := 0.0
	for i, w := range pf.weights {
		cumulative += w
		if cumulative >= spin {
			return i
		}
	}
	return len(pf.weights) - 1
}

// tournamentIndex samples size chromosomes with replacement and returns the
// best one; ties go to the first sampled.
func (p *Population[T]) tournamentIndex(pf precomputedFitness, size int, invert bool) int {
	n := len(pf.fitness)
	best := p.rng.Int(0, n)
	for i := 1; i < size; i++ {
		candidate := p.rng.Int(0, n)
		if better(pf.fitness[candidate], pf.fitness[best], invert) {
			best = candidate
		}
	}
	return best
}

func better(a, b float64, invert bool) bool {
	if invert {
		return a < b
	}
	return a > b
}

// RouletteWheel builds a mating pool where every chromosome appears
// max(1, round(fitness/total*maxItems)) times. total is the fitness sum when
// normalizeFitness is set, otherwise the highest fitness. The one-copy floor
// can make the pool larger than maxItems.
func RouletteWheel[T comparable](pop *Population[T], maxItems int, normalizeFitness bool) (*Population[T], error) {
	if pop.Count() == 0 {
		return nil, fmt.Errorf("roulette wheel: %w", ErrEmptyPopulation)
	}
	if maxItems < 0 {
		return nil, fmt.Errorf("roulette wheel max items %d: %w", maxItems, ErrInvalidArgument)
	}

	total := pop.SumFitness()
	if !normalizeFitness {
		total = pop.agg.hi
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("roulette wheel total fitness %v: %w", total, ErrInvalidArgument)
	}

	pool := NewPopulation[T](0, pop.rng)
	for i, c := range pop.chromosomes {
		f, err := c.Fitness()
		if err != nil {
			return nil, fmt.Errorf("roulette wheel chromosome %d: %w", i, err)
		}
		copies := int(math.RoundToEven(f / total * float64(maxItems)))
		copies = max(copies, 1)
		for j := 0; j < copies; j++ {
			if err := pool.Add(c); err != nil {
				return nil, err
			}
		}
	}
	return pool, nil
}

// TournamentSelection runs selectionCount tournaments of tournamentSize
// samples drawn with replacement and collects the winners.
func TournamentSelection[T comparable](pop *Population[T], tournamentSize, selectionCount int) (*Population[T], error) {
	if pop.Count() == 0 {
		return nil, fmt.Errorf("tournament selection: %w", ErrEmptyPopulation)
	}
	if tournamentSize < 1 {
		return nil, fmt.Errorf("tournament size %d: %w", tournamentSize, ErrInvalidArgument)
	}
	if selectionCount < 0 {
		return nil, fmt.Errorf("selection count %d: %w", selectionCount, ErrInvalidArgument)
	}

	fitness, err := fitnessValues(pop.chromosomes)
	if err != nil {
		return nil, err
	}
	pf := precomputedFitness{fitness: fitness}

	pool := NewPopulation[T](selectionCount, pop.rng)
	for i := 0; i < selectionCount; i++ {
		winner := pop.tournamentIndex(pf, tournamentSize, false)
		if err := pool.Add(pop.chromosomes[winner]); err != nil {
			return nil, err
		}
	}
	return pool, nil
}
