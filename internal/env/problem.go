package env

import (
	"fmt"
	"math"
	"strings"

	"evolve/internal/ga"
)

// Problem is an objective over genes of type T. Convergence is decided here,
// outside the engine.
type Problem[T comparable] interface {
	Name() string
	// Genes draws a random genotype for the initial population
	Genes(r ga.Rand) []T
	Fitness(c *ga.Chromosome[T]) float64
	// Minimize reports whether lower fitness is better
	Minimize() bool
	Solved(best float64) bool
	// Bounds is the gene value range used by random-reset mutations
	Bounds() (lo, hi float64)
	Render(c *ga.Chromosome[T]) string
}

// Equality searches bits encoding a, b, c with 2a + 3b + 4c = Target
type Equality struct {
	Bits   int
	Target int
}

// NewEquality splits bits into three unsigned fields (for 15 bits: 6, 5, 4)
func NewEquality(bits int) (*Equality, error) {
	if bits < 6 {
		return nil, fmt.Errorf("equality needs at least 6 bits, got %d: %w", bits, ga.ErrInvalidArgument)
	}
	return &Equality{Bits: bits, Target: 60}, nil
}

func (e *Equality) Name() string { return "equality" }
func (e *Equality) Minimize() bool { return true }
func (e *Equality) Solved(best float64) bool { return best == 0 }
func (e *Equality) Bounds() (float64, float64) {
	return 0, 1
}

func (e *Equality) Genes(r ga.Rand) []int {
	return ga.BinaryGenes(e.Bits, r)
}

// Terms decodes the three fields
func (e *Equality) Terms(c *ga.Chromosome[int]) (a, b, cc int) {
	third := e.Bits / 3
	genes := c.ToSlice()
	if len(genes) < e.Bits {
		return 0, 0, 0
	}
	a = ga.BinaryToInt(genes[:third+1])
	b = ga.BinaryToInt(genes[third+1 : 2*third+1])
	cc = ga.BinaryToInt(genes[2*third+1 : e.Bits])
	return a, b, cc
}

func (e *Equality) Fitness(c *ga.Chromosome[int]) float64 {
	a, b, cc := e.Terms(c)
	return math.Abs(float64(2*a + 3*b + 4*cc - e.Target))
}

func (e *Equality) Render(c *ga.Chromosome[int]) string {
	a, b, cc := e.Terms(c)
	return fmt.Sprintf("%d*2 + %d*3 + %d*4 = %d", a, b, cc, 2*a+3*b+4*cc)
}

// Word evolves lowercase letters towards Target
type Word struct {
	Target []rune
}

func NewWord(target string) (*Word, error) {
	if target == "" {
		return nil, fmt.Errorf("word target is empty: %w", ga.ErrInvalidArgument)
	}
	return &Word{Target: []rune(strings.ToLower(target))}, nil
}

func (w *Word) Name() string { return "word" }
func (w *Word) Minimize() bool { return false }
func (w *Word) Solved(best float64) bool { return best >= 0.999 }
func (w *Word) Bounds() (float64, float64) {
	return 'a', 'z'
}

func (w *Word) Genes(r ga.Rand) []rune {
	return ga.RuneGenes(len(w.Target), 'a', 'z', r)
}

// Fitness is the fraction of positions matching the target
func (w *Word) Fitness(c *ga.Chromosome[rune]) float64 {
	matched := 0
	for i, g := range c.ToSlice() {
		if i < len(w.Target) && g == w.Target[i] {
			matched++
		}
	}
	return float64(matched) / float64(len(w.Target))
}

func (w *Word) Render(c *ga.Chromosome[rune]) string {
	return string(c.ToSlice())
}

// Surface maximises F(x,y) = 15xy(1-x)(1-y)sin(πx)sin(πy) on the unit square
type Surface struct {
	Optimum   float64
	Tolerance float64
}

func NewSurface() *Surface {
	return &Surface{Optimum: 0.93749, Tolerance: 0.001}
}

func (s *Surface) Name() string { return "function" }
func (s *Surface) Minimize() bool { return false }
func (s *Surface) Solved(best float64) bool {
	return math.Abs(best-s.Optimum) <= s.Tolerance
}
func (s *Surface) Bounds() (float64, float64) {
	return 0, 1
}

func (s *Surface) Genes(r ga.Rand) []float64 {
	return ga.FloatGenes(2, 0, 1, r)
}

func (s *Surface) Fitness(c *ga.Chromosome[float64]) float64 {
	genes := c.ToSlice()
	if len(genes) < 2 {
		return 0
	}
	x, y := genes[0], genes[1]
	return 15 * x * y * (1 - x) * (1 - y) * math.Sin(math.Pi*x) * math.Sin(math.Pi*y)
}

func (s *Surface) Render(c *ga.Chromosome[float64]) string {
	genes := c.ToSlice()
	if len(genes) < 2 {
		return "x=?, y=?"
	}
	return fmt.Sprintf("x=%.5f, y=%.5f", genes[0], genes[1])
}

// Point is a city location
type Point struct {
	X, Y float64
}

func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Tour minimises the open path length visiting every city once
type Tour struct {
	Cities []Point
}

// NewTour places n cities uniformly in a 15x15 square
func NewTour(n int, r ga.Rand) (*Tour, error) {
	if n < 3 {
		return nil, fmt.Errorf("tour needs at least 3 cities, got %d: %w", n, ga.ErrInvalidArgument)
	}
	cities := make([]Point, n)
	for i := range cities {
		cities[i] = Point{X: ga.Float64Range(r, 0, 15), Y: ga.Float64Range(r, 0, 15)}
	}
	return &Tour{Cities: cities}, nil
}

func (t *Tour) Name() string { return "tour" }
func (t *Tour) Minimize() bool { return true }
func (t *Tour) Solved(float64) bool { return false }
func (t *Tour) Bounds() (float64, float64) {
	return 0, float64(len(t.Cities) - 1)
}

func (t *Tour) Genes(r ga.Rand) []int {
	return ga.PermutationGenes(len(t.Cities), r)
}

func (t *Tour) Fitness(c *ga.Chromosome[int]) float64 {
	genes := c.ToSlice()
	d := 0.0
	for i := 0; i+1 < len(genes); i++ {
		d += t.Cities[genes[i]].DistanceTo(t.Cities[genes[i+1]])
	}
	return d
}

func (t *Tour) Render(c *ga.Chromosome[int]) string {
	genes := c.ToSlice()
	parts := make([]string, len(genes))
	for i, g := range genes {
		parts[i] = fmt.Sprint(g)
	}
	return strings.Join(parts, " -> ")
}
