package eval

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"evolve/internal/config"
	"evolve/internal/env"
	"evolve/internal/ga"
	"evolve/internal/logging"
)

// Reporter receives one summary per generation
type Reporter interface {
	LogGeneration(s logging.Summary) error
}

// Outcome is the result of one seeded run
type Outcome struct {
	Result env.RunResult
	Trace  *env.Trace
}

// Runner drives the generation loop for the configured problem
type Runner struct {
	cfg      *config.Config
	reporter Reporter
	console  *slog.Logger
	batch    string
	workers  int
}

// NewRunner creates a new runner. reporter and console may be nil.
func NewRunner(cfg *config.Config, reporter Reporter, console *slog.Logger) *Runner {
	workers := cfg.Run.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if console == nil {
		console = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Runner{
		cfg:      cfg,
		reporter: reporter,
		console:  console,
		batch:    uuid.NewString(),
		workers:  workers,
	}
}

// Batch identifies the runs started by this runner in the metrics files
func (r *Runner) Batch() string {
	return r.batch
}

// Minimize reports whether the configured problem minimises its fitness
func (r *Runner) Minimize() bool {
	switch r.cfg.Problem.Name {
	case "equality", "tour":
		return true
	default:
		return false
	}
}

// Run evolves the configured problem once with the given seed
func (r *Runner) Run(ctx context.Context, seed int64) (Outcome, error) {
	switch r.cfg.Problem.Name {
	case "equality":
		p, err := env.NewEquality(r.cfg.Problem.Bits)
		if err != nil {
			return Outcome{}, err
		}
		return runProblem[int](ctx, r, p, seed)
	case "word":
		p, err := env.NewWord(r.cfg.Problem.Target)
		if err != nil {
			return Outcome{}, err
		}
		return runProblem[rune](ctx, r, p, seed)
	case "function":
		return runProblem[float64](ctx, r, env.NewSurface(), seed)
	case "tour":
		// every run sees the same cities
		p, err := env.NewTour(r.cfg.Problem.Cities, ga.NewRand(r.cfg.Seed))
		if err != nil {
			return Outcome{}, err
		}
		return runProblem[int](ctx, r, p, seed)
	default:
		return Outcome{}, fmt.Errorf("problem %q: %w", r.cfg.Problem.Name, ga.ErrUnsupportedMethod)
	}
}

// RunAll runs cfg.Run.Runs independent seeds (Seed, Seed+1, ...) concurrently.
// Outcomes are returned in seed order.
func (r *Runner) RunAll(ctx context.Context) ([]Outcome, error) {
	runs := r.cfg.Run.Runs
	outcomes := make([]Outcome, runs)

	p := pool.New().
		WithErrors().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(r.workers)

	for i := 0; i < runs; i++ {
		i := i // per-iteration copy; module targets go 1.21 loop semantics
		seed := r.cfg.Seed + int64(i)
		p.Go(func(ctx context.Context) error {
			out, err := r.Run(ctx, seed)
			if err != nil {
				return fmt.Errorf("run seed %d: %w", seed, err)
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func runProblem[T comparable](ctx context.Context, r *Runner, p env.Problem[T], seed int64) (Outcome, error) {
	cfg := r.cfg
	rng := ga.NewRand(seed)
	minimize := p.Minimize()

	mutator, err := mutatorFor[T](cfg.MutationMethod(), p)
	if err != nil {
		return Outcome{}, err
	}
	opts, err := cfg.SelectionOptions()
	if err != nil {
		return Outcome{}, err
	}
	opts.Invert = opts.Invert || minimize

	pop := ga.NewPopulation[T](cfg.GA.Population, rng)
	for i := 0; i < cfg.GA.Population; i++ {
		if err := pop.Add(ga.NewChromosome[T](p.Fitness, p.Genes(rng))); err != nil {
			return Outcome{}, err
		}
	}

	trace := env.NewTrace(p.Name(), seed)
	result := env.RunResult{Seed: seed}

	observe := func(gen int) (bool, error) {
		s, err := logging.Summarize(pop, minimize, p.Render)
		if err != nil {
			return false, err
		}
		s.Run, s.Seed, s.Generation = r.batch, seed, gen

		trace.Record(env.Frame{Generation: gen, Best: s.Best, Average: s.Mean, Genes: s.BestGenes})
		if cfg.Logging.EveryGenSummary && r.reporter != nil {
			if err := r.reporter.LogGeneration(s); err != nil {
				return false, err
			}
		}

		if gen == 0 || improves(s.Best, result.BestFitness, minimize) {
			result.BestFitness = s.Best
			result.Best = s.BestGenes
		}
		result.Generations = gen
		return p.Solved(s.Best), nil
	}

	solved, err := observe(0)
	if err != nil {
		return Outcome{}, err
	}
	for gen := 1; gen <= cfg.Run.Generations && !solved; gen++ {
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		default:
		}

		if err := pop.Selection(opts); err != nil {
			return Outcome{}, fmt.Errorf("generation %d selection: %w", gen, err)
		}
		if err := pop.Crossover(cfg.CrossoverMethod(), cfg.GA.CrossoverRate); err != nil {
			return Outcome{}, fmt.Errorf("generation %d crossover: %w", gen, err)
		}
		if err := pop.Mutation(mutator, cfg.GA.PopulationMutationRate, cfg.GA.ChromosomeMutationRate); err != nil {
			return Outcome{}, fmt.Errorf("generation %d mutation: %w", gen, err)
		}
		if err := pop.Evaluation(p.Fitness); err != nil {
			return Outcome{}, fmt.Errorf("generation %d evaluation: %w", gen, err)
		}

		if solved, err = observe(gen); err != nil {
			return Outcome{}, err
		}
	}

	result.Solved = solved
	r.console.Info("run finished",
		"problem", p.Name(),
		"seed", seed,
		"generations", result.Generations,
		"best", result.BestFitness,
		"solved", solved,
		"genes", result.Best,
	)
	return Outcome{Result: result, Trace: trace}, nil
}

// mutatorFor picks the mutator for method and fails when it does not
// operate on genes of type T.
func mutatorFor[T comparable](method ga.MutationMethod, p env.Problem[T]) (ga.Mutator[T], error) {
	lo, hi := p.Bounds()

	var candidate any
	switch method {
	case ga.Binary:
		candidate = ga.BinaryMutator{}
	case ga.CharRandom:
		candidate = ga.CharMutator{Min: rune(lo), Max: rune(hi)}
	case ga.FloatRandom:
		candidate = ga.FloatMutator{Min: lo, Max: hi}
	case ga.Shuffle:
		candidate = ga.ShuffleMutator[T]{}
	default:
		return nil, fmt.Errorf("mutation method %d: %w", int(method), ga.ErrUnsupportedMethod)
	}

	m, ok := candidate.(ga.Mutator[T])
	if !ok {
		return nil, fmt.Errorf("mutation %s on %s genes: %w", method, p.Name(), ga.ErrUnsupportedMethod)
	}
	if err := ga.ValidateMutator(m); err != nil {
		return nil, err
	}
	return m, nil
}

func improves(candidate, current float64, minimize bool) bool {
	if minimize {
		return candidate < current
	}
	return candidate > current
}
