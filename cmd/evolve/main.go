package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"evolve/internal/config"
	"evolve/internal/env"
	"evolve/internal/eval"
	"evolve/internal/logging"
)

func main() {
	configPath := flag.String("config", "configs/word.yaml", "path to config file")
	generations := flag.Int("generations", 0, "override the number of generations")
	runs := flag.Int("runs", 0, "override the number of seeded runs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *generations > 0 {
		cfg.Run.Generations = *generations
	}
	if *runs > 0 {
		cfg.Run.Runs = *runs
	}

	console := logging.NewConsole(cfg.Logging.Level)
	console.Info("starting",
		"config", *configPath,
		"problem", cfg.Problem.Name,
		"population", cfg.GA.Population,
		"selection", cfg.GA.Selection,
		"crossover", cfg.GA.Crossover,
		"mutation", cfg.GA.Mutation,
		"generations", cfg.Run.Generations,
		"runs", cfg.Run.Runs,
	)

	logger, err := logging.NewLogger(cfg.Logging.CSVPath, cfg.Logging.JSONPath, console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := eval.NewRunner(cfg, logger, console)
	startTime := time.Now()

	outcomes, err := runner.RunAll(ctx)
	if cerr := logger.Close(); cerr != nil {
		console.Warn("closing metrics files", "err", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running: %v\n", err)
		os.Exit(1)
	}

	results := make([]env.RunResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = o.Result
	}
	agg := env.Aggregate(results, runner.Minimize())

	console.Info("done",
		"batch", runner.Batch(),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
		"runs", agg.Runs,
		"solved", agg.Solved,
		"success_rate", agg.SuccessRate(),
		"best_mean", agg.BestMean,
		"best_std", agg.BestStd,
		"generations_mean", agg.GenerationsMean,
	)

	champ := agg.Champion
	fmt.Printf("Champion (seed %d, gen %d): %s | Fitness: %g\n",
		champ.Seed, champ.Generations, champ.Best, champ.BestFitness)

	if err := logging.SaveChampion(cfg.Logging.ChampionPath, logging.Champion{
		Problem:    cfg.Problem.Name,
		Seed:       champ.Seed,
		Generation: champ.Generations,
		Fitness:    champ.BestFitness,
		Genes:      champ.Best,
	}); err != nil {
		console.Warn("failed to save champion", "err", err)
	}

	for _, o := range outcomes {
		if o.Result.Seed != champ.Seed {
			continue
		}
		if err := o.Trace.Save(cfg.Logging.TracePath); err != nil {
			console.Warn("failed to save trace", "err", err)
		}
		break
	}
}
