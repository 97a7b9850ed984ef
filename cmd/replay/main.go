package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"evolve/internal/env"
	"evolve/internal/logging"
)

func main() {
	tracePath := flag.String("trace", "artifacts/trace.json", "path to trace JSON")
	championPath := flag.String("champion", "", "optional champion JSON to print after the trace")
	delay := flag.Int("delay", 50, "delay between generations in milliseconds")
	flag.Parse()

	trace, err := env.LoadTrace(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Problem: %s, Seed: %d, Generations: %d\n", trace.Problem, trace.Seed, len(trace.Frames))
	fmt.Println()

	frameDelay := time.Duration(*delay) * time.Millisecond
	for _, f := range trace.Frames {
		fmt.Printf("Gen %4d | Best: %10.5f | Avg: %10.5f | %s\n", f.Generation, f.Best, f.Average, f.Genes)
		if frameDelay > 0 {
			time.Sleep(frameDelay)
		}
	}

	if *championPath == "" {
		return
	}
	champ, err := logging.LoadChampion(*championPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading champion: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("Champion: %s (seed %d, gen %d, fitness %g)\n", champ.Genes, champ.Seed, champ.Generation, champ.Fitness)
}
