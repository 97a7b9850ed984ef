package env

import (
	"gonum.org/v1/gonum/stat"
)

// RunResult captures the outcome of one seeded run
type RunResult struct {
	Seed        int64   `json:"seed"`
	Generations int     `json:"generations"`
	BestFitness float64 `json:"best_fitness"`
	Solved      bool    `json:"solved"`
	Best        string  `json:"best"`
}

// RunStats holds statistics across runs
type RunStats struct {
	Runs            int
	Solved          int
	BestMean        float64
	BestStd         float64
	GenerationsMean float64
	// Champion is the best result in the problem's direction
	Champion RunResult
}

// Aggregate computes statistics from multiple run results
func Aggregate(results []RunResult, minimize bool) RunStats {
	n := len(results)
	if n == 0 {
		return RunStats{}
	}

	agg := RunStats{Runs: n, Champion: results[0]}
	best := make([]float64, n)
	gens := make([]float64, n)
	for i, r := range results {
		best[i] = r.BestFitness
		gens[i] = float64(r.Generations)
		if r.Solved {
			agg.Solved++
		}
		if (minimize && r.BestFitness < agg.Champion.BestFitness) ||
			(!minimize && r.BestFitness > agg.Champion.BestFitness) {
			agg.Champion = r
		}
	}

	agg.BestMean, agg.BestStd = stat.PopMeanStdDev(best, nil)
	agg.GenerationsMean = stat.Mean(gens, nil)
	return agg
}

// SuccessRate is the fraction of solved runs
func (a RunStats) SuccessRate() float64 {
	if a.Runs == 0 {
		return 0
	}
	return float64(a.Solved) / float64(a.Runs)
}
