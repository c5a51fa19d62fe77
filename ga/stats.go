package ga

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Stats holds the score aggregates of one evaluated generation.
type Stats struct {
	Best    float64
	Worst   float64
	Total   float64
	Average float64
	// StdDev is the population standard deviation of the scores.
	StdDev float64
	// Diversity is the mean per-locus gene entropy in bits, in [0, 1].
	Diversity float64
}

// Best is the best solution seen over a whole run.
type Best struct {
	X          float64
	Y          float64
	Generation int
	Gene       string
}

// Report is emitted after every evaluated generation.
type Report struct {
	Generation int
	Stats      Stats
	Best       Best
}

func (r Report) String() string {
	return fmt.Sprintf("generation %d: best %v worst %v average %v total %v stddev %.4f diversity %.4f | historical x %v y %v at generation %d",
		r.Generation, r.Stats.Best, r.Stats.Worst, r.Stats.Average, r.Stats.Total, r.Stats.StdDev, r.Stats.Diversity,
		r.Best.X, r.Best.Y, r.Best.Generation)
}

// Reporter receives the report of each generation. A non-nil error stops the run.
type Reporter func(Report) error

// MultiReporter calls every reporter in order and stops at the first error.
func MultiReporter(reporters ...Reporter) Reporter {
	return func(r Report) error {
		for _, report := range reporters {
			if report == nil {
				continue
			}
			if err := report(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// summarize computes the aggregates of an evaluated, non-empty population in
// a single pass and returns the index of the first best chromosome.
func summarize(pop *Population) (Stats, int) {
	first := pop.Chromosomes[0].Score
	stats := Stats{Best: first, Worst: first}
	best := 0
	for i, c := range pop.Chromosomes {
		if c.Score > stats.Best {
			stats.Best = c.Score
			best = i
		}
		if c.Score < stats.Worst {
			stats.Worst = c.Score
		}
		stats.Total += c.Score
	}
	stats.Average = stats.Total / float64(pop.Size())
	// Rounding can push the mean of equal scores above the maximum.
	stats.Average = min(stats.Average, stats.Best)
	_, stats.StdDev = stat.PopMeanStdDev(pop.Scores(), nil)
	stats.Diversity = diversity(pop)
	return stats, best
}
