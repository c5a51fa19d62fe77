package ga

import (
	"fmt"
	"math/rand/v2"
)

// Population is an ordered collection of chromosomes. Selection walks it in
// insertion order.
type Population struct {
	Chromosomes []*Chromosome
}

func (pop *Population) Size() int {
	return len(pop.Chromosomes)
}

// Length returns the gene length shared by the population.
func (pop *Population) Length() int {
	if len(pop.Chromosomes) == 0 {
		return 0
	}
	return pop.Chromosomes[0].Len()
}

// NewPopulation returns an unevaluated population of size random chromosomes.
func NewPopulation(size, length int, rng *rand.Rand) *Population {
	pop := new(Population)
	pop.Chromosomes = make([]*Chromosome, size)
	for i := 0; i < size; i++ {
		pop.Chromosomes[i] = NewChromosome(length, rng)
	}
	return pop
}

// Scores returns the scores in population order.
func (pop *Population) Scores() []float64 {
	scores := make([]float64, len(pop.Chromosomes))
	for i, c := range pop.Chromosomes {
		scores[i] = c.Score
	}
	return scores
}

func (pop *Population) String() string {
	return fmt.Sprintf("%v", pop.Chromosomes)
}

// Select draws a parent by roulette wheel restricted to chromosomes scoring
// at least stats.Average. It returns ErrSelectionExhausted when the walk
// ends without an eligible chromosome.
func (pop *Population) Select(stats Stats, rng *rand.Rand) (*Chromosome, error) {
	slice := rng.Float64() * stats.Total
	sum := 0.0
	for _, c := range pop.Chromosomes {
		sum += c.Score
		if sum > slice && c.Score >= stats.Average {
			return c, nil
		}
	}
	return nil, ErrSelectionExhausted
}

// selectEligible draws uniformly among chromosomes scoring at least
// stats.Average. The best chromosome always qualifies.
func (pop *Population) selectEligible(stats Stats, rng *rand.Rand) *Chromosome {
	var n int
	var picked *Chromosome
	for _, c := range pop.Chromosomes {
		if c.Score < stats.Average {
			continue
		}
		n++
		if rng.IntN(n) == 0 {
			picked = c
		}
	}
	return picked
}
