package ga

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/Morenim/bitga/bitset"
)

// Chromosome is a bit-string candidate solution to a maximization problem.
// A nil Gene marks a degenerate chromosome that takes part in no operator.
type Chromosome struct {
	Score float64
	Gene  bitset.BitSet
}

func (c *Chromosome) String() string {
	if c == nil || c.Gene == nil {
		return fmt.Sprintf("<empty> %v", c.score())
	}
	return fmt.Sprintf("%v %v", c.Gene, c.Score)
}

func (c *Chromosome) score() float64 {
	if c == nil {
		return 0
	}
	return c.Score
}

// Len returns the gene length, 0 for a degenerate chromosome.
func (c *Chromosome) Len() int {
	if c == nil || c.Gene == nil {
		return 0
	}
	return c.Gene.Len()
}

// NewChromosome returns a chromosome of size random bits. A non-positive size
// yields a chromosome without a gene.
func NewChromosome(size int, rng *rand.Rand) *Chromosome {
	c := new(Chromosome)
	if size <= 0 {
		return c
	}
	c.Gene = bitset.New(size)
	for i := 0; i < size; i++ {
		if rng.Float64() >= 0.5 {
			c.Gene.Set(i)
		}
	}
	return c
}

// Clone returns a copy of the gene of c with a fresh score, or nil when c
// has no gene.
func Clone(c *Chromosome) *Chromosome {
	if c == nil || c.Gene == nil {
		return nil
	}
	return &Chromosome{Gene: c.Gene.Clone()}
}

// Crossover produces two children by exchanging one random contiguous
// segment between clones of p1 and p2. The first child is based on p1.
func Crossover(p1, p2 *Chromosome, rng *rand.Rand) (*Chromosome, *Chromosome, error) {
	if err := checkParents(p1, p2); err != nil {
		return nil, nil, err
	}
	size := p1.Gene.Len()
	c1, c2 := crossoverAt(p1, p2, rng.IntN(size), rng.IntN(size))
	return c1, c2, nil
}

func checkParents(p1, p2 *Chromosome) error {
	switch {
	case p1 == nil || p2 == nil:
		return errors.Wrap(ErrCrossoverUnavailable, "nil parent")
	case p1.Gene == nil || p2.Gene == nil || p1.Gene.Len() == 0:
		return errors.Wrap(ErrCrossoverUnavailable, "parent without gene")
	case p1.Gene.Len() != p2.Gene.Len():
		return errors.Wrapf(ErrCrossoverUnavailable, "gene lengths %d and %d differ",
			p1.Gene.Len(), p2.Gene.Len())
	}
	return nil
}

// crossoverAt swaps the closed interval between a and b, in either order.
func crossoverAt(p1, p2 *Chromosome, a, b int) (*Chromosome, *Chromosome) {
	c1, c2 := Clone(p1), Clone(p2)
	lo, hi := min(a, b), max(a, b)
	for i := lo; i <= hi; i++ {
		c1.Gene.Swap(c2.Gene, i)
	}
	return c1, c2
}

// Mutate flips count bits at independently drawn positions. A position may
// be drawn more than once, in which case the flips cancel out.
func (c *Chromosome) Mutate(count int, rng *rand.Rand) {
	if c.Gene == nil || c.Gene.Len() == 0 {
		return
	}
	size := c.Gene.Len()
	for i := 0; i < count; i++ {
		c.Gene.Flip(rng.IntN(size))
	}
}

// Decode interprets the gene as an unsigned integer with bit 0 as the most
// significant bit.
func (c *Chromosome) Decode() uint64 {
	if c == nil || c.Gene == nil {
		return 0
	}
	var n uint64
	for i := 0; i < c.Gene.Len(); i++ {
		n <<= 1
		if c.Gene.Has(i) {
			n++
		}
	}
	return n
}
