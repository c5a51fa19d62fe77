package ga

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morenim/bitga/bitset"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func fromString(t *testing.T, s string) *Chromosome {
	t.Helper()
	bits, err := bitset.FromString(s)
	require.NoError(t, err)
	return &Chromosome{Gene: bits}
}

func TestNewChromosome(t *testing.T) {
	rng := newRand()

	for _, size := range []int{0, -1} {
		c := NewChromosome(size, rng)
		require.NotNil(t, c)
		assert.Nil(t, c.Gene, "size %d", size)
		assert.Zero(t, c.Len())
		assert.Zero(t, c.Decode())
	}

	ones := 0
	for i := 0; i < 100; i++ {
		c := NewChromosome(100, rng)
		require.Equal(t, 100, c.Len())
		for j := 0; j < c.Len(); j++ {
			if c.Gene.Has(j) {
				ones++
			}
		}
	}
	assert.InDelta(t, 5000, ones, 300, "coin flips should be unbiased")
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone(nil))
	assert.Nil(t, Clone(&Chromosome{}))

	src := fromString(t, "1011")
	src.Score = 42
	dst := Clone(src)

	require.NotNil(t, dst)
	assert.NotSame(t, src, dst)
	assert.Equal(t, "1011", fmt.Sprint(dst.Gene))
	assert.Zero(t, dst.Score)

	dst.Gene.Flip(0)
	assert.Equal(t, "1011", fmt.Sprint(src.Gene), "clone shares storage with source")
}

func TestCrossoverUnavailable(t *testing.T) {
	rng := newRand()
	p := fromString(t, "1010")

	tests := []struct {
		name   string
		p1, p2 *Chromosome
	}{
		{"nil first", nil, p},
		{"nil second", p, nil},
		{"no gene", p, &Chromosome{}},
		{"empty gene", &Chromosome{Gene: bitset.New(0)}, &Chromosome{Gene: bitset.New(0)}},
		{"length mismatch", p, fromString(t, "101")},
	}
	for _, test := range tests {
		c1, c2, err := Crossover(test.p1, test.p2, rng)
		assert.ErrorIs(t, err, ErrCrossoverUnavailable, test.name)
		assert.Nil(t, c1, test.name)
		assert.Nil(t, c2, test.name)
	}
}

func TestCrossoverSegment(t *testing.T) {
	p1 := fromString(t, "10110010")
	p2 := fromString(t, "01101101")

	for _, indices := range [][2]int{{2, 5}, {5, 2}} {
		c1, c2 := crossoverAt(p1, p2, indices[0], indices[1])

		for i := 0; i < 8; i++ {
			if i >= 2 && i <= 5 {
				assert.Equal(t, p2.Gene.Has(i), c1.Gene.Has(i), "child 1 bit %d", i)
				assert.Equal(t, p1.Gene.Has(i), c2.Gene.Has(i), "child 2 bit %d", i)
			} else {
				assert.Equal(t, p1.Gene.Has(i), c1.Gene.Has(i), "child 1 bit %d", i)
				assert.Equal(t, p2.Gene.Has(i), c2.Gene.Has(i), "child 2 bit %d", i)
			}
		}
		assert.Equal(t, "10101110", fmt.Sprint(c1.Gene))
		assert.Equal(t, "01110001", fmt.Sprint(c2.Gene))
	}

	assert.Equal(t, "10110010", fmt.Sprint(p1.Gene), "parent 1 modified")
	assert.Equal(t, "01101101", fmt.Sprint(p2.Gene), "parent 2 modified")
}

func TestCrossoverSingleIndex(t *testing.T) {
	p1 := fromString(t, "0000")
	p2 := fromString(t, "1111")

	c1, c2 := crossoverAt(p1, p2, 1, 1)
	assert.Equal(t, "0100", fmt.Sprint(c1.Gene))
	assert.Equal(t, "1011", fmt.Sprint(c2.Gene))
}

func TestCrossoverPreservesBits(t *testing.T) {
	rng := newRand()
	p1 := NewChromosome(32, rng)
	p2 := NewChromosome(32, rng)

	for i := 0; i < 100; i++ {
		c1, c2, err := Crossover(p1, p2, rng)
		require.NoError(t, err)
		require.Equal(t, 32, c1.Len())
		require.Equal(t, 32, c2.Len())
		for j := 0; j < 32; j++ {
			// Every position holds the parents' pair of bits in some order.
			parents := []bool{p1.Gene.Has(j), p2.Gene.Has(j)}
			children := []bool{c1.Gene.Has(j), c2.Gene.Has(j)}
			assert.ElementsMatch(t, parents, children)
		}
	}
}

func TestMutate(t *testing.T) {
	rng := newRand()

	c := fromString(t, "10110")
	c.Mutate(0, rng)
	assert.Equal(t, "10110", fmt.Sprint(c.Gene), "zero count must be a no-op")

	c.Gene.Flip(3)
	c.Gene.Flip(3)
	assert.Equal(t, "10110", fmt.Sprint(c.Gene), "double flip must restore the bit")

	single := fromString(t, "1")
	single.Mutate(2, rng)
	assert.Equal(t, "1", fmt.Sprint(single.Gene), "two flips of the only bit cancel")
	single.Mutate(3, rng)
	assert.Equal(t, "0", fmt.Sprint(single.Gene))

	(&Chromosome{}).Mutate(3, rng)
}

var decodeTests = []struct {
	gene     string
	expected uint64
}{
	{"101", 5},
	{"0", 0},
	{"00000000", 0},
	{"1111", 15},
	{"10000000", 128},
	{"00000001", 1},
	{"1111111111111111111111111111111111111111111111111111111111111111", 1<<64 - 1},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		c := fromString(t, test.gene)
		assert.Equal(t, test.expected, c.Decode(), "Decode(%s)", test.gene)
	}

	c := &Chromosome{Gene: bitset.FromBools([]bool{true, false, true})}
	assert.Equal(t, uint64(5), c.Decode())

	assert.Zero(t, (&Chromosome{}).Decode())
	assert.Zero(t, (*Chromosome)(nil).Decode())
}
