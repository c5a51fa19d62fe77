package problem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morenim/bitga/bitset"
	"github.com/Morenim/bitga/ga"
)

func chromosome(t *testing.T, s string) *ga.Chromosome {
	t.Helper()
	bits, err := bitset.FromString(s)
	require.NoError(t, err)
	return &ga.Chromosome{Gene: bits}
}

var domainTests = []struct {
	problem  *Problem
	gene     string
	expected float64
}{
	{Parabola, "00000000", 0},
	{Parabola, "11111111", 100},
	{Parabola, "00000001", 100.0 / 255},
	{Log, "000000000000000000000000", 6},
	{Log, "100000000000000000000000", 56},
	{Parabola, "1111111111111111", 100},
	{Parabola, "1000000000000000", 100 * 32768.0 / 65535},
	{Log, "10000000", 56},
	{Log, "11111111", 6 + 100*255.0/256},
}

func TestToDomain(t *testing.T) {
	for _, test := range domainTests {
		c := chromosome(t, test.gene)
		assert.InDelta(t, test.expected, test.problem.ToDomain(c), 1e-9,
			"%s.ToDomain(%s)", test.problem.Name, test.gene)
	}
}

func TestLinearMap(t *testing.T) {
	open := Linear{Offset: 6, Span: 100}
	closed := Linear{Span: 100, Closed: true}

	assert.Equal(t, 6.0, open.Map(0, 4))
	assert.Equal(t, 6+100*15.0/16, open.Map(15, 4))
	assert.Equal(t, 100.0, closed.Map(15, 4))
	assert.Equal(t, 100.0, closed.Map(math.MaxUint64, 64))
	assert.Less(t, open.Map(math.MaxUint64, 64), 106.0+1e-9)
}

func TestObjective(t *testing.T) {
	assert.Equal(t, 100.0, Parabola.Objective(0))
	assert.Equal(t, 0.0, Parabola.Objective(10))
	assert.InDelta(t, 100-math.Log(6), Log.Objective(6), 1e-12)
}

func TestLookup(t *testing.T) {
	p, err := Lookup("parabola")
	require.NoError(t, err)
	assert.Same(t, Parabola, p)

	_, err = Lookup("rosenbrock")
	assert.ErrorIs(t, err, ErrUnknownProblem)

	assert.Equal(t, []string{"log", "parabola"}, Names())
}

func TestLogConverges(t *testing.T) {
	cfg := ga.DefaultConfig(Log.GeneSize)
	cfg.MaxGenerations = 100
	cfg.Seed = 7

	engine, err := ga.NewEngine(cfg, Log)
	require.NoError(t, err)

	final, err := engine.Run()
	require.NoError(t, err)

	// The maximum is 100 - ln(6) at x = 6; ln is flat enough there that
	// the best-ever point lands close to the lower bound.
	assert.InDelta(t, 6, final.Best.X, 5)
	assert.InDelta(t, 100-math.Log(6), final.Best.Y, 0.6)
}
