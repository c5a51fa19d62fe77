// Package problem provides objectives with linear domain mappings for the
// genetic algorithm in package ga.
package problem

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/Morenim/bitga/ga"
)

// ErrUnknownProblem is returned by Lookup for names without a registered problem.
var ErrUnknownProblem = errors.New("problem: unknown problem")

// Linear maps a decoded chromosome n of bits bits onto n/d*Span + Offset,
// where d is 2^bits, or 2^bits - 1 when Closed includes the upper bound.
type Linear struct {
	Offset float64
	Span   float64
	Closed bool
}

func (l Linear) Map(n uint64, bits int) float64 {
	d := math.Ldexp(1, bits)
	if l.Closed {
		d--
	}
	return float64(n)/d*l.Span + l.Offset
}

// Problem is a named one-dimensional objective over a linear domain.
type Problem struct {
	Name     string
	GeneSize int
	Domain   Linear
	F        func(x float64) float64
}

// ToDomain scales by the chromosome's own length, so the domain bounds hold
// for any gene size.
func (p *Problem) ToDomain(c *ga.Chromosome) float64 {
	return p.Domain.Map(c.Decode(), c.Len())
}

func (p *Problem) Objective(x float64) float64 {
	return p.F(x)
}

// Parabola has its single maximum y = 100 at x = 0 on [0, 100].
var Parabola = &Problem{
	Name:     "parabola",
	GeneSize: 8,
	Domain:   Linear{Offset: 0, Span: 100, Closed: true},
	F: func(x float64) float64 {
		return -x*x + 100
	},
}

// Log is y = 100 - ln(x) on [6, 106), maximal at x = 6.
var Log = &Problem{
	Name:     "log",
	GeneSize: 24,
	Domain:   Linear{Offset: 6, Span: 100},
	F: func(x float64) float64 {
		return 100 - math.Log(x)
	},
}

var registry = map[string]*Problem{
	Parabola.Name: Parabola,
	Log.Name:      Log,
}

// Lookup returns the registered problem called name.
func Lookup(name string) (*Problem, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProblem, "%q", name)
	}
	return p, nil
}

// Names returns the registered problem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
