package ga

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Problem supplies the two collaborators of a run. Both must be pure.
type Problem interface {
	// ToDomain maps a chromosome onto the search domain.
	ToDomain(c *Chromosome) float64
	// Objective is the function being maximized.
	Objective(x float64) float64
}

// ProblemFuncs adapts two functions to the Problem interface.
type ProblemFuncs struct {
	Domain func(c *Chromosome) float64
	F      func(x float64) float64
}

func (p ProblemFuncs) ToDomain(c *Chromosome) float64 { return p.Domain(c) }
func (p ProblemFuncs) Objective(x float64) float64    { return p.F(x) }

// Engine runs the generational loop. It owns the population and every
// statistic; it is not safe for concurrent use.
type Engine struct {
	config   Config
	problem  Problem
	rng      *rand.Rand
	reporter Reporter

	pop        *Population
	generation int
	stats      Stats
	best       Best
	hasBest    bool
	history    []Report
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand replaces the random source derived from Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithReporter sets the reporter called after every evaluated generation.
func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// NewEngine validates config and returns an engine for problem.
func NewEngine(config Config, problem Problem, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, ErrNilProblem
	}

	e := &Engine{
		config:  config,
		problem: problem,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		e.rng = rand.New(rand.NewPCG(seed, seed))
	}
	return e, nil
}

// Run evolves a fresh population until MaxGenerations generations have been
// evaluated and returns the last report.
func (e *Engine) Run() (Report, error) {
	if err := e.Init(); err != nil {
		return Report{}, err
	}
	for !e.Done() {
		if err := e.Step(); err != nil {
			return e.report(), err
		}
	}
	return e.report(), nil
}

// Init builds and evaluates the initial population as generation 1.
func (e *Engine) Init() error {
	e.generation = 1
	e.hasBest = false
	e.best = Best{}
	e.history = nil
	e.pop = NewPopulation(e.config.PopSize, e.config.GeneSize, e.rng)
	e.evaluate()
	return e.emit()
}

// Done reports whether the generation budget is exhausted.
func (e *Engine) Done() bool {
	return e.generation >= e.config.MaxGenerations
}

// Step produces, mutates and evaluates the next generation. Generations are
// numbered from 1 for the initial population, so the n-th Step evaluates
// generation n+1.
func (e *Engine) Step() error {
	if e.pop == nil {
		return errors.New("ga: step before init")
	}
	e.generation++
	e.pop = e.reproduce()
	e.mutate()
	e.evaluate()
	return e.emit()
}

func (e *Engine) reproduce() *Population {
	size := e.config.PopSize
	children := make([]*Chromosome, 0, size+1)
	for len(children) < size {
		p1, p2 := e.drawParent(), e.drawParent()
		c1, c2, err := Crossover(p1, p2, e.rng)
		if err != nil {
			continue
		}
		children = append(children, c1, c2)
	}
	// An odd population size leaves one surplus child; the last one is dropped.
	return &Population{Chromosomes: children[:size]}
}

// drawParent retries roulette selection and falls back to a uniform draw
// among eligible chromosomes once SelectionRetries draws have failed.
func (e *Engine) drawParent() *Chromosome {
	for i := 0; i < e.config.SelectionRetries; i++ {
		if c, err := e.pop.Select(e.stats, e.rng); err == nil {
			return c
		}
	}
	return e.pop.selectEligible(e.stats, e.rng)
}

func (e *Engine) mutate() {
	for _, c := range e.pop.Chromosomes {
		if e.rng.Float64() < e.config.MutationRate {
			count := 0
			if e.config.MaxMutationStep > 0 {
				count = e.rng.IntN(e.config.MaxMutationStep)
			}
			c.Mutate(count, e.rng)
		}
	}
}

func (e *Engine) evaluate() {
	for _, c := range e.pop.Chromosomes {
		c.Score = e.problem.Objective(e.problem.ToDomain(c))
	}

	var best int
	e.stats, best = summarize(e.pop)

	if !e.hasBest || e.stats.Best > e.best.Y {
		winner := e.pop.Chromosomes[best]
		e.best = Best{
			X:          e.problem.ToDomain(winner),
			Y:          winner.Score,
			Generation: e.generation,
			Gene:       fmt.Sprint(winner.Gene),
		}
		e.hasBest = true
	}
}

func (e *Engine) report() Report {
	return Report{
		Generation: e.generation,
		Stats:      e.stats,
		Best:       e.best,
	}
}

func (e *Engine) emit() error {
	r := e.report()
	e.history = append(e.history, r)
	if e.reporter == nil {
		return nil
	}
	return errors.Wrapf(e.reporter(r), "ga: report generation %d", e.generation)
}

// Generation returns the number of the last evaluated generation.
func (e *Engine) Generation() int {
	return e.generation
}

// Stats returns the aggregates of the last evaluated generation.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Best returns the best solution seen so far in the run.
func (e *Engine) Best() Best {
	return e.best
}

// Population returns the current population. Callers must not modify it.
func (e *Engine) Population() *Population {
	return e.pop
}

// History returns the report of every generation evaluated so far. The
// slice is a copy.
func (e *Engine) History() []Report {
	return append([]Report(nil), e.history...)
}

// Config returns the configuration of the engine.
func (e *Engine) Config() Config {
	return e.config
}
