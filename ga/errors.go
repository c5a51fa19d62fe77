package ga

import "github.com/pkg/errors"

var (
	ErrInvalidPopulationSize   = errors.New("ga: population size must be positive")
	ErrInvalidGeneSize         = errors.New("ga: gene size must be in [1, 64]")
	ErrInvalidGenerations      = errors.New("ga: max generations must be positive")
	ErrInvalidMutationRate     = errors.New("ga: mutation rate must be in [0, 1]")
	ErrInvalidMutationStep     = errors.New("ga: max mutation step must be non-negative")
	ErrInvalidSelectionRetries = errors.New("ga: selection retries must be positive")
	ErrNilProblem              = errors.New("ga: problem is nil")

	// ErrCrossoverUnavailable is returned by Crossover when the parents cannot
	// be recombined. The engine retries parent selection on it.
	ErrCrossoverUnavailable = errors.New("ga: crossover unavailable")
	// ErrSelectionExhausted is returned by Select when the roulette walk finds
	// no eligible parent. The engine retries on it.
	ErrSelectionExhausted = errors.New("ga: selection exhausted")
)
