package ga

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	DefaultPopSize          = 100
	DefaultMaxGenerations   = 500
	DefaultMutationRate     = 0.01
	DefaultMaxMutationStep  = 3
	DefaultSelectionRetries = 1000
)

// Config holds the parameters of a run.
type Config struct {
	// PopSize is the number of chromosomes kept in every generation.
	PopSize int `yaml:"pop_size" validate:"gt=0"`
	// GeneSize is the number of bits per chromosome. Decoding is limited to 64 bits.
	GeneSize int `yaml:"gene_size" validate:"gt=0,lte=64"`
	// MaxGenerations is the number of evaluated generations, the initial one included.
	MaxGenerations int `yaml:"max_generations" validate:"gt=0"`
	// MutationRate is the probability that a child is mutated.
	MutationRate float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	// MaxMutationStep bounds the number of bit flips of one mutation (exclusive).
	MaxMutationStep int `yaml:"max_mutation_step" validate:"gte=0"`
	// SelectionRetries is the number of consecutive failed roulette draws
	// tolerated before falling back to a uniform draw among eligible parents.
	SelectionRetries int `yaml:"selection_retries" validate:"gt=0"`
	// Seed for the random source, 0 for a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the default configuration for chromosomes of geneSize bits.
func DefaultConfig(geneSize int) Config {
	return Config{
		PopSize:          DefaultPopSize,
		GeneSize:         geneSize,
		MaxGenerations:   DefaultMaxGenerations,
		MutationRate:     DefaultMutationRate,
		MaxMutationStep:  DefaultMaxMutationStep,
		SelectionRetries: DefaultSelectionRetries,
	}
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	fieldErrors = map[string]error{
		"PopSize":          ErrInvalidPopulationSize,
		"GeneSize":         ErrInvalidGeneSize,
		"MaxGenerations":   ErrInvalidGenerations,
		"MutationRate":     ErrInvalidMutationRate,
		"MaxMutationStep":  ErrInvalidMutationStep,
		"SelectionRetries": ErrInvalidSelectionRetries,
	}
)

// Validate reports the first invalid parameter as one of the ErrInvalid* errors.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "ga: validate config")
	}
	for _, fe := range verrs {
		if sentinel, ok := fieldErrors[fe.StructField()]; ok {
			return errors.Wrapf(sentinel, "%s=%v", fe.Field(), fe.Value())
		}
	}
	return errors.Wrap(err, "ga: validate config")
}
