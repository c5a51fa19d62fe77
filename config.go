package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Morenim/bitga/ga"
	"github.com/Morenim/bitga/problem"
)

// settings is the driver configuration.
type settings struct {
	Problem   string    `yaml:"problem"`
	DB        string    `yaml:"db"`
	Verbosity int       `yaml:"verbosity"`
	Engine    ga.Config `yaml:"engine"`
}

type options struct {
	config          string
	problem         string
	popSize         int
	geneSize        int
	generations     int
	mutationRate    float64
	maxMutationStep int
	seed            uint64
	db              string
	verbosity       int
}

func registerFlags(fs *flag.FlagSet) *options {
	o := new(options)
	fs.StringVar(&o.config, "config", "", "Path to a YAML configuration file.")
	fs.StringVar(&o.problem, "problem", problem.Parabola.Name, "Problem to optimize.")
	fs.IntVar(&o.popSize, "pop", ga.DefaultPopSize, "Population size.")
	fs.IntVar(&o.geneSize, "genes", 0, "Gene length in bits, 0 for the problem default.")
	fs.IntVar(&o.generations, "generations", ga.DefaultMaxGenerations, "Number of generations.")
	fs.Float64Var(&o.mutationRate, "mutation-rate", ga.DefaultMutationRate, "Probability that a child is mutated.")
	fs.IntVar(&o.maxMutationStep, "mutation-step", ga.DefaultMaxMutationStep, "Exclusive bound on bit flips per mutation.")
	fs.Uint64Var(&o.seed, "seed", 0, "Random seed, 0 for a random one.")
	fs.StringVar(&o.db, "db", "", "Path to a bolt database recording the run.")
	fs.IntVar(&o.verbosity, "verbosity", 1, "Verbosity of the output.")
	return o
}

// loadSettings resolves the settings in order: problem defaults, the YAML
// file named by -config, then the flags explicitly set on fs.
func loadSettings(fs *flag.FlagSet, o *options) (settings, error) {
	var data []byte
	if o.config != "" {
		var err error
		if data, err = os.ReadFile(o.config); err != nil {
			return settings{}, errors.Wrap(err, "read config")
		}
	}

	// The problem decides the defaults the rest of the file overrides.
	s := settings{Problem: o.problem, Verbosity: o.verbosity}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return settings{}, errors.Wrapf(err, "parse config %s", o.config)
	}
	if isSet(fs, "problem") {
		s.Problem = o.problem
	}
	p, err := problem.Lookup(s.Problem)
	if err != nil {
		return settings{}, err
	}
	s.Engine = ga.DefaultConfig(p.GeneSize)
	if err := yaml.Unmarshal(data, &s); err != nil {
		return settings{}, errors.Wrapf(err, "parse config %s", o.config)
	}
	s.Problem = p.Name

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pop":
			s.Engine.PopSize = o.popSize
		case "genes":
			s.Engine.GeneSize = o.geneSize
		case "generations":
			s.Engine.MaxGenerations = o.generations
		case "mutation-rate":
			s.Engine.MutationRate = o.mutationRate
		case "mutation-step":
			s.Engine.MaxMutationStep = o.maxMutationStep
		case "seed":
			s.Engine.Seed = o.seed
		case "db":
			s.DB = o.db
		case "verbosity":
			s.Verbosity = o.verbosity
		}
	})
	if s.Engine.GeneSize == 0 {
		s.Engine.GeneSize = p.GeneSize
	}

	return s, s.Engine.Validate()
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
