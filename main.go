package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/Morenim/bitga/ga"
	"github.com/Morenim/bitga/problem"
	"github.com/Morenim/bitga/store"
)

// logReporter logs the report of each generation: every generation at
// verbosity 2 and above, every tenth at verbosity 1.
func logReporter(verbosity int) ga.Reporter {
	return func(r ga.Report) error {
		switch {
		case verbosity >= 2:
			log.Print(r)
		case verbosity == 1 && r.Generation%10 == 0:
			log.Print(r)
		}
		return nil
	}
}

// run optimizes the configured problem and returns the finished run record.
// The record is saved to the database when one is configured.
func run(s settings) (store.Run, error) {
	p, err := problem.Lookup(s.Problem)
	if err != nil {
		return store.Run{}, err
	}

	reporters := []ga.Reporter{logReporter(s.Verbosity)}

	var client *store.Client
	record := store.NewRun(p.Name, s.Engine)
	if s.DB != "" {
		if client, err = store.Open(s.DB); err != nil {
			return record, err
		}
		defer client.Close()
		if err := client.SaveRun(record); err != nil {
			return record, err
		}
		reporters = append(reporters, client.Reporter(record.ID))
	}

	engine, err := ga.NewEngine(s.Engine, p, ga.WithReporter(ga.MultiReporter(reporters...)))
	if err != nil {
		return record, err
	}

	if s.Verbosity >= 1 {
		log.Printf("Optimizing %s: population %d, %d bits, %d generations, mutation rate %v, max mutation step %d",
			p.Name, s.Engine.PopSize, s.Engine.GeneSize, s.Engine.MaxGenerations,
			s.Engine.MutationRate, s.Engine.MaxMutationStep)
	}

	record.Final, err = engine.Run()
	record.FinishedAt = time.Now().UTC()
	if err != nil {
		return record, err
	}

	if client != nil {
		if err := client.SaveRun(record); err != nil {
			return record, err
		}
		stored, err := client.LastGeneration(record.ID)
		if err != nil {
			return record, err
		}
		if s.Verbosity >= 1 {
			log.Printf("Stored run %s with %d generations in %s", record.ID, stored, s.DB)
		}
	}

	return record, nil
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := registerFlags(fs)
	fs.Parse(os.Args[1:])

	s, err := loadSettings(fs, opts)
	if err != nil {
		log.Fatalf("Fatal error: %v", err)
	}

	record, err := run(s)
	if err != nil {
		log.Fatalf("Fatal error: %v", err)
	}

	best := record.Final.Best
	log.Printf("Best x %v y %v found in generation %d (gene %s)",
		best.X, best.Y, best.Generation, best.Gene)
}
