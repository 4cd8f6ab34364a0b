package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/evotsp/batch"
	"github.com/katalvlaran/evotsp/evolution"
	"github.com/katalvlaran/evotsp/geom"
	"github.com/katalvlaran/evotsp/operators"
)

// fileConfig is the YAML layout. Absent keys keep their defaults.
type fileConfig struct {
	Cities               *int                         `yaml:"cities"`
	Points               [][2]float64                 `yaml:"points"`
	Population           *int                         `yaml:"population"`
	ParentPool           *int                         `yaml:"parent_pool"`
	MutationProbability  *float64                     `yaml:"mutation_probability"`
	Generations          *int                         `yaml:"generations"`
	ConvergenceWindow    *int                         `yaml:"convergence_window"`
	ConvergenceThreshold *float64                     `yaml:"convergence_threshold"`
	Dispersion           *evolution.Dispersion        `yaml:"dispersion"`
	RateWindow           *int                         `yaml:"rate_window"`
	Recombination        *operators.RecombinationKind `yaml:"recombination"`
	Mutation             *operators.MutationKind      `yaml:"mutation"`
	Replacement          *evolution.Replacement       `yaml:"replacement"`
	Checkpoint           *int                         `yaml:"checkpoint"`
	PrecomputeDistances  *bool                        `yaml:"precompute_distances"`
	Seed                 *int64                       `yaml:"seed"`

	Batch struct {
		Repetitions *int `yaml:"repetitions"`
		Workers     *int `yaml:"workers"`
	} `yaml:"batch"`

	Log struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	f, err := os.Open(path)
	if err != nil {
		return fc, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	// An empty file overrides nothing.
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("config %s: %w", path, err)
	}

	return fc, nil
}

// settings is the resolved configuration of one command.
type settings struct {
	batch     batch.Config
	logLevel  string
	logFormat string
}

func defaultSettings() settings {
	return settings{
		batch:     batch.DefaultConfig(),
		logLevel:  "info",
		logFormat: "console",
	}
}

func (s *settings) applyFile(fc fileConfig) {
	e := &s.batch.Engine
	setInt(&e.CityCount, fc.Cities)
	if len(fc.Points) > 0 {
		e.Cities = make(geom.Points, len(fc.Points))
		for i, p := range fc.Points {
			e.Cities[i] = geom.Point{X: p[0], Y: p[1]}
		}
		if fc.Cities == nil {
			e.CityCount = 0
		}
	}
	setInt(&e.PopulationSize, fc.Population)
	setInt(&e.ParentPoolSize, fc.ParentPool)
	setFloat(&e.MutationProbability, fc.MutationProbability)
	setInt(&e.MaxGenerations, fc.Generations)
	setInt(&e.ConvergenceWindow, fc.ConvergenceWindow)
	setFloat(&e.ConvergenceThreshold, fc.ConvergenceThreshold)
	if fc.Dispersion != nil {
		e.Dispersion = *fc.Dispersion
	}
	setInt(&e.RateWindow, fc.RateWindow)
	if fc.Recombination != nil {
		e.Recombination = *fc.Recombination
	}
	if fc.Mutation != nil {
		e.Mutation = *fc.Mutation
	}
	if fc.Replacement != nil {
		e.Replacement = *fc.Replacement
	}
	setInt(&e.CheckpointGeneration, fc.Checkpoint)
	if fc.PrecomputeDistances != nil {
		e.PrecomputeDistances = *fc.PrecomputeDistances
	}
	if fc.Seed != nil {
		e.Seed = *fc.Seed
		s.batch.Seed = *fc.Seed
	}
	setInt(&s.batch.Repetitions, fc.Batch.Repetitions)
	setInt(&s.batch.Workers, fc.Batch.Workers)
	if fc.Log.Level != nil {
		s.logLevel = *fc.Log.Level
	}
	if fc.Log.Format != nil {
		s.logFormat = *fc.Log.Format
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// commandFlags holds the flag values shared by every command.
type commandFlags struct {
	fs         *flag.FlagSet
	config     string
	cities     int
	population int
	pool       int
	gens       int
	mutation   float64
	crossover  string
	mutator    string
	replace    string
	dispersion string
	threshold  float64
	window     int
	checkpoint int
	seed       int64
	logLevel   string
	logFormat  string
	reps       int
	workers    int
}

func newCommandFlags(name string, withBatch bool) *commandFlags {
	d := defaultSettings()
	e := d.batch.Engine
	f := &commandFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}

	f.fs.StringVar(&f.config, "config", "", "YAML configuration file")
	f.fs.IntVar(&f.cities, "cities", e.CityCount, "number of random cities")
	f.fs.IntVar(&f.population, "population", e.PopulationSize, "population size")
	f.fs.IntVar(&f.pool, "pool", e.ParentPoolSize, "parent pool size per generation")
	f.fs.IntVar(&f.gens, "generations", e.MaxGenerations, "generation budget")
	f.fs.Float64Var(&f.mutation, "mutation", e.MutationProbability, "mutation probability per child")
	f.fs.StringVar(&f.crossover, "crossover", e.Recombination.String(), "recombination: erx|ox")
	f.fs.StringVar(&f.mutator, "mutator", e.Mutation.String(), "mutation move: invert|swap|rotate|relocate")
	f.fs.StringVar(&f.replace, "replacement", e.Replacement.String(), "replacement: global|pairwise")
	f.fs.StringVar(&f.dispersion, "dispersion", e.Dispersion.String(), "convergence measure: stddev|legacy")
	f.fs.Float64Var(&f.threshold, "threshold", e.ConvergenceThreshold, "convergence threshold")
	f.fs.IntVar(&f.window, "window", e.ConvergenceWindow, "convergence window in generations")
	f.fs.IntVar(&f.checkpoint, "checkpoint", e.CheckpointGeneration, "record the best cost at this generation (0 = off)")
	f.fs.Int64Var(&f.seed, "seed", 0, "random seed (0 = default)")
	f.fs.StringVar(&f.logLevel, "log-level", d.logLevel, "log level: debug|info|warn|error")
	f.fs.StringVar(&f.logFormat, "log-format", d.logFormat, "log format: console|json")
	if withBatch {
		f.fs.IntVar(&f.reps, "reps", d.batch.Repetitions, "number of independent runs")
		f.fs.IntVar(&f.workers, "workers", d.batch.Workers, "concurrent runs (0 = GOMAXPROCS)")
	}

	return f
}

var errBadFlag = errors.New("invalid flag value")

// resolve parses args and layers defaults, the -config file, then every
// flag given explicitly.
func (f *commandFlags) resolve(args []string) (settings, error) {
	s := defaultSettings()
	if err := f.fs.Parse(args); err != nil {
		return s, err
	}
	if f.fs.NArg() > 0 {
		return s, usageError(fmt.Sprintf("unexpected argument: %s", f.fs.Arg(0)))
	}
	if f.config != "" {
		fc, err := loadFileConfig(f.config)
		if err != nil {
			return s, err
		}
		s.applyFile(fc)
	}

	var err error
	e := &s.batch.Engine
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "cities":
			e.CityCount = f.cities
			e.Cities = nil
		case "population":
			e.PopulationSize = f.population
		case "pool":
			e.ParentPoolSize = f.pool
		case "generations":
			e.MaxGenerations = f.gens
		case "mutation":
			e.MutationProbability = f.mutation
		case "crossover":
			e.Recombination, err = operators.ParseRecombination(f.crossover)
		case "mutator":
			e.Mutation, err = operators.ParseMutation(f.mutator)
		case "replacement":
			e.Replacement, err = evolution.ParseReplacement(f.replace)
		case "dispersion":
			e.Dispersion, err = evolution.ParseDispersion(f.dispersion)
		case "threshold":
			e.ConvergenceThreshold = f.threshold
		case "window":
			e.ConvergenceWindow = f.window
		case "checkpoint":
			e.CheckpointGeneration = f.checkpoint
		case "seed":
			e.Seed = f.seed
			s.batch.Seed = f.seed
		case "log-level":
			s.logLevel = f.logLevel
		case "log-format":
			s.logFormat = f.logFormat
		case "reps":
			s.batch.Repetitions = f.reps
		case "workers":
			s.batch.Workers = f.workers
		}
		if err != nil {
			err = fmt.Errorf("%w -%s: %w", errBadFlag, fl.Name, err)
		}
	})

	return s, err
}
