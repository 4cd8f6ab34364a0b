// SPDX-License-Identifier: MIT

package evolution

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/evotsp/chromosome"
	"github.com/katalvlaran/evotsp/geom"
	"github.com/katalvlaran/evotsp/operators"
)

// Engine evolves a population of tours over one fixed city set.
type Engine struct {
	cfg Config

	rng        *rand.Rand
	observer   Observer
	log        *zap.Logger
	now        func() time.Time
	cities     geom.Points
	metric     geom.Metric
	recombiner operators.Recombiner
	mutator    operators.Mutator

	population  []*chromosome.Chromosome
	candidates  []*chromosome.Chromosome
	selector    *selector
	convergence *convergence
	throughput  *throughput

	generation          int
	started             bool
	converged           bool
	everConverged       bool
	convergenceGen      int
	firstConvergenceGen int
	checkpointCost    float64
	checkpointReached bool
	suffix            string

	state atomic.Int32
	stop  atomic.Bool

	mu   sync.RWMutex
	snap Snapshot
}

// New validates cfg, places the cities and seeds a sorted random
// population. Cities and tours are drawn from the engine's random source in
// that order, so a fixed seed reproduces the whole run.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg: cfg,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = operators.RNGFromSeed(cfg.Seed)
	}

	n := cfg.cityCount()
	if len(cfg.Cities) > 0 {
		e.cities = cfg.Cities.Clone()
	} else {
		e.cities = geom.RandomPoints(n, e.rng)
	}

	e.metric = e.cities
	if cfg.PrecomputeDistances {
		m, err := geom.NewDistanceMatrix(e.cities)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		e.metric = m
	}

	var err error
	if e.recombiner, err = operators.NewRecombiner(cfg.Recombination, n, e.rng); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if e.mutator, err = operators.NewMutator(cfg.Mutation, e.rng); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e.population = make([]*chromosome.Chromosome, cfg.PopulationSize)
	for i := range e.population {
		if e.population[i], err = chromosome.Random(n, e.metric, e.rng); err != nil {
			return nil, fmt.Errorf("evolution: seeding population: %w", err)
		}
	}
	chromosome.Sort(e.population)

	e.candidates = make([]*chromosome.Chromosome, 0, 2*cfg.ParentPoolSize)
	e.selector = newSelector(cfg.PopulationSize, cfg.ParentPoolSize)
	e.convergence = &convergence{
		costs:     newWindow(cfg.ConvergenceWindow),
		threshold: cfg.ConvergenceThreshold,
		measure:   cfg.Dispersion,
	}
	e.throughput = &throughput{nanos: newWindow(cfg.RateWindow)}
	e.publish(StartupStatus, 0)

	return e, nil
}

// Run evolves until the generation budget is spent, Stop is called or ctx
// is done, checking for cancellation only between generations. A stopped
// engine resumes where it left off on the next Run.
//
// Errors: ErrRunning, ErrCompleted, or an operator failure (the engine is
// then Failed). Cancellation is reported through Result.Outcome, not as an
// error.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if err := e.acquire(); err != nil {
		return Result{}, err
	}

	if !e.started {
		e.started = true
		e.log.Info("evolution started",
			zap.Int("cities", len(e.cities)),
			zap.Int("population", e.cfg.PopulationSize),
			zap.Int("parent_pool", e.cfg.ParentPoolSize),
			zap.Int("max_generations", e.cfg.MaxGenerations),
			zap.Stringer("recombination", e.cfg.Recombination),
			zap.Stringer("mutation", e.cfg.Mutation),
			zap.Stringer("replacement", e.cfg.Replacement))
		e.notify(StartupStatus)
	} else {
		e.log.Info("evolution resumed", zap.Int("generation", e.generation))
	}

	for e.generation < e.cfg.MaxGenerations {
		if e.stop.Swap(false) || ctx.Err() != nil {
			e.state.Store(int32(Stopped))
			e.log.Info("evolution stopped",
				zap.Int("generation", e.generation),
				zap.Float64("best_cost", e.population[0].Cost()))

			return e.result(OutcomeStopped), nil
		}
		if err := e.step(); err != nil {
			e.state.Store(int32(Failed))
			e.log.Error("evolution failed", zap.Int("generation", e.generation), zap.Error(err))

			return e.result(OutcomeStopped), err
		}
	}

	e.state.Store(int32(Completed))
	res := e.result(OutcomeCompleted)
	e.log.Info("evolution completed",
		zap.Int("generations", res.Generations),
		zap.Float64("best_cost", res.BestCost),
		zap.Bool("converged", res.Converged),
		zap.Float64("rate", res.Rate))

	return res, nil
}

// acquire moves Idle or Stopped to Running.
func (e *Engine) acquire() error {
	for {
		s := State(e.state.Load())
		switch s {
		case Running:
			return ErrRunning
		case Completed, Failed:
			return ErrCompleted
		}
		if e.state.CompareAndSwap(int32(s), int32(Running)) {
			return nil
		}
	}
}

// Stop asks a running engine to return at the next generation boundary.
// It never blocks. Calling it before Run makes that Run return at once.
func (e *Engine) Stop() { e.stop.Store(true) }

// State reports the lifecycle phase. Safe for concurrent use.
func (e *Engine) State() State { return State(e.state.Load()) }

// Generation returns the number of generations completed so far.
func (e *Engine) Generation() int { return e.generation }

// Cities returns a copy of the city set. Safe for concurrent use.
func (e *Engine) Cities() geom.Points { return e.cities.Clone() }

// Best returns the best tour and its cost as of the last completed
// generation. Safe for concurrent use.
func (e *Engine) Best() ([]int, float64) {
	s := e.Snapshot()

	return s.BestTour, s.BestCost
}

// Population returns the current population, best first. The chromosomes
// are shared; callers must not modify them nor call this while Run is
// executing.
func (e *Engine) Population() []*chromosome.Chromosome {
	out := make([]*chromosome.Chromosome, len(e.population))
	copy(out, e.population)

	return out
}

// step runs one generation: selection, recombination, mutation,
// replacement, then bookkeeping.
func (e *Engine) step() error {
	var (
		start = e.now()
		pool  = e.selector.draw(e.rng, e.cfg.ParentPoolSize)
		i     int
	)

	e.candidates = e.candidates[:0]
	for i = 0; i+1 < len(pool); i += 2 {
		a, b := e.population[pool[i]], e.population[pool[i+1]]
		child1, child2, err := e.breed(a, b)
		if err != nil {
			return fmt.Errorf("evolution: generation %d: %w", e.generation, err)
		}
		if e.cfg.Replacement == PairwiseElitist {
			e.replacePair(pool[i], pool[i+1], child1, child2)
			continue
		}
		e.candidates = append(e.candidates, child1, child2, a, b)
	}
	if e.cfg.Replacement == GlobalTruncation {
		e.replaceGlobal(pool)
	}
	chromosome.Sort(e.population)

	gen := e.generation
	best := e.population[0].Cost()

	e.converged = e.convergence.observe(best)
	if e.converged {
		e.convergenceGen = gen
		if !e.everConverged {
			e.everConverged = true
			e.firstConvergenceGen = gen
			e.log.Info("evolution converged", zap.Int("generation", gen), zap.Float64("best_cost", best))
			e.notify(convergedLine(gen))
		}
	}

	if e.cfg.CheckpointGeneration > 0 && gen == e.cfg.CheckpointGeneration {
		e.checkpointCost = best
		e.checkpointReached = true
		e.suffix = checkpointSuffix(gen, best)
	}

	e.throughput.observe(e.now().Sub(start))
	rate := e.throughput.rate()
	status := statusLine(gen, best, rate) + e.suffix

	e.generation++
	e.publish(status, rate)
	if ce := e.log.Check(zap.DebugLevel, "generation"); ce != nil {
		ce.Write(zap.Int("generation", gen), zap.Float64("best_cost", best), zap.Float64("rate", rate))
	}
	e.notify(status)

	return nil
}

// breed produces the two mirrored children of a and b, mutates and costs
// them. Both recombinations run before either mutation.
func (e *Engine) breed(a, b *chromosome.Chromosome) (*chromosome.Chromosome, *chromosome.Chromosome, error) {
	g1, err := e.recombiner.Recombine(a.Genes(), b.Genes())
	if err != nil {
		return nil, nil, err
	}
	g2, err := e.recombiner.Recombine(b.Genes(), a.Genes())
	if err != nil {
		return nil, nil, err
	}

	children := [2]*chromosome.Chromosome{chromosome.FromPermutation(g1), chromosome.FromPermutation(g2)}
	for _, c := range children {
		if _, err = c.Mutate(e.rng, e.cfg.MutationProbability, e.mutator); err != nil {
			return nil, nil, err
		}
		c.CalculateCost(e.metric)
	}

	return children[0], children[1], nil
}

func (e *Engine) result(outcome Outcome) Result {
	best := e.population[0]

	return Result{
		BestCost:                   best.Cost(),
		BestTour:                   best.Tour(),
		ConvergenceGeneration:      e.convergenceGen,
		FirstConvergenceGeneration: e.firstConvergenceGen,
		Converged:                  e.everConverged,
		Rate:                       e.throughput.rate(),
		Generations:                e.generation,
		Outcome:                    outcome,
		CheckpointCost:             e.checkpointCost,
		CheckpointReached:          e.checkpointReached,
	}
}
