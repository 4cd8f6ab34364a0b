// Package evotsp evolves short open paths through points in the plane with
// a genetic algorithm.
//
// A tour is a permutation of city indices; its cost is the length of the
// path that visits the cities in order without returning to the start.
// A fixed-size population of tours is improved generation by generation by
// rank-weighted parent selection, edge recombination (or order crossover),
// random mutation and elitist replacement, while sliding windows track
// convergence and throughput.
//
// Packages:
//
//	geom/          points, Euclidean distance, precomputed distance matrices
//	operators/     permutation moves (swap, invert, rotate, relocate),
//	               OX-1 and ERX recombination, seeded random streams
//	chromosome/    a tour with its cached open-path cost
//	evolution/     the engine: configuration, generation loop, lifecycle
//	batch/         independent repeated runs on a worker pool, aggregated
//	view/          live terminal rendering of the best tour (tcell)
//	cmd/evotsp/    the run, batch and view commands
//
// Quick example:
//
//	cfg := evolution.DefaultConfig()
//	cfg.CityCount = 30
//	e, err := evolution.New(cfg)
//	if err != nil { ... }
//	res, err := e.Run(ctx)
//	fmt.Println(res.BestCost, res.BestTour)
//
// Determinism: every engine draws from its own seeded source, so the same
// Config (Seed included) reproduces the same run on every platform.
package evotsp
