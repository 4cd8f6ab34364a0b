// SPDX-License-Identifier: MIT

package evolution

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/evotsp/geom"
	"github.com/katalvlaran/evotsp/operators"
)

// Defaults used by DefaultConfig.
const (
	DefaultCityCount            = 50
	DefaultPopulationSize       = 1000
	DefaultParentPoolSize       = 200
	DefaultMutationProbability  = 0.25
	DefaultMaxGenerations       = 1000
	DefaultConvergenceWindow    = 200
	DefaultConvergenceThreshold = 0.005
	DefaultRateWindow           = 200
)

// Dispersion selects how the spread of the recent best costs is measured.
type Dispersion int

const (
	// PopulationStdDev is sqrt(Σ(d-mean)²/n) over the window.
	PopulationStdDev Dispersion = iota

	// LegacyOffsetStdDev is sqrt(-1 + Σ(d-mean)²). It is NaN whenever the
	// squared deviations sum below one, and a NaN never counts as converged.
	LegacyOffsetStdDev
)

var dispersionNames = [...]string{
	PopulationStdDev:   "stddev",
	LegacyOffsetStdDev: "legacy",
}

// String implements fmt.Stringer.
func (d Dispersion) String() string {
	if d < 0 || int(d) >= len(dispersionNames) {
		return fmt.Sprintf("Dispersion(%d)", int(d))
	}

	return dispersionNames[d]
}

// ParseDispersion maps "stddev" or "legacy" to a Dispersion.
func ParseDispersion(s string) (Dispersion, error) {
	for i, name := range dispersionNames {
		if strings.EqualFold(s, name) {
			return Dispersion(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown dispersion %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dispersion) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(dispersionNames) {
		return nil, fmt.Errorf("%w: unknown dispersion %d", ErrInvalidConfig, int(d))
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dispersion) UnmarshalText(b []byte) error {
	v, err := ParseDispersion(string(b))
	if err != nil {
		return err
	}
	*d = v

	return nil
}

// Replacement selects how children and parents are written back into the
// slots drawn for the parent pool.
type Replacement int

const (
	// GlobalTruncation sorts all candidates of a generation together and
	// writes the best ones into the drawn slots in ascending slot order.
	GlobalTruncation Replacement = iota

	// PairwiseElitist keeps the best two of each pair's four candidates in
	// that pair's own slots. An unpaired slot keeps its occupant.
	PairwiseElitist
)

var replacementNames = [...]string{
	GlobalTruncation: "global",
	PairwiseElitist:  "pairwise",
}

// String implements fmt.Stringer.
func (r Replacement) String() string {
	if r < 0 || int(r) >= len(replacementNames) {
		return fmt.Sprintf("Replacement(%d)", int(r))
	}

	return replacementNames[r]
}

// ParseReplacement maps "global" or "pairwise" to a Replacement.
func ParseReplacement(s string) (Replacement, error) {
	for i, name := range replacementNames {
		if strings.EqualFold(s, name) {
			return Replacement(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown replacement %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Replacement) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(replacementNames) {
		return nil, fmt.Errorf("%w: unknown replacement %d", ErrInvalidConfig, int(r))
	}

	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Replacement) UnmarshalText(b []byte) error {
	v, err := ParseReplacement(string(b))
	if err != nil {
		return err
	}
	*r = v

	return nil
}

// Config is the full parameter set of one Engine. Build it from
// DefaultConfig and override fields; Validate runs inside New.
type Config struct {
	// CityCount is the number of random cities to generate. When Cities is
	// set it may be zero; otherwise it must equal len(Cities).
	CityCount int

	// Cities optionally fixes the city set; coordinates must be finite.
	Cities geom.Points

	// PopulationSize is P, the fixed population capacity (> 1).
	PopulationSize int

	// ParentPoolSize is K, the number of distinct slots drawn per
	// generation (2 ≤ K ≤ P).
	ParentPoolSize int

	// MutationProbability is the chance, per child, of one mutation.
	MutationProbability float64

	// MaxGenerations is the generation budget (≥ 1).
	MaxGenerations int

	// ConvergenceWindow is the number of recent best costs inspected.
	ConvergenceWindow int

	// ConvergenceThreshold: the run counts as converged while the window is
	// full and its dispersion is strictly below this value.
	ConvergenceThreshold float64

	Dispersion Dispersion

	// RateWindow is the number of recent generation durations averaged.
	RateWindow int

	Recombination operators.RecombinationKind
	Mutation      operators.MutationKind
	Replacement   Replacement

	// CheckpointGeneration, when positive, records the best cost reached
	// at that generation index. Zero disables it.
	CheckpointGeneration int

	// PrecomputeDistances caches all pairwise distances in a
	// geom.DistanceMatrix instead of computing them per lookup.
	PrecomputeDistances bool

	// Seed seeds the engine's random source when WithRand is not given.
	// Zero selects operators.DefaultSeed.
	Seed int64
}

// DefaultConfig returns the stock parameters: 50 random cities, a
// population of 1000, ERX recombination and inversion mutation.
func DefaultConfig() Config {
	return Config{
		CityCount:            DefaultCityCount,
		PopulationSize:       DefaultPopulationSize,
		ParentPoolSize:       DefaultParentPoolSize,
		MutationProbability:  DefaultMutationProbability,
		MaxGenerations:       DefaultMaxGenerations,
		ConvergenceWindow:    DefaultConvergenceWindow,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		Dispersion:           PopulationStdDev,
		RateWindow:           DefaultRateWindow,
		Recombination:        operators.EdgeRecombinationKind,
		Mutation:             operators.InvertKind,
		Replacement:          GlobalTruncation,
		PrecomputeDistances:  true,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if len(c.Cities) > 0 {
		if c.CityCount != 0 && c.CityCount != len(c.Cities) {
			return fmt.Errorf("%w: city count %d does not match %d explicit cities",
				ErrInvalidConfig, c.CityCount, len(c.Cities))
		}
		if err := c.Cities.Validate(); err != nil {
			return fmt.Errorf("%w: cities: %w", ErrInvalidConfig, err)
		}
	} else if c.CityCount <= 0 {
		return fmt.Errorf("%w: city count %d must be > 0", ErrInvalidConfig, c.CityCount)
	}

	switch {
	case c.PopulationSize <= 1:
		return fmt.Errorf("%w: population size %d must be > 1", ErrInvalidConfig, c.PopulationSize)
	case c.ParentPoolSize < 2:
		return fmt.Errorf("%w: parent pool size %d must be >= 2", ErrInvalidConfig, c.ParentPoolSize)
	case c.ParentPoolSize > c.PopulationSize:
		return fmt.Errorf("%w: parent pool size %d exceeds population size %d",
			ErrInvalidConfig, c.ParentPoolSize, c.PopulationSize)
	case math.IsNaN(c.MutationProbability) || c.MutationProbability < 0 || c.MutationProbability > 1:
		return fmt.Errorf("%w: mutation probability %v outside [0,1]", ErrInvalidConfig, c.MutationProbability)
	case c.MaxGenerations <= 0:
		return fmt.Errorf("%w: max generations %d must be > 0", ErrInvalidConfig, c.MaxGenerations)
	case c.ConvergenceWindow <= 0:
		return fmt.Errorf("%w: convergence window %d must be > 0", ErrInvalidConfig, c.ConvergenceWindow)
	case math.IsNaN(c.ConvergenceThreshold) || c.ConvergenceThreshold < 0:
		return fmt.Errorf("%w: convergence threshold %v must be >= 0", ErrInvalidConfig, c.ConvergenceThreshold)
	case c.RateWindow <= 0:
		return fmt.Errorf("%w: rate window %d must be > 0", ErrInvalidConfig, c.RateWindow)
	case c.CheckpointGeneration < 0:
		return fmt.Errorf("%w: checkpoint generation %d must be >= 0", ErrInvalidConfig, c.CheckpointGeneration)
	}

	if _, err := c.Dispersion.MarshalText(); err != nil {
		return err
	}
	if _, err := c.Replacement.MarshalText(); err != nil {
		return err
	}
	if _, err := c.Recombination.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Mutation.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// cityCount is the effective number of cities.
func (c Config) cityCount() int {
	if len(c.Cities) > 0 {
		return len(c.Cities)
	}

	return c.CityCount
}
