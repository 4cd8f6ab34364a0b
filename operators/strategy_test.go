package operators_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/evotsp/operators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecombination(t *testing.T) {
	for in, want := range map[string]operators.RecombinationKind{
		"erx":                operators.EdgeRecombinationKind,
		"Edge":               operators.EdgeRecombinationKind,
		"edge-recombination": operators.EdgeRecombinationKind,
		"ox":                 operators.OrderCrossoverKind,
		" OX1 ":              operators.OrderCrossoverKind,
		"order":              operators.OrderCrossoverKind,
	} {
		got, err := operators.ParseRecombination(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := operators.ParseRecombination("pmx")
	require.ErrorIs(t, err, operators.ErrUnknownKind)
}

func TestParseMutation(t *testing.T) {
	for in, want := range map[string]operators.MutationKind{
		"invert":   operators.InvertKind,
		"REVERSE":  operators.InvertKind,
		"swap":     operators.SwapKind,
		"rotate":   operators.RotateKind,
		"relocate": operators.RelocateKind,
		"insert":   operators.RelocateKind,
	} {
		got, err := operators.ParseMutation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := operators.ParseMutation("scramble")
	require.ErrorIs(t, err, operators.ErrUnknownKind)
}

func TestKinds_TextRoundTrip(t *testing.T) {
	var rk operators.RecombinationKind
	require.NoError(t, rk.UnmarshalText([]byte("ox")))
	b, err := rk.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "ox", string(b))

	var mk operators.MutationKind
	require.NoError(t, mk.UnmarshalText([]byte("rotate")))
	b, err = mk.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "rotate", string(b))

	_, err = operators.RecombinationKind(9).MarshalText()
	require.ErrorIs(t, err, operators.ErrUnknownKind)
	require.Equal(t, "MutationKind(7)", operators.MutationKind(7).String())
}

func TestNewStrategies_Errors(t *testing.T) {
	_, err := operators.NewRecombiner(operators.EdgeRecombinationKind, 5, nil)
	require.ErrorIs(t, err, operators.ErrNilRand)
	_, err = operators.NewRecombiner(operators.RecombinationKind(42), 5, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, operators.ErrUnknownKind)

	_, err = operators.NewMutator(operators.InvertKind, nil)
	require.ErrorIs(t, err, operators.ErrNilRand)
	_, err = operators.NewMutator(operators.MutationKind(42), rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, operators.ErrUnknownKind)
}

// TestMutators_KeepPermutation hammers every mutation strategy and checks the
// permutation invariant after each move.
func TestMutators_KeepPermutation(t *testing.T) {
	kinds := []operators.MutationKind{
		operators.InvertKind, operators.SwapKind, operators.RotateKind, operators.RelocateKind,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(13))
			m, err := operators.NewMutator(kind, rng)
			require.NoError(t, err)

			for _, n := range []int{1, 2, 5, 40} {
				tour := operators.RandomPermutation(n, rng)
				var step int
				for step = 0; step < 300; step++ {
					require.NoError(t, m.Mutate(tour))
					require.NoError(t, operators.ValidatePermutation(tour, n))
				}
			}

			require.NoError(t, m.Mutate(nil), "empty tours are left alone")
		})
	}
}

func TestMutators_ActuallyMove(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	m, err := operators.NewMutator(operators.RelocateKind, rng)
	require.NoError(t, err)

	tour := operators.Identity(30)
	moved := false
	var step int
	for step = 0; step < 50 && !moved; step++ {
		require.NoError(t, m.Mutate(tour))
		moved = !assert.ObjectsAreEqual(operators.Identity(30), tour)
	}
	require.True(t, moved, "50 random relocations never changed the tour")
}

func TestOrderCrossoverRecombiner_Empty(t *testing.T) {
	r := operators.NewOrderCrossover(rand.New(rand.NewSource(1)))
	_, err := r.Recombine(nil, nil)
	require.ErrorIs(t, err, operators.ErrEmptyParent)
}
