package geom_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/evotsp/geom"
	"github.com/stretchr/testify/require"
)

// TestDistanceMatrix_MatchesPoints checks that the precomputed table and the
// on-the-fly metric agree bit for bit, in both directions.
func TestDistanceMatrix_MatchesPoints(t *testing.T) {
	pts := geom.RandomPoints(25, rand.New(rand.NewSource(42)))
	m, err := geom.NewDistanceMatrix(pts)
	require.NoError(t, err)
	require.Equal(t, pts.Len(), m.Len())

	var i, j int
	for i = 0; i < len(pts); i++ {
		for j = 0; j < len(pts); j++ {
			want := pts.Between(i, j)
			if i == j {
				want = 0
			}
			require.Equal(t, want, m.Between(i, j), "pair (%d,%d)", i, j)
			require.Equal(t, m.Between(i, j), m.Between(j, i))
		}
	}
}

func TestDistanceMatrix_Errors(t *testing.T) {
	_, err := geom.NewDistanceMatrix(nil)
	require.ErrorIs(t, err, geom.ErrNoPoints)

	m, err := geom.NewDistanceMatrix(geom.Points{{X: 0, Y: 0}, {X: 1, Y: 0}})
	require.NoError(t, err)

	d, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, d)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, geom.ErrOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, geom.ErrOutOfRange)
}
