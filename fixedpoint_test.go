package schedcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixed_RoundTrip(t *testing.T) {
	for n := -1000; n <= 1000; n++ {
		require.Equal(t, n, FromInt(n).Trunc())
		require.Equal(t, n, FromInt(n).Round())
	}
}

func TestFixed_RoundHalfAwayFromZero(t *testing.T) {
	half := Fixed(f / 2)
	require.Equal(t, 1, (FromInt(0) + half).Round())
	require.Equal(t, -1, (FromInt(0) - half).Round())
	require.Equal(t, 0, FromInt(0).Round())
}

func TestFixed_Arithmetic(t *testing.T) {
	a := FromInt(5)
	b := FromInt(2)

	require.Equal(t, 7, a.Add(b).Trunc())
	require.Equal(t, 3, a.Sub(b).Trunc())
	require.Equal(t, 10, a.Mul(b).Trunc())
	require.Equal(t, 3, a.Div(b).Round())
	require.Equal(t, 7, a.AddInt(2).Trunc())
	require.Equal(t, 3, a.SubInt(2).Trunc())
	require.Equal(t, 10, a.MulInt(2).Trunc())
	require.Equal(t, 2, a.DivInt(2).Trunc())
}

func TestFixed_LoadAvgLikeComputation(t *testing.T) {
	// (59/60) * 0 + (1/60) * 1, repeated, converges toward 1.
	coeff := FromInt(59).Div(FromInt(60))
	unit := FromInt(1).Div(FromInt(60))

	load := FromInt(0)
	for i := 0; i < 10000; i++ {
		load = load.Mul(coeff).Add(unit.MulInt(1))
	}
	require.InDelta(t, 1.0, float64(load)/float64(f), 0.01)
}
