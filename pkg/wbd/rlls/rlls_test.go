package rlls

import (
	"testing"

	"github.com/icub-wbd/wbcore/pkg/vec"
	"github.com/icub-wbd/wbcore/pkg/wbd/types"
	"github.com/stretchr/testify/require"
)

func TestFeedSampleRejectsWrongDimension(t *testing.T) {
	e := New(3)
	err := e.FeedSample(vec.Vector{1, 2}, 1)
	require.ErrorIs(t, err, types.ErrIllDimensioned)
}

func TestRecoversLinearModel(t *testing.T) {
	// y = 2*x0 - 3*x1 + 1 (x2 constant bias column)
	e := New(3)
	samples := [][2]float32{{0, 0}, {1, 0}, {0, 1}, {2, 1}, {3, 2}, {1, 3}}
	for _, s := range samples {
		phi := vec.Vector{s[0], s[1], 1}
		y := 2*s[0] - 3*s[1] + 1
		require.NoError(t, e.FeedSample(phi, y))
	}
	x := e.Solve()
	require.InDelta(t, 2, x[0], 1e-3)
	require.InDelta(t, -3, x[1], 1e-3)
	require.InDelta(t, 1, x[2], 1e-3)

	for _, s := range samples {
		phi := vec.Vector{s[0], s[1], 1}
		want := 2*s[0] - 3*s[1] + 1
		got, err := e.Predict(phi)
		require.NoError(t, err)
		require.InDelta(t, want, got, 1e-3)
	}
}

func TestResizeDiscardsData(t *testing.T) {
	e := New(2)
	require.NoError(t, e.FeedSample(vec.Vector{1, 1}, 5))
	require.Equal(t, 1, e.SampleCount())
	e.Resize(2)
	require.Equal(t, 0, e.SampleCount())
}
