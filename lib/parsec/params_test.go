package parsec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyAbsent(t *testing.T) {
	g := classify(nil)
	require.False(t, g.ranged)

	g = classify([]float64{})
	require.False(t, g.ranged)
}

func TestClassifyScalar(t *testing.T) {
	g := classify([]float64{1e9})
	require.False(t, g.ranged)
	require.Equal(t, 1e9, g.low)
	require.Equal(t, 1e9, g.high)
}

func TestClassifyRange(t *testing.T) {
	g := classify([]float64{1e9, 2e9, 3e9})
	require.True(t, g.ranged)
	require.Equal(t, 1e9, g.low)
	require.Equal(t, 3e9, g.high)
	require.InDelta(t, 1e9, g.step, 1)
}

func TestClassifyMeanStep(t *testing.T) {
	// uneven spacing is not rejected, the mean of consecutive
	// differences is used as the step
	g := classify([]float64{0, 1, 3})
	require.True(t, g.ranged)
	require.Equal(t, 0.0, g.low)
	require.Equal(t, 3.0, g.high)
	require.InDelta(t, 1.5, g.step, 1e-12)
}

func TestClassifyTwoElements(t *testing.T) {
	g := classify([]float64{7.5, 8.0})
	require.True(t, g.ranged)
	require.InDelta(t, 0.5, g.step, 1e-12)
}
