package parsec

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCMD3ScalarAgeScalarZ(t *testing.T) {
	fields, err := buildFieldsCMD3(IsochroneRequest{
		Age: []float64{1e9},
		Z:   []float64{0.0152},
	})
	require.NoError(t, err)

	require.Equal(t, "0", fields["isoc_isagelog"])
	require.Equal(t, "1e+09", fields["isoc_agelow"])
	require.Equal(t, "0", fields["isoc_dage"])
	require.Equal(t, "0", fields["isoc_ismetlog"])
	require.Equal(t, "0.0152", fields["isoc_zlow"])
	require.Equal(t, "0", fields["isoc_dz"])
	require.Equal(t, "0", fields["extinction_av"])

	// scalar values collapse the range, no upper bounds are sent
	require.NotContains(t, fields, "isoc_ageupp")
	require.NotContains(t, fields, "isoc_zupp")
}

func TestCMD3LogAgeRange(t *testing.T) {
	fields, err := buildFieldsCMD3(IsochroneRequest{
		LogAge: []float64{7, 8, 9},
		MeH:    []float64{-0.5},
	})
	require.NoError(t, err)

	require.Equal(t, "1", fields["isoc_isagelog"])
	require.Equal(t, "7", fields["isoc_lagelow"])
	require.Equal(t, "9", fields["isoc_lageupp"])
	require.Equal(t, "1", fields["isoc_dlage"])
	require.Equal(t, "1", fields["isoc_ismetlog"])
	require.Equal(t, "-0.5", fields["isoc_metlow"])
	require.Equal(t, "0", fields["isoc_dmet"])

	// no field of the alternate, unsupplied representation leaks in
	for _, name := range []string{
		"isoc_agelow", "isoc_ageupp", "isoc_dage",
		"isoc_zlow", "isoc_zupp", "isoc_dz",
	} {
		require.NotContains(t, fields, name)
	}
}

func TestCMD3ZRange(t *testing.T) {
	fields, err := buildFieldsCMD3(IsochroneRequest{
		Age: []float64{1e9},
		Z:   []float64{0.01, 0.02, 0.03},
	})
	require.NoError(t, err)

	require.Equal(t, "0", fields["isoc_ismetlog"])
	require.Equal(t, "0.01", fields["isoc_zlow"])
	require.Equal(t, "0.03", fields["isoc_zupp"])
	require.InDelta(t, 0.01, mustParse(t, fields["isoc_dz"]), 1e-12)
}

func TestCMD3AgeTakesPrecedence(t *testing.T) {
	fields, err := buildFieldsCMD3(IsochroneRequest{
		Age:    []float64{1e9},
		LogAge: []float64{9},
		Z:      []float64{0.02},
	})
	require.NoError(t, err)
	require.Equal(t, "0", fields["isoc_isagelog"])
	require.NotContains(t, fields, "isoc_lagelow")
}

func mustParse(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return v
}

func TestCMD3MissingAge(t *testing.T) {
	_, err := buildFieldsCMD3(IsochroneRequest{Z: []float64{0.02}})
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"t", "lgt"}, missing.Params)
}

func TestCMD3MissingMetallicity(t *testing.T) {
	_, err := buildFieldsCMD3(IsochroneRequest{Age: []float64{1e9}})
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"Z", "MeH"}, missing.Params)
}
