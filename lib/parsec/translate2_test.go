package parsec

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func cmd2Defaults(kind string) url.Values {
	v := url.Values{}
	if kind != "" {
		v.Set("isoc_kind", kind)
	}
	return v
}

func TestCMD2ScalarScalar(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e10},
		Z:   []float64{0.02},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.NoError(t, err)

	require.Equal(t, "0", fields["isoc_val"])
	require.Equal(t, "1e+10", fields["isoc_age"])
	require.Equal(t, "0.02", fields["isoc_zeta"])
	require.Equal(t, "0", fields["extinction_av"])
}

func TestCMD2ScalarLogAgeDerivesLinear(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		LogAge: []float64{8},
		Z:      []float64{0.02},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.NoError(t, err)

	require.Equal(t, "0", fields["isoc_val"])
	require.InDelta(t, 1e8, mustParse(t, fields["isoc_age"]), 1)
}

func TestCMD2AgeArrayDerivesLogAge(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e6, 1e7, 1e8},
		Z:   []float64{0.02},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.NoError(t, err)

	require.Equal(t, "1", fields["isoc_val"])
	require.Equal(t, "0.02", fields["isoc_zeta0"])
	require.InDelta(t, 6, mustParse(t, fields["isoc_lage0"]), 1e-12)
	require.InDelta(t, 8, mustParse(t, fields["isoc_lage1"]), 1e-12)
	require.InDelta(t, 1, mustParse(t, fields["isoc_dlage"]), 1e-12)
}

func TestCMD2ZArray(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e9},
		Z:   []float64{0.01, 0.02, 0.03},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.NoError(t, err)

	require.Equal(t, "2", fields["isoc_val"])
	require.Equal(t, "1e+09", fields["isoc_age0"])
	require.Equal(t, "0.01", fields["isoc_z0"])
	require.Equal(t, "0.03", fields["isoc_z1"])
	require.InDelta(t, 0.01, mustParse(t, fields["isoc_dz"]), 1e-12)
}

func TestCMD2BothArraysConflict(t *testing.T) {
	_, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e9, 2e9, 3e9},
		Z:   []float64{0.01, 0.02, 0.03},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.ErrorIs(t, err, ErrConflict)

	_, err = buildFieldsCMD2(IsochroneRequest{
		LogAge: []float64{7, 8, 9},
		Z:      []float64{0.01, 0.02, 0.03},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.ErrorIs(t, err, ErrConflict)
}

func TestCMD2MeHSolarReferenceParsec(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e9},
		MeH: []float64{0.5},
	}, cmd2Defaults("parsec_CAF09_v1.2S"))
	require.NoError(t, err)

	want := 0.0152 * math.Pow(10, 0.5)
	require.InDelta(t, want, mustParse(t, fields["isoc_zeta"]), 1e-12)
}

func TestCMD2MeHSolarReferenceLegacy(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e9},
		MeH: []float64{0},
	}, cmd2Defaults("ma08"))
	require.NoError(t, err)

	require.InDelta(t, 0.019, mustParse(t, fields["isoc_zeta"]), 1e-12)
}

func TestCMD2MeHKindOverrideWins(t *testing.T) {
	fields, err := buildFieldsCMD2(IsochroneRequest{
		Age:   []float64{1e9},
		MeH:   []float64{0},
		Extra: map[string]string{"isoc_kind": "parsec_CAF09_v1.2S"},
	}, cmd2Defaults("ma08"))
	require.NoError(t, err)

	require.InDelta(t, 0.0152, mustParse(t, fields["isoc_zeta"]), 1e-12)
}

func TestCMD2MeHWithoutKind(t *testing.T) {
	_, err := buildFieldsCMD2(IsochroneRequest{
		Age: []float64{1e9},
		MeH: []float64{0},
	}, cmd2Defaults(""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "isoc_kind")
}

func TestCMD2MissingPairs(t *testing.T) {
	_, err := buildFieldsCMD2(IsochroneRequest{Z: []float64{0.02}}, cmd2Defaults(""))
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"t", "lgt"}, missing.Params)

	_, err = buildFieldsCMD2(IsochroneRequest{Age: []float64{1e9}}, cmd2Defaults(""))
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"Z", "MeH"}, missing.Params)
}
