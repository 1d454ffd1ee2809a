package parsec

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// Solar metallicity references for the [M/H] -> Z approximation under the
// legacy form, [M/H] = log(Z/Zsun). Which one applies depends on the track
// family selected by the isoc_kind field.
const (
	zsunParsec = 0.0152 // Bressan et al. (2012) and later
	zsunLegacy = 0.019  // Marigo et al. (2008) and earlier
)

// buildFieldsCMD2 maps physical parameters onto the cmd 2.x form fields.
//
// Unlike cmd 3, the legacy form has no independent linear/log switches.
// Age is first canonicalized: a scalar log age becomes a linear age, a
// linear age array becomes a log age array. [M/H] without Z is converted to
// abundance using the solar reference of the track family in effect. After
// canonicalization at most one of age and metallicity may be an array.
func buildFieldsCMD2(req IsochroneRequest, defaults url.Values) (map[string]string, error) {
	t := req.Age
	lgt := req.LogAge
	if t == nil {
		if lgt == nil {
			return nil, &MissingParameterError{Params: []string{"t", "lgt"}}
		}
		if !classify(lgt).ranged {
			t = []float64{math.Pow(10, lgt[0])}
			lgt = nil
		}
	} else if classify(t).ranged {
		lgt = make([]float64, len(t))
		for i, v := range t {
			lgt[i] = math.Log10(v)
		}
		t = nil
	} else {
		// scalar linear age takes precedence over any log age given
		lgt = nil
	}

	z := req.Z
	if z == nil {
		if req.MeH == nil {
			return nil, &MissingParameterError{Params: []string{"Z", "MeH"}}
		}
		zsun, err := solarReference(req.Extra, defaults)
		if err != nil {
			return nil, err
		}
		z = make([]float64, len(req.MeH))
		for i, m := range req.MeH {
			z[i] = zsun * math.Pow(10, m)
		}
	}

	if classify(lgt).ranged && classify(z).ranged {
		return nil, ErrConflict
	}

	fields := map[string]string{}
	if t != nil {
		if g := classify(z); g.ranged {
			fields["isoc_val"] = "2"
			fields["isoc_age0"] = fnum(t[0])
			fields["isoc_z0"] = fnum(g.low)
			fields["isoc_z1"] = fnum(g.high)
			fields["isoc_dz"] = fnum(g.step)
		} else {
			fields["isoc_val"] = "0"
			fields["isoc_age"] = fnum(t[0])
			fields["isoc_zeta"] = fnum(z[0])
		}
	} else {
		g := classify(lgt)
		fields["isoc_val"] = "1"
		fields["isoc_zeta0"] = fnum(z[0])
		fields["isoc_lage0"] = fnum(g.low)
		fields["isoc_lage1"] = fnum(g.high)
		fields["isoc_dlage"] = fnum(g.step)
	}

	fields["extinction_av"] = fnum(req.ExtinctionAv)
	return fields, nil
}

// solarReference picks the Zsun constant from the track family in effect:
// a caller override of isoc_kind wins over the form default. An absent
// isoc_kind is an error rather than a silently guessed constant.
func solarReference(extra map[string]string, defaults url.Values) (float64, error) {
	kind := extra["isoc_kind"]
	if kind == "" {
		kind = defaults.Get("isoc_kind")
	}
	if kind == "" {
		return 0, fmt.Errorf("cannot convert MeH to Z: no 'isoc_kind' field to infer the solar reference from")
	}
	if strings.HasPrefix(kind, "parsec") {
		return zsunParsec, nil
	}
	return zsunLegacy, nil
}
