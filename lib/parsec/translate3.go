package parsec

// buildFieldsCMD3 maps physical parameters onto the cmd >= 3 form fields.
// Age and metallicity are encoded independently: a flag selecting the
// linear/log representation, a low bound, and for ranges an upper bound and
// step. A scalar sends step 0, which the service reads as "no range".
func buildFieldsCMD3(req IsochroneRequest) (map[string]string, error) {
	fields := map[string]string{}

	switch {
	case req.Age != nil:
		g := classify(req.Age)
		fields["isoc_isagelog"] = "0"
		fields["isoc_agelow"] = fnum(g.low)
		if g.ranged {
			fields["isoc_ageupp"] = fnum(g.high)
			fields["isoc_dage"] = fnum(g.step)
		} else {
			fields["isoc_dage"] = "0"
		}
	case req.LogAge != nil:
		g := classify(req.LogAge)
		fields["isoc_isagelog"] = "1"
		fields["isoc_lagelow"] = fnum(g.low)
		if g.ranged {
			fields["isoc_lageupp"] = fnum(g.high)
			fields["isoc_dlage"] = fnum(g.step)
		} else {
			fields["isoc_dlage"] = "0"
		}
	default:
		return nil, &MissingParameterError{Params: []string{"t", "lgt"}}
	}

	switch {
	case req.Z != nil:
		g := classify(req.Z)
		fields["isoc_ismetlog"] = "0"
		fields["isoc_zlow"] = fnum(g.low)
		if g.ranged {
			fields["isoc_zupp"] = fnum(g.high)
			fields["isoc_dz"] = fnum(g.step)
		} else {
			fields["isoc_dz"] = "0"
		}
	case req.MeH != nil:
		g := classify(req.MeH)
		fields["isoc_ismetlog"] = "1"
		fields["isoc_metlow"] = fnum(g.low)
		if g.ranged {
			fields["isoc_metupp"] = fnum(g.high)
			fields["isoc_dmet"] = fnum(g.step)
		} else {
			fields["isoc_dmet"] = "0"
		}
	default:
		return nil, &MissingParameterError{Params: []string{"Z", "MeH"}}
	}

	fields["extinction_av"] = fnum(req.ExtinctionAv)
	return fields, nil
}
