package domain

// undrainedPenalty is added to the ARC-adjusted value for undrained soils.
const undrainedPenalty = 5

// AdjustedCN computes the curve number for one pixel combination. The boolean
// is false when the base table has no entry for (lc, soil, c); that is a
// normal "no match" outcome, not an error. A missing ARC conversion surfaces
// as a *LookupError.
func AdjustedCN(lc LandCover, soil SoilGroup, c Condition, arc ARC, d Drainage) (CurveNumber, bool, error) {
	base, ok := BaseCN(lc, soil, c)
	if !ok {
		return 0, false, nil
	}
	cn, err := ArcAdjusted(base, arc)
	if err != nil {
		return 0, false, err
	}
	return applyDrainage(cn, d), true, nil
}

func applyDrainage(cn CurveNumber, d Drainage) CurveNumber {
	if d != Undrained {
		return cn
	}
	if int(cn)+undrainedPenalty > int(MaxCurveNumber) {
		return MaxCurveNumber
	}
	return cn + undrainedPenalty
}
