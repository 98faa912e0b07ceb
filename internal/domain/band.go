package domain

import "fmt"

// Unassigned is the value of pixels that matched no table entry.
const Unassigned uint8 = 0

// Band is one curve number raster for a (condition, ARC, drainage) triple.
type Band struct {
	Name      string
	Condition Condition
	ARC       ARC
	Drainage  Drainage
	Grid      *Grid

	// Assigned counts pixels that matched a table entry. It is tracked
	// separately because snow and water classes legitimately map to 0.
	Assigned int
	Min, Max CurveNumber
}

// BandName is the stable band label consumers select by,
// e.g. "CN_fair_ii_drained".
func BandName(c Condition, arc ARC, d Drainage) string {
	return fmt.Sprintf("CN_%s_%s_%s", c, arc, d)
}

// bandLUT holds the adjusted value for every (land cover, soil group) pair of
// one band. Soil groups index 1..4; index 0 is unused.
type bandLUT struct {
	cn  [256][5]CurveNumber
	hit [256][5]bool
}

func buildBandLUT(c Condition, arc ARC, d Drainage) (*bandLUT, error) {
	lut := &bandLUT{}
	for _, e := range tableOrder {
		if e.Condition != c {
			continue
		}
		cn, ok, err := AdjustedCN(e.LandCover, e.Soil, c, arc, d)
		if err != nil {
			return nil, fmt.Errorf("%s: %s/%s: %w", BandName(c, arc, d), e.LandCover, e.Soil, err)
		}
		if !ok {
			continue
		}
		if lut.hit[e.LandCover][e.Soil] {
			return nil, fmt.Errorf("%s: overlapping entries for %s/%s", BandName(c, arc, d), e.LandCover, e.Soil)
		}
		lut.cn[e.LandCover][e.Soil] = cn
		lut.hit[e.LandCover][e.Soil] = true
	}
	return lut, nil
}

func (l *bandLUT) lookup(lc, soil uint8) (CurveNumber, bool) {
	if soil == 0 || soil > uint8(GroupD) {
		return 0, false
	}
	return l.cn[lc][soil], l.hit[lc][soil]
}

// GenerateBand computes one curve number band. soil must already be remapped
// for d (see RemapSoilGrid). Every table entry for condition c is evaluated
// before any pixel is touched, so a missing ARC conversion fails the band even
// if no pixel would have used it. Pixels are scanned once; those matching no
// entry, or flagged no-data in either input, keep the Unassigned value.
func GenerateBand(landCover, soil *Grid, c Condition, arc ARC, d Drainage) (Band, error) {
	if err := sameShape(landCover, soil); err != nil {
		return Band{}, fmt.Errorf("generate %s: %w", BandName(c, arc, d), err)
	}
	lut, err := buildBandLUT(c, arc, d)
	if err != nil {
		return Band{}, err
	}

	out := NewGrid(landCover.Rows, landCover.Cols)
	b := Band{Name: BandName(c, arc, d), Condition: c, ARC: arc, Drainage: d, Grid: out}
	for i, lc := range landCover.Data {
		if landCover.IsNoData(lc) || soil.IsNoData(soil.Data[i]) {
			continue
		}
		cn, ok := lut.lookup(lc, soil.Data[i])
		if !ok {
			continue
		}
		out.Data[i] = uint8(cn)
		if b.Assigned == 0 || cn < b.Min {
			b.Min = cn
		}
		if b.Assigned == 0 || cn > b.Max {
			b.Max = cn
		}
		b.Assigned++
	}
	return b, nil
}
