package domain

import "fmt"

// RunoffDepth returns SCS-CN direct runoff in millimetres for a rainfall
// depth in millimetres:
//
//	S  = 25400/CN - 254
//	Ia = 0.2 S
//	Q  = (P - Ia)^2 / (P + 0.8 S)   when P > Ia, else 0
//
// A curve number of 0 produces no runoff and 100 returns all rainfall. The
// boolean is false for negative rainfall or a curve number above 100.
func RunoffDepth(rainfallMM float64, cn CurveNumber) (float64, bool) {
	if rainfallMM < 0 || cn > MaxCurveNumber {
		return 0, false
	}
	if cn == 0 {
		return 0, true
	}
	s := 25400.0/float64(cn) - 254.0
	ia := 0.2 * s
	if rainfallMM <= ia {
		return 0, true
	}
	return (rainfallMM - ia) * (rainfallMM - ia) / (rainfallMM + 0.8*s), true
}

// RunoffGrid applies RunoffDepth to every pixel of a curve number band.
// rain holds one rainfall depth per pixel in the band's row-major order.
// Pixels with negative rainfall are set to noData. Unassigned pixels read as
// CN 0 and produce no runoff.
func RunoffGrid(rain []float64, band Band, noData float64) ([]float64, error) {
	if err := band.Grid.Validate(); err != nil {
		return nil, err
	}
	if len(rain) != band.Grid.Len() {
		return nil, fmt.Errorf("rainfall has %d pixels, band %s has %d: %w",
			len(rain), band.Name, band.Grid.Len(), ErrShapeMismatch)
	}
	out := make([]float64, len(rain))
	for i, p := range rain {
		q, ok := RunoffDepth(p, CurveNumber(band.Grid.Data[i]))
		if !ok {
			out[i] = noData
			continue
		}
		out[i] = q
	}
	return out, nil
}
