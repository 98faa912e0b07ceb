package domain

// RemapSoil maps a raw HYSOGs code to the effective soil group for a drainage
// status. Single groups pass through, dual groups become D when undrained and
// their natural group when drained. Unknown codes pass through untouched and
// simply match nothing downstream.
func RemapSoil(code uint8, d Drainage) uint8 {
	g := SoilGroup(code)
	if !g.IsDual() {
		return code
	}
	if d == Undrained {
		return uint8(GroupD)
	}
	return uint8(g.Natural())
}

// RemapSoilGrid returns a new grid with RemapSoil applied to every pixel. The
// input is not modified. No-data pixels are kept as they are.
func RemapSoilGrid(soil *Grid, d Drainage) *Grid {
	out := soil.Clone()
	for i, v := range out.Data {
		if soil.IsNoData(v) {
			continue
		}
		out.Data[i] = RemapSoil(v, d)
	}
	return out
}

// FillMissingSoil returns a copy of soil with no-data pixels set to group D,
// the worst-case assumption, and the number of pixels filled. The copy no
// longer carries a no-data marker.
func FillMissingSoil(soil *Grid) (*Grid, int) {
	out := soil.Clone()
	out.HasNoData = false
	out.NoData = 0
	if !soil.HasNoData {
		return out, 0
	}
	filled := 0
	for i, v := range soil.Data {
		if v == soil.NoData {
			out.Data[i] = uint8(GroupD)
			filled++
		}
	}
	return out, filled
}

// HasValidSoil reports whether any pixel carries a known single or dual code.
func HasValidSoil(soil *Grid) bool {
	for _, v := range soil.Data {
		if soil.IsNoData(v) {
			continue
		}
		if SoilGroup(v).Valid() {
			return true
		}
	}
	return false
}
