// Package domain computes NRCS runoff curve number (CN) rasters from ESA
// WorldCover land cover and HYSOGs250m hydrologic soil groups.
//
// # Inputs
//
// Land cover codes follow ESA WorldCover v200:
//
//	10 tree cover | 20 shrubland | 30 grassland | 40 cropland | 50 built-up
//	60 bare/sparse | 70 snow and ice | 80 permanent water | 90 herbaceous wetland
//	95 mangroves | 100 moss and lichen
//
// Soil codes follow HYSOGs250m:
//
//	1-4    hydrologic soil groups A-D
//	11-14  dual groups A/D-D/D: group D unless artificially drained
//
// Any other soil code (including the raster's no-data value) matches no table
// entry. The pipeline may fill no-data soil with group D before generation.
//
// # Lookup
//
// The base table holds the average-condition (ARC II) curve number for every
// land cover x soil group x hydrologic condition (poor, fair, good), 132
// entries. The ARC table converts an ARC II value to its dry (I) and wet (III)
// equivalents. It is only defined at 0, 5, ..., 30 and every integer from 31
// to 100; converting any other value is a [LookupError], never an
// approximation.
//
// # Adjustment
//
//	cn = ARC(base(lc, hsg, condition), arc)
//	undrained: cn = min(100, cn + 5)
//
// Dual soils are remapped before matching: to their natural group when
// drained, to D when undrained.
//
// # Product
//
// A product holds 18 bands, one per condition x ARC x drainage, named
// CN_<condition>_<arc>_<drainage> (e.g. CN_fair_ii_drained) and ordered with
// condition outermost and drainage innermost. Pixels that match no entry keep
// the value 0. Bands are independent and computed concurrently; the product
// fails as a whole if any band fails.
package domain
