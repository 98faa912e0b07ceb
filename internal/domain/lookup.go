package domain

import (
	"errors"
	"fmt"
	"slices"
)

// ErrLookup is matched by every *LookupError via errors.Is.
var ErrLookup = errors.New("curve number lookup failed")

// LookupError reports a base curve number that has no ARC conversion entry.
type LookupError struct {
	Base CurveNumber
	ARC  ARC
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no ARC %s conversion for curve number %d", e.ARC, e.Base)
}

// Is lets errors.Is(err, ErrLookup) match any LookupError.
func (e *LookupError) Is(target error) bool { return target == ErrLookup }

type tableKey struct {
	lc   LandCover
	soil SoilGroup
	cond Condition
}

// TableEntry is one row of the base curve number table.
type TableEntry struct {
	LandCover LandCover
	Soil      SoilGroup
	Condition Condition
	CN        CurveNumber
}

type arcPair struct {
	dry, wet CurveNumber
}

// Built once from the literal tables and never mutated afterwards, so they are
// shared across band goroutines without locking.
var (
	baseTable  map[tableKey]CurveNumber
	tableOrder []TableEntry
	arcTable   map[CurveNumber]arcPair
)

func init() {
	baseTable = make(map[tableKey]CurveNumber, len(baseEntries)*len(SoilGroups))
	for _, row := range baseEntries {
		for i, cn := range []CurveNumber{row.a, row.b, row.c, row.d} {
			k := tableKey{lc: row.lc, soil: SoilGroups[i], cond: row.cond}
			if _, dup := baseTable[k]; dup {
				panic(fmt.Sprintf("duplicate curve number entry for %s/%s/%s", k.lc, k.soil, k.cond))
			}
			if cn > MaxCurveNumber {
				panic(fmt.Sprintf("curve number %d out of range for %s/%s/%s", cn, k.lc, k.soil, k.cond))
			}
			baseTable[k] = cn
			tableOrder = append(tableOrder, TableEntry{LandCover: k.lc, Soil: k.soil, Condition: k.cond, CN: cn})
		}
	}

	arcTable = make(map[CurveNumber]arcPair, len(arcEntries))
	for _, e := range arcEntries {
		if _, dup := arcTable[e.base]; dup {
			panic(fmt.Sprintf("duplicate ARC conversion for curve number %d", e.base))
		}
		arcTable[e.base] = arcPair{dry: e.dry, wet: e.wet}
	}
}

// BaseCN returns the ARC II curve number for a land cover, soil group and
// hydrologic condition. The boolean is false when the combination is not in
// the curated table, including dual soil codes and unknown classes.
func BaseCN(lc LandCover, soil SoilGroup, c Condition) (CurveNumber, bool) {
	cn, ok := baseTable[tableKey{lc: lc, soil: soil, cond: c}]
	return cn, ok
}

// ArcAdjusted converts an ARC II curve number to the requested antecedent
// runoff condition. ARC II is the identity. ARC I and III require base to be
// an exact key of the conversion table; anything else is a *LookupError.
func ArcAdjusted(base CurveNumber, arc ARC) (CurveNumber, error) {
	switch arc {
	case ARCII:
		return base, nil
	case ARCI, ARCIII:
		pair, ok := arcTable[base]
		if !ok {
			return 0, &LookupError{Base: base, ARC: arc}
		}
		if arc == ARCI {
			return pair.dry, nil
		}
		return pair.wet, nil
	default:
		return 0, fmt.Errorf("invalid antecedent runoff condition %d", uint8(arc))
	}
}

// TableEntries returns a copy of the base table in land cover, condition,
// soil group order.
func TableEntries() []TableEntry {
	return slices.Clone(tableOrder)
}

// ArcKeys returns the base curve numbers defined in the ARC conversion table,
// ascending.
func ArcKeys() []CurveNumber {
	keys := make([]CurveNumber, 0, len(arcTable))
	for k := range arcTable {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
