package domain

import (
	"fmt"
	"strings"
)

// LandCover is an ESA WorldCover class code.
type LandCover uint8

// ESA WorldCover v200 classes.
const (
	TreeCover         LandCover = 10
	Shrubland         LandCover = 20
	Grassland         LandCover = 30
	Cropland          LandCover = 40
	BuiltUp           LandCover = 50
	BareSparse        LandCover = 60
	SnowIce           LandCover = 70
	PermanentWater    LandCover = 80
	HerbaceousWetland LandCover = 90
	Mangroves         LandCover = 95
	MossLichen        LandCover = 100
)

// LandCovers lists every class in ascending code order.
var LandCovers = []LandCover{
	TreeCover, Shrubland, Grassland, Cropland, BuiltUp, BareSparse,
	SnowIce, PermanentWater, HerbaceousWetland, Mangroves, MossLichen,
}

var landCoverNames = map[LandCover]string{
	TreeCover:         "tree cover",
	Shrubland:         "shrubland",
	Grassland:         "grassland",
	Cropland:          "cropland",
	BuiltUp:           "built-up",
	BareSparse:        "bare / sparse vegetation",
	SnowIce:           "snow and ice",
	PermanentWater:    "permanent water bodies",
	HerbaceousWetland: "herbaceous wetland",
	Mangroves:         "mangroves",
	MossLichen:        "moss and lichen",
}

// Valid reports whether lc is one of the WorldCover classes.
func (lc LandCover) Valid() bool {
	_, ok := landCoverNames[lc]
	return ok
}

func (lc LandCover) String() string {
	if name, ok := landCoverNames[lc]; ok {
		return name
	}
	return fmt.Sprintf("land cover %d", uint8(lc))
}

// SoilGroup is a HYSOGs hydrologic soil group code. Codes 1-4 are groups A-D;
// 11-14 are dual groups (A/D .. D/D) that behave as D unless drained.
type SoilGroup uint8

const (
	GroupA SoilGroup = 1
	GroupB SoilGroup = 2
	GroupC SoilGroup = 3
	GroupD SoilGroup = 4

	DualA SoilGroup = 11
	DualB SoilGroup = 12
	DualC SoilGroup = 13
	DualD SoilGroup = 14
)

// SoilGroups lists the four single groups used as table keys.
var SoilGroups = []SoilGroup{GroupA, GroupB, GroupC, GroupD}

// IsDual reports whether g is one of the drainage-dependent dual codes.
func (g SoilGroup) IsDual() bool { return g >= DualA && g <= DualD }

// Natural returns the group a dual soil takes once drained. Non-dual codes
// are returned unchanged.
func (g SoilGroup) Natural() SoilGroup {
	if g.IsDual() {
		return g - 10
	}
	return g
}

// Valid reports whether g is a known single or dual code.
func (g SoilGroup) Valid() bool {
	return (g >= GroupA && g <= GroupD) || g.IsDual()
}

func (g SoilGroup) String() string {
	letters := "ABCD"
	switch {
	case g >= GroupA && g <= GroupD:
		return letters[g-1 : g]
	case g.IsDual():
		return letters[g-11:g-10] + "/D"
	default:
		return fmt.Sprintf("soil group %d", uint8(g))
	}
}

// Condition is the hydrologic (vegetative cover) condition.
type Condition uint8

const (
	Poor Condition = iota
	Fair
	Good
)

// Conditions lists hydrologic conditions in product order.
var Conditions = []Condition{Poor, Fair, Good}

func (c Condition) String() string {
	switch c {
	case Poor:
		return "poor"
	case Fair:
		return "fair"
	case Good:
		return "good"
	default:
		return fmt.Sprintf("condition(%d)", uint8(c))
	}
}

// Short returns the one-letter code used in tile file names.
func (c Condition) Short() string {
	s := c.String()
	return s[:1]
}

// ParseCondition accepts "poor", "fair", "good" or their first letter.
func ParseCondition(s string) (Condition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "poor", "p":
		return Poor, nil
	case "fair", "f":
		return Fair, nil
	case "good", "g":
		return Good, nil
	default:
		return 0, fmt.Errorf("unknown hydrologic condition %q", s)
	}
}

// ARC is the antecedent runoff condition class.
type ARC uint8

const (
	ARCI   ARC = iota // dry
	ARCII             // average
	ARCIII            // wet
)

// ARCs lists antecedent runoff conditions in product order.
var ARCs = []ARC{ARCI, ARCII, ARCIII}

func (a ARC) String() string {
	switch a {
	case ARCI:
		return "i"
	case ARCII:
		return "ii"
	case ARCIII:
		return "iii"
	default:
		return fmt.Sprintf("arc(%d)", uint8(a))
	}
}

// ParseARC accepts "i", "ii" or "iii" in any case.
func ParseARC(s string) (ARC, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "i":
		return ARCI, nil
	case "ii":
		return ARCII, nil
	case "iii":
		return ARCIII, nil
	default:
		return 0, fmt.Errorf("unknown antecedent runoff condition %q", s)
	}
}

// Drainage selects how dual soil groups are treated.
type Drainage uint8

const (
	Drained Drainage = iota
	Undrained
)

// Drainages lists drainage states in product order.
var Drainages = []Drainage{Drained, Undrained}

func (d Drainage) String() string {
	switch d {
	case Drained:
		return "drained"
	case Undrained:
		return "undrained"
	default:
		return fmt.Sprintf("drainage(%d)", uint8(d))
	}
}

// ParseDrainage accepts "drained" or "undrained".
func ParseDrainage(s string) (Drainage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drained":
		return Drained, nil
	case "undrained":
		return Undrained, nil
	default:
		return 0, fmt.Errorf("unknown drainage status %q", s)
	}
}

// CurveNumber is an NRCS runoff curve number in [0,100].
type CurveNumber uint8

// MaxCurveNumber is the upper clamp for adjusted values.
const MaxCurveNumber CurveNumber = 100
