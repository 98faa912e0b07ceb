package domain

// baseEntries is the curated average-condition (ARC II) curve number table for
// WorldCover classes, one row per land cover and hydrologic condition with
// values for soil groups A through D.
var baseEntries = []struct {
	lc         LandCover
	cond       Condition
	a, b, c, d CurveNumber
}{
	{TreeCover, Poor, 45, 66, 77, 83},
	{TreeCover, Fair, 36, 60, 73, 79},
	{TreeCover, Good, 30, 55, 70, 77},
	{Shrubland, Poor, 63, 77, 85, 88},
	{Shrubland, Fair, 55, 72, 81, 86},
	{Shrubland, Good, 49, 68, 79, 84},
	{Grassland, Poor, 68, 79, 86, 89},
	{Grassland, Fair, 49, 69, 79, 84},
	{Grassland, Good, 39, 61, 74, 80},
	{Cropland, Poor, 72, 81, 88, 91},
	{Cropland, Fair, 70, 80, 87, 90},
	{Cropland, Good, 67, 78, 85, 89},
	{BuiltUp, Poor, 89, 92, 94, 95},
	{BuiltUp, Fair, 89, 92, 94, 95},
	{BuiltUp, Good, 89, 92, 94, 95},
	{BareSparse, Poor, 65, 79, 87, 90},
	{BareSparse, Fair, 65, 79, 87, 90},
	{BareSparse, Good, 65, 79, 87, 90},
	{SnowIce, Poor, 0, 0, 0, 0},
	{SnowIce, Fair, 0, 0, 0, 0},
	{SnowIce, Good, 0, 0, 0, 0},
	{PermanentWater, Poor, 100, 100, 100, 100},
	{PermanentWater, Fair, 100, 100, 100, 100},
	{PermanentWater, Good, 100, 100, 100, 100},
	{HerbaceousWetland, Poor, 80, 80, 80, 80},
	{HerbaceousWetland, Fair, 80, 80, 80, 80},
	{HerbaceousWetland, Good, 80, 80, 80, 80},
	{Mangroves, Poor, 0, 0, 0, 0},
	{Mangroves, Fair, 0, 0, 0, 0},
	{Mangroves, Good, 0, 0, 0, 0},
	{MossLichen, Poor, 74, 77, 78, 79},
	{MossLichen, Fair, 74, 77, 78, 79},
	{MossLichen, Good, 74, 77, 78, 79},
}

// arcEntries converts an ARC II curve number to its dry (ARC I) and wet
// (ARC III) equivalents. Keys below 30 are tabulated in steps of five.
var arcEntries = []struct {
	base, dry, wet CurveNumber
}{
	{0, 0, 0}, {5, 2, 13}, {10, 4, 22}, {15, 6, 30}, {20, 9, 37}, {25, 12, 43},
	{30, 15, 50}, {31, 16, 51}, {32, 16, 52}, {33, 17, 53}, {34, 18, 54}, {35, 18, 55},
	{36, 19, 56}, {37, 20, 57}, {38, 21, 58}, {39, 21, 59}, {40, 22, 60}, {41, 23, 61},
	{42, 24, 62}, {43, 25, 63}, {44, 25, 64}, {45, 26, 65}, {46, 27, 66}, {47, 28, 67},
	{48, 29, 68}, {49, 30, 69}, {50, 31, 70}, {51, 31, 70}, {52, 32, 71}, {53, 33, 72},
	{54, 34, 73}, {55, 35, 74}, {56, 36, 75}, {57, 37, 75}, {58, 38, 76}, {59, 39, 77},
	{60, 40, 78}, {61, 41, 78}, {62, 42, 79}, {63, 43, 80}, {64, 44, 81}, {65, 45, 82},
	{66, 46, 82}, {67, 47, 83}, {68, 48, 84}, {69, 50, 84}, {70, 51, 85}, {71, 52, 86},
	{72, 53, 86}, {73, 54, 87}, {74, 55, 88}, {75, 57, 88}, {76, 58, 89}, {77, 59, 89},
	{78, 60, 90}, {79, 62, 91}, {80, 63, 91}, {81, 64, 92}, {82, 66, 92}, {83, 67, 93},
	{84, 68, 93}, {85, 70, 94}, {86, 72, 94}, {87, 73, 95}, {88, 75, 95}, {89, 76, 96},
	{90, 78, 96}, {91, 80, 97}, {92, 81, 97}, {93, 83, 98}, {94, 85, 98}, {95, 87, 98},
	{96, 89, 99}, {97, 91, 99}, {98, 94, 99}, {99, 97, 100}, {100, 100, 100},
}
