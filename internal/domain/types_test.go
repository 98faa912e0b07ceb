package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnums(t *testing.T) {
	c, err := ParseCondition(" Fair ")
	require.NoError(t, err)
	assert.Equal(t, Fair, c)

	c, err = ParseCondition("g")
	require.NoError(t, err)
	assert.Equal(t, Good, c)

	_, err = ParseCondition("excellent")
	assert.Error(t, err)

	a, err := ParseARC("III")
	require.NoError(t, err)
	assert.Equal(t, ARCIII, a)

	_, err = ParseARC("iv")
	assert.Error(t, err)

	d, err := ParseDrainage("undrained")
	require.NoError(t, err)
	assert.Equal(t, Undrained, d)

	_, err = ParseDrainage("tiled")
	assert.Error(t, err)
}

func TestEnumStrings(t *testing.T) {
	for _, c := range Conditions {
		parsed, err := ParseCondition(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)

		short, err := ParseCondition(c.Short())
		require.NoError(t, err)
		assert.Equal(t, c, short)
	}
	for _, a := range ARCs {
		parsed, err := ParseARC(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	for _, d := range Drainages {
		parsed, err := ParseDrainage(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
}

func TestSoilGroup(t *testing.T) {
	assert.Equal(t, "B", GroupB.String())
	assert.Equal(t, "C/D", DualC.String())
	assert.Equal(t, "soil group 9", SoilGroup(9).String())

	assert.True(t, DualA.IsDual())
	assert.False(t, GroupD.IsDual())
	assert.Equal(t, GroupC, DualC.Natural())
	assert.Equal(t, GroupA, GroupA.Natural())

	assert.True(t, DualD.Valid())
	assert.False(t, SoilGroup(0).Valid())
	assert.False(t, SoilGroup(15).Valid())
}

func TestLandCover(t *testing.T) {
	assert.True(t, Mangroves.Valid())
	assert.False(t, LandCover(15).Valid())
	assert.Equal(t, "snow and ice", SnowIce.String())
	assert.Equal(t, "land cover 15", LandCover(15).String())
}
