package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/curve-number-etl/internal/adapter/tiffstore"
	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generatedBlock writes inputs and a full product for one block and returns
// the block as cnvalidate loads it.
func generatedBlock(t *testing.T) (*tiffstore.Store, blockData) {
	t.Helper()
	store := tiffstore.New(t.TempDir(), t.TempDir(), slog.New(slog.DiscardHandler))

	lc, err := domain.GridFromRows([][]uint8{{10, 30, 0}, {50, 80, 40}})
	require.NoError(t, err)
	soil, err := domain.GridFromRows([][]uint8{{2, 13, 1}, {255, 1, 14}})
	require.NoError(t, err)
	require.NoError(t, tiffstore.WriteGrid(store.LandCoverPath(1), lc))
	require.NoError(t, tiffstore.WriteGrid(store.SoilPath(1), soil))

	inLC, inSoil, err := store.LoadBlock(context.Background(), 1)
	require.NoError(t, err)
	filled, _ := domain.FillMissingSoil(inSoil)
	p, err := domain.BuildProduct(context.Background(), inLC, filled)
	require.NoError(t, err)
	_, err = store.Save(context.Background(), 1, p)
	require.NoError(t, err)

	data, err := loadBlock(store, 1)
	require.NoError(t, err)
	data.soil, _ = domain.FillMissingSoil(data.soil)
	return store, data
}

func TestValidate_GeneratedBlockPasses(t *testing.T) {
	_, data := generatedBlock(t)
	require.Len(t, data.bands, domain.BandCount)

	for _, check := range []func(*phase, blockData){
		validateCompleteness, validateRanges, validateOrdering, validateBaseline,
	} {
		p := &phase{}
		check(p, data)
		assert.True(t, p.passed(), "%v", p.errors)
	}
}

func TestValidateCompleteness_MissingAndMisshapen(t *testing.T) {
	_, data := generatedBlock(t)
	delete(data.bands, "CN_good_i_undrained")
	data.bands["CN_poor_ii_drained"] = domain.NewGrid(1, 1)

	p := &phase{}
	validateCompleteness(p, data)
	require.Len(t, p.errors, 2)
	assert.Contains(t, p.errors[0], "CN_poor_ii_drained is 1x1")
	assert.Contains(t, p.errors[1], "missing CN_good_i_undrained")
}

func TestValidateRanges_OutOfRange(t *testing.T) {
	_, data := generatedBlock(t)
	data.bands["CN_fair_iii_drained"].Data[0] = 101

	p := &phase{}
	validateRanges(p, data)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "CN_fair_iii_drained pixel 0 = 101")
}

func TestValidateOrdering_UndrainedBelowDrained(t *testing.T) {
	_, data := generatedBlock(t)
	data.bands["CN_good_ii_undrained"].Data[3] = 0

	p := &phase{}
	validateOrdering(p, data)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "CN_good_ii_undrained pixel 3")
}

func TestValidateBaseline_Mismatch(t *testing.T) {
	_, data := generatedBlock(t)
	data.bands["CN_fair_ii_drained"].Data[0]++

	p := &phase{}
	validateBaseline(p, data)
	require.Len(t, p.errors, 1)
	assert.Contains(t, p.errors[0], "base table gives 60")
}

func TestValidateBaseline_SkippedWithoutInputs(t *testing.T) {
	_, data := generatedBlock(t)
	data.landCover, data.soil = nil, nil
	data.bands["CN_fair_ii_drained"].Data[0] = 1

	p := &phase{}
	validateBaseline(p, data)
	assert.True(t, p.passed())
}

func TestBlockIDs(t *testing.T) {
	store, _ := generatedBlock(t)

	ids, err := blockIDs(store, "")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)

	ids, err = blockIDs(store, "4, 2")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, ids)

	_, err = blockIDs(store, "two")
	assert.Error(t, err)
}
