package tiffstore

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func mustGrid(t *testing.T, rows [][]uint8) *domain.Grid {
	t.Helper()
	g, err := domain.GridFromRows(rows)
	require.NoError(t, err)
	return g
}

func TestWriteReadGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "band.tif")
	in := mustGrid(t, [][]uint8{
		{0, 60, 65, 100},
		{84, 5, 91, 0},
		{30, 30, 30, 255},
	})

	require.NoError(t, WriteGrid(path, in))

	out, err := ReadGrid(path)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteGrid_InvalidGrid(t *testing.T) {
	bad := &domain.Grid{Rows: 2, Cols: 2, Data: []uint8{1}}
	assert.Error(t, WriteGrid(filepath.Join(t.TempDir(), "bad.tif"), bad))
}

func encodeImage(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.tif")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, img, nil))
	require.NoError(t, f.Close())
	return path
}

func TestReadGrid_PalettedUsesIndices(t *testing.T) {
	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = color.RGBA{R: uint8(i * 7), G: uint8(255 - i), B: uint8(i * 3), A: 255}
	}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), palette)
	img.SetColorIndex(0, 0, 10)
	img.SetColorIndex(1, 0, 40)

	g, err := ReadGrid(encodeImage(t, img))
	require.NoError(t, err)
	assert.Equal(t, []uint8{10, 40}, g.Data)
}

func TestReadGrid_Gray16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 12})
	img.SetGray16(1, 0, color.Gray16{Y: 3})

	g, err := ReadGrid(encodeImage(t, img))
	require.NoError(t, err)
	assert.Equal(t, []uint8{12, 3}, g.Data)
}

func TestReadGrid_Gray16OutOfRange(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 4})
	img.SetGray16(1, 0, color.Gray16{Y: 300})

	_, err := ReadGrid(encodeImage(t, img))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "300")
}

func TestReadGrid_RejectsColourImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 40, G: 40, B: 40, A: 255})
	img.Set(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	_, err := ReadGrid(encodeImage(t, img))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported colour model")
}

func TestStore_LoadBlock_PalettedLandCover(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	s := New(in, out, discardLogger())

	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = color.RGBA{R: uint8(i), G: 0, B: 255, A: 255}
	}
	lc := image.NewPaletted(image.Rect(0, 0, 2, 1), palette)
	lc.SetColorIndex(0, 0, 10)
	lc.SetColorIndex(1, 0, 80)

	require.NoError(t, os.MkdirAll(filepath.Dir(s.LandCoverPath(4)), 0o755))
	f, err := os.Create(s.LandCoverPath(4))
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, lc, nil))
	require.NoError(t, f.Close())
	require.NoError(t, WriteGrid(s.SoilPath(4), mustGrid(t, [][]uint8{{2, 13}})))

	landCover, soil, err := s.LoadBlock(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []uint8{10, 80}, landCover.Data)
	assert.Equal(t, []uint8{2, 13}, soil.Data)
}

func TestStore_Paths(t *testing.T) {
	s := New("/in", "/out", discardLogger())

	assert.Equal(t, filepath.Join("/in", "landcover", "12.tif"), s.LandCoverPath(12))
	assert.Equal(t, filepath.Join("/in", "hsg", "12.tif"), s.SoilPath(12))
	assert.Equal(t,
		filepath.Join("/out", "cn_rasters_drained", "cn_p_i_12.tif"),
		s.BandPath(12, domain.Combination{Condition: domain.Poor, ARC: domain.ARCI, Drainage: domain.Drained}))
	assert.Equal(t,
		filepath.Join("/out", "cn_rasters_undrained", "cn_g_iii_12.tif"),
		s.BandPath(12, domain.Combination{Condition: domain.Good, ARC: domain.ARCIII, Drainage: domain.Undrained}))
}

func TestStore_LoadBlock(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), discardLogger())
	lc := mustGrid(t, [][]uint8{{10, 0}, {50, 80}})
	soil := mustGrid(t, [][]uint8{{2, 255}, {13, 1}})
	require.NoError(t, WriteGrid(s.LandCoverPath(3), lc))
	require.NoError(t, WriteGrid(s.SoilPath(3), soil))

	gotLC, gotSoil, err := s.LoadBlock(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, lc.Data, gotLC.Data)
	assert.True(t, gotLC.IsNoData(0))
	assert.Equal(t, soil.Data, gotSoil.Data)
	assert.True(t, gotSoil.IsNoData(255))
}

func TestStore_LoadBlock_Missing(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), discardLogger())
	require.NoError(t, WriteGrid(s.LandCoverPath(5), mustGrid(t, [][]uint8{{10}})))

	_, _, err := s.LoadBlock(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlockNotFound)
	assert.Contains(t, err.Error(), "hsg")
}

func TestStore_SaveAndExists(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), discardLogger())
	ctx := context.Background()

	lc := mustGrid(t, [][]uint8{{10, 30, 70}})
	soil := mustGrid(t, [][]uint8{{2, 12, 4}})
	p, err := domain.BuildProduct(ctx, lc, soil)
	require.NoError(t, err)

	exists, err := s.Exists(ctx, 9)
	require.NoError(t, err)
	assert.False(t, exists)

	paths, err := s.Save(ctx, 9, p)
	require.NoError(t, err)
	require.Len(t, paths, domain.BandCount)

	exists, err = s.Exists(ctx, 9)
	require.NoError(t, err)
	assert.True(t, exists)

	b, ok := p.Band("CN_fair_ii_undrained")
	require.True(t, ok)
	stored, err := ReadGrid(paths[b.Name])
	require.NoError(t, err)
	assert.Equal(t, b.Grid.Data, stored.Data)

	// A single missing band makes the block incomplete again.
	require.NoError(t, os.Remove(paths["CN_good_iii_drained"]))
	exists, err = s.Exists(ctx, 9)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_SaveCancelled(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), discardLogger())
	p, err := domain.BuildProduct(context.Background(), mustGrid(t, [][]uint8{{10}}), mustGrid(t, [][]uint8{{1}}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Save(ctx, 1, p)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ListBlocks(t *testing.T) {
	s := New(t.TempDir(), t.TempDir(), discardLogger())
	for _, id := range []int{12, 3, 7} {
		require.NoError(t, WriteGrid(s.LandCoverPath(id), mustGrid(t, [][]uint8{{10}})))
	}
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(s.LandCoverPath(1)), "notes.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(s.LandCoverPath(1)), "mosaic.tif"), nil, 0o644))

	ids, err := s.ListBlocks()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 12}, ids)
}
