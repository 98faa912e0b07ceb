// Package tiffstore keeps raster blocks on the local filesystem as 8-bit
// GeoTIFF-compatible files.
//
// Inputs live under the input directory as landcover/<block>.tif and
// hsg/<block>.tif. Each generated band is written to
// cn_rasters_<drainage>/cn_<c>_<arc>_<block>.tif under the output directory,
// where c is the first letter of the condition.
package tiffstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/curve-number-etl/internal/domain"
)

// ErrBlockNotFound means one of a block's input rasters is missing.
var ErrBlockNotFound = errors.New("raster block not found")

// No-data codes of the input products: 0 in the land cover map and 255 in the
// soil group map.
const (
	LandCoverNoData uint8 = 0
	SoilNoData      uint8 = 255
)

// Store reads input blocks and writes curve number bands.
// It implements pipeline.RasterSource and pipeline.ProductStore.
type Store struct {
	inputDir  string
	outputDir string
	logger    *slog.Logger
}

// New creates a Store rooted at the given directories.
func New(inputDir, outputDir string, logger *slog.Logger) *Store {
	return &Store{inputDir: inputDir, outputDir: outputDir, logger: logger}
}

// LandCoverPath returns the land cover input path of a block.
func (s *Store) LandCoverPath(blockID int) string {
	return filepath.Join(s.inputDir, "landcover", blockFile(blockID))
}

// SoilPath returns the soil group input path of a block.
func (s *Store) SoilPath(blockID int) string {
	return filepath.Join(s.inputDir, "hsg", blockFile(blockID))
}

// BandPath returns the output path of one band of a block.
func (s *Store) BandPath(blockID int, c domain.Combination) string {
	name := fmt.Sprintf("cn_%s_%s_%d.tif", c.Condition.Short(), c.ARC, blockID)
	return filepath.Join(s.outputDir, "cn_rasters_"+c.Drainage.String(), name)
}

// LoadBlock reads the land cover and soil rasters of a block.
func (s *Store) LoadBlock(ctx context.Context, blockID int) (*domain.Grid, *domain.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	lc, err := s.readInput(s.LandCoverPath(blockID), LandCoverNoData)
	if err != nil {
		return nil, nil, err
	}
	soil, err := s.readInput(s.SoilPath(blockID), SoilNoData)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("loaded block", "block_id", blockID, "rows", lc.Rows, "cols", lc.Cols)
	return lc, soil, nil
}

func (s *Store) readInput(path string, noData uint8) (*domain.Grid, error) {
	g, err := ReadGrid(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrBlockNotFound)
	}
	if err != nil {
		return nil, err
	}
	g.NoData, g.HasNoData = noData, true
	return g, nil
}

// ListBlocks returns the ids of all blocks with a land cover raster, sorted
// ascending. Files whose names are not integer ids are ignored.
func (s *Store) ListBlocks() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.inputDir, "landcover"))
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".tif")
		if e.IsDir() || !ok {
			continue
		}
		id, err := strconv.Atoi(name)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// Exists reports whether every band of the block has already been written.
func (s *Store) Exists(_ context.Context, blockID int) (bool, error) {
	for _, c := range domain.Combinations() {
		_, err := os.Stat(s.BandPath(blockID, c))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// Save writes every band of the product and returns their paths keyed by band
// name.
func (s *Store) Save(ctx context.Context, blockID int, p *domain.Product) (map[string]string, error) {
	paths := make(map[string]string, len(p.Bands))
	for _, b := range p.Bands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := s.BandPath(blockID, domain.Combination{Condition: b.Condition, ARC: b.ARC, Drainage: b.Drainage})
		if err := WriteGrid(path, b.Grid); err != nil {
			return nil, fmt.Errorf("write %s: %w", b.Name, err)
		}
		paths[b.Name] = path
	}
	s.logger.Debug("saved product", "block_id", blockID, "bands", len(paths))
	return paths, nil
}

func blockFile(blockID int) string {
	return strconv.Itoa(blockID) + ".tif"
}
