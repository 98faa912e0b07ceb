package tiffstore

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"golang.org/x/image/tiff"
)

// ReadGrid decodes a single-band TIFF of class codes into a grid. Gray and
// paletted images yield their raw values; 16-bit gray is accepted only when
// every value fits in a byte. Other colour models are rejected.
func ReadGrid(path string) (*domain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := tiff.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	g, err := gridFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return g, nil
}

// WriteGrid encodes g as a deflate-compressed 8-bit gray TIFF. The file is
// written under a temporary name and renamed into place so readers never see
// a partial raster.
func WriteGrid(path string, g *domain.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*.tif")
	if err != nil {
		return fmt.Errorf("create temp raster: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	img := &image.Gray{Pix: g.Data, Stride: g.Cols, Rect: image.Rect(0, 0, g.Cols, g.Rows)}
	if err := tiff.Encode(tmp, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func gridFromImage(img image.Image) (*domain.Grid, error) {
	b := img.Bounds()
	g := domain.NewGrid(b.Dy(), b.Dx())

	switch src := img.(type) {
	case *image.Gray:
		copyRows(g, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y))
	case *image.Paletted:
		// Class rasters often ship with a colour map; the codes are the indices.
		copyRows(g, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y))
	case *image.Gray16:
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				v := src.Gray16At(b.Min.X+c, b.Min.Y+r).Y
				if v > 255 {
					return nil, fmt.Errorf("value %d at row %d col %d does not fit in 8 bits", v, r, c)
				}
				g.Set(r, c, uint8(v))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported colour model %T", img)
	}
	return g, nil
}

func copyRows(g *domain.Grid, pix []uint8, stride, offset int) {
	for r := 0; r < g.Rows; r++ {
		start := offset + r*stride
		copy(g.Data[r*g.Cols:(r+1)*g.Cols], pix[start:start+g.Cols])
	}
}
