package domain

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned when two grids combined pixel by pixel do not
// have the same dimensions.
var ErrShapeMismatch = errors.New("grid shape mismatch")

// Grid is a single-band categorical raster stored row-major, one byte per
// pixel. Land cover, soil group and curve number values all fit in a byte.
type Grid struct {
	Rows, Cols int
	Data       []uint8

	// NoData marks missing pixels when HasNoData is set.
	NoData    uint8
	HasNoData bool
}

// NewGrid allocates a zero-filled grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Data: make([]uint8, rows*cols)}
}

// GridFromRows builds a grid from nested rows, mainly for tests and fixtures.
// All rows must have the same length.
func GridFromRows(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != g.Cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), g.Cols, ErrShapeMismatch)
		}
		copy(g.Data[r*g.Cols:], row)
	}
	return g, nil
}

// Validate checks that the backing slice matches the declared dimensions.
func (g *Grid) Validate() error {
	if g == nil {
		return errors.New("nil grid")
	}
	if g.Rows < 0 || g.Cols < 0 || len(g.Data) != g.Rows*g.Cols {
		return fmt.Errorf("grid %dx%d has %d pixels: %w", g.Rows, g.Cols, len(g.Data), ErrShapeMismatch)
	}
	return nil
}

// At returns the pixel at (row, col).
func (g *Grid) At(row, col int) uint8 { return g.Data[row*g.Cols+col] }

// Set writes the pixel at (row, col).
func (g *Grid) Set(row, col int, v uint8) { g.Data[row*g.Cols+col] = v }

// IsNoData reports whether v is this grid's no-data marker.
func (g *Grid) IsNoData(v uint8) bool { return g.HasNoData && v == g.NoData }

// Len is the pixel count.
func (g *Grid) Len() int { return len(g.Data) }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.Data = make([]uint8, len(g.Data))
	copy(c.Data, g.Data)
	return &c
}

func sameShape(a, b *Grid) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return fmt.Errorf("%dx%d vs %dx%d: %w", a.Rows, a.Cols, b.Rows, b.Cols, ErrShapeMismatch)
	}
	return nil
}
