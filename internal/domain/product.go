package domain

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrIncompleteProduct means a built product does not cover every
// (condition, ARC, drainage) combination exactly once.
var ErrIncompleteProduct = errors.New("incomplete curve number product")

// BandCount is the number of bands in a full product: 3 conditions x 3 ARC
// classes x 2 drainage states.
const BandCount = 18

// Combination identifies one band of the product.
type Combination struct {
	Condition Condition
	ARC       ARC
	Drainage  Drainage
}

// Name returns the band name for the combination.
func (c Combination) Name() string { return BandName(c.Condition, c.ARC, c.Drainage) }

// Combinations lists the 18 band combinations in product order: condition
// outermost, then ARC, then drainage.
func Combinations() []Combination {
	out := make([]Combination, 0, BandCount)
	for _, c := range Conditions {
		for _, arc := range ARCs {
			for _, d := range Drainages {
				out = append(out, Combination{Condition: c, ARC: arc, Drainage: d})
			}
		}
	}
	return out
}

// Product is the ordered, uniquely named collection of curve number bands
// derived from one pair of input grids.
type Product struct {
	Rows, Cols int
	Bands      []Band
}

// Names returns band names in product order.
func (p *Product) Names() []string {
	names := make([]string, len(p.Bands))
	for i, b := range p.Bands {
		names[i] = b.Name
	}
	return names
}

// Band returns the band with the given name.
func (p *Product) Band(name string) (Band, bool) {
	for _, b := range p.Bands {
		if b.Name == name {
			return b, true
		}
	}
	return Band{}, false
}

// Validate checks the completeness invariant: exactly BandCount bands with
// distinct names matching Combinations.
func (p *Product) Validate() error {
	if len(p.Bands) != BandCount {
		return fmt.Errorf("%d bands, want %d: %w", len(p.Bands), BandCount, ErrIncompleteProduct)
	}
	seen := make(map[string]struct{}, BandCount)
	for _, b := range p.Bands {
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("duplicate band %s: %w", b.Name, ErrIncompleteProduct)
		}
		seen[b.Name] = struct{}{}
	}
	for _, c := range Combinations() {
		if _, ok := seen[c.Name()]; !ok {
			return fmt.Errorf("missing band %s: %w", c.Name(), ErrIncompleteProduct)
		}
	}
	return nil
}

type buildOptions struct {
	workers int
}

// BuildOption customises BuildProduct.
type BuildOption func(*buildOptions)

// WithWorkers bounds the number of bands computed concurrently. Values below
// one select GOMAXPROCS.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) { o.workers = n }
}

// BuildProduct computes all 18 bands from a land cover grid and a raw soil
// grid. Soil is remapped once per drainage status and shared read-only by the
// band tasks. Any band failure fails the whole product.
func BuildProduct(ctx context.Context, landCover, soil *Grid, opts ...BuildOption) (*Product, error) {
	o := buildOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	if err := sameShape(landCover, soil); err != nil {
		return nil, fmt.Errorf("build product: %w", err)
	}

	remapped := make(map[Drainage]*Grid, len(Drainages))
	for _, d := range Drainages {
		remapped[d] = RemapSoilGrid(soil, d)
	}

	combos := Combinations()
	bands := make([]Band, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, combo := range combos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := GenerateBand(landCover, remapped[combo.Drainage], combo.Condition, combo.ARC, combo.Drainage)
			if err != nil {
				return err
			}
			bands[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build product: %w", err)
	}

	p := &Product{Rows: landCover.Rows, Cols: landCover.Cols, Bands: bands}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
