package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"github.com/couchcryptid/curve-number-etl/internal/observability"
)

// RasterSource loads the land cover and raw soil grids of a block.
type RasterSource interface {
	LoadBlock(ctx context.Context, blockID int) (landCover, soil *domain.Grid, err error)
}

// ProductStore persists generated bands. Save returns the storage location of
// each band keyed by band name.
type ProductStore interface {
	Exists(ctx context.Context, blockID int) (bool, error)
	Save(ctx context.Context, blockID int, p *domain.Product) (map[string]string, error)
}

// TransformerOptions tunes product generation.
type TransformerOptions struct {
	// Workers bounds concurrent band computations. Zero selects GOMAXPROCS.
	Workers int
	// Timeout caps the build of one product. Zero means no limit.
	Timeout time.Duration
	// FillSoilNoData sets soil no-data pixels to group D before remapping.
	FillSoilNoData bool
}

// CNTransformer implements Transformer by building and storing the curve
// number product of the block named in each job.
type CNTransformer struct {
	source  RasterSource
	store   ProductStore
	opts    TransformerOptions
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a CNTransformer.
func NewTransformer(source RasterSource, store ProductStore, opts TransformerOptions, logger *slog.Logger, metrics *observability.Metrics) *CNTransformer {
	return &CNTransformer{
		source:  source,
		store:   store,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *CNTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.ProductEvent, error) {
	job, err := domain.ParseBlockJob(raw)
	if err != nil {
		return domain.ProductEvent{}, err
	}
	return t.Generate(ctx, job)
}

// Generate builds and stores the product of one block. Blocks whose outputs
// already exist, that are empty, or that carry no usable soil data are
// reported as skipped rather than failed.
func (t *CNTransformer) Generate(ctx context.Context, job domain.BlockJob) (domain.ProductEvent, error) {
	log := t.logger.With("block_id", job.BlockID)

	exists, err := t.store.Exists(ctx, job.BlockID)
	if err != nil {
		return domain.ProductEvent{}, fmt.Errorf("block %d: check outputs: %w", job.BlockID, err)
	}
	if exists {
		log.Debug("outputs exist, skipping block")
		return t.skip(job.BlockID, domain.SkipExists), nil
	}

	landCover, soil, err := t.source.LoadBlock(ctx, job.BlockID)
	if err != nil {
		return domain.ProductEvent{}, fmt.Errorf("block %d: load rasters: %w", job.BlockID, err)
	}
	if landCover.Len() == 0 {
		log.Info("empty block, skipping")
		return t.skip(job.BlockID, domain.SkipEmptyGrid), nil
	}

	// Checked on the raw soil: an all no-data block is skipped, not filled.
	if !domain.HasValidSoil(soil) {
		log.Info("no valid soil data, skipping block")
		return t.skip(job.BlockID, domain.SkipNoSoil), nil
	}
	filled := 0
	if t.opts.FillSoilNoData {
		soil, filled = domain.FillMissingSoil(soil)
		if filled > 0 {
			t.metrics.SoilPixelsFilled.Add(float64(filled))
			log.Debug("filled missing soil", "pixels", filled)
		}
	}

	buildCtx := ctx
	if t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	product, err := domain.BuildProduct(buildCtx, landCover, soil, domain.WithWorkers(t.opts.Workers))
	if err != nil {
		return domain.ProductEvent{}, fmt.Errorf("block %d: %w", job.BlockID, err)
	}
	t.metrics.ProductBuildDuration.Observe(time.Since(start).Seconds())

	paths, err := t.store.Save(ctx, job.BlockID, product)
	if err != nil {
		return domain.ProductEvent{}, fmt.Errorf("block %d: store product: %w", job.BlockID, err)
	}

	assigned := 0
	for _, b := range product.Bands {
		assigned += b.Assigned
	}
	t.metrics.BandsGenerated.Add(float64(len(product.Bands)))
	t.metrics.PixelsAssigned.Add(float64(assigned))

	log.Info("product generated",
		"rows", product.Rows,
		"cols", product.Cols,
		"bands", len(product.Bands),
		"duration", time.Since(start),
	)

	event := domain.NewGeneratedEvent(job.BlockID, product, paths)
	event.FilledSoil = filled
	return event, nil
}

func (t *CNTransformer) skip(blockID int, reason string) domain.ProductEvent {
	t.metrics.BlocksSkipped.WithLabelValues(reason).Inc()
	return domain.NewSkippedEvent(blockID, reason)
}
