package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RawEvent is an unprocessed message from the job topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// BlockJob asks for the curve number product of one raster block.
type BlockJob struct {
	BlockID int `json:"block_id"`
}

// ParseBlockJob decodes a job message value.
func ParseBlockJob(raw RawEvent) (BlockJob, error) {
	var job BlockJob
	if err := json.Unmarshal(raw.Value, &job); err != nil {
		return BlockJob{}, fmt.Errorf("parse block job: %w", err)
	}
	if job.BlockID <= 0 {
		return BlockJob{}, errors.New("parse block job: block_id must be positive")
	}
	return job, nil
}

// Product event statuses.
const (
	StatusGenerated = "generated"
	StatusSkipped   = "skipped"
)

// Skip reasons reported on skipped events and in metrics.
const (
	SkipExists    = "outputs_exist"
	SkipNoSoil    = "no_valid_soil"
	SkipEmptyGrid = "empty_grid"
)

// BandSummary describes one stored band.
type BandSummary struct {
	Name     string      `json:"name"`
	Path     string      `json:"path,omitempty"`
	Assigned int         `json:"assigned"`
	Min      CurveNumber `json:"min"`
	Max      CurveNumber `json:"max"`
}

// ProductEvent is published once a block has been handled.
type ProductEvent struct {
	BlockID     int           `json:"block_id"`
	Status      string        `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	Rows        int           `json:"rows,omitempty"`
	Cols        int           `json:"cols,omitempty"`
	FilledSoil  int           `json:"filled_soil,omitempty"`
	Bands       []BandSummary `json:"bands,omitempty"`
	ProcessedAt time.Time     `json:"processed_at"`
}

// NewGeneratedEvent summarises a stored product. paths maps band names to
// storage locations and may be nil.
func NewGeneratedEvent(blockID int, p *Product, paths map[string]string) ProductEvent {
	bands := make([]BandSummary, len(p.Bands))
	for i, b := range p.Bands {
		bands[i] = BandSummary{
			Name:     b.Name,
			Path:     paths[b.Name],
			Assigned: b.Assigned,
			Min:      b.Min,
			Max:      b.Max,
		}
	}
	return ProductEvent{
		BlockID:     blockID,
		Status:      StatusGenerated,
		Rows:        p.Rows,
		Cols:        p.Cols,
		Bands:       bands,
		ProcessedAt: clock.Now().UTC(),
	}
}

// NewSkippedEvent records a block that was not generated.
func NewSkippedEvent(blockID int, reason string) ProductEvent {
	return ProductEvent{
		BlockID:     blockID,
		Status:      StatusSkipped,
		Reason:      reason,
		ProcessedAt: clock.Now().UTC(),
	}
}
