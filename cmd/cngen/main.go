// Command cngen generates the 18 curve number rasters for every selected
// block in a raster directory. Blocks are processed by a pool of workers;
// blocks whose outputs already exist are skipped, and a failed block is
// logged without stopping the run.
//
// Usage:
//
//	go run ./cmd/cngen \
//	  -input-dir data/blocks \
//	  -output-dir data/cn \
//	  -block-ids-file blocks.txt \
//	  -workers 8
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/couchcryptid/curve-number-etl/internal/adapter/tiffstore"
	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"github.com/couchcryptid/curve-number-etl/internal/observability"
	"github.com/couchcryptid/curve-number-etl/internal/pipeline"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/gosuri/uiprogress"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// summary counts block outcomes across workers.
type summary struct {
	generated atomic.Int64
	skipped   atomic.Int64
	failed    atomic.Int64
}

func run() error {
	inputDir := flag.String("input-dir", sharedcfg.EnvOrDefault("RASTER_INPUT_DIR", "data/blocks"), "directory with landcover/ and hsg/ block rasters")
	outputDir := flag.String("output-dir", sharedcfg.EnvOrDefault("RASTER_OUTPUT_DIR", "data/cn"), "directory for cn_rasters_drained/ and cn_rasters_undrained/")
	blocks := flag.String("blocks", "", "comma-separated block ids to process (default: all blocks)")
	blockIDsFile := flag.String("block-ids-file", "", "file with one block id per line")
	startBlock := flag.Int("start-block", 1, "skip blocks with a lower id")
	workers := flag.Int("workers", runtime.NumCPU(), "blocks processed concurrently")
	bandWorkers := flag.Int("band-workers", 1, "bands computed concurrently within a block")
	fillSoil := flag.Bool("fill-soil", true, "treat missing soil data as group D")
	logLevel := flag.String("log-level", "warn", "log level (debug|info|warn|error)")
	progress := flag.Bool("progress", true, "show a progress bar")
	flag.Parse()

	if *workers < 1 {
		return fmt.Errorf("-workers must be at least 1, got %d", *workers)
	}

	logger := observability.NewCLILogger(os.Stderr, *logLevel)
	store := tiffstore.New(*inputDir, *outputDir, logger)

	available, err := store.ListBlocks()
	if err != nil {
		return err
	}
	requested, err := requestedBlocks(*blocks, *blockIDsFile)
	if err != nil {
		return err
	}
	ids := selectBlocks(available, requested, *startBlock)
	if len(ids) == 0 {
		return errors.New("no blocks selected")
	}

	transformer := pipeline.NewTransformer(store, store, pipeline.TransformerOptions{
		Workers:        *bandWorkers,
		FillSoilNoData: *fillSoil,
	}, logger, observability.NewLocalMetrics())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var bar *uiprogress.Bar
	if *progress {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(ids)).AppendCompleted().PrependElapsed()
	}

	var sum summary
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			event, err := transformer.Generate(gctx, domain.BlockJob{BlockID: id})
			switch {
			case err != nil && gctx.Err() != nil:
				return gctx.Err()
			case err != nil:
				logger.Error("block failed", "block_id", id, "error", err)
				sum.failed.Add(1)
			case event.Status == domain.StatusSkipped:
				logger.Info("block skipped", "block_id", id, "reason", event.Reason)
				sum.skipped.Add(1)
			default:
				sum.generated.Add(1)
			}
			if bar != nil {
				bar.Incr()
			}
			return nil
		})
	}
	waitErr := g.Wait()
	if *progress {
		uiprogress.Stop()
	}

	fmt.Printf("blocks: %d selected, %d generated, %d skipped, %d failed\n",
		len(ids), sum.generated.Load(), sum.skipped.Load(), sum.failed.Load())

	if waitErr != nil {
		return fmt.Errorf("interrupted: %w", waitErr)
	}
	if n := sum.failed.Load(); n > 0 {
		return fmt.Errorf("%d blocks failed", n)
	}
	return nil
}

// requestedBlocks merges the ids given on the command line and in the ids
// file. A nil result means no explicit selection.
func requestedBlocks(list, file string) ([]int, error) {
	var ids []int
	if list != "" {
		for _, field := range strings.Split(list, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			id, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid block id %q", field)
			}
			ids = append(ids, id)
		}
	}
	if file != "" {
		fromFile, err := readBlockIDsFile(file)
		if err != nil {
			return nil, err
		}
		ids = append(ids, fromFile...)
	}
	return ids, nil
}

// readBlockIDsFile reads one id per line. Lines that are not plain integers
// are ignored.
func readBlockIDsFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ids := []int{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ids, nil
}

// selectBlocks keeps the available blocks at or above start, restricted to
// requested when it is non-nil. Order follows available.
func selectBlocks(available, requested []int, start int) []int {
	var want map[int]bool
	if requested != nil {
		want = make(map[int]bool, len(requested))
		for _, id := range requested {
			want[id] = true
		}
	}
	out := make([]int, 0, len(available))
	for _, id := range available {
		if id < start {
			continue
		}
		if want != nil && !want[id] {
			continue
		}
		out = append(out, id)
	}
	return out
}
