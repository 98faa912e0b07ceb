// Command cnvalidate checks the integrity of generated curve number rasters.
// For every selected block it verifies that all 18 band files exist with a
// common shape, that values stay within [0,100], that undrained values never
// fall below drained ones, and that the ARC II drained bands equal the base
// table value for each pixel's land cover and soil group.
//
// Usage:
//
//	go run ./cmd/cnvalidate \
//	  -input-dir data/blocks \
//	  -output-dir data/cn \
//	  -blocks 1,2,3
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/curve-number-etl/internal/adapter/tiffstore"
	"github.com/couchcryptid/curve-number-etl/internal/domain"
	"github.com/couchcryptid/curve-number-etl/internal/observability"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// maxErrorsPerPhase bounds the detail printed for a failing phase.
const maxErrorsPerPhase = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// blockData is everything read from disk for one block. Inputs are nil when
// the block's input rasters are not available.
type blockData struct {
	id        int
	bands     map[string]*domain.Grid
	landCover *domain.Grid
	soil      *domain.Grid
}

func main() {
	inputDir := flag.String("input-dir", sharedcfg.EnvOrDefault("RASTER_INPUT_DIR", "data/blocks"), "directory with landcover/ and hsg/ block rasters")
	outputDir := flag.String("output-dir", sharedcfg.EnvOrDefault("RASTER_OUTPUT_DIR", "data/cn"), "directory with generated curve number rasters")
	blocks := flag.String("blocks", "", "comma-separated block ids to check (default: all input blocks)")
	fillSoil := flag.Bool("fill-soil", true, "treat missing soil data as group D, matching generation")
	flag.Parse()

	if code := run(*inputDir, *outputDir, *blocks, *fillSoil); code != 0 {
		os.Exit(code)
	}
}

func run(inputDir, outputDir, blockList string, fillSoil bool) int {
	store := tiffstore.New(inputDir, outputDir, observability.NewCLILogger(os.Stderr, "error"))

	ids, err := blockIDs(store, blockList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	fmt.Println("=== Curve Number Raster Validation ===")
	fmt.Println()

	completeness := &phase{name: "Band completeness and shape"}
	ranges := &phase{name: "Value range [0,100]"}
	ordering := &phase{name: "Undrained >= drained"}
	baseline := &phase{name: "ARC II drained equals base table"}

	checked := 0
	for _, id := range ids {
		data, err := loadBlock(store, id)
		if err != nil {
			completeness.errorf("block %d: %v", id, err)
			continue
		}
		checked++
		if fillSoil && data.soil != nil {
			data.soil, _ = domain.FillMissingSoil(data.soil)
		}
		validateCompleteness(completeness, data)
		validateRanges(ranges, data)
		validateOrdering(ordering, data)
		validateBaseline(baseline, data)
	}

	phases := []*phase{completeness, ranges, ordering, baseline}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Blocks: %d selected, %d checked\n", len(ids), checked)

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxErrorsPerPhase {
				fmt.Printf("  ... %d more\n", len(p.errors)-maxErrorsPerPhase)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func blockIDs(store *tiffstore.Store, list string) ([]int, error) {
	if list == "" {
		return store.ListBlocks()
	}
	var ids []int
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
	return ids, nil
}

// ── Data loading ──

// loadBlock reads all band files of a block that exist, plus its inputs when
// present. Missing bands are left out of the map for validateCompleteness to
// report.
func loadBlock(store *tiffstore.Store, id int) (blockData, error) {
	data := blockData{id: id, bands: make(map[string]*domain.Grid, domain.BandCount)}
	for _, c := range domain.Combinations() {
		g, err := tiffstore.ReadGrid(store.BandPath(id, c))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return data, err
		}
		data.bands[c.Name()] = g
	}

	lc, err := tiffstore.ReadGrid(store.LandCoverPath(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return data, err
	}
	soil, err := tiffstore.ReadGrid(store.SoilPath(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return data, err
	}
	if lc != nil && soil != nil {
		lc.NoData, lc.HasNoData = tiffstore.LandCoverNoData, true
		soil.NoData, soil.HasNoData = tiffstore.SoilNoData, true
		data.landCover, data.soil = lc, soil
	}
	return data, nil
}

// ── Validation phases ──

func validateCompleteness(p *phase, data blockData) {
	var rows, cols int
	first := ""
	for _, c := range domain.Combinations() {
		name := c.Name()
		g, ok := data.bands[name]
		if !ok {
			p.errorf("block %d: missing %s", data.id, name)
			continue
		}
		if first == "" {
			first, rows, cols = name, g.Rows, g.Cols
			continue
		}
		if g.Rows != rows || g.Cols != cols {
			p.errorf("block %d: %s is %dx%d, %s is %dx%d", data.id, name, g.Rows, g.Cols, first, rows, cols)
		}
	}
	if data.landCover != nil && first != "" && (data.landCover.Rows != rows || data.landCover.Cols != cols) {
		p.errorf("block %d: bands are %dx%d, land cover input is %dx%d",
			data.id, rows, cols, data.landCover.Rows, data.landCover.Cols)
	}
}

func validateRanges(p *phase, data blockData) {
	for _, c := range domain.Combinations() {
		g, ok := data.bands[c.Name()]
		if !ok {
			continue
		}
		for i, v := range g.Data {
			if domain.CurveNumber(v) > domain.MaxCurveNumber {
				p.errorf("block %d: %s pixel %d = %d", data.id, c.Name(), i, v)
				break
			}
		}
	}
}

func validateOrdering(p *phase, data blockData) {
	for _, c := range domain.Conditions {
		for _, arc := range domain.ARCs {
			drained, ok1 := data.bands[domain.BandName(c, arc, domain.Drained)]
			undrained, ok2 := data.bands[domain.BandName(c, arc, domain.Undrained)]
			if !ok1 || !ok2 || drained.Len() != undrained.Len() {
				continue
			}
			for i := range drained.Data {
				if undrained.Data[i] < drained.Data[i] {
					p.errorf("block %d: %s pixel %d: undrained %d < drained %d",
						data.id, domain.BandName(c, arc, domain.Undrained), i, undrained.Data[i], drained.Data[i])
					break
				}
			}
		}
	}
}

// validateBaseline recomputes each ARC II drained pixel from the inputs. It
// is skipped for blocks without input rasters.
func validateBaseline(p *phase, data blockData) {
	if data.landCover == nil || data.soil == nil {
		return
	}
	soil := domain.RemapSoilGrid(data.soil, domain.Drained)
	for _, c := range domain.Conditions {
		name := domain.BandName(c, domain.ARCII, domain.Drained)
		g, ok := data.bands[name]
		if !ok || g.Len() != data.landCover.Len() || g.Len() != soil.Len() {
			continue
		}
		for i, v := range g.Data {
			lc := data.landCover.Data[i]
			want := domain.CurveNumber(domain.Unassigned)
			if !data.landCover.IsNoData(lc) && !soil.IsNoData(soil.Data[i]) {
				if base, ok := domain.BaseCN(domain.LandCover(lc), domain.SoilGroup(soil.Data[i]), c); ok {
					want = base
				}
			}
			if domain.CurveNumber(v) != want {
				p.errorf("block %d: %s pixel %d = %d, base table gives %d", data.id, name, i, v, want)
				break
			}
		}
	}
}
