package tepcsp

import(
	"fmt"
	"log"
	"time"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

// A ColorResult is what we work out, once, for a distinct color.
type ColorResult struct {
	tcolor.RGB
	tcolor.HueChroma
	Class
	Classified bool // false => Class.Target is None
}

func (cr ColorResult)String() string {
	return fmt.Sprintf("%s %s => %s", cr.RGB, cr.HueChroma, cr.Class)
}

// ColorTable holds one ColorResult per distinct color.
type ColorTable map[tcolor.RGB]ColorResult

// Classes strips the table down to what the assembler needs.
func (ct ColorTable)Classes() map[tcolor.RGB]Class {
	classes := make(map[tcolor.RGB]Class, len(ct))
	for c, res := range ct {
		classes[c] = res.Class
	}
	return classes
}

// colorsPerJob is big enough that channel overhead doesn't matter, and
// small enough that a few hundred thousand colors still spread across
// all the workers.
const colorsPerJob = 4096

// ClassifyColors converts and classifies each distinct color exactly
// once. The color set is cut into partitions; each worker builds its
// own slice of results, and the slices are merged at the end, so no
// worker ever touches shared state.
func ClassifyColors(colors []tcolor.RGB, nWorkers int) (ColorTable, error) {
	partitions := [][]tcolor.RGB{}
	for i:=0; i<len(colors); i += colorsPerJob {
		end := i + colorsPerJob
		if end > len(colors) {
			end = len(colors)
		}
		partitions = append(partitions, colors[i:end])
	}

	results, err := runJobs(nWorkers, partitions, classifyPartition)
	if err != nil {
		return nil, err
	}

	table := make(ColorTable, len(colors))
	for _, partition := range results {
		for _, res := range partition {
			table[res.RGB] = res
		}
	}
	return table, nil
}

func classifyPartition(colors []tcolor.RGB) ([]ColorResult, error) {
	results := make([]ColorResult, len(colors))
	for i, c := range colors {
		hc := tcolor.Convert(c)
		if err := hc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: color %s: %v", ErrArithmeticDegenerate, c, err)
		}
		class, ok := Classify(hc)
		results[i] = ColorResult{c, hc, class, ok}
	}
	return results, nil
}

// A Result is everything a run produces.
type Result struct {
	Dims
	Rasters []*Raster
	Colors  ColorTable
	Report
}

// Process runs the whole pipeline and returns the non-empty rasters.
func Process(src Source, nWorkers int) ([]*Raster, error) {
	cfg := NewConfig()
	cfg.Workers = nWorkers
	res, err := Run(src, cfg)
	if err != nil {
		return nil, err
	}
	return res.Rasters, nil
}

// Run indexes the source, classifies every distinct color, and
// assembles the rasters. Any error aborts the whole run.
func Run(src Source, cfg Config) (Result, error) {
	res := Result{Dims: src.Dims()}
	nWorkers := cfg.GetWorkers()

	startTime := time.Now()
	idx, err := BuildIndex(src, nWorkers)
	if err != nil {
		return Result{}, fmt.Errorf("index: %w", err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Indexed %d colors over %s pixels in %s\n", len(idx), res.Dims, time.Since(startTime))
	}

	startTime = time.Now()
	res.Colors, err = ClassifyColors(idx.Colors(), nWorkers)
	if err != nil {
		return Result{}, fmt.Errorf("classify: %w", err)
	}
	if cfg.Verbosity > 0 {
		log.Printf("Converted and classified %d colors in %s\n", len(res.Colors), time.Since(startTime))
	}

	res.Report, err = NewReport(idx, res.Colors)
	if err != nil {
		return Result{}, err
	}

	startTime = time.Now()
	res.Rasters = Assemble(idx, res.Colors.Classes(), res.Dims, nWorkers)
	if cfg.Verbosity > 0 {
		log.Printf("Assembled %d rasters in %s\n", len(res.Rasters), time.Since(startTime))
	}

	return res, nil
}
