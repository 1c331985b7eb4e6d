package tepcsp

import(
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/codahale/hdrhistogram"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v2"
)

// TargetStats summarizes the pixels that went into one target.
type TargetStats struct {
	Target          string
	DistinctColors  int
	Pixels          int
	HueMean         float64 // weighted by pixel count
	HueStdDev       float64
	IntensityP50    int64
	IntensityP90    int64
	IntensityP99    int64
	IntensityMax    int64
}

// A Report is a summary of one run. Every pixel is counted exactly once,
// either against a target or as unclassified.
type Report struct {
	TotalPixels        int
	DistinctColors     int
	UnclassifiedPixels int
	UnclassifiedColors int
	Targets            []TargetStats
}

type targetAccumulator struct {
	hues    []float64
	weights []float64
	pixels  int
	hist    *hdrhistogram.Histogram
}

// NewReport tallies every indexed pixel. Intensities are 8-bit, so
// they always fit the histograms; the lowest discernible value is 1,
// but zeros are still counted (in the first bucket).
func NewReport(idx ColorIndex, table ColorTable) (Report, error) {
	rep := Report{DistinctColors: len(idx)}
	accs := map[Target]*targetAccumulator{}

	for c, positions := range idx {
		n := len(positions)
		rep.TotalPixels += n

		res, exists := table[c]
		if !exists || !res.Classified {
			rep.UnclassifiedPixels += n
			rep.UnclassifiedColors++
			continue
		}

		acc, exists := accs[res.Target]
		if !exists {
			acc = &targetAccumulator{hist: hdrhistogram.New(1, 255, 3)}
			accs[res.Target] = acc
		}
		acc.hues = append(acc.hues, res.Hue)
		acc.weights = append(acc.weights, float64(n))
		acc.pixels += n
		if err := acc.hist.RecordValues(int64(res.Intensity), int64(n)); err != nil {
			return Report{}, fmt.Errorf("report: %s intensity %d: %v", res.Target, res.Intensity, err)
		}
	}

	for _, t := range Targets {
		acc, exists := accs[t]
		if !exists {
			continue
		}
		ts := TargetStats{
			Target:         t.Title(),
			DistinctColors: len(acc.hues),
			Pixels:         acc.pixels,
			IntensityP50:   acc.hist.ValueAtQuantile(50),
			IntensityP90:   acc.hist.ValueAtQuantile(90),
			IntensityP99:   acc.hist.ValueAtQuantile(99),
			IntensityMax:   acc.hist.Max(),
		}
		if len(acc.hues) > 1 {
			ts.HueMean, ts.HueStdDev = stat.MeanStdDev(acc.hues, acc.weights)
			if math.IsNaN(ts.HueStdDev) {
				ts.HueStdDev = 0 // rounding, when all the hues are equal
			}
		} else {
			ts.HueMean = acc.hues[0]
		}
		rep.Targets = append(rep.Targets, ts)
	}

	return rep, nil
}

// ClassifiedPixels is the number of pixels that landed in some raster.
func (rep Report)ClassifiedPixels() int {
	n := 0
	for _, ts := range rep.Targets {
		n += ts.Pixels
	}
	return n
}

func (rep Report)Stats(t Target) (TargetStats, bool) {
	for _, ts := range rep.Targets {
		if ts.Target == t.Title() {
			return ts, true
		}
	}
	return TargetStats{}, false
}

func (rep Report)AsYaml() string {
	b, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Sprintf("# can't marshal report yaml: %v\n", err)
	}
	return string(b)
}

// Summary is a few lines for humans.
func (rep Report)Summary() string {
	str := fmt.Sprintf("%d pixels, %d distinct colors; %d pixels (%d colors) unclassified\n",
		rep.TotalPixels, rep.DistinctColors, rep.UnclassifiedPixels, rep.UnclassifiedColors)

	targets := append([]TargetStats{}, rep.Targets...)
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].Pixels > targets[j].Pixels })
	for _, ts := range targets {
		str += fmt.Sprintf("  %-7s %9d px %7d colors, hue %6.1f +/- %5.1f, intensity p50 %3d p99 %3d\n",
			ts.Target, ts.Pixels, ts.DistinctColors, ts.HueMean, ts.HueStdDev, ts.IntensityP50, ts.IntensityP99)
	}
	return str
}

func (rep Report)WriteYaml(filename string) error {
	b, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("report yaml: %v", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	return nil
}

func LoadReport(filename string) (Report, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Report{}, fmt.Errorf("report read %s: %v", filename, err)
	}

	rep := Report{}
	if err := yaml.Unmarshal(b, &rep); err != nil {
		return rep, fmt.Errorf("report parse %s: %v", filename, err)
	}
	return rep, nil
}
