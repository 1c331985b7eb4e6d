package tepcsp

import(
	"sort"

	"github.com/abworrall/tep-csp/pkg/tcolor"
)

// A scatter is every position of one color, headed into one raster.
type scatter struct {
	Positions []Position
	Intensity uint8
}

type targetJob struct {
	Target
	Scatters []scatter
}

// Assemble builds one Raster per Target that received at least one
// pixel. Each raster is allocated once and then filled in by a single
// worker; distinct positions address distinct cells, so there's no
// contention. Rasters come back in the order of `Targets`.
func Assemble(idx ColorIndex, classes map[tcolor.RGB]Class, dims Dims, nWorkers int) []*Raster {
	byTarget := map[Target][]scatter{}
	for c, positions := range idx {
		class, exists := classes[c]
		if !exists || class.Target == None || len(positions) == 0 {
			continue
		}
		byTarget[class.Target] = append(byTarget[class.Target], scatter{positions, class.Intensity})
	}

	jobs := []targetJob{}
	for t, scatters := range byTarget {
		jobs = append(jobs, targetJob{t, scatters})
	}
	sort.Slice(jobs, func(i, j int) bool { return targetRank(jobs[i].Target) < targetRank(jobs[j].Target) })

	// Filling a raster can't fail
	rasters, _ := runJobs(nWorkers, jobs, func(job targetJob) (*Raster, error) {
		r := NewRaster(job.Target, dims)
		for _, s := range job.Scatters {
			for _, p := range s.Positions {
				r.Set(p.Frame, p.X, p.Y, s.Intensity)
			}
		}
		return r, nil
	})

	return rasters
}

func targetRank(t Target) int {
	for i, t2 := range Targets {
		if t == t2 {
			return i
		}
	}
	return len(Targets)
}
