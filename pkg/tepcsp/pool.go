package tepcsp

import(
	"runtime"
	"sync"
)

type poolJob[J any] struct {
	Index int
	In    J
}

type poolResult[R any] struct {
	Index int
	Out   R
	Err   error
}

// runJobs uses a pool of goroutines to run `fn` over every job, and
// returns the outputs in the same order as the jobs. If any job fails,
// the error from the lowest-numbered failing job is returned, and the
// outputs are discarded.
func runJobs[J, R any](nWorkers int, jobs []J, fn func(J) (R, error)) ([]R, error) {
	if nWorkers <= 0 {
		nWorkers = runtime.NumCPU()
	}
	if nWorkers > len(jobs) {
		nWorkers = len(jobs)
	}

	var wg sync.WaitGroup
	jobsChan    := make(chan poolJob[J], len(jobs))
	resultsChan := make(chan poolResult[R], len(jobs))

	// Kick off worker pool
	for i:=0; i<nWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			for job := range jobsChan {
				out, err := fn(job.In)
				resultsChan<- poolResult[R]{job.Index, out, err}
			}
		}()
	}

	// Feed in jobs
	for i, in := range jobs {
		jobsChan<- poolJob[J]{i, in}
	}

	close(jobsChan)
	wg.Wait()
	close(resultsChan)

	// results processor
	outs := make([]R, len(jobs))
	errIndex := len(jobs)
	var firstErr error
	for result := range resultsChan {
		if result.Err != nil {
			if result.Index < errIndex {
				errIndex, firstErr = result.Index, result.Err
			}
			continue
		}
		outs[result.Index] = result.Out
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return outs, nil
}
