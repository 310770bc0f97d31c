// Package batch generates and inspects many tessellations concurrently on a worker pool.
package batch

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
)

// Result is the outcome of generating and inspecting one parameter set.
type Result struct {
	// Requested is the parameter set as submitted; Params is its clamped form.
	Requested geometry.Params
	Params    geometry.Params

	IndexFormat geometry.IndexFormat
	Report      geometry.Report
	Elapsed     time.Duration
}

// OK reports whether the generated mesh passed inspection.
func (r Result) OK() bool {
	return r.Report.OK()
}

// Sweep generates and inspects every parameter set on a pool of workers.
// Results are returned in input order regardless of completion order.
//
// Parameters:
//   - params: the parameter sets to generate (clamped as by geometry.Generate)
//   - workers: the pool size; values <= 0 use runtime.NumCPU()
//
// Returns:
//   - []Result: one result per parameter set, in input order
func Sweep(params []geometry.Params, workers int) []Result {
	results := make([]Result, len(params))
	if len(params) == 0 {
		return results
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(params))

	// queue sized so SubmitTask never blocks
	pool := worker.NewDynamicWorkerPool(workers, len(params), time.Second)
	defer pool.Stop()

	start := time.Now()
	var wg sync.WaitGroup
	for i, p := range params {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: p,
			Do: func() (any, error) {
				defer wg.Done()
				results[i] = run(p)
				return nil, nil
			},
		})
	}
	wg.Wait()

	common.Logger().Debug("sweep finished",
		"meshes", len(params), "workers", workers, "elapsed", time.Since(start))
	return results
}

// run generates and inspects a single parameter set.
func run(p geometry.Params) Result {
	start := time.Now()
	m := p.Generate()
	return Result{
		Requested:   p,
		Params:      p.Clamped(),
		IndexFormat: m.IndexFormat(),
		Report:      geometry.Inspect(m),
		Elapsed:     time.Since(start),
	}
}

// Grid enumerates every ring and slice count of kind from the kind's minimums up to the
// given maximums inclusive, rings varying slowest. Maximums below the minimums yield the
// single minimal parameter set.
//
// Parameters:
//   - kind: the surface kind
//   - maxRings: the largest ring count
//   - maxSlices: the largest slice count
//
// Returns:
//   - []geometry.Params: the grid, every entry already clamped
func Grid(kind geometry.Kind, maxRings, maxSlices int) []geometry.Params {
	minRings, minSlices := geometry.Clamp(kind, 0, 0)
	maxRings, maxSlices = max(maxRings, minRings), max(maxSlices, minSlices)

	grid := make([]geometry.Params, 0, (maxRings-minRings+1)*(maxSlices-minSlices+1))
	for rings := minRings; rings <= maxRings; rings++ {
		for slices := minSlices; slices <= maxSlices; slices++ {
			grid = append(grid, geometry.Params{Kind: kind, Rings: rings, Slices: slices})
		}
	}
	return grid
}

// Failures returns the results whose mesh failed inspection.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
