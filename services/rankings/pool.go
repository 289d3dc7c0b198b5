package rankings

import (
	"context"
	"runtime"
	"sync"
)

// RunAll fetches every unit over a bounded pool of workers and returns
// the flattened batch. Each worker sends its unit's slice (possibly
// empty) through the results channel exactly once, and a single
// collector drains them, so no shared slice is mutated concurrently.
// Completion order is irrelevant: the merge sorts canonically anyway.
func RunAll(ctx context.Context, scraper Scraper, units []Unit, workers int) []Record {
	if len(units) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(units) {
		workers = len(units)
	}

	jobs := make(chan Unit)
	results := make(chan []Record)

	wg := sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for unit := range jobs {
				results <- scraper.FetchUnit(ctx, unit)
			}
		}()
	}

	go func() {
		for _, unit := range units {
			jobs <- unit
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var all []Record
	for batch := range results {
		all = append(all, batch...)
	}
	return all
}
