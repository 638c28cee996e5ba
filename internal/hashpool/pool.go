// Package hashpool implements the Parallel Hash Pool (spec.md §4.5): a
// bounded worker pool that drives the Chunk Hasher across all discovered
// media, backpressured by worker count rather than an unbounded result
// queue, following the teacher's worker-pool shape in
// internal/verifier.Verifier (fixed pool + shared job source + single
// aggregator) rather than its per-directory fan-out (which doesn't apply
// here: there is one flat list of files, not a recursive tree).
package hashpool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ivoronin/mediasweep/internal/hasher"
	"github.com/ivoronin/mediasweep/internal/model"
)

// Result pairs a FileRecord with its hashing outcome.
type Result struct {
	Record *model.FileRecord
	Err    error
}

// progressThrottle is the maximum rate at which the pool updates the
// progress sink (spec.md §4.5: "at most once per 100 ms").
const progressThrottle = 100 * time.Millisecond

// ProgressFunc receives (processed, total) counts. Implementations must
// not block; the pool calls it synchronously from the aggregator.
type ProgressFunc func(processed, total uint64)

// Run drives hasher.Fingerprint across records with up to workers
// goroutines in flight at once. It returns a map from FileID to Result for
// every record that was attempted before cancellation. Records whose
// hashing fails are still present in the map, with Err set and Record
// carrying no fingerprint — spec.md §4.4 says such files remain unique
// candidates for the Planner, not dropped entirely.
//
// Cancellation is polled by each worker before starting a new file and by
// the aggregator between completed results (spec.md §4.5); on
// cancellation the pool stops scheduling new files, drains in-flight
// work, and returns whatever was completed so far — the pipeline scope
// is responsible for discarding partial results on model.ErrCancelled.
func Run(records []*model.FileRecord, workers int, cancel *model.CancelSignal, onProgress ProgressFunc) map[model.FileID]Result {
	if workers < 1 {
		workers = 1
	}

	cursor := make(chan *model.FileRecord)
	resultCh := make(chan Result, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for rec := range cursor {
				if cancel.Cancelled() {
					continue
				}
				fp, err := hasher.Fingerprint(rec.Path.String())
				if err == nil {
					rec.Fingerprint = &fp
				} else {
					rec.HashErr = err
				}
				resultCh <- Result{Record: rec, Err: err}
			}
		}()
	}

	go func() {
		defer close(cursor)
		for _, rec := range records {
			if cancel.Cancelled() {
				return
			}
			cursor <- rec
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := make(map[model.FileID]Result, len(records))
	var processed atomic.Uint64
	lastReport := time.Now()
	total := uint64(len(records))

	for r := range resultCh {
		out[r.Record.ID] = r
		n := processed.Add(1)

		if cancel.Cancelled() {
			continue
		}
		if onProgress != nil && (n == total || time.Since(lastReport) >= progressThrottle) {
			onProgress(n, total)
			lastReport = time.Now()
		}
	}

	return out
}
