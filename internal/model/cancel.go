package model

import "sync/atomic"

// CancelSignal is the single cancellation flag observed across the
// pipeline (spec.md §5): polled by the Walker between yielded paths, by
// each hash worker before starting a new file, by the Planner between
// groups, and by the Name Grouper every 5,000 items.
type CancelSignal struct {
	flag atomic.Bool
}

// Cancel requests cancellation. Safe to call from any goroutine, any
// number of times.
func (c *CancelSignal) Cancel() { c.flag.Store(true) }

// Cancelled reports whether cancellation has been requested.
func (c *CancelSignal) Cancelled() bool {
	return c != nil && c.flag.Load()
}
