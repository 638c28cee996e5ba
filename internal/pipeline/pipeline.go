// Package pipeline wires the Path Access Broker, Directory Walker, Media
// Classifier, Parallel Hash Pool, Duplicate/Name Groupers, Planner,
// Progress & ETA Manager, and Plan Executor into the two Core API
// operations of spec.md §6: Scan and Execute.
package pipeline

import (
	"fmt"
	"runtime"

	"github.com/ivoronin/mediasweep/internal/access"
	"github.com/ivoronin/mediasweep/internal/executor"
	"github.com/ivoronin/mediasweep/internal/hashpool"
	"github.com/ivoronin/mediasweep/internal/media"
	"github.com/ivoronin/mediasweep/internal/model"
	"github.com/ivoronin/mediasweep/internal/planner"
	"github.com/ivoronin/mediasweep/internal/progress"
	"github.com/ivoronin/mediasweep/internal/walker"
)

// Options configures a Scan run. Workers defaults to runtime.NumCPU()
// when zero.
type Options struct {
	Workers int
	Sink    progress.Sink // may be nil
	ErrCh   chan<- error  // may be nil; non-fatal per-file/subtree errors
}

// Scan runs the full discovery → classify → hash → group → plan pipeline
// against root and returns a ScanResult (spec.md §6). Returns
// model.ErrCancelled (with no ScanResult) if cancel fires at any point
// before the plan is fully assembled — per spec.md §5, no partial plan
// is ever exposed.
func Scan(root string, cancel *model.CancelSignal, opts Options) (*model.ScanResult, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	token, err := access.Acquire(root)
	if err != nil {
		return nil, err
	}
	defer token.Release()

	mgr := progress.NewManager(progress.LivePipelinePhases, opts.Sink)

	// Phase 1: discovery. Total is unknown up front (the walker streams
	// entries lazily), so discovery reports indeterminate progress until
	// it completes and the count becomes the hashing phase's total.
	mgr.StartPhase("discovery", 0)
	var records []*model.FileRecord
	var discovered uint64
	for entry := range walker.Walk(token.Root(), workers, cancel, opts.ErrCh) {
		kind, ok := media.Classify(entry.Path)
		if !ok {
			continue
		}
		records = append(records, model.NewFileRecord(entry.Path, entry.Size, kind))
		discovered++
		mgr.Update(discovered, entry.Path.Base())
	}
	mgr.EndPhase()

	if cancel.Cancelled() {
		return nil, model.ErrCancelled
	}

	// Phase 2: hashing.
	mgr.StartPhase("hashing", uint64(len(records)))
	results := hashpool.Run(records, workers, cancel, func(processed, total uint64) {
		mgr.Update(processed, fmt.Sprintf("%d/%d files hashed", processed, total))
	})
	mgr.EndPhase()

	if cancel.Cancelled() {
		return nil, model.ErrCancelled
	}

	for _, r := range results {
		if r.Err != nil && opts.ErrCh != nil {
			opts.ErrCh <- &model.IoError{Path: r.Record.Path.String(), Cause: r.Err}
		}
	}

	// Phase 3: planning.
	mgr.StartPhase("planning", uint64(len(records)))
	result, ok := planner.Plan(records, cancel)
	mgr.EndPhase()
	if !ok {
		return nil, model.ErrCancelled
	}

	// Phase 4: finalize — nothing left to compute; reported for uniform
	// phase-weighted progress display (spec.md §4.7).
	mgr.StartPhase("finalize", 1)
	mgr.Update(1, "scan complete")
	mgr.EndPhase()

	return result, nil
}

// Execute applies a reviewed ScanResult's effective actions to disk
// (spec.md §6). dryRun previews without mutating the filesystem.
func Execute(result *model.ScanResult, dryRun bool, cancel *model.CancelSignal, errCh chan<- error) model.ExecutionReport {
	return executor.Run(result, dryRun, cancel, errCh)
}

// ToggleOverride flips a file's effective action between its automatic
// value and the user override inverse (spec.md §6), delegating directly
// to the ScanResult.
func ToggleOverride(result *model.ScanResult, id model.FileID) (model.Action, error) {
	return result.ToggleOverride(id)
}
