// Package executor implements the Plan Executor (spec.md §4.8): applies
// a reviewed ScanResult's effective actions to the filesystem.
//
// Deletes run before renames (spec.md §4.8): a rename's destination
// sometimes only becomes free once a sibling's delete has run, and never
// the other way around. Each file is processed independently — one
// failure doesn't abort the run (spec.md §7), mirroring the teacher's
// deduper, which logs a per-file error and keeps going rather than
// returning early.
package executor

import (
	"fmt"
	"os"

	"github.com/ivoronin/mediasweep/internal/model"
)

// Run applies every non-KeepAsIs effective action in result to disk and
// returns an ExecutionReport. dryRun skips all filesystem mutation and
// only tallies what would have happened. cancel is polled between files;
// on cancellation Run stops scheduling further operations but returns
// the partial report for whatever already completed — unlike scanning,
// a partially-applied execution cannot be un-done, so there is no
// all-or-nothing guarantee here (spec.md §4.8).
func Run(result *model.ScanResult, dryRun bool, cancel *model.CancelSignal, errCh chan<- error) model.ExecutionReport {
	var report model.ExecutionReport

	deletes, renames := partition(result)

	for _, f := range deletes {
		if cancel.Cancelled() {
			return report
		}
		if err := deleteFile(f, dryRun); err != nil {
			report.DeletedFailed++
			report.Failures = append(report.Failures, model.FileFailure{Path: f.Path.String(), Op: "delete", Err: err})
			if errCh != nil {
				errCh <- fmt.Errorf("delete %s: %w", f.Path.String(), err)
			}
			continue
		}
		report.DeletedOK++
	}

	for _, f := range renames {
		if cancel.Cancelled() {
			return report
		}
		dst := f.Path.WithStem(f.Action.NewStem)
		if err := renameFile(f, dst, dryRun); err != nil {
			report.RenamedFailed++
			report.Failures = append(report.Failures, model.FileFailure{Path: f.Path.String(), Op: "rename", Err: err})
			if errCh != nil {
				errCh <- fmt.Errorf("rename %s -> %s: %w", f.Path.String(), dst.String(), err)
			}
			continue
		}
		report.RenamedOK++
	}

	return report
}

// partition splits a ScanResult's display files into the delete set and
// the rename set, skipping KeepAsIs/UserKeep files entirely.
func partition(result *model.ScanResult) (deletes, renames []model.DisplayFile) {
	for _, g := range result.Groups {
		for _, f := range g.Files {
			switch f.Action.Kind {
			case model.ActionDelete, model.ActionUserDelete:
				deletes = append(deletes, f)
			case model.ActionKeepAndRename:
				renames = append(renames, f)
			}
		}
	}
	return deletes, renames
}

func deleteFile(f model.DisplayFile, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := os.Remove(f.Path.String()); err != nil {
		return &model.DeleteFailure{Path: f.Path.String(), Cause: err}
	}
	return nil
}

// renameFile refuses to overwrite an existing destination — the
// Planner's downgradeRenameConflicts pass should have already steered
// around known collisions, but a file created after scanning (or a
// case-insensitive filesystem where two distinct scan-time paths
// collapse to one directory entry) can still produce one at execution
// time. Treat that as a per-file failure rather than clobbering data.
func renameFile(f model.DisplayFile, dst model.Path, dryRun bool) error {
	if dryRun {
		return nil
	}
	if _, err := os.Stat(dst.String()); err == nil {
		return &model.RenameConflict{Src: f.Path.String(), Dst: dst.String(), Cause: os.ErrExist}
	}
	if err := os.Rename(f.Path.String(), dst.String()); err != nil {
		return &model.RenameConflict{Src: f.Path.String(), Dst: dst.String(), Cause: err}
	}
	return nil
}
