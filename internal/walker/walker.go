// Package walker implements the Directory Walker (spec.md §4.1): a lazy,
// cancellable sequence of paths under a root, skipping hidden entries and
// directory packages.
//
// # Concurrency Model
//
// Adapted from the teacher's scanner fan-out/fan-in design: one goroutine
// per discovered directory, bounded by a semaphore, feeding a single
// result channel drained by the caller via Walk's returned iterator.
// Unlike the teacher's batch Run() (which materializes a slice), Walk
// streams paths so the pipeline scope can hash as files are discovered
// and so cancellation takes effect between individually yielded paths.
package walker

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ivoronin/mediasweep/internal/model"
)

// Entry is one yielded filesystem entry.
type Entry struct {
	Path model.Path
	Size uint64
}

// Walk enumerates root and returns a channel of Entry values. Non-fatal
// per-subtree errors are sent to errCh when it is non-nil (spec.md §4.1,
// §7: a WalkError is logged and its subtree skipped, never fails the
// whole scan).
//
// The returned entries channel is closed once traversal completes or
// cancel is observed. Walk itself returns immediately; draining the
// channel (and errCh, if non-nil) is the caller's responsibility.
func Walk(root string, workers int, cancel *model.CancelSignal, errCh chan<- error) <-chan Entry {
	if workers < 1 {
		workers = 1
	}
	out := make(chan Entry, 1000)

	go func() {
		defer close(out)

		sem := make(chan struct{}, workers)
		g := new(errgroup.Group)

		var walkDir func(dir string)
		walkDir = func(dir string) {
			g.Go(func() error {
				if cancel.Cancelled() {
					return nil
				}

				sem <- struct{}{}
				files, subdirs, err := listDir(dir)
				<-sem

				if err != nil {
					sendErr(errCh, &model.WalkError{Subtree: dir, Cause: err})
					return nil
				}

				for _, f := range files {
					if cancel.Cancelled() {
						return nil
					}
					out <- f
				}

				for _, sub := range subdirs {
					walkDir(sub)
				}
				return nil
			})
		}

		absRoot, err := filepath.Abs(root)
		if err != nil {
			sendErr(errCh, &model.WalkError{Subtree: root, Cause: err})
			return
		}
		walkDir(absRoot)

		_ = g.Wait() // walkDir never returns a non-nil error; only used for fan-out/join
	}()

	return out
}

// listDir reads one directory, skipping hidden entries and directory
// packages (spec.md §4.1). A "package interior" here means any directory
// whose name ends in a recognized bundle extension (e.g. ".photoslibrary",
// ".app") — such directories are skipped wholesale rather than descended
// into, matching how the source platform treats them as opaque files.
func listDir(dir string) (files []Entry, subdirs []string, err error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = d.Close() }()

	const batchSize = 1000
	for {
		entries, rerr := d.ReadDir(batchSize)
		if len(entries) == 0 {
			if rerr != nil && !errors.Is(rerr, io.EOF) {
				return files, subdirs, rerr
			}
			break
		}

		for _, entry := range entries {
			if isHidden(entry.Name()) {
				continue
			}

			full := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				if isPackage(entry.Name()) {
					continue
				}
				subdirs = append(subdirs, full)
				continue
			}

			if !entry.Type().IsRegular() {
				continue
			}

			info, ierr := entry.Info()
			if ierr != nil {
				continue
			}

			files = append(files, Entry{Path: model.NewPath(full), Size: uint64(info.Size())})
		}
	}

	return files, subdirs, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

var packageExts = map[string]bool{
	".photoslibrary": true,
	".app":            true,
	".bundle":         true,
	".photoslibrary~": true,
}

func isPackage(dirName string) bool {
	return packageExts[strings.ToLower(filepath.Ext(dirName))]
}

func sendErr(errCh chan<- error, err error) {
	if errCh != nil {
		errCh <- err
	}
}
