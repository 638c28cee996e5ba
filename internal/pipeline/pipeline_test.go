package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivoronin/mediasweep/internal/model"
	"github.com/ivoronin/mediasweep/internal/progress"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFindsContentDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.heic"), []byte("same-bytes"))
	writeFile(t, filepath.Join(dir, "A copy.heic"), []byte("same-bytes"))

	result, err := Scan(dir, nil, Options{Workers: 2})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(result.Groups) != 1 || result.Groups[0].Category != model.CategoryContentDuplicates {
		t.Fatalf("expected one Content Duplicates group, got %+v", result.Groups)
	}
}

func TestScanIgnoresNonMediaAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("hello"))
	writeFile(t, filepath.Join(dir, ".hidden.heic"), []byte("x"))
	writeFile(t, filepath.Join(dir, "photo.heic"), []byte("y"))

	result, err := Scan(dir, nil, Options{Workers: 2})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	total := 0
	for _, g := range result.Groups {
		total += len(g.Files)
	}
	if total != 0 {
		t.Fatalf("expected photo.heic alone to produce no groups (unique file), got %+v", result.Groups)
	}
}

func TestScanRejectsUnreadableRoot(t *testing.T) {
	_, err := Scan("/nonexistent/definitely/not/here", nil, Options{})
	if err == nil {
		t.Fatal("expected an error for a nonexistent root")
	}
}

// TestScanCancellationMidHashYieldsNoResult exercises spec.md §8 scenario
// S6: cancelling partway through hashing must surface ErrCancelled and no
// ScanResult — never a partial plan, and never a filesystem mutation
// (Scan never mutates the filesystem at all, so that half of the
// guarantee is automatic here).
func TestScanCancellationMidHashYieldsNoResult(t *testing.T) {
	dir := t.TempDir()
	const n = 500
	for i := 0; i < n; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("img%04d.heic", i)), []byte(fmt.Sprintf("content-%d", i)))
	}

	cancel := &model.CancelSignal{}
	var seenHalfway bool
	opts := Options{
		Workers: 4,
		Sink: func(s progress.Snapshot) {
			if s.Phase == "hashing" && s.Total > 0 && s.Processed*2 >= s.Total && !seenHalfway {
				seenHalfway = true
				cancel.Cancel()
			}
		},
	}

	result, err := Scan(dir, cancel, opts)
	if err != model.ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v (result=%v)", err, result)
	}
	if result != nil {
		t.Fatalf("expected nil ScanResult on cancellation, got %+v", result)
	}
}
