package executor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ivoronin/mediasweep/internal/model"
)

func scanResultFor(t *testing.T, dir string, files map[string]model.Action) *model.ScanResult {
	t.Helper()
	records := make(map[model.FileID]*model.FileRecord)
	automatic := make(map[model.FileID]model.Action)
	var display []model.DisplayFile

	for name, action := range files {
		p := model.NewPath(filepath.Join(dir, name))
		rec := model.NewFileRecord(p, 10, model.Image)
		records[rec.ID] = rec
		automatic[rec.ID] = action
		display = append(display, model.DisplayFile{ID: rec.ID, Path: p, Size: rec.Size, Action: action})
	}

	groups := []model.FileGroup{{GroupName: "test", Category: model.CategoryContentDuplicates, Files: display}}
	return model.NewScanResult(groups, records, automatic)
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunDeletesAndRenames(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "dup.heic"))
	touch(t, filepath.Join(dir, "orig copy.heic"))

	result := scanResultFor(t, dir, map[string]model.Action{
		"dup.heic":        model.Delete("Content Duplicate of orig.heic"),
		"orig copy.heic":  model.KeepAndRename("Primary for Live Photo", "orig"),
	})

	report := Run(result, false, nil, nil)

	if report.DeletedOK != 1 || report.DeletedFailed != 0 {
		t.Errorf("delete counts: %+v", report)
	}
	if report.RenamedOK != 1 || report.RenamedFailed != 0 {
		t.Errorf("rename counts: %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "dup.heic")); !os.IsNotExist(err) {
		t.Errorf("expected dup.heic to be deleted, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "orig.heic")); err != nil {
		t.Errorf("expected orig.heic to exist after rename: %v", err)
	}
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "dup.heic"))

	result := scanResultFor(t, dir, map[string]model.Action{
		"dup.heic": model.Delete("Content Duplicate of orig.heic"),
	})

	report := Run(result, true, nil, nil)

	if report.DeletedOK != 1 {
		t.Errorf("expected dry-run to still count as ok, got %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "dup.heic")); err != nil {
		t.Errorf("dry-run must not delete the file: %v", err)
	}
}

func TestRunSkipsKeepAsIs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "keep.heic"))

	result := scanResultFor(t, dir, map[string]model.Action{
		"keep.heic": model.KeepAsIs("Unique file"),
	})

	report := Run(result, false, nil, nil)
	if report.DeletedOK != 0 || report.RenamedOK != 0 || len(report.Failures) != 0 {
		t.Errorf("expected no-op for KeepAsIs, got %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.heic")); err != nil {
		t.Errorf("keep.heic should still exist: %v", err)
	}
}

func TestRunDeleteFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	// dup.heic does not exist on disk, so the delete must fail but not
	// prevent the rename from running.
	touch(t, filepath.Join(dir, "orig copy.heic"))

	result := scanResultFor(t, dir, map[string]model.Action{
		"dup.heic":       model.Delete("Content Duplicate of orig.heic"),
		"orig copy.heic": model.KeepAndRename("Primary for Live Photo", "orig"),
	})

	report := Run(result, false, nil, nil)

	if report.DeletedFailed != 1 {
		t.Errorf("expected 1 delete failure, got %+v", report)
	}
	if report.RenamedOK != 1 {
		t.Errorf("rename should still succeed despite unrelated delete failure: %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].Op != "delete" {
		t.Errorf("expected one recorded delete failure, got %+v", report.Failures)
	}
}

func TestRunRenameCollisionIsReportedNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "orig copy.heic"))
	touch(t, filepath.Join(dir, "orig.heic")) // pre-existing destination

	result := scanResultFor(t, dir, map[string]model.Action{
		"orig copy.heic": model.KeepAndRename("Primary for Live Photo", "orig"),
	})

	report := Run(result, false, nil, nil)

	if report.RenamedFailed != 1 || report.RenamedOK != 0 {
		t.Errorf("expected rename collision to fail safely, got %+v", report)
	}
	data, err := os.ReadFile(filepath.Join(dir, "orig.heic"))
	if err != nil || len(data) != 1 {
		t.Errorf("pre-existing orig.heic must be untouched: data=%q err=%v", data, err)
	}
}

func TestRunCancelledBeforeStartDeletesNothing(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.heic"))
	touch(t, filepath.Join(dir, "b.heic"))

	result := scanResultFor(t, dir, map[string]model.Action{
		"a.heic": model.Delete("Content Duplicate of x.heic"),
		"b.heic": model.Delete("Content Duplicate of x.heic"),
	})

	cancel := &model.CancelSignal{}
	cancel.Cancel()

	report := Run(result, false, cancel, nil)
	if report.DeletedOK != 0 {
		t.Errorf("expected no deletes once cancelled, got %+v", report)
	}
}
