package model

import "testing"

func TestPlanDocumentRoundTrip(t *testing.T) {
	records := map[FileID]*FileRecord{
		"id1": {ID: "id1", Path: NewPath("/root/A copy.heic"), Size: 100},
		"id2": {ID: "id2", Path: NewPath("/root/A.heic"), Size: 100},
	}
	automatic := map[FileID]Action{
		"id1": Delete("Content Duplicate of A.heic"),
		"id2": KeepAsIs("Best name among content duplicates"),
	}
	groups := []FileGroup{
		{
			GroupName: "Content Duplicates: deadbeef",
			Category:  CategoryContentDuplicates,
			Files: []DisplayFile{
				{ID: "id2", Path: records["id2"].Path, Size: 100, Action: automatic["id2"]},
				{ID: "id1", Path: records["id1"].Path, Size: 100, Action: automatic["id1"]},
			},
		},
	}

	result := NewScanResult(groups, records, automatic)
	doc := result.ToDocument("/root")

	if doc.Root != "/root" || len(doc.Groups) != 1 || len(doc.Groups[0].Files) != 2 {
		t.Fatalf("unexpected document shape: %+v", doc)
	}

	restored := FromDocument(doc)
	if len(restored.Groups) != 1 {
		t.Fatalf("expected 1 restored group, got %d", len(restored.Groups))
	}
	a := restored.EffectiveAction("id1")
	if a.Kind != ActionDelete || a.Reason != "Content Duplicate of A.heic" {
		t.Errorf("id1 action mismatch after round trip: %+v", a)
	}
	b := restored.EffectiveAction("id2")
	if b.Kind != ActionKeepAsIs {
		t.Errorf("id2 action mismatch after round trip: %+v", b)
	}
}

func TestPlanDocumentPreservesOverrides(t *testing.T) {
	records := map[FileID]*FileRecord{"id1": {ID: "id1", Path: NewPath("/root/dup.heic"), Size: 5}}
	automatic := map[FileID]Action{"id1": Delete("Content Duplicate of x.heic")}
	groups := []FileGroup{{
		GroupName: "Content Duplicates: abc", Category: CategoryContentDuplicates,
		Files: []DisplayFile{{ID: "id1", Path: records["id1"].Path, Size: 5, Action: automatic["id1"]}},
	}}
	result := NewScanResult(groups, records, automatic)

	if _, err := result.ToggleOverride("id1"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	doc := result.ToDocument("/root")
	restored := FromDocument(doc)
	if a := restored.EffectiveAction("id1"); a.Kind != ActionUserKeep {
		t.Errorf("expected overridden action to survive round trip as baseline, got %+v", a)
	}
}
