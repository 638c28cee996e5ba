package model

// PlanDocument is the on-disk representation of a ScanResult, written by
// `mediasweep scan --out` and read back by `mediasweep execute`. It
// exists because scan and execute are separate CLI invocations (spec.md
// §6 describes them as two Core API operations, not one long-lived
// process) and the effective action for each file — automatic action
// plus any override — has to survive the round trip through disk. JSON
// is the idiomatic choice here the way the teacher's testfs FileTree spec
// (not carried into this repository) used encoding/json for its own
// on-disk fixtures: no third-party serialization library appears anywhere
// in the retrieval pack.
type PlanDocument struct {
	Root   string              `json:"root"`
	Groups []PlanDocumentGroup `json:"groups"`
}

// PlanDocumentGroup mirrors FileGroup for serialization.
type PlanDocumentGroup struct {
	GroupName string                     `json:"group_name"`
	Category  string                     `json:"category"`
	Files     []PlanDocumentFile         `json:"files"`
}

// PlanDocumentFile mirrors DisplayFile plus the action fields needed to
// reconstruct an Action without exposing the ActionKind iota directly.
type PlanDocumentFile struct {
	ID      FileID `json:"id"`
	Path    string `json:"path"`
	Size    uint64 `json:"size"`
	Kind    string `json:"action"`
	Reason  string `json:"reason"`
	NewStem string `json:"new_stem,omitempty"`
}

var actionKindNames = map[ActionKind]string{
	ActionKeepAsIs:      "keep_as_is",
	ActionKeepAndRename: "keep_and_rename",
	ActionDelete:        "delete",
	ActionUserKeep:      "user_keep",
	ActionUserDelete:    "user_delete",
}

var actionKindValues = map[string]ActionKind{
	"keep_as_is":      ActionKeepAsIs,
	"keep_and_rename": ActionKeepAndRename,
	"delete":          ActionDelete,
	"user_keep":       ActionUserKeep,
	"user_delete":     ActionUserDelete,
}

// ToDocument snapshots the ScanResult's current effective actions (after
// any ToggleOverride calls) into a PlanDocument.
func (r *ScanResult) ToDocument(root string) PlanDocument {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := PlanDocument{Root: root}
	for _, g := range r.Groups {
		dg := PlanDocumentGroup{GroupName: g.GroupName, Category: g.Category.String()}
		for _, f := range g.Files {
			dg.Files = append(dg.Files, PlanDocumentFile{
				ID:      f.ID,
				Path:    f.Path.String(),
				Size:    f.Size,
				Kind:    actionKindNames[f.Action.Kind],
				Reason:  f.Action.Reason,
				NewStem: f.Action.NewStem,
			})
		}
		doc.Groups = append(doc.Groups, dg)
	}
	return doc
}

// FromDocument reconstructs a ScanResult from a PlanDocument, suitable for
// passing to the Plan Executor. The reconstructed result has no
// override history — the document already carries final effective
// actions — so ToggleOverride on it starts from those as the baseline.
func FromDocument(doc PlanDocument) *ScanResult {
	records := make(map[FileID]*FileRecord)
	automatic := make(map[FileID]Action)
	var groups []FileGroup

	for _, dg := range doc.Groups {
		var files []DisplayFile
		for _, df := range dg.Files {
			kind := actionKindValues[df.Kind]
			action := Action{Kind: kind, Reason: df.Reason, NewStem: df.NewStem}
			path := NewPath(df.Path)

			rec := &FileRecord{ID: df.ID, Path: path, Size: df.Size}
			records[df.ID] = rec
			automatic[df.ID] = action
			files = append(files, DisplayFile{ID: df.ID, Path: path, Size: df.Size, Action: action})
		}
		groups = append(groups, FileGroup{GroupName: dg.GroupName, Category: categoryFromString(dg.Category), Files: files})
	}

	return NewScanResult(groups, records, automatic)
}

func categoryFromString(s string) Category {
	for _, c := range []Category{CategoryContentDuplicates, CategoryLivePhotoRepair, CategoryRedundantVersions, CategoryPerfectlyPaired} {
		if c.String() == s {
			return c
		}
	}
	return CategoryContentDuplicates
}
