// Package model holds the data types shared across the scan-and-plan
// pipeline: paths, fingerprints, file records, actions, groups, and the
// scan result they compose into.
package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Fingerprint is a 256-bit content digest produced by the Chunk Hasher.
type Fingerprint [32]byte

// Hex returns the full lowercase hex encoding of the fingerprint.
func (f Fingerprint) Hex() string {
	return fmt.Sprintf("%x", f[:])
}

// ShortHex returns the first n hex characters, used for group names.
func (f Fingerprint) ShortHex(n int) string {
	h := f.Hex()
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// Kind classifies a media file.
type Kind int

const (
	Image Kind = iota
	Video
)

func (k Kind) String() string {
	if k == Video {
		return "video"
	}
	return "image"
}

// Path is an opaque handle to a filesystem entry, split into the pieces
// the Planner and Name Normalizer need without repeated string surgery.
type Path struct {
	full string
	dir  string
	stem string
	ext  string // lower-cased, without the leading dot
}

// NewPath builds a Path from an absolute or relative filesystem path.
func NewPath(p string) Path {
	dir := filepath.Dir(p)
	base := filepath.Base(p)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return Path{full: p, dir: dir, stem: stem, ext: strings.ToLower(ext)}
}

func (p Path) String() string  { return p.full }
func (p Path) Dir() string     { return p.dir }
func (p Path) Stem() string    { return p.stem }
func (p Path) Ext() string     { return p.ext }
func (p Path) Base() string    { return filepath.Base(p.full) }

// WithStem returns a new Path in the same directory, with the same
// extension, but a different stem. Used to compute KeepAndRename
// destinations.
func (p Path) WithStem(stem string) Path {
	return NewPath(filepath.Join(p.dir, stem+filepath.Ext(p.full)))
}

// FileID is a stable identifier for a FileRecord, independent of its path
// (which may change under a KeepAndRename action). Generated once per
// FileRecord at discovery time.
type FileID string

func newFileID() FileID { return FileID(uuid.NewString()) }

// FileRecord describes one discovered media file. Immutable once its
// Fingerprint is filled in by the Hash Pool.
type FileRecord struct {
	ID          FileID
	Path        Path
	Size        uint64
	Kind        Kind
	Fingerprint *Fingerprint // nil until hashed, or if hashing failed
	HashErr     error        // non-nil if the Chunk Hasher failed for this file
}

// NewFileRecord creates a FileRecord with a fresh FileID.
func NewFileRecord(path Path, size uint64, kind Kind) *FileRecord {
	return &FileRecord{ID: newFileID(), Path: path, Size: size, Kind: kind}
}

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionKeepAsIs ActionKind = iota
	ActionKeepAndRename
	ActionDelete
	ActionUserKeep
	ActionUserDelete
)

// Action is the tagged-variant sum type of spec.md §3. NewStem is only
// meaningful when Kind == ActionKeepAndRename.
type Action struct {
	Kind    ActionKind
	Reason  string
	NewStem string
}

func KeepAsIs(reason string) Action       { return Action{Kind: ActionKeepAsIs, Reason: reason} }
func Delete(reason string) Action         { return Action{Kind: ActionDelete, Reason: reason} }
func KeepAndRename(reason, newStem string) Action {
	return Action{Kind: ActionKeepAndRename, Reason: reason, NewStem: newStem}
}

// IsKeep reports whether the action retains the file in some form.
func (a Action) IsKeep() bool {
	switch a.Kind {
	case ActionKeepAsIs, ActionKeepAndRename, ActionUserKeep:
		return true
	default:
		return false
	}
}

// Inverse returns the user-override action that flips a, per spec.md §6:
// toggling a Delete yields UserKeep, toggling a Keep* yields UserDelete.
// KeepAndRename has no inverse — callers must check CanToggle first.
func (a Action) Inverse() Action {
	switch a.Kind {
	case ActionDelete:
		return Action{Kind: ActionUserKeep, Reason: "User override: keep"}
	case ActionUserKeep:
		return Action{Kind: ActionDelete, Reason: a.Reason}
	case ActionUserDelete:
		return Action{Kind: ActionKeepAsIs, Reason: a.Reason}
	default: // ActionKeepAsIs
		return Action{Kind: ActionUserDelete, Reason: "User override: delete"}
	}
}

// CanToggle reports whether an action may be flipped by toggle_override.
// KeepAndRename is structural, not a preference (spec.md §6).
func CanToggle(a Action) bool { return a.Kind != ActionKeepAndRename }

// Category is a FileGroup's display bucket, in ScanResult display order.
type Category int

const (
	CategoryContentDuplicates Category = iota
	CategoryLivePhotoRepair
	CategoryRedundantVersions
	CategoryPerfectlyPaired
)

func (c Category) String() string {
	switch c {
	case CategoryContentDuplicates:
		return "Content Duplicates"
	case CategoryLivePhotoRepair:
		return "Live Photo Pair to Repair"
	case CategoryRedundantVersions:
		return "Redundant Versions to Delete"
	case CategoryPerfectlyPaired:
		return "Perfectly Paired & Ignored"
	default:
		return "Unknown"
	}
}

// DisplayFile is one member of a FileGroup as shown to the user, carrying
// the effective action (override applied if present).
type DisplayFile struct {
	ID     FileID
	Path   Path
	Size   uint64
	Action Action
}

// FileGroup is a set of FileRecords the Planner treats as candidates for
// mutual reduction, plus the category and display name it was emitted
// under.
type FileGroup struct {
	GroupName string
	Category  Category
	Files     []DisplayFile
}

// ScanResult is the output of one scan: groups ready for review plus
// aggregate totals. Mutated only by override toggles until execution.
type ScanResult struct {
	Groups     []FileGroup
	Categories []Category

	mu        sync.Mutex
	records   map[FileID]*FileRecord // all FileRecords by ID, for toggle lookups
	automatic map[FileID]Action      // the original automatic action, preserved across toggles
	overrides map[FileID]Action      // present only while an override is active
}

// NewScanResult assembles a ScanResult from groups and the full record set.
func NewScanResult(groups []FileGroup, records map[FileID]*FileRecord, automatic map[FileID]Action) *ScanResult {
	return &ScanResult{
		Groups: groups,
		Categories: []Category{
			CategoryContentDuplicates,
			CategoryLivePhotoRepair,
			CategoryRedundantVersions,
			CategoryPerfectlyPaired,
		},
		records:   records,
		automatic: automatic,
		overrides: make(map[FileID]Action),
	}
}

// ErrNotOverridable is returned by ToggleOverride for KeepAndRename files.
var ErrNotOverridable = fmt.Errorf("rename actions cannot be overridden")

// ErrUnknownFile is returned by ToggleOverride for an unrecognized FileID.
var ErrUnknownFile = fmt.Errorf("unknown file id")

// ToggleOverride flips between a file's original automatic action and its
// inverse user override (spec.md §6). Idempotent in pairs: calling it
// twice restores the original action.
func (r *ScanResult) ToggleOverride(id FileID) (Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	original, ok := r.automatic[id]
	if !ok {
		return Action{}, ErrUnknownFile
	}
	if !CanToggle(original) {
		return Action{}, ErrNotOverridable
	}

	if _, overridden := r.overrides[id]; overridden {
		delete(r.overrides, id)
		r.applyToGroups(id, original)
		return original, nil
	}

	inverse := original.Inverse()
	r.overrides[id] = inverse
	r.applyToGroups(id, inverse)
	return inverse, nil
}

// EffectiveAction returns the override if present, else the original
// automatic action.
func (r *ScanResult) EffectiveAction(id FileID) Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.overrides[id]; ok {
		return a
	}
	return r.automatic[id]
}

func (r *ScanResult) applyToGroups(id FileID, action Action) {
	for gi := range r.Groups {
		for fi := range r.Groups[gi].Files {
			if r.Groups[gi].Files[fi].ID == id {
				r.Groups[gi].Files[fi].Action = action
			}
		}
	}
}

// ReclaimableBytes sums the size of every Delete action not overridden by
// UserKeep (spec.md §3, §8 law 4).
func (r *ScanResult) ReclaimableBytes() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total uint64
	for id, rec := range r.records {
		a := r.automatic[id]
		if o, ok := r.overrides[id]; ok {
			a = o
		}
		if a.Kind == ActionDelete {
			total += rec.Size
		}
	}
	return total
}
