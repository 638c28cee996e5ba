// Package planner implements the Planner (spec.md §4.6): the policy
// engine that turns hashed FileRecords into a ScanResult of FileGroups and
// per-file Actions.
package planner

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/ivoronin/mediasweep/internal/grouper"
	"github.com/ivoronin/mediasweep/internal/model"
)

// Plan applies the policies of spec.md §4.6 to records and returns the
// resulting ScanResult. Returns false if cancelled partway through — the
// pipeline scope must discard any partial result on that signal (spec.md
// §5: "no partial plan is ever exposed").
func Plan(records []*model.FileRecord, cancel *model.CancelSignal) (*model.ScanResult, bool) {
	byID := make(map[model.FileID]*model.FileRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	automatic := make(map[model.FileID]model.Action, len(records))
	processed := make(map[model.FileID]bool, len(records))
	var groups []model.FileGroup

	if !sweepContentDuplicates(records, automatic, processed, &groups, cancel) {
		return nil, false
	}

	remaining := unprocessed(records, processed)
	if !detectPerfectPairs(remaining, automatic, processed, &groups, cancel) {
		return nil, false
	}

	remaining = unprocessed(records, processed)
	if !resolveVariants(remaining, automatic, processed, &groups, cancel) {
		return nil, false
	}

	// (d) Leftovers: anything never touched is an implicit unique keep.
	for _, r := range records {
		if !processed[r.ID] {
			automatic[r.ID] = model.KeepAsIs("Unique file")
		}
	}

	groups = downgradeRenameConflicts(groups, automatic)
	sortGroups(groups)

	return model.NewScanResult(groups, byID, automatic), true
}

func unprocessed(records []*model.FileRecord, processed map[model.FileID]bool) []*model.FileRecord {
	out := make([]*model.FileRecord, 0, len(records))
	for _, r := range records {
		if !processed[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

// sweepContentDuplicates implements spec.md §4.6(a).
func sweepContentDuplicates(
	records []*model.FileRecord,
	automatic map[model.FileID]model.Action,
	processed map[model.FileID]bool,
	groups *[]model.FileGroup,
	cancel *model.CancelSignal,
) bool {
	buckets := grouper.ByFingerprint(records)

	keys := make([]model.Fingerprint, 0, len(buckets))
	for fp := range buckets {
		keys = append(keys, fp)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Hex() < keys[j].Hex() })

	for _, fp := range keys {
		if cancel.Cancelled() {
			return false
		}
		members := buckets[fp]
		if len(members) < 2 {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			li, lj := len(members[i].Path.Base()), len(members[j].Path.Base())
			if li != lj {
				return li < lj
			}
			return members[i].Path.String() < members[j].Path.String()
		})

		kept := members[0]
		automatic[kept.ID] = model.KeepAsIs("Best name among content duplicates")
		processed[kept.ID] = true

		var files []model.DisplayFile
		files = append(files, displayFile(kept, automatic[kept.ID]))
		for _, dup := range members[1:] {
			a := model.Delete(fmt.Sprintf("Content Duplicate of %s", kept.Path.Base()))
			automatic[dup.ID] = a
			processed[dup.ID] = true
			files = append(files, displayFile(dup, a))
		}

		*groups = append(*groups, model.FileGroup{
			GroupName: fmt.Sprintf("Content Duplicates: %s", fp.ShortHex(8)),
			Category:  model.CategoryContentDuplicates,
			Files:     files,
		})
	}

	return true
}

// detectPerfectPairs implements spec.md §4.6(b).
func detectPerfectPairs(
	records []*model.FileRecord,
	automatic map[model.FileID]model.Action,
	processed map[model.FileID]bool,
	groups *[]model.FileGroup,
	cancel *model.CancelSignal,
) bool {
	byCanonical, ok := grouper.ByName(records, cancel)
	if !ok {
		return false
	}

	keys := sortedKeys(byCanonical)
	for _, key := range keys {
		if cancel.Cancelled() {
			return false
		}
		members := byCanonical[key]
		var img, vid *model.FileRecord
		imgCount, vidCount := 0, 0
		for _, m := range members {
			if m.Kind == model.Image {
				img = m
				imgCount++
			} else {
				vid = m
				vidCount++
			}
		}
		if imgCount != 1 || vidCount != 1 {
			continue
		}
		if img.Path.Stem() != vid.Path.Stem() {
			continue
		}

		a := model.KeepAsIs("Perfectly Paired")
		automatic[img.ID] = a
		automatic[vid.ID] = a
		processed[img.ID] = true
		processed[vid.ID] = true

		*groups = append(*groups, model.FileGroup{
			GroupName: fmt.Sprintf("Perfectly Paired & Ignored: %s", img.Path.Stem()),
			Category:  model.CategoryPerfectlyPaired,
			Files: []model.DisplayFile{
				displayFile(vid, a),
				displayFile(img, a),
			},
		})
	}

	return true
}

// resolveVariants implements spec.md §4.6(c).
func resolveVariants(
	records []*model.FileRecord,
	automatic map[model.FileID]model.Action,
	processed map[model.FileID]bool,
	groups *[]model.FileGroup,
	cancel *model.CancelSignal,
) bool {
	byCanonical, ok := grouper.ByName(records, cancel)
	if !ok {
		return false
	}

	keys := sortedKeys(byCanonical)
	for _, key := range keys {
		if cancel.Cancelled() {
			return false
		}
		members := byCanonical[key]

		var images, videos []*model.FileRecord
		for _, m := range members {
			if m.Kind == model.Image {
				images = append(images, m)
			} else {
				videos = append(videos, m)
			}
		}
		sortBySizeDesc(images)
		sortBySizeDesc(videos)

		var bv, bi *model.FileRecord
		var actions []model.DisplayFile
		hasRename, hasDelete := false, false

		if len(videos) > 0 {
			bv = videos[0]
			automatic[bv.ID] = model.KeepAsIs("Largest Video")
			processed[bv.ID] = true
			actions = append(actions, displayFile(bv, automatic[bv.ID]))
			for _, v := range videos[1:] {
				a := model.Delete("Smaller Video Version")
				automatic[v.ID] = a
				processed[v.ID] = true
				actions = append(actions, displayFile(v, a))
				hasDelete = true
			}
		}

		if len(images) > 0 {
			bi = images[0]
			if bv != nil {
				sv, si := bv.Path.Stem(), bi.Path.Stem()
				if si != sv {
					a := model.KeepAndRename("Primary for Live Photo", sv)
					automatic[bi.ID] = a
					hasRename = true
				} else {
					automatic[bi.ID] = model.KeepAsIs("Primary for Live Photo")
				}
			} else {
				automatic[bi.ID] = model.KeepAsIs("Largest Image")
			}
			processed[bi.ID] = true
			actions = append(actions, displayFile(bi, automatic[bi.ID]))

			for _, im := range images[1:] {
				a := model.Delete("Smaller Image Version")
				automatic[im.ID] = a
				processed[im.ID] = true
				actions = append(actions, displayFile(im, a))
				hasDelete = true
			}
		}

		switch {
		case hasRename:
			*groups = append(*groups, model.FileGroup{
				GroupName: fmt.Sprintf("Live Photo Pair to Repair: %s", key),
				Category:  model.CategoryLivePhotoRepair,
				Files:     actions,
			})
		case hasDelete:
			*groups = append(*groups, model.FileGroup{
				GroupName: fmt.Sprintf("Redundant Versions to Delete: %s", key),
				Category:  model.CategoryRedundantVersions,
				Files:     actions,
			})
		}
	}

	return true
}

func sortBySizeDesc(records []*model.FileRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Size != records[j].Size {
			return records[i].Size > records[j].Size
		}
		return records[i].Path.String() < records[j].Path.String()
	})
}

func sortedKeys(m map[string][]*model.FileRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func displayFile(r *model.FileRecord, a model.Action) model.DisplayFile {
	return model.DisplayFile{ID: r.ID, Path: r.Path, Size: r.Size, Action: a}
}

// downgradeRenameConflicts implements the rename-collision safety pass of
// spec.md §4.6: no two KeepAndRename destinations may collide with each
// other or with an existing kept file's path.
func downgradeRenameConflicts(groups []model.FileGroup, automatic map[model.FileID]model.Action) []model.FileGroup {
	claimed := make(map[string]bool)
	for gi := range groups {
		for _, f := range groups[gi].Files {
			if automatic[f.ID].Kind == model.ActionKeepAsIs {
				claimed[f.Path.String()] = true
			}
		}
	}

	type rename struct {
		gi, fi int
		dest   string
	}
	var renames []rename
	for gi := range groups {
		for fi, f := range groups[gi].Files {
			if automatic[f.ID].Kind == model.ActionKeepAndRename {
				dest := f.Path.WithStem(automatic[f.ID].NewStem).String()
				renames = append(renames, rename{gi, fi, dest})
			}
		}
	}
	sort.Slice(renames, func(i, j int) bool {
		return groups[renames[i].gi].Files[renames[i].fi].Path.String() <
			groups[renames[j].gi].Files[renames[j].fi].Path.String()
	})

	for _, r := range renames {
		id := groups[r.gi].Files[r.fi].ID
		if claimed[r.dest] {
			downgraded := model.KeepAsIs("Rename skipped: target exists")
			automatic[id] = downgraded
			groups[r.gi].Files[r.fi].Action = downgraded
			continue
		}
		claimed[r.dest] = true
		groups[r.gi].Files[r.fi].Action = automatic[id]
	}

	// Refresh every display action from automatic (renames may have been
	// downgraded above; everything else is already in sync).
	for gi := range groups {
		for fi, f := range groups[gi].Files {
			groups[gi].Files[fi].Action = automatic[f.ID]
		}
	}

	return groups
}

func sortGroups(groups []model.FileGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Category != groups[j].Category {
			return groups[i].Category < groups[j].Category
		}
		return cmp.Compare(
			strings.ToLower(suffixOf(groups[i].GroupName)),
			strings.ToLower(suffixOf(groups[j].GroupName)),
		) < 0
	})
}

func suffixOf(groupName string) string {
	if idx := strings.Index(groupName, ": "); idx >= 0 {
		return groupName[idx+2:]
	}
	return groupName
}
