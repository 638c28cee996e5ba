// Package grouper implements the Duplicate Grouper and Name Grouper
// (spec.md §2): the fold step between hashing and planning that turns
// (path, fingerprint) pairs into content-identical buckets, and canonical
// base names into name buckets.
package grouper

import "github.com/ivoronin/mediasweep/internal/model"

// ByFingerprint folds records into content-identical buckets, keyed by
// fingerprint. Records with no fingerprint (hashing failed, or never
// attempted) are omitted — they are still unique files to the Planner,
// just not duplicate candidates.
func ByFingerprint(records []*model.FileRecord) map[model.Fingerprint][]*model.FileRecord {
	buckets := make(map[model.Fingerprint][]*model.FileRecord)
	for _, rec := range records {
		if rec.Fingerprint == nil {
			continue
		}
		buckets[*rec.Fingerprint] = append(buckets[*rec.Fingerprint], rec)
	}
	return buckets
}
