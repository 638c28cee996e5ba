package grouper

import (
	"github.com/ivoronin/mediasweep/internal/media"
	"github.com/ivoronin/mediasweep/internal/model"
)

// cancelCheckInterval is how often ByName polls the cancellation signal
// while iterating a potentially large record set (spec.md §4.1/§5:
// "every ~5,000 items during name grouping").
const cancelCheckInterval = 5000

// ByName groups records by their canonical base name (spec.md §4.3),
// polling cancel every cancelCheckInterval items. Returns nil and false if
// cancelled partway through.
func ByName(records []*model.FileRecord, cancel *model.CancelSignal) (map[string][]*model.FileRecord, bool) {
	buckets := make(map[string][]*model.FileRecord)
	for i, rec := range records {
		if i%cancelCheckInterval == 0 && cancel.Cancelled() {
			return nil, false
		}
		key := media.CanonicalBaseName(rec.Path.Stem())
		buckets[key] = append(buckets[key], rec)
	}
	return buckets, true
}
