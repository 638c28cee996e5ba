package media

import "regexp"

// variantMarker matches a single trailing variant marker on a base name:
// " copy", "-copy", "_copy", a trailing " <number>" or "-<number>", " (N)",
// or "_vN". An underscore followed by bare digits (camera names such as
// "IMG_0002") is not a marker. Case-insensitive, per spec.md §4.3.
var variantMarker = regexp.MustCompile(`(?i)(?:[ _-]copy|[ -]\d+| \(\d+\)|_v\d+)$`)

// CanonicalBaseName returns the canonical base name used for name
// grouping (spec.md §4.3):
//  1. Drop the extension.
//  2. Strip, case-insensitively, any single trailing occurrence of a
//     variant marker.
//
// The result is a grouping key only; the original path is unaffected.
// Stacked markers (e.g. "X copy (2)_v3") are normalized only one step,
// per spec.md's open question — this is intentional, not a bug.
func CanonicalBaseName(stem string) string {
	return variantMarker.ReplaceAllString(stem, "")
}
