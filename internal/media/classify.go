// Package media implements the Media Classifier and Name Normalizer
// (spec.md §4.2, §4.3).
package media

import (
	"strings"

	"github.com/ivoronin/mediasweep/internal/model"
)

var imageExts = map[string]bool{
	"heic": true, "jpg": true, "jpeg": true, "png": true, "tiff": true, "bmp": true,
}

var videoExts = map[string]bool{
	"mov": true, "mp4": true, "m4v": true, "avi": true, "mkv": true,
}

// Classify maps a path's extension (case-insensitive) to a Kind and
// reports whether it is recognized media at all (spec.md §4.2).
func Classify(path model.Path) (kind model.Kind, ok bool) {
	ext := strings.ToLower(path.Ext())
	switch {
	case imageExts[ext]:
		return model.Image, true
	case videoExts[ext]:
		return model.Video, true
	default:
		return 0, false
	}
}
