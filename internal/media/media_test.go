package media

import (
	"testing"

	"github.com/ivoronin/mediasweep/internal/model"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path     string
		wantKind model.Kind
		wantOK   bool
	}{
		{"IMG_0001.HEIC", model.Image, true},
		{"a/b/photo.jpeg", model.Image, true},
		{"photo.PNG", model.Image, true},
		{"clip.MOV", model.Video, true},
		{"clip.mp4", model.Video, true},
		{"notes.txt", 0, false},
		{"archive.zip", 0, false},
		{"noext", 0, false},
	}

	for _, c := range cases {
		kind, ok := Classify(model.NewPath(c.path))
		if ok != c.wantOK {
			t.Errorf("Classify(%q) ok = %v, want %v", c.path, ok, c.wantOK)
			continue
		}
		if ok && kind != c.wantKind {
			t.Errorf("Classify(%q) kind = %v, want %v", c.path, kind, c.wantKind)
		}
	}
}

func TestCanonicalBaseName(t *testing.T) {
	cases := []struct{ stem, want string }{
		{"A", "A"},
		{"A copy", "A"},
		{"A (1)", "A"},
		{"B_v2", "B"},
		{"IMG_0002 copy", "IMG_0002"},
		{"IMG_0002", "IMG_0002"},
		{"X copy (2)_v3", "X copy (2)"}, // stacked markers: only one step stripped
		{"vacation-42", "vacation"},
		{"vacation-photo", "vacation-photo"}, // "-photo" isn't copy/digits, no strip
	}

	for _, c := range cases {
		got := CanonicalBaseName(c.stem)
		if got != c.want {
			t.Errorf("CanonicalBaseName(%q) = %q, want %q", c.stem, got, c.want)
		}
	}
}
