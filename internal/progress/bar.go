package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// scale is the fixed-point resolution the Bar renders Snapshot.Fraction
// at: progressbar.NewOptions64 wants an integer total, but the Manager's
// progress is a float in [0, 1].
const scale = 10000

// Bar renders Manager Snapshots with progressbar, following the
// teacher's enabled/disabled no-op shape. Unlike the teacher's Bar
// (which the caller drives with raw Set64 counts), this Bar is wired as
// a Sink: pass Bar.Observe to NewManager and it renders phase, ETA, and
// confidence text itself.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a progress bar sink. If enabled=false, Observe is a
// no-op.
func NewBar(enabled bool) *Bar {
	if !enabled {
		return &Bar{}
	}
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
	}
	return &Bar{bar: progressbar.NewOptions64(scale, opts...)}
}

// Observe is a Sink: pass it directly to NewManager.
func (b *Bar) Observe(s Snapshot) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Set64(int64(s.Fraction * scale))
	b.bar.Describe(describe(s))
}

// Finish completes the bar and prints a final summary line.
func (b *Bar) Finish(msg string) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	fmt.Fprintln(os.Stderr, "✔ "+msg)
}

func describe(s Snapshot) string {
	if s.ETA == nil {
		return fmt.Sprintf("%s: %s", s.Phase, s.Detail)
	}
	return fmt.Sprintf("%s: %s (eta %s, confidence %s)", s.Phase, s.Detail, s.ETA.Round(time.Second), s.Confidence)
}
