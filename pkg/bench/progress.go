package bench

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

const progressWidth = 30

// tracker wraps a progress bar. A nil tracker ignores every call.
type tracker struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

// newTracker creates a bar writing to w, or a nil tracker when w is nil.
func newTracker(w io.Writer, label string, total int) *tracker {
	if w == nil {
		return nil
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(progressWidth),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	return &tracker{bar: bar, out: w}
}

// tick advances the bar by one. Safe for concurrent use.
func (t *tracker) tick() {
	if t == nil {
		return
	}

	_ = t.bar.Add(1)
}

func (t *tracker) finish() {
	if t == nil {
		return
	}

	_ = t.bar.Finish()
	_, _ = io.WriteString(t.out, "\n")
}
