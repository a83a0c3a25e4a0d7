// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schollz/progressbar/v3"
)

// Terminal renders progress interactively on stderr. While the fraction is
// still zero the page count is unknown (the document is being rasterized),
// so an indeterminate spinner runs; the first nonzero fraction replaces it
// with a percentage bar.
type Terminal struct {
	spin     *spinner.Spinner
	bar      *progressbar.ProgressBar
	spinning bool
}

// NewTerminal returns a Terminal sink writing to stderr.
func NewTerminal() *Terminal {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	return &Terminal{spin: s}
}

// Step implements Sink.
func (t *Terminal) Step(fraction float64, status string) {
	if fraction <= 0 && t.bar == nil {
		t.spin.Suffix = " " + status
		if !t.spinning {
			t.spin.Start()
			t.spinning = true
		}
		return
	}

	if t.bar == nil {
		if t.spinning {
			t.spin.Stop()
			t.spinning = false
		}
		t.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "│",
				BarEnd:        "│",
			}),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	t.bar.Describe(status)
	_ = t.bar.Set(int(fraction*100 + 0.5))
}

// Finish stops the spinner or completes the bar and moves to a fresh line.
func (t *Terminal) Finish() {
	if t.spinning {
		t.spin.Stop()
		t.spinning = false
	}
	if t.bar != nil {
		_ = t.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
}
