package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows how many lessons have been meditated on
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar over count lessons, drawn on w
func NewProgressBar(w io.Writer, count int) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

func describe(passed, failed int) string {
	return color.CyanString("Meditating: ") +
		color.GreenString("[calm: %d", passed) +
		" | " +
		color.RedString("troubled: %d]", failed)
}

// Update moves the bar to done lessons and refreshes the lesson counts
func (p *ProgressBar) Update(done, passed, failed int) {
	_ = p.bar.Set(done)
	p.bar.Describe(describe(passed, failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}
