package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Style is a named colour applied to a whole line
type Style int

const (
	// Plain writes the line without any colour annotation
	Plain Style = iota
	Reset
	Green
	Red
	Yellow
	Cyan
	Blue
)

// Sink is a line-oriented writer that understands styles
type Sink interface {
	WriteLine(style Style, text string)
}

// ConsoleSink writes styled lines to an io.Writer using fatih/color.
// Each sink owns its colours, so disabling colour on one sink does not affect another.
type ConsoleSink struct {
	out    io.Writer
	colors map[Style]*color.Color
}

// NewConsoleSink creates a ConsoleSink. With noColor set the output carries no escape codes.
func NewConsoleSink(out io.Writer, noColor bool) *ConsoleSink {
	colors := map[Style]*color.Color{
		Reset:  color.New(color.Reset),
		Green:  color.New(color.FgGreen),
		Red:    color.New(color.FgRed),
		Yellow: color.New(color.FgYellow),
		Cyan:   color.New(color.FgCyan),
		Blue:   color.New(color.FgBlue),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}
	return &ConsoleSink{out: out, colors: colors}
}

// WriteLine writes text followed by a newline in the given style
func (s *ConsoleSink) WriteLine(style Style, text string) {
	c, ok := s.colors[style]
	if !ok {
		fmt.Fprintln(s.out, text)
		return
	}
	c.Fprintln(s.out, text)
}
