// Package review is the interactive browser over the failures of the last run.
package review

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gokoans/internal/config"
	"gokoans/internal/domain"
	"gokoans/internal/narrator"
	"gokoans/internal/ui"
)

// Viewer lets the student browse the failing koans of the last run in a TUI
type Viewer struct {
	config *config.Config
	sink   ui.Sink
}

var _ ui.Viewer = (*Viewer)(nil)

// NewViewer creates a new Viewer. Messages that need no TUI go to sink.
func NewViewer(cfg *config.Config, sink ui.Sink) *Viewer {
	return &Viewer{
		config: cfg,
		sink:   sink,
	}
}

// View displays the failures of summary, the one the narrator would pick first on top
func (rv *Viewer) View(summary *domain.RunSummary) error {
	failures := reviewOrder(summary)
	if len(failures) == 0 {
		rv.sink.WriteLine(ui.Green, "✓ Nothing to meditate on, the last run was clean.")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, failure := range failures {
		list.AddItem(listItemText(i, failure), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Koans to meditate on (%d) | ↑↓ to navigate, → to read, ← to go back, q or Ctrl+C to exit ", len(failures)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(failures) {
			return
		}
		statsView.SetText(formatFailureStats(failures[index]))
		detailsView.SetText(formatFailureDetails(failures[index], rv.config.GetMarker()))
		detailsView.ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run review: %w", err)
	}
	return nil
}

// reviewOrder returns the stored failures with the first failure moved to the front
func reviewOrder(summary *domain.RunSummary) []domain.FailureRecord {
	if summary == nil || len(summary.Failures) == 0 {
		return nil
	}
	out := make([]domain.FailureRecord, 0, len(summary.Failures))
	if first := summary.FirstFailure; first != nil {
		out = append(out, *first)
	}
	for _, f := range summary.Failures {
		if summary.FirstFailure != nil && f.Seq == summary.FirstFailure.Seq {
			continue
		}
		out = append(out, f)
	}
	return out
}

func listItemText(index int, failure domain.FailureRecord) string {
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(failure.Test.Name))
}

// formatFailureStats formats the header line for a failure
func formatFailureStats(failure domain.FailureRecord) string {
	return fmt.Sprintf("[cyan]lesson:[white] [yellow]%s[white]::[yellow]%s[white]\n",
		tview.Escape(failure.Group), tview.Escape(failure.Test.Name))
}

// formatFailureDetails shows a failure the way the narrator explains it: the assertion
// message and the stack frames inside the koans, using tview color tags
func formatFailureDetails(failure domain.FailureRecord, marker string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s has damaged your karma.[white]\n\n", tview.Escape(failure.Test.Name))

	if msg := narrator.ScrapeAssertionError(failure.Err); msg != "" {
		fmt.Fprintf(&b, "[yellow]You have not yet reached enlightenment ...[white]\n%s\n\n", tview.Escape(msg))
	}

	if stack := narrator.ScrapeInterestingStackDump(failure.Err, marker); stack != "" {
		fmt.Fprintf(&b, "[yellow]Please meditate on the following code:[white]\n%s\n", tview.Escape(stack))
	} else {
		fmt.Fprintf(&b, "[yellow]Engine output:[white]\n%s\n", tview.Escape(failure.Err))
	}
	return b.String()
}
