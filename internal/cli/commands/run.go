package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gokoans/internal/config"
	"gokoans/internal/discovery"
	"gokoans/internal/execution"
	"gokoans/internal/narrator"
	"gokoans/internal/storage"
	"gokoans/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config     *config.Config
	discoverer *discovery.Discoverer
	executor   execution.Executor
	storage    storage.Storage
	out        io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	discoverer *discovery.Discoverer,
	executor execution.Executor,
	st storage.Storage,
	out io.Writer,
) *RunCommand {
	return &RunCommand{
		config:     cfg,
		discoverer: discoverer,
		executor:   executor,
		storage:    st,
		out:        out,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return rc.Meditate(ctx)
}

// Meditate runs the koans once with a fresh narrator and stores the result. Failing
// koans are not an error.
func (rc *RunCommand) Meditate(ctx context.Context) error {
	sink := ui.NewConsoleSink(rc.out, rc.config.NoColor)

	lessons, err := rc.discoverer.Lessons()
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		sink.WriteLine(ui.Yellow, fmt.Sprintf("No lessons to meditate on in %s", rc.config.GetKoansPath()))
		return nil
	}

	var progress execution.Progress
	if rc.config.Flags.Progress && isatty.IsTerminal(os.Stderr.Fd()) {
		progress = ui.NewProgressBar(os.Stderr, len(lessons))
	}
	rc.executor.SetProgress(progress)

	sensei := narrator.New(sink, narrator.Options{
		Marker:      rc.config.GetMarker(),
		ExtraCredit: rc.config.ExtraCredit,
	})

	results, duration, err := rc.executor.Execute(ctx, lessons, sensei)
	if err != nil {
		return fmt.Errorf("meditation interrupted: %w", err)
	}
	sensei.Learn()

	summary := sensei.Summary()
	summary.Lessons = results
	summary.Duration = duration.Round(time.Millisecond).String()
	summary.DurationSeconds = duration.Seconds()
	if err := rc.storage.Save(&summary); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}
