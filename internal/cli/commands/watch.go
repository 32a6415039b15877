package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gokoans/internal/config"
	"gokoans/internal/discovery"
	"gokoans/internal/ui"
	"gokoans/internal/watch"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	config     *config.Config
	discoverer *discovery.Discoverer
	watcher    *watch.Watcher
	run        *RunCommand
	out        io.Writer
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(
	cfg *config.Config,
	discoverer *discovery.Discoverer,
	watcher *watch.Watcher,
	run *RunCommand,
	out io.Writer,
) *WatchCommand {
	return &WatchCommand{
		config:     cfg,
		discoverer: discoverer,
		watcher:    watcher,
		run:        run,
		out:        out,
	}
}

// Execute runs the command until it is interrupted
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	lessons, err := wc.discoverer.Lessons()
	if err != nil {
		return err
	}
	dirs := []string{wc.config.GetKoansPath()}
	for _, lesson := range lessons {
		if lesson.Dir != dirs[0] {
			dirs = append(dirs, lesson.Dir)
		}
	}

	sink := ui.NewConsoleSink(wc.out, wc.config.NoColor)
	return wc.watcher.Watch(ctx, dirs, func(ctx context.Context) error {
		if err := wc.run.Meditate(ctx); err != nil {
			return err
		}
		sink.WriteLine(ui.Plain, "")
		sink.WriteLine(ui.Cyan, fmt.Sprintf("Watching %s for changes, Ctrl+C to stop ...", wc.config.GetKoansPath()))
		return nil
	})
}
