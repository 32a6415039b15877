package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gokoans/internal/config"
	"gokoans/internal/discovery"
	"gokoans/internal/storage"
	"gokoans/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config     *config.Config
	discoverer *discovery.Discoverer
	parser     *discovery.Parser
	storage    storage.Storage
	out        io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	discoverer *discovery.Discoverer,
	parser *discovery.Parser,
	st storage.Storage,
	out io.Writer,
) *ListCommand {
	return &ListCommand{
		config:     cfg,
		discoverer: discoverer,
		parser:     parser,
		storage:    st,
		out:        out,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	sink := ui.NewConsoleSink(lc.out, lc.config.NoColor)

	lessons, err := lc.discoverer.Lessons()
	if err != nil {
		return err
	}
	if len(lessons) == 0 {
		sink.WriteLine(ui.Yellow, fmt.Sprintf("No lessons found in %s", lc.config.GetKoansPath()))
		return nil
	}

	// Statuses are optional; a path nobody walked yet lists as pending
	last, err := lc.storage.Load()
	if err != nil && !errors.Is(err, storage.ErrNoRun) {
		return err
	}

	formatter := ui.NewFormatter(lc.config, lc.parser, sink)
	return formatter.PrintLessonList(lessons, last, lc.config.Flags.TestCases)
}
