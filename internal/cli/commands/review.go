package commands

import (
	"io"

	"github.com/spf13/cobra"

	"gokoans/internal/config"
	"gokoans/internal/storage"
	"gokoans/internal/ui"
	"gokoans/internal/ui/review"
)

// ReviewCommand handles the review command
type ReviewCommand struct {
	config  *config.Config
	storage storage.Storage
	out     io.Writer
}

// NewReviewCommand creates a new ReviewCommand
func NewReviewCommand(cfg *config.Config, st storage.Storage, out io.Writer) *ReviewCommand {
	return &ReviewCommand{
		config:  cfg,
		storage: st,
		out:     out,
	}
}

// Execute runs the command
func (rc *ReviewCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := rc.storage.Load()
	if err != nil {
		return err
	}

	var viewer ui.Viewer = review.NewViewer(rc.config, ui.NewConsoleSink(rc.out, rc.config.NoColor))
	return viewer.View(summary)
}
