package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gokoans/internal/cli"
	"gokoans/internal/cli/commands"
	"gokoans/internal/config"
	"gokoans/internal/logging"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "koans",
		Short: "Walk the path to enlightenment, one Go koan at a time",
		Long: `Runs the koans in order and explains the first one that needs your attention:
the assertion that failed and the lines of your lessons that led to it.

Run without a command to meditate once.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logger, level, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, logger, os.Stdout)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := execute(ctx, rootCmd, logger, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs rootCmd and flushes the logger whatever the outcome. It returns the exit code.
func execute(ctx context.Context, rootCmd *cobra.Command, logger *zap.Logger, stderr io.Writer) int {
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
