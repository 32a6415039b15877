package commands

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gokoans/internal/cli"
	"gokoans/internal/config"
	"gokoans/internal/discovery"
	"gokoans/internal/execution"
	"gokoans/internal/logging"
	"gokoans/internal/parser"
	"gokoans/internal/storage"
	"gokoans/internal/watch"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	Watch  *WatchCommand
	List   *ListCommand
	Review *ReviewCommand
}

// NewCommands creates all commands with dependencies. Narration and listings are
// written to out.
func NewCommands(cfg *config.Config, logger *zap.Logger, out io.Writer) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	discoverer := discovery.NewDiscoverer(cfg, scanner, filter, logger)
	testCaseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg, logger)
	goTestParser := parser.NewGoTestParser()
	executor := execution.NewWorkerPool(cfg, runner, goTestParser, logger)
	jsonStorage := storage.NewJSONStorage(cfg)
	watcher := watch.New(cfg.Debounce, logger)

	run := NewRunCommand(cfg, discoverer, executor, jsonStorage, out)
	return &Commands{
		Run:    run,
		Watch:  NewWatchCommand(cfg, discoverer, watcher, run, out),
		List:   NewListCommand(cfg, discoverer, testCaseParser, jsonStorage, out),
		Review: NewReviewCommand(cfg, jsonStorage, out),
	}
}

// Register registers all commands with cobra. Running the root command without a
// subcommand runs the koans.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, level zap.AtomicLevel) {
	rootCmd.PersistentFlags().StringVarP(&flags.KoansPath, "path", "p", "", "Path to the koans (default \"koans\", or KOANS_PATH); its directory name marks your files in stack traces unless KOANS_MARKER is set")
	rootCmd.PersistentFlags().StringVarP(&flags.Filter, "filter", "f", "", "Only meditate on lessons matching a name pattern (supports wildcards, e.g. 'about_*' or '*strings*')")
	rootCmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log what the tool is doing to stderr")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		if err := cfg.LoadEnv(config.DefaultEnvFile); err != nil {
			return err
		}
		cfg.ApplyFlags(flags.ToConfigFlags())
		logging.SetVerbose(level, flags.Verbose)
		return nil
	}

	addRunFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", 0, "Number of lessons compiled at the same time (default 4, or KOANS_JOBS)")
		cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
		cmd.Flags().BoolVar(&flags.KeepGoing, "keep-going", false, "Keep meditating after a lesson with failing koans")
	}

	rootCmd.RunE = c.Run.Execute
	addRunFlags(rootCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Meditate on the koans",
		Long:  "Run the lessons on the path to enlightenment in order and explain the first koan that needs attention",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Meditate again whenever a lesson is saved",
		Long:  "Run the koans, then run them again every time a Go file under the koans path changes",
		Args:  cobra.NoArgs,
		RunE:  c.Watch.Execute,
	}
	addRunFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the lessons on the path to enlightenment",
		Long:  "List the lessons in order, marked with how far the last run got",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List the koans of each lesson")
	rootCmd.AddCommand(listCmd)

	// Review command
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Browse the failing koans of the last run",
		Long:  "Display the failing koans of the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Review.Execute,
	}
	rootCmd.AddCommand(reviewCmd)
}
