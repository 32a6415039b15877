package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/alessio/shellescape"
	"go.uber.org/zap"

	"gokoans/internal/config"
	"gokoans/internal/domain"
	"gokoans/internal/parser"
)

// LessonRun is everything `go test -json` said about one lesson
type LessonRun struct {
	Lesson   domain.Lesson
	Events   []parser.TestEvent
	Stderr   string
	Duration time.Duration
}

// Runner executes `go test -json` for a single lesson
type Runner struct {
	config *config.Config
	logger *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: cfg, logger: logger}
}

// Run executes the lesson's tests. Failing tests are not an error; only a test engine
// that could not be started (or a cancelled ctx) is.
func (r *Runner) Run(ctx context.Context, lesson domain.Lesson) (LessonRun, error) {
	args := []string{"test", "-json", "-count=1", lesson.Package}
	cmd := exec.CommandContext(ctx, r.config.GoBinary, args...)
	cmd.Env = os.Environ()
	cmd.Dir = r.config.GetKoansPath()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("Running lesson",
		zap.String("lesson", lesson.Name),
		zap.String("dir", cmd.Dir),
		zap.String("command", shellescape.QuoteCommand(append([]string{r.config.GoBinary}, args...))))

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return LessonRun{}, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return LessonRun{}, fmt.Errorf("run go test for %s: %w", lesson.Name, err)
		}
	}

	events, err := parser.DecodeEvents(&stdout)
	if err != nil {
		return LessonRun{}, fmt.Errorf("read go test output for %s: %w", lesson.Name, err)
	}

	r.logger.Debug("Lesson finished",
		zap.String("lesson", lesson.Name),
		zap.Int("events", len(events)),
		zap.Duration("duration", duration))

	return LessonRun{
		Lesson:   lesson,
		Events:   events,
		Stderr:   stderr.String(),
		Duration: duration,
	}, nil
}
