package execution

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gokoans/internal/config"
	"gokoans/internal/domain"
	"gokoans/internal/narrator"
	"gokoans/internal/parser"
)

// WorkerPool runs lessons on a pool of workers. Lessons may finish in any order, but
// their tests are always reported to the listener in path order, one lesson at a time.
type WorkerPool struct {
	config   *config.Config
	runner   LessonRunner
	parser   parser.Parser
	progress Progress
	logger   *zap.Logger
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner LessonRunner, p parser.Parser, logger *zap.Logger) *WorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		config: cfg,
		runner: runner,
		parser: p,
		logger: logger,
	}
}

// SetProgress sets the progress listener for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

type lessonOutcome struct {
	run LessonRun
	err error
}

// Execute runs lessons and replays them to listener. Unless KeepGoing is set it stops
// after the first lesson with a failure; lessons it never reached are reported as pending.
func (wp *WorkerPool) Execute(ctx context.Context, lessons []domain.Lesson, listener narrator.Listener) ([]domain.LessonResult, time.Duration, error) {
	if len(lessons) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)

	startTime := time.Now()
	workerCount := wp.config.Jobs
	if workerCount <= 0 {
		workerCount = 1
	}

	slots := make([]chan lessonOutcome, len(lessons))
	for i := range slots {
		slots[i] = make(chan lessonOutcome, 1)
	}

	queue := make(chan int)
	go func() {
		defer close(queue)
		for i := range lessons {
			select {
			case <-ctx.Done():
				return
			case queue <- i:
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range queue {
				wp.logger.Debug("Worker picked lesson", zap.Int("worker", workerID), zap.String("lesson", lessons[i].Name))
				run, err := wp.runner.Run(ctx, lessons[i])
				slots[i] <- lessonOutcome{run: run, err: err}
			}
		}(w)
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	results := make([]domain.LessonResult, 0, len(lessons))
	var passedLessons, failedLessons int
	for i, lesson := range lessons {
		var outcome lessonOutcome
		select {
		case outcome = <-slots[i]:
		case <-ctx.Done():
			return results, time.Since(startTime), ctx.Err()
		}
		if outcome.err != nil {
			return results, time.Since(startTime), outcome.err
		}

		sources := parser.NewSourceFiles(lesson.Dir, wp.config.GetKoansPath())
		result := Replay(outcome.run, listener, wp.parser, sources)
		results = append(results, result)
		if result.Status == domain.LessonFailed {
			failedLessons++
		} else {
			passedLessons++
		}
		if wp.progress != nil {
			wp.progress.Update(i+1, passedLessons, failedLessons)
		}

		if result.Status == domain.LessonFailed && !wp.config.Flags.KeepGoing {
			wp.logger.Debug("Stopping after failed lesson", zap.String("lesson", lesson.Name))
			for _, rest := range lessons[i+1:] {
				results = append(results, domain.LessonResult{Lesson: rest, Status: domain.LessonPending})
			}
			break
		}
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return results, time.Since(startTime), nil
}
