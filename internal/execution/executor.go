package execution

import (
	"context"
	"time"

	"gokoans/internal/domain"
	"gokoans/internal/narrator"
)

// Executor runs lessons and reports their tests to a listener
type Executor interface {
	Execute(ctx context.Context, lessons []domain.Lesson, listener narrator.Listener) ([]domain.LessonResult, time.Duration, error)
	SetProgress(progress Progress)
}

// LessonRunner runs the test engine on a single lesson
type LessonRunner interface {
	Run(ctx context.Context, lesson domain.Lesson) (LessonRun, error)
}

// Progress is told about each lesson once its results have been reported
type Progress interface {
	Update(done, passed, failed int)
	Finish()
}
