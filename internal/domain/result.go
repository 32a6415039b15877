package domain

import "time"

// LessonStatus describes how far a lesson got in the last run
type LessonStatus string

const (
	LessonPassed  LessonStatus = "passed"
	LessonFailed  LessonStatus = "failed"
	LessonPending LessonStatus = "pending"
)

// LessonResult is the outcome of running the go test engine on one lesson
type LessonResult struct {
	Lesson   Lesson        `json:"lesson"`
	Status   LessonStatus  `json:"status"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"-"`
}

// RunSummary is the persisted record of a single run, read back by list and review
type RunSummary struct {
	PassCount       int             `json:"pass_count"`
	Failures        []FailureRecord `json:"failures"`
	FirstFailure    *FailureRecord  `json:"first_failure,omitempty"`
	Lessons         []LessonResult  `json:"lessons"`
	Duration        string          `json:"duration"`
	DurationSeconds float64         `json:"duration_seconds"`
	Timestamp       string          `json:"timestamp"`
}

// LessonStatus returns the recorded status of the named lesson, or LessonPending.
func (s *RunSummary) LessonStatus(name string) LessonStatus {
	if s == nil {
		return LessonPending
	}
	for _, l := range s.Lessons {
		if l.Lesson.Name == name {
			return l.Status
		}
	}
	return LessonPending
}
