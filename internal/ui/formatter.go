package ui

import (
	"fmt"
	"path/filepath"

	"gokoans/internal/config"
	"gokoans/internal/discovery"
	"gokoans/internal/domain"
)

// Formatter prints the path to enlightenment with how far the last run got
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	sink   Sink
}

// NewFormatter creates a new Formatter that writes to sink
func NewFormatter(cfg *config.Config, parser *discovery.Parser, sink Sink) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		sink:   sink,
	}
}

func statusMarker(status domain.LessonStatus) (Style, string) {
	switch status {
	case domain.LessonPassed:
		return Green, "✓"
	case domain.LessonFailed:
		return Red, "✗"
	default:
		return Plain, "·"
	}
}

// PrintLessonList prints lessons in path order as a tree, each marked with its status in
// last (which may be nil when nothing has been run). With showTestCases the koans of each
// lesson are listed below it, failing ones in red.
func (f *Formatter) PrintLessonList(lessons []domain.Lesson, last *domain.RunSummary, showTestCases bool) error {
	mastered := 0
	for _, lesson := range lessons {
		if last.LessonStatus(lesson.Name) == domain.LessonPassed {
			mastered++
		}
	}
	f.sink.WriteLine(Green, fmt.Sprintf("Found %d lesson(s) in %s, %d mastered:", len(lessons), f.config.GetKoansPath(), mastered))
	f.sink.WriteLine(Plain, "")

	failing := make(map[string]bool)
	if last != nil {
		for _, failure := range last.Failures {
			failing[failure.Group+"/"+failure.Test.Name] = true
		}
	}

	for i, lesson := range lessons {
		isLastLesson := i == len(lessons)-1
		connector := "├── "
		childPrefix := "│   "
		if isLastLesson {
			connector = "└── "
			childPrefix = "    "
		}

		style, marker := statusMarker(last.LessonStatus(lesson.Name))
		f.sink.WriteLine(style, fmt.Sprintf("%s%s %s", connector, marker, lesson.Name))

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTestCases(lesson.Dir)
		if err != nil {
			return fmt.Errorf("list koans of %s: %w", filepath.Base(lesson.Dir), err)
		}
		if len(testCases) == 0 {
			f.sink.WriteLine(Red, childPrefix+"└── (no koans found)")
			continue
		}
		for j, testCase := range testCases {
			caseConnector := "├── "
			if j == len(testCases)-1 {
				caseConnector = "└── "
			}
			caseStyle := Yellow
			if failing[lesson.Name+"/"+testCase] {
				caseStyle = Red
			}
			f.sink.WriteLine(caseStyle, childPrefix+caseConnector+testCase)
		}
	}

	if last != nil && last.Timestamp != "" {
		f.sink.WriteLine(Plain, "")
		f.sink.WriteLine(Cyan, fmt.Sprintf("Last meditation: %s (%.2fs)", last.Timestamp, last.DurationSeconds))
	}
	return nil
}
