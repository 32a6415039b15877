package config

import "time"

const (
	// DefaultKoansPath is the default directory holding the lesson packages
	DefaultKoansPath = "koans"
	// DefaultLessonFile lists the lessons in order, relative to the koans path
	DefaultLessonFile = "path_to_enlightenment.yaml"
	// DefaultOutputJSONFile is the default file the last run is stored in
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the default output directory, relative to the koans path
	DefaultOutputJSONDir = ".koans"
	// DefaultJobs is the default number of lessons run at the same time
	DefaultJobs = 4
	// DefaultGoBinary is the go command used to run lessons
	DefaultGoBinary = "go"
	// DefaultMarker is the path segment that marks the student's own files in a stack trace
	DefaultMarker = "koans"
	// DefaultExtraCredit is named once every koan passes
	DefaultExtraCredit = "about_extra_credit_task"
	// DefaultDebounce is how long watch mode waits for edits to settle
	DefaultDebounce = 300 * time.Millisecond
	// DefaultEnvFile is loaded from the working directory for KOANS_* overrides
	DefaultEnvFile = ".env"
)

// DefaultPathsToIgnore are the directories never treated as lessons
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
}
