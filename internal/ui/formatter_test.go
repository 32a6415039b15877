package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokoans/internal/config"
	"gokoans/internal/discovery"
	"gokoans/internal/domain"
)

type line struct {
	style Style
	text  string
}

type recordingSink struct {
	lines []line
}

func (r *recordingSink) WriteLine(style Style, text string) {
	r.lines = append(r.lines, line{style: style, text: text})
}

func writeLesson(t *testing.T, root, name, source string) domain.Lesson {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+"_test.go"), []byte(source), 0644))
	return domain.Lesson{Name: name, Dir: dir, Package: "./" + name}
}

func TestFormatter_PrintLessonList(t *testing.T) {
	cfg := config.New()
	cfg.KoansPath = t.TempDir()
	sink := &recordingSink{}
	f := NewFormatter(cfg, discovery.NewParser(), sink)

	lessons := []domain.Lesson{{Name: "about_asserts"}, {Name: "about_strings"}, {Name: "about_maps"}}
	last := &domain.RunSummary{
		Lessons: []domain.LessonResult{
			{Lesson: lessons[0], Status: domain.LessonPassed},
			{Lesson: lessons[1], Status: domain.LessonFailed},
			{Lesson: lessons[2], Status: domain.LessonPending},
		},
		Timestamp:       "2026-10-19T10:00:00Z",
		DurationSeconds: 1.5,
	}

	require.NoError(t, f.PrintLessonList(lessons, last, false))

	assert.Equal(t, []line{
		{Green, "Found 3 lesson(s) in " + cfg.GetKoansPath() + ", 1 mastered:"},
		{Plain, ""},
		{Green, "├── ✓ about_asserts"},
		{Red, "├── ✗ about_strings"},
		{Plain, "└── · about_maps"},
		{Plain, ""},
		{Cyan, "Last meditation: 2026-10-19T10:00:00Z (1.50s)"},
	}, sink.lines)
}

func TestFormatter_PrintLessonListWithoutRun(t *testing.T) {
	cfg := config.New()
	sink := &recordingSink{}
	f := NewFormatter(cfg, discovery.NewParser(), sink)

	require.NoError(t, f.PrintLessonList([]domain.Lesson{{Name: "about_asserts"}}, nil, false))

	require.Len(t, sink.lines, 3)
	assert.Equal(t, line{Plain, "└── · about_asserts"}, sink.lines[2])
}

func TestFormatter_PrintLessonListWithTestCases(t *testing.T) {
	root := t.TempDir()
	cfg := config.New()
	cfg.KoansPath = root
	sink := &recordingSink{}
	f := NewFormatter(cfg, discovery.NewParser(), sink)

	asserts := writeLesson(t, root, "about_asserts", `package about_asserts

import "testing"

func TestAssertTruth(t *testing.T) {}

func TestAssertEquality(t *testing.T) {}
`)
	empty := writeLesson(t, root, "about_nothing", "package about_nothing\n")

	last := &domain.RunSummary{
		Failures: []domain.FailureRecord{{
			Test:  domain.Test{Name: "TestAssertEquality", Group: "about_asserts"},
			Group: "about_asserts",
		}},
	}

	require.NoError(t, f.PrintLessonList([]domain.Lesson{asserts, empty}, last, true))

	assert.Equal(t, []line{
		{Plain, "├── · about_asserts"},
		{Yellow, "│   ├── TestAssertTruth"},
		{Red, "│   └── TestAssertEquality"},
		{Plain, "└── · about_nothing"},
		{Red, "    └── (no koans found)"},
	}, sink.lines[2:])
}
