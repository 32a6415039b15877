package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gokoans/internal/config"
	"gokoans/internal/domain"
)

func newTestStorage(t *testing.T) (*JSONStorage, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.KoansPath = t.TempDir()
	return NewJSONStorage(cfg), cfg
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	s, cfg := newTestStorage(t)

	failure := domain.FailureRecord{
		Test:  domain.Test{Name: "TestAssertTruth", Group: "about_asserts", Package: "./about_asserts"},
		Group: "about_asserts",
		Err:   "Traceback (most recent call last):\n  File \"x_test.go\", line 3, in TestAssertTruth\nboom\n",
	}
	summary := &domain.RunSummary{
		PassCount:    4,
		Failures:     []domain.FailureRecord{failure},
		FirstFailure: &failure,
		Lessons: []domain.LessonResult{
			{Lesson: domain.Lesson{Name: "about_asserts"}, Status: domain.LessonFailed, Passed: 4, Failed: 1},
			{Lesson: domain.Lesson{Name: "about_strings"}, Status: domain.LessonPending},
		},
		Duration:        "1.2s",
		DurationSeconds: 1.2,
	}

	require.NoError(t, s.Save(summary))
	assert.NotEmpty(t, summary.Timestamp)
	assert.FileExists(t, filepath.Join(cfg.GetKoansPath(), ".koans", "last-run.json"))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, summary, loaded)
	assert.Equal(t, domain.LessonFailed, loaded.LessonStatus("about_asserts"))
	assert.Equal(t, domain.LessonPending, loaded.LessonStatus("about_strings"))
	assert.Equal(t, domain.LessonPending, loaded.LessonStatus("about_nothing"))
}

func TestJSONStorage_SaveEmptyRun(t *testing.T) {
	s, cfg := newTestStorage(t)

	require.NoError(t, s.Save(&domain.RunSummary{}))

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"failures": []`)
	assert.NotContains(t, string(data), "first_failure")
}

func TestJSONStorage_LowercaseKeys(t *testing.T) {
	s, cfg := newTestStorage(t)

	lesson := domain.Lesson{Name: "about_asserts", Dir: "/home/student/koans/about_asserts", Package: "./about_asserts"}
	failure := domain.FailureRecord{
		Test:  domain.Test{Name: "TestAssertTruth", Group: "about_asserts", Package: "./about_asserts"},
		Group: "about_asserts",
	}
	require.NoError(t, s.Save(&domain.RunSummary{
		Failures: []domain.FailureRecord{failure},
		Lessons:  []domain.LessonResult{{Lesson: lesson, Status: domain.LessonFailed}},
	}))

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `"name": "TestAssertTruth"`)
	assert.Contains(t, text, `"name": "about_asserts"`)
	assert.Contains(t, text, `"dir": "/home/student/koans/about_asserts"`)
	assert.Contains(t, text, `"package": "./about_asserts"`)
	assert.NotContains(t, text, `"Name"`)
	assert.NotContains(t, text, `"Package"`)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoRun)
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	s, cfg := newTestStorage(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.GetOutputPath()), 0755))
	require.NoError(t, os.WriteFile(cfg.GetOutputPath(), []byte("{not json"), 0644))

	_, err := s.Load()
	assert.ErrorContains(t, err, "parse run summary")
}
