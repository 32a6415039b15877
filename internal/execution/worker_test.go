package execution

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gokoans/internal/config"
	"gokoans/internal/domain"
	"gokoans/internal/parser"
)

type fakeRunner struct {
	mu      sync.Mutex
	streams map[string]string
	errs    map[string]error
	ran     []string
}

func (f *fakeRunner) Run(ctx context.Context, lesson domain.Lesson) (LessonRun, error) {
	f.mu.Lock()
	f.ran = append(f.ran, lesson.Name)
	f.mu.Unlock()
	if err := f.errs[lesson.Name]; err != nil {
		return LessonRun{}, err
	}
	events, err := parser.DecodeEvents(strings.NewReader(f.streams[lesson.Name]))
	if err != nil {
		return LessonRun{}, err
	}
	return LessonRun{Lesson: lesson, Events: events}, nil
}

type fakeProgress struct {
	updates  [][3]int
	finished bool
}

func (p *fakeProgress) Update(done, passed, failed int) {
	p.updates = append(p.updates, [3]int{done, passed, failed})
}

func (p *fakeProgress) Finish() { p.finished = true }

func passing(tests ...string) string {
	var b strings.Builder
	for _, name := range tests {
		b.WriteString(`{"Action":"run","Test":"` + name + `"}` + "\n")
		b.WriteString(`{"Action":"pass","Test":"` + name + `"}` + "\n")
	}
	b.WriteString(`{"Action":"pass"}` + "\n")
	return b.String()
}

func failing(name string, line string) string {
	return `{"Action":"run","Test":"` + name + `"}` + "\n" +
		`{"Action":"output","Test":"` + name + `","Output":"    x_test.go:` + line + `: nope\n"}` + "\n" +
		`{"Action":"fail","Test":"` + name + `"}` + "\n" +
		`{"Action":"fail"}` + "\n"
}

func lessons(names ...string) []domain.Lesson {
	var out []domain.Lesson
	for _, n := range names {
		out = append(out, domain.Lesson{Name: n, Dir: "/koans/" + n, Package: "./" + n})
	}
	return out
}

func newPool(t *testing.T, runner LessonRunner, keepGoing bool) *WorkerPool {
	t.Helper()
	cfg := config.New()
	cfg.KoansPath = t.TempDir()
	cfg.Jobs = 3
	cfg.Flags.KeepGoing = keepGoing
	return NewWorkerPool(cfg, runner, parser.NewGoTestParser(), nil)
}

func TestWorkerPool_ReplaysInPathOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := &fakeRunner{streams: map[string]string{
		"about_a": passing("TestA1", "TestA2"),
		"about_b": passing("TestB1"),
		"about_c": passing("TestC1"),
	}}
	pool := newPool(t, runner, false)
	progress := &fakeProgress{}
	pool.SetProgress(progress)
	listener := &recordingListener{}

	results, _, err := pool.Execute(context.Background(), lessons("about_a", "about_b", "about_c"), listener)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start about_a.TestA1", "pass about_a.TestA1",
		"start about_a.TestA2", "pass about_a.TestA2",
		"start about_b.TestB1", "pass about_b.TestB1",
		"start about_c.TestC1", "pass about_c.TestC1",
	}, listener.summary())
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, domain.LessonPassed, r.Status)
	}
	assert.Equal(t, [][3]int{{1, 1, 0}, {2, 2, 0}, {3, 3, 0}}, progress.updates)
	assert.True(t, progress.finished)
}

func TestWorkerPool_StopsAfterFailingLesson(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := &fakeRunner{streams: map[string]string{
		"about_a": passing("TestA1"),
		"about_b": failing("TestB1", "7"),
		"about_c": passing("TestC1"),
		"about_d": passing("TestD1"),
	}}
	pool := newPool(t, runner, false)
	listener := &recordingListener{}

	results, _, err := pool.Execute(context.Background(), lessons("about_a", "about_b", "about_c", "about_d"), listener)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start about_a.TestA1", "pass about_a.TestA1",
		"start about_b.TestB1", "fail about_b.TestB1",
	}, listener.summary())
	require.Len(t, results, 4)
	assert.Equal(t, domain.LessonFailed, results[1].Status)
	assert.Equal(t, domain.LessonPending, results[2].Status)
	assert.Equal(t, domain.LessonPending, results[3].Status)
}

func TestWorkerPool_KeepGoing(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := &fakeRunner{streams: map[string]string{
		"about_a": failing("TestA1", "3"),
		"about_b": passing("TestB1"),
	}}
	pool := newPool(t, runner, true)
	listener := &recordingListener{}

	results, _, err := pool.Execute(context.Background(), lessons("about_a", "about_b"), listener)
	require.NoError(t, err)

	assert.Len(t, listener.calls, 4)
	assert.Equal(t, domain.LessonFailed, results[0].Status)
	assert.Equal(t, domain.LessonPassed, results[1].Status)
}

func TestWorkerPool_RunnerError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("go: command not found")
	runner := &fakeRunner{
		streams: map[string]string{"about_a": passing("TestA1")},
		errs:    map[string]error{"about_b": boom},
	}
	pool := newPool(t, runner, false)

	results, _, err := pool.Execute(context.Background(), lessons("about_a", "about_b", "about_c"), &recordingListener{})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, results, 1)
}

func TestWorkerPool_NoLessons(t *testing.T) {
	pool := newPool(t, &fakeRunner{}, false)
	results, duration, err := pool.Execute(context.Background(), nil, &recordingListener{})
	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, duration)
}
