package execution

import (
	"strings"

	"gokoans/internal/domain"
	"gokoans/internal/narrator"
	"gokoans/internal/parser"
)

// Replay feeds a finished lesson's events to listener in the order go test reported them.
// Sub-tests are folded into their top-level test. A package that fails without a failing
// test (it did not build, or TestMain failed) is reported as one failing test.
func Replay(run LessonRun, listener narrator.Listener, p parser.Parser, src parser.SourceLookup) domain.LessonResult {
	result := domain.LessonResult{Lesson: run.Lesson, Duration: run.Duration}
	outputs := make(map[string][]string)
	var packageOutput []string
	packageFailed := false

	test := func(name string) domain.Test {
		return domain.Test{Name: name, Group: run.Lesson.Name, Package: run.Lesson.Package}
	}

	for _, ev := range run.Events {
		if ev.Test == "" {
			switch ev.Action {
			case "output", "build-output":
				packageOutput = append(packageOutput, ev.Output)
			case "fail", "build-fail":
				packageFailed = true
			}
			continue
		}

		top := ev.TopLevel()
		isTop := top == ev.Test
		switch ev.Action {
		case "run":
			if isTop {
				listener.TestStarted(test(top))
			}
		case "output":
			outputs[top] = append(outputs[top], ev.Output)
		case "pass":
			if isTop {
				listener.TestSucceeded(test(top))
				result.Passed++
			}
		case "fail":
			if isTop {
				listener.TestFailed(test(top), p.ParseFailure(top, outputs[top]).Format(src))
				result.Failed++
			}
		}
	}

	// Without any JSON the toolchain could not even start the package; stderr says why
	if len(run.Events) == 0 && strings.TrimSpace(run.Stderr) != "" {
		packageFailed = true
	}

	if packageFailed && result.Failed == 0 {
		name := run.Lesson.Name + " (build)"
		if run.Stderr != "" {
			packageOutput = append(packageOutput, run.Stderr)
		}
		listener.TestStarted(test(name))
		listener.TestFailed(test(name), p.ParseFailure(name, packageOutput).Format(src))
		result.Failed++
	}

	result.Status = domain.LessonPassed
	if result.Failed > 0 || packageFailed {
		result.Status = domain.LessonFailed
	}
	return result
}
