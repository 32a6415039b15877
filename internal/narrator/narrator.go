// Package narrator turns the results of a koans run into the sensei's story: it follows
// tests as they start, pass and fail, picks the one failure the student should look at
// next, and prints it with the part of the stack trace that lives in the student's koans.
package narrator

import (
	"fmt"
	"sort"

	"gokoans/internal/domain"
	"gokoans/internal/ui"
)

// DefaultMarker is the directory name that identifies the student's own files in a stack trace
const DefaultMarker = "koans"

// DefaultExtraCredit is where the closing banner points once every koan passes
const DefaultExtraCredit = "about_extra_credit_task"

// Listener receives lifecycle callbacks from a test engine
type Listener interface {
	TestStarted(test domain.Test)
	TestSucceeded(test domain.Test)
	TestFailed(test domain.Test, err string)
}

// Options tune the narrator's text
type Options struct {
	// Marker is the path segment that identifies the student's files; DefaultMarker if empty
	Marker string
	// ExtraCredit is named in the closing banner; DefaultExtraCredit if empty
	ExtraCredit string
}

// Narrator accumulates the results of one run and reports on it.
// It is not safe for concurrent use and must not be reused across runs.
type Narrator struct {
	sink        ui.Sink
	marker      string
	extraCredit string

	prevGroup    string
	hasPrevGroup bool
	passCount    int
	failures     []domain.FailureRecord
}

// New creates a Narrator writing to sink
func New(sink ui.Sink, opts Options) *Narrator {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.ExtraCredit == "" {
		opts.ExtraCredit = DefaultExtraCredit
	}
	return &Narrator{
		sink:        sink,
		marker:      opts.Marker,
		extraCredit: opts.ExtraCredit,
	}
}

// TestStarted announces a new lesson, as long as nothing has failed yet
func (n *Narrator) TestStarted(test domain.Test) {
	if n.hasPrevGroup && test.Group == n.prevGroup {
		return
	}
	n.prevGroup = test.Group
	n.hasPrevGroup = true
	if len(n.failures) == 0 {
		n.sink.WriteLine(ui.Plain, "")
		n.sink.WriteLine(ui.Reset, fmt.Sprintf("Thinking %s", test.Group))
	}
}

// TestSucceeded counts and announces a pass unless an earlier lesson is already failing
func (n *Narrator) TestSucceeded(test domain.Test) {
	if !n.passesCount() {
		return
	}
	n.sink.WriteLine(ui.Green, fmt.Sprintf("  %s has expanded your awareness.", test.Name))
	n.passCount++
}

// TestFailed records a failure. Errors are recorded the same way so that the two keep
// a single execution order.
func (n *Narrator) TestFailed(test domain.Test, err string) {
	n.failures = append(n.failures, domain.FailureRecord{
		Test:  test,
		Group: test.Group,
		Err:   err,
		Seq:   len(n.failures),
	})
}

// passesCount reports whether a success still counts: it does unless a failure is
// stored for a group other than the current one.
func (n *Narrator) passesCount() bool {
	for _, f := range n.failures {
		if f.Group != n.prevGroup {
			return false
		}
	}
	return true
}

// PassCount returns the number of successes that counted
func (n *Narrator) PassCount() int {
	return n.passCount
}

// Failures returns a copy of the recorded failures in execution order
func (n *Narrator) Failures() []domain.FailureRecord {
	return append([]domain.FailureRecord(nil), n.failures...)
}

type rankedFailure struct {
	line   int
	record domain.FailureRecord
}

// sortFailures returns the failures of group that report a line number, lowest line first.
func (n *Narrator) sortFailures(group string) []rankedFailure {
	var table []rankedFailure
	for _, f := range n.failures {
		if f.Group != group {
			continue
		}
		if line, ok := LineNumber(f.Err); ok {
			table = append(table, rankedFailure{line: line, record: f})
		}
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].line != table[j].line {
			return table[i].line < table[j].line
		}
		return table[i].record.Seq < table[j].record.Seq
	})
	return table
}

// FirstFailure picks the failure the student should meditate on: within the lesson of
// the earliest failure, the one reported at the lowest line. ok is false when nothing
// failed or no failure of that lesson reports a line.
func (n *Narrator) FirstFailure() (domain.FailureRecord, bool) {
	if len(n.failures) == 0 {
		return domain.FailureRecord{}, false
	}
	table := n.sortFailures(n.failures[0].Group)
	if len(table) == 0 {
		return domain.FailureRecord{}, false
	}
	return table[0].record, true
}

// Learn writes the final report for the run
func (n *Narrator) Learn() {
	n.errorReport()

	n.sink.WriteLine(ui.Plain, "")
	n.sink.WriteLine(ui.Plain, "")
	style, text := n.SaySomethingZenlike()
	n.sink.WriteLine(style, text)

	if len(n.failures) > 0 {
		return
	}
	n.sink.WriteLine(ui.Plain, "\n**************************************************")
	n.sink.WriteLine(ui.Plain, "That was the last one, well done!")
	n.sink.WriteLine(ui.Plain, fmt.Sprintf("\nIf you want more, take a look at %s", n.extraCredit))
}

func (n *Narrator) errorReport() {
	problem, ok := n.FirstFailure()
	if !ok {
		return
	}
	n.sink.WriteLine(ui.Red, fmt.Sprintf("  %s has damaged your karma.", problem.Test.Name))

	n.sink.WriteLine(ui.Plain, "")
	n.sink.WriteLine(ui.Reset, "You have not yet reached enlightenment ...")
	n.sink.WriteLine(ui.Red, ScrapeAssertionError(problem.Err))
	n.sink.WriteLine(ui.Plain, "")
	n.sink.WriteLine(ui.Reset, "Please meditate on the following code:")
	n.sink.WriteLine(ui.Yellow, ScrapeInterestingStackDump(problem.Err, n.marker))
}

// SaySomethingZenlike returns the aphorism for the current pass count, or the closing
// line when nothing failed.
func (n *Narrator) SaySomethingZenlike() (ui.Style, string) {
	if len(n.failures) == 0 {
		return ui.Blue, Closing
	}
	return ui.Cyan, Aphorism(n.passCount % AphorismTurns)
}

// Summary returns what the run recorded, for persistence
func (n *Narrator) Summary() domain.RunSummary {
	s := domain.RunSummary{
		PassCount: n.passCount,
		Failures:  n.Failures(),
	}
	if first, ok := n.FirstFailure(); ok {
		s.FirstFailure = &first
	}
	return s
}
