package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// TracebackHeader opens every failure text handed to the narrator
const TracebackHeader = "Traceback (most recent call last):"

var (
	// about_asserts_test.go:12: message, or about_asserts/x_test.go:12:5: message from the compiler
	locationLine = regexp.MustCompile(`^\s*(?:\./)?([^\s:]+\.go):(\d+)(?::\d+)?:(?:\s(.*))?$`)
	// \t/abs/path/file.go:123 +0x1d
	stackFrameLine = regexp.MustCompile(`^\t(\S+\.go):(\d+)`)
	panicLine      = regexp.MustCompile(`^\s*panic: (.*?)(?: \[recovered\])?$`)
	goroutineLine  = regexp.MustCompile(`^goroutine \d+ \[.*\]:$`)
	callArgs       = regexp.MustCompile(`\([^()]*\)$`)
	// testify labels its report fields, e.g. "Error Trace:", "Error:", "Messages:"
	testifyLabel = regexp.MustCompile(`^[A-Z][A-Za-z ]*:`)
	noiseLine    = regexp.MustCompile(`^(?:=== (?:RUN|PAUSE|CONT|NAME)|\s*--- (?:FAIL|PASS|SKIP):|(?:FAIL|PASS|ok)(?:\s|$)|exit status \d+$|# )`)
)

// Frame is a source location that took part in a failure
type Frame struct {
	File string
	Line int
	Func string
}

// Traceback is a failure reshaped into frames and a message
type Traceback struct {
	Frames  []Frame
	Message []string // First line of each message is unindented, continuations are indented
}

// SourceLookup resolves the files named in frames and reads their lines
type SourceLookup interface {
	Resolve(file string) string
	Line(file string, n int) string
}

// ParseFailure reads the output of a failed test (t.Error locations, panics and compiler
// errors) into a Traceback. Only the panicking goroutine's frames are kept.
func (p *GoTestParser) ParseFailure(test string, output []string) Traceback {
	var tb Traceback
	var panicFrames []Frame
	var pendingFunc string
	inStack, stackDone, inLocation, inTrace := false, false, false, false

	addMessage := func(msg string) {
		if n := len(tb.Message); n > 0 && tb.Message[n-1] == msg {
			return
		}
		tb.Message = append(tb.Message, msg)
	}

	for _, line := range splitOutput(output) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if inStack {
			switch {
			case stackFrameLine.MatchString(line):
				if !stackDone {
					m := stackFrameLine.FindStringSubmatch(line)
					n, _ := strconv.Atoi(m[2])
					panicFrames = append(panicFrames, Frame{File: m[1], Line: n, Func: pendingFunc})
				}
			case strings.HasPrefix(line, "created by "), goroutineLine.MatchString(line):
				stackDone = true
			case noiseLine.MatchString(line):
				inStack = false
			default:
				pendingFunc = callArgs.ReplaceAllString(line, "")
			}
			continue
		}

		switch {
		case noiseLine.MatchString(line):
			inLocation = false
		case goroutineLine.MatchString(line):
			inStack = !stackDone
			inLocation = false
		case panicLine.MatchString(line):
			addMessage("panic: " + panicLine.FindStringSubmatch(line)[1])
			inLocation = false
		case locationLine.MatchString(line):
			m := locationLine.FindStringSubmatch(line)
			n, _ := strconv.Atoi(m[2])
			tb.Frames = append(tb.Frames, Frame{File: m[1], Line: n, Func: test})
			if msg := strings.TrimSpace(m[3]); msg != "" {
				addMessage(msg)
			}
			inLocation, inTrace = true, false
		case inLocation && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")):
			// The trace repeats the frames already collected
			text := strings.TrimSpace(line)
			if strings.HasPrefix(text, "Error Trace:") {
				inTrace = true
				continue
			}
			if inTrace && !testifyLabel.MatchString(text) {
				continue
			}
			inTrace = false
			addMessage("  " + text)
		default:
			addMessage(strings.TrimSpace(line))
			inLocation = false
		}
	}

	tb.Frames = append(tb.Frames, outermostFirst(panicFrames, test)...)
	if len(tb.Message) == 0 {
		tb.Message = []string{fmt.Sprintf("%s failed", test)}
	}
	// A message that opens with a continuation would be read as part of the frames
	tb.Message[0] = strings.TrimSpace(tb.Message[0])
	return tb
}

// outermostFirst reverses goroutine frames and drops the testing package's callers above
// the test function itself.
func outermostFirst(frames []Frame, test string) []Frame {
	out := make([]Frame, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		out = append(out, frames[i])
	}
	for i, f := range out {
		if f.Func == test || strings.HasSuffix(f.Func, "."+test) {
			return out[i:]
		}
	}
	return out
}

// Format renders the traceback in the text form the narrator scrapes
func (tb Traceback) Format(src SourceLookup) string {
	var b strings.Builder
	b.WriteString(TracebackHeader + "\n")
	for _, f := range tb.Frames {
		path := f.File
		if src != nil {
			path = src.Resolve(f.File)
		}
		fmt.Fprintf(&b, "  File \"%s\", line %d, in %s\n", path, f.Line, f.Func)
		if src == nil {
			continue
		}
		if code := src.Line(path, f.Line); code != "" {
			b.WriteString("    " + code + "\n")
		}
	}
	for _, m := range tb.Message {
		b.WriteString(m + "\n")
	}
	return b.String()
}

func splitOutput(output []string) []string {
	joined := strings.ReplaceAll(strings.Join(output, ""), "\r\n", "\n")
	return strings.Split(joined, "\n")
}

// SourceFiles reads source lines for frames, resolving relative paths against a list of
// directories. Files are read at most once.
type SourceFiles struct {
	dirs  []string
	cache map[string][]string
}

// NewSourceFiles creates a SourceFiles that resolves relative paths against dirs, in order
func NewSourceFiles(dirs ...string) *SourceFiles {
	return &SourceFiles{dirs: dirs, cache: make(map[string][]string)}
}

// Resolve returns the first existing candidate for file, or file joined to the first directory
func (s *SourceFiles) Resolve(file string) string {
	if filepath.IsAbs(file) || len(s.dirs) == 0 {
		return file
	}
	for _, dir := range s.dirs {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(s.dirs[0], file)
}

// Line returns line n of file without surrounding whitespace, or "" when it cannot be read
func (s *SourceFiles) Line(file string, n int) string {
	lines, ok := s.cache[file]
	if !ok {
		data, err := os.ReadFile(file)
		if err == nil {
			lines = strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		}
		s.cache[file] = lines
	}
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[n-1])
}
