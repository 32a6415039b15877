package parser

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// TestEvent is one line of `go test -json` output
type TestEvent struct {
	Time       string  `json:"Time"`
	Action     string  `json:"Action"`
	Package    string  `json:"Package"`
	ImportPath string  `json:"ImportPath"`
	Test       string  `json:"Test"`
	Output     string  `json:"Output"`
	Elapsed    float64 `json:"Elapsed"`
}

// TopLevel returns the name of the top-level test a (sub)test belongs to
func (e TestEvent) TopLevel() string {
	if i := strings.IndexByte(e.Test, '/'); i >= 0 {
		return e.Test[:i]
	}
	return e.Test
}

// DecodeEvents reads a `go test -json` stream. Lines that are not JSON are kept as
// package-level output so that nothing the toolchain prints is lost.
func DecodeEvents(r io.Reader) ([]TestEvent, error) {
	var events []TestEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var ev TestEvent
		if !strings.HasPrefix(line, "{") || json.Unmarshal([]byte(line), &ev) != nil {
			events = append(events, TestEvent{Action: "output", Output: line + "\n"})
			continue
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}
