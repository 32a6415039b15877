// Package parser reads what `go test -json` prints: the event stream, and the output of
// failed tests, which it reshapes into tracebacks.
package parser

// Parser turns the output of a failed test into a Traceback
type Parser interface {
	ParseFailure(test string, output []string) Traceback
}

// GoTestParser parses the output of the go test engine
type GoTestParser struct{}

var _ Parser = (*GoTestParser)(nil)

// NewGoTestParser creates a new GoTestParser
func NewGoTestParser() *GoTestParser {
	return &GoTestParser{}
}
