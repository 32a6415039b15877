package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// testFuncPattern matches top-level test functions such as
// func TestAssertTruth(t *testing.T) {
var testFuncPattern = regexp.MustCompile(`(?m)^func\s+(Test\w*)\s*\(\s*\w+\s+\*testing\.T\s*\)`)

// Parser parses lesson files to extract koans
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindTestCases finds all koans in a lesson directory, in the order they are written.
// Files are read in name order, which is also the order go test runs them in.
func (p *Parser) FindTestCases(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_test.go"))
	if err != nil {
		return nil, fmt.Errorf("error listing lesson %s: %w", dir, err)
	}
	sort.Strings(files)

	var testCases []string
	seen := make(map[string]bool) // Use map to avoid duplicates
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", file, err)
		}
		for _, match := range testFuncPattern.FindAllStringSubmatch(string(content), -1) {
			name := match[1]
			if name == "TestMain" || seen[name] {
				continue
			}
			seen[name] = true
			testCases = append(testCases, name)
		}
	}
	return testCases, nil
}
