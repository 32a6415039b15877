package narrator

import (
	"regexp"
	"strconv"
	"strings"
)

// sep joins a code line to the frame line above it while frames are being filtered
const sep = "@@@@@SEP@@@@@"

var (
	lineNumberPattern = regexp.MustCompile(` line (\d+)`)
	// headingPattern matches lines that are not indented continuation lines
	headingPattern = regexp.MustCompile(`^[^^ ].*$`)
	filePattern    = regexp.MustCompile(`^  File .*$`)
	codePattern    = regexp.MustCompile(`^    \w.*$`)
)

// markerPattern returns a pattern matching lines that reference a path segment named marker,
// whichever separator or case the path uses.
func markerPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^.*[/\\]` + regexp.QuoteMeta(marker) + `[/\\].*$`)
}

// LineNumber returns the first number reported as "line <N>" in err.
func LineNumber(err string) (int, bool) {
	m := lineNumberPattern.FindStringSubmatch(err)
	if m == nil {
		return 0, false
	}
	n, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0, false
	}
	return n, true
}

// ScrapeAssertionError drops the traceback preamble from err and returns the assertion
// message that follows it, each line indented by two spaces.
func ScrapeAssertionError(err string) string {
	if err == "" {
		return ""
	}

	var b strings.Builder
	count := 0
	for _, line := range splitLines(err) {
		if headingPattern.MatchString(line) {
			count++
		}
		if count > 1 {
			if t := strings.TrimSpace(line); t != "" {
				b.WriteString("  " + t)
			}
			b.WriteString("\n")
		}
	}
	return strings.Trim(b.String(), "\n")
}

// ScrapeInterestingStackDump keeps only the frames of err that live under a directory
// named marker, each frame followed by its source line.
func ScrapeInterestingStackDump(err, marker string) string {
	if err == "" {
		return ""
	}

	var scrape strings.Builder
	for _, line := range splitLines(err) {
		if filePattern.MatchString(line) {
			scrape.WriteString("\n" + line)
		}
		if codePattern.MatchString(line) {
			scrape.WriteString(sep + line)
		}
	}

	inMarker := markerPattern(marker)
	var kept strings.Builder
	for _, line := range splitLines(scrape.String()) {
		if inMarker.MatchString(line) {
			kept.WriteString(line + "\n")
		}
	}
	return strings.Trim(strings.ReplaceAll(kept.String(), sep, "\n"), "\n")
}

// splitLines splits on any line ending and drops the empty string after a final newline.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
