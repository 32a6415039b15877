package narrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineNumber(t *testing.T) {
	tests := []struct {
		name   string
		err    string
		line   int
		wantOK bool
	}{
		{name: "first match wins", err: "  File \"a.go\", line 42, in X\n  File \"b.go\", line 7, in Y", line: 42, wantOK: true},
		{name: "no line", err: "Error: boom", wantOK: false},
		{name: "empty", err: "", wantOK: false},
		{name: "needs a leading space", err: "deadline 12", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := LineNumber(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestScrapeAssertionError(t *testing.T) {
	tests := []struct {
		name     string
		err      string
		expected string
	}{
		{
			name:     "empty",
			err:      "",
			expected: "",
		},
		{
			name:     "header and two body lines",
			err:      "Traceback (most recent call last):\nError: Expected 1\nbut got 2\n\n",
			expected: "  Error: Expected 1\n  but got 2",
		},
		{
			name: "frames are skipped, continuation lines are kept",
			err: "Traceback (most recent call last):\n" +
				"  File \"/src/koans/about_asserts/about_asserts_test.go\", line 12, in TestA\n" +
				"    assert.True(t, false)\n" +
				"Error: Should be true   \n" +
				"  Messages: This should be true\n",
			expected: "  Error: Should be true\n  Messages: This should be true",
		},
		{
			name:     "only a header",
			err:      "Traceback (most recent call last):\n  File \"x.go\", line 1, in X\n",
			expected: "",
		},
		{
			name:     "caret lines do not start the message",
			err:      "Traceback:\n^^^ here\nError: boom",
			expected: "  Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScrapeAssertionError(tt.err))
		})
	}
}

func TestScrapeInterestingStackDump(t *testing.T) {
	mixed := "Traceback (most recent call last):\n" +
		"  File \"/usr/local/go/src/testing/testing.go\", line 1595, in testing.tRunner\n" +
		"    fn(t)\n" +
		"  File \"/home/student/koans/about_asserts/about_asserts_test.go\", line 12, in TestA\n" +
		"    assert.True(t, false)\n" +
		"  File \"/usr/local/go/src/runtime/panic.go\", line 770, in panic\n" +
		"  File \"C:\\Users\\student\\Koans\\about_maps\\about_maps_test.go\", line 30, in helper\n" +
		"    lookup(m)\n" +
		"Error: boom\n"

	tests := []struct {
		name     string
		err      string
		marker   string
		expected string
	}{
		{name: "empty", err: "", marker: "koans", expected: ""},
		{
			name:   "keeps koan frames in order with their code",
			err:    mixed,
			marker: "koans",
			expected: "  File \"/home/student/koans/about_asserts/about_asserts_test.go\", line 12, in TestA\n" +
				"    assert.True(t, false)\n" +
				"  File \"C:\\Users\\student\\Koans\\about_maps\\about_maps_test.go\", line 30, in helper\n" +
				"    lookup(m)",
		},
		{
			name: "single letter receivers and short statements",
			err: "Traceback (most recent call last):\n" +
				"  File \"/home/student/koans/about_asserts/about_asserts_test.go\", line 12, in TestA\n" +
				"    t.Errorf(\"got %d\", x)\n" +
				"  File \"/home/student/koans/about_asserts/about_asserts_test.go\", line 14, in TestA\n" +
				"    x := 1\n" +
				"got 2\n",
			marker: "koans",
			expected: "  File \"/home/student/koans/about_asserts/about_asserts_test.go\", line 12, in TestA\n" +
				"    t.Errorf(\"got %d\", x)\n" +
				"  File \"/home/student/koans/about_asserts/about_asserts_test.go\", line 14, in TestA\n" +
				"    x := 1",
		},
		{name: "no koan frames", err: mixed, marker: "lessons", expected: ""},
		{name: "no frames at all", err: "Error: boom", marker: "koans", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScrapeInterestingStackDump(tt.err, tt.marker))
		})
	}
}

func TestAphorism(t *testing.T) {
	assert.Equal(t, "Beautiful is better than ugly.", Aphorism(0))
	assert.Equal(t, "Explicit is better than implicit.", Aphorism(1))
	assert.Equal(t, "Explicit is better than implicit.", Aphorism(2))
	assert.Equal(t, "Simple is better than complex.", Aphorism(3))
	assert.Equal(t, "If the implementation is easy to explain, it may be a good idea.", Aphorism(34))
	assert.Equal(t, "Namespaces are one honking great idea -- let's do more of those!", Aphorism(35))
	assert.Equal(t, "Namespaces are one honking great idea -- let's do more of those!", Aphorism(36))
	assert.Equal(t, Aphorism(0), Aphorism(AphorismTurns))
}
