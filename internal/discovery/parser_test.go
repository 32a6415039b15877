package discovery

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser()
	tmpDir := t.TempDir()

	writeFiles(t, tmpDir, map[string]string{
		"about_asserts_test.go": `package about_asserts

import "testing"

func TestMain(m *testing.M) {
	m.Run()
}

func TestAssertTruth(t *testing.T) {
	// koan
}

func TestAssertEquality(tt *testing.T) {
	// koan
}

func helperMethod(t *testing.T) {
	// not a koan
}

func BenchmarkNothing(b *testing.B) {}
`,
		"about_more_test.go": `package about_asserts

import "testing"

func TestZen(t *testing.T) {}
`,
	})

	t.Run("finds koans in file and source order", func(t *testing.T) {
		testCases, err := parser.FindTestCases(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"TestAssertTruth", "TestAssertEquality", "TestZen"}
		if !reflect.DeepEqual(testCases, expected) {
			t.Errorf("expected %v, got %v", expected, testCases)
		}
	})

	t.Run("returns nothing for a directory without tests", func(t *testing.T) {
		testCases, err := parser.FindTestCases(filepath.Join(tmpDir, "missing"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(testCases) != 0 {
			t.Errorf("expected no test cases, got %v", testCases)
		}
	})
}
