package discovery

import (
	"path/filepath"
	"strings"

	"gokoans/internal/domain"
)

// Filter filters lessons by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters lessons by name pattern using wildcard matching
// Supports patterns like "about_*" or "*string*"
func (f *Filter) FilterByName(lessons []domain.Lesson, pattern string) []domain.Lesson {
	if pattern == "" {
		return lessons
	}

	var filtered []domain.Lesson

	for _, lesson := range lessons {
		if f.matches(lesson.Name, pattern) {
			filtered = append(filtered, lesson)
		}
	}

	return filtered
}

func (f *Filter) matches(name, pattern string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	matched, err := filepath.Match(pattern, name)
	if err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible match where every non-empty part must appear
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
