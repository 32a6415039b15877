package discovery

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gokoans/internal/domain"
)

// Path is the path to enlightenment: the lessons in the order they should be studied
type Path struct {
	Lessons []string `yaml:"lessons"`
}

// LoadPath reads a path file. A missing file yields a nil Path and no error.
func LoadPath(file string) (*Path, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lesson path: %w", err)
	}

	var p Path
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse lesson path %s: %w", file, err)
	}
	return &p, nil
}

// Order returns lessons in path order. Lessons the path does not name are left out;
// a named lesson that does not exist is an error.
func (p *Path) Order(lessons []domain.Lesson) ([]domain.Lesson, error) {
	byName := make(map[string]domain.Lesson, len(lessons))
	for _, l := range lessons {
		byName[l.Name] = l
	}

	ordered := make([]domain.Lesson, 0, len(p.Lessons))
	seen := make(map[string]bool, len(p.Lessons))
	for _, name := range p.Lessons {
		if seen[name] {
			continue
		}
		seen[name] = true
		l, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("lesson %q is on the path but has no tests", name)
		}
		ordered = append(ordered, l)
	}
	return ordered, nil
}
