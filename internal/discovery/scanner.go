package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gokoans/internal/domain"
)

// Scanner scans for lesson packages in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds every directory under root that holds at least one _test.go file.
// Lessons are returned sorted by their path relative to root.
func (s *Scanner) Scan(root string) ([]domain.Lesson, error) {
	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("koans path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("koans path is not a directory: %s", root)
	}

	seen := make(map[string]bool)
	var dirs []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(d.Name(), "_test.go") {
			dir := filepath.Dir(path)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(dirs)
	lessons := make([]domain.Lesson, 0, len(dirs))
	for _, dir := range dirs {
		lessons = append(lessons, newLesson(root, dir))
	}
	return lessons, nil
}

func newLesson(root, dir string) domain.Lesson {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = dir
	}
	pkg := "./" + filepath.ToSlash(rel)
	if rel == "." {
		pkg = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return domain.Lesson{
		Name:    filepath.Base(abs),
		Dir:     abs,
		Package: pkg,
	}
}
