package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gokoans/internal/domain"
)

// ErrNoRun is returned by Load when nothing has been run yet
var ErrNoRun = errors.New("no recorded run; meditate with `koans run` first")

// Save writes summary to the configured JSON output file. A missing timestamp is set to now.
func (s *JSONStorage) Save(summary *domain.RunSummary) error {
	if summary.Timestamp == "" {
		summary.Timestamp = time.Now().Format(time.RFC3339)
	}
	if summary.Failures == nil {
		summary.Failures = []domain.FailureRecord{}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run summary: %w", err)
	}
	return nil
}

// Load reads the last run from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunSummary, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoRun
		}
		return nil, fmt.Errorf("read run summary: %w", err)
	}
	var summary domain.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse run summary %s: %w", path, err)
	}
	return &summary, nil
}
