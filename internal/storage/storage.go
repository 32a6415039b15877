package storage

import (
	"gokoans/internal/config"
	"gokoans/internal/domain"
)

// Storage persists and loads the last run (read back by list and review).
type Storage interface {
	Save(summary *domain.RunSummary) error
	Load() (*domain.RunSummary, error)
}

// JSONStorage stores the last run in a JSON file under the koans path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
