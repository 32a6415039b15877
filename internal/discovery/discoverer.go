package discovery

import (
	"go.uber.org/zap"

	"gokoans/internal/config"
	"gokoans/internal/domain"
)

// Discoverer finds the lessons of a run: scanned from disk, ordered by the path file
// when there is one, then narrowed by the name filter.
type Discoverer struct {
	config  *config.Config
	scanner *Scanner
	filter  *Filter
	logger  *zap.Logger
}

// NewDiscoverer creates a new Discoverer
func NewDiscoverer(cfg *config.Config, scanner *Scanner, filter *Filter, logger *zap.Logger) *Discoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{config: cfg, scanner: scanner, filter: filter, logger: logger}
}

// Lessons returns the lessons to run, in order
func (d *Discoverer) Lessons() ([]domain.Lesson, error) {
	root := d.config.GetKoansPath()
	lessons, err := d.scanner.Scan(root)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("Scanned lessons", zap.String("root", root), zap.Int("lessons", len(lessons)))

	path, err := LoadPath(d.config.GetLessonFile())
	if err != nil {
		return nil, err
	}
	if path != nil {
		scanned := len(lessons)
		if lessons, err = path.Order(lessons); err != nil {
			return nil, err
		}
		d.logger.Debug("Ordered lessons by path",
			zap.String("file", d.config.GetLessonFile()),
			zap.Int("scanned", scanned),
			zap.Int("on_path", len(lessons)))
	}

	return d.filter.FilterByName(lessons, d.config.Flags.Filter), nil
}
