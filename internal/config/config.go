package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Koans settings
	KoansPath  string
	LessonFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Jobs     int
	GoBinary string

	// Narration settings
	Marker      string
	ExtraCredit string
	NoColor     bool

	// Watch settings
	Debounce time.Duration

	// Paths to ignore when scanning for lessons
	PathsToIgnore []string

	// Command flags
	Flags Flags

	markerSet bool
}

// Flags holds command-line flags
type Flags struct {
	Jobs      int
	KoansPath string
	Filter    string
	NoColor   bool
	Progress  bool
	KeepGoing bool
	Verbose   bool
	TestCases bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		KoansPath:      DefaultKoansPath,
		LessonFile:     DefaultLessonFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Jobs:           DefaultJobs,
		GoBinary:       DefaultGoBinary,
		Marker:         DefaultMarker,
		ExtraCredit:    DefaultExtraCredit,
		Debounce:       DefaultDebounce,
		Flags:          Flags{Jobs: DefaultJobs},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, applies the environment and then the flags
func Load(envFile string, flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.LoadEnv(envFile); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadEnv reads KOANS_* settings from envFile (if it exists) and the process environment.
// Variables already set in the environment win over the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv("KOANS_PATH"); v != "" {
		c.KoansPath = v
	}
	if v := os.Getenv("KOANS_MARKER"); v != "" {
		c.Marker = v
		c.markerSet = true
	}
	if v := os.Getenv("KOANS_EXTRA_CREDIT"); v != "" {
		c.ExtraCredit = v
	}
	if v := os.Getenv("KOANS_GO"); v != "" {
		c.GoBinary = v
	}
	if v := os.Getenv("KOANS_NO_COLOR"); v != "" {
		noColor, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KOANS_NO_COLOR %q: %w", v, err)
		}
		c.NoColor = noColor
	}
	if v := os.Getenv("KOANS_JOBS"); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil || jobs < 1 {
			return fmt.Errorf("invalid KOANS_JOBS %q", v)
		}
		c.Jobs = jobs
	}
	return nil
}

// ApplyFlags stores flags and lets the ones that were set override the config
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Jobs > 0 {
		c.Jobs = flags.Jobs
	}
	if flags.KoansPath != "" {
		c.KoansPath = flags.KoansPath
	}
	if flags.NoColor {
		c.NoColor = true
	}
}

// GetKoansPath returns the absolute koans path, falling back to the configured path
func (c *Config) GetKoansPath() string {
	if abs, err := filepath.Abs(c.KoansPath); err == nil {
		return abs
	}
	return c.KoansPath
}

// GetMarker returns the path segment that marks the student's files in a stack trace.
// Unless a marker was configured, that is the name of the koans directory itself.
func (c *Config) GetMarker() string {
	if c.markerSet || c.Marker != DefaultMarker {
		return c.Marker
	}
	return filepath.Base(c.GetKoansPath())
}

// GetLessonFile returns the path of the lesson ordering file
func (c *Config) GetLessonFile() string {
	if filepath.IsAbs(c.LessonFile) {
		return c.LessonFile
	}
	return filepath.Join(c.GetKoansPath(), c.LessonFile)
}

// GetOutputPath returns the full path to the stored last run (under the koans path so
// run, list and review always use the same file regardless of cwd).
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.GetKoansPath(), c.OutputJSONDir, c.OutputJSONFile)
}
