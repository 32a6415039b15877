// Package logging builds the diagnostic logger. The narration itself is console text
// written through ui.Sink; this logger only says what the tool is doing behind it.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development logger writing to stderr at Warn level. The returned level
// can be raised later, once flags have been parsed.
func New() (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)

	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, level, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, level, nil
}

// SetVerbose switches level to Debug when verbose is set, and back to Warn otherwise
func SetVerbose(level zap.AtomicLevel, verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.WarnLevel)
}
