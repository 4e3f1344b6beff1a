// Package logging builds the zap loggers used across the tool.
package logging

import (
	"go.uber.org/zap"
)

// NewRunLogger builds a logger that writes to stderr and, when logPath is
// non-empty, to the given log file. The file records the full run: paths,
// encoding fallbacks, per-file errors, and completion.
func NewRunLogger(logPath string, debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.OutputPaths = []string{"stderr"}
	if logPath != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logPath)
	}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.InitialFields = map[string]interface{}{
		"appName": "codekeep",
	}

	return cfg.Build()
}
