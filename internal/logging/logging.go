// Package logging provides the debug channel for silent failures. The
// status line contract forbids writing anything but the rendered line to
// stdout and exiting non-zero, so diagnostics go to a log file, and only
// when FACET_DEBUG is set.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a file-backed debug logger when FACET_DEBUG is set, and a
// nop logger otherwise. Logger construction itself must never fail the
// render, so errors degrade to the nop logger too.
func New() *zap.Logger {
	if os.Getenv("FACET_DEBUG") == "" {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logPath := filepath.Join(os.TempDir(), "facet-debug.log")
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
