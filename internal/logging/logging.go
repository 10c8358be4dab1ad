// Package logging builds the application logger.
//
// The terminal belongs to the TUI, so logs go to a file in the data directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileName is the log file created in the data directory.
const FileName = "storefront.log"

// New returns a JSON logger writing to dataDir/storefront.log at level.
// An empty level means info.
func New(dataDir, level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{filepath.Join(dataDir, FileName)}
	cfg.ErrorOutputPaths = []string{filepath.Join(dataDir, FileName)}
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named("storefront"), nil
}
