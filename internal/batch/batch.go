// Package batch sweeps a directory of resumes through the evaluation
// pipeline: discover candidate files, narrow them with filters, then
// evaluate what is left one file at a time.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Filter is a single file-selection step applied before a sweep.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(files []string) ([]string, Step, error)
}

// Step describes the result of executing one filter.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Discover lists the regular files in dir, sorted by name. Hidden files are
// skipped. Type filtering is left to the filters.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resume directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Run executes the filters sequentially and returns the files that survive
// all of them. Each executed filter logs its step counts.
func Run(logger *zap.Logger, filters []Filter, files []string) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, filter := range filters {
		if !filter.IsEnabled() {
			logger.Info("filter disabled", zap.String("name", filter.Name()))
			continue
		}

		next, info, err := filter.Apply(files)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filter.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", filter.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		files = next
	}

	return files, nil
}
