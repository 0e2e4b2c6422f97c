// Package results manages the directory of saved evaluation files. Every
// evaluation is written as <resume stem>_result.json so repeated runs of the
// same resume overwrite their previous result.
package results

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/report"
)

const (
	// DefaultDir is used when no results directory is configured.
	DefaultDir = "results"

	resultSuffix = "_result.json"
)

// ErrInvalidName rejects result names that try to reach outside the
// results directory.
var ErrInvalidName = errors.New("invalid result name")

// Entry summarizes one saved evaluation for listings.
type Entry struct {
	File         string         `json:"file"`
	Name         string         `json:"name"`
	OverallScore int            `json:"overall_score"`
	Verdict      report.Verdict `json:"verdict"`
	EvaluatedAt  time.Time      `json:"evaluated_at"`
}

// Store reads and writes evaluation results under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the result path for a resume: the resume file name with
// its extension replaced by the result suffix, inside the store directory.
func (s *Store) PathFor(resumePath string) string {
	base := filepath.Base(resumePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.dir, stem+resultSuffix)
}

// Exists reports whether a result has already been saved for the resume.
func (s *Store) Exists(resumePath string) bool {
	_, err := os.Stat(s.PathFor(resumePath))
	return err == nil
}

// Save writes the result for a resume and returns the path it was written to.
func (s *Store) Save(resumePath string, result *report.EvaluationResult) (string, error) {
	path := s.PathFor(resumePath)
	if err := report.Write(path, result); err != nil {
		return "", err
	}
	return path, nil
}

// List returns a summary per saved result, newest first. Files that cannot
// be parsed are skipped with a warning so one corrupt file does not hide the
// rest. A missing results directory yields an empty list.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		result, err := report.Read(filepath.Join(s.dir, de.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable result file",
				zap.String("file", de.Name()), zap.Error(err))
			continue
		}
		info, err := de.Info()
		if err != nil {
			s.logger.Warn("skipping unstatable result file",
				zap.String("file", de.Name()), zap.Error(err))
			continue
		}
		entries = append(entries, Entry{
			File:         de.Name(),
			Name:         result.Name,
			OverallScore: result.OverallScore,
			Verdict:      report.MapVerdict(string(result.Verdict)),
			EvaluatedAt:  info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EvaluatedAt.After(entries[j].EvaluatedAt)
	})
	return entries, nil
}

// Load reads one saved result by file name.
func (s *Store) Load(name string) (*report.EvaluationResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return report.Read(filepath.Join(s.dir, name))
}

// Delete removes one saved result by file name.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.dir, name))
}

// validateName accepts plain file names only, keeping path traversal out of
// the results directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	if !strings.HasSuffix(name, ".json") {
		return ErrInvalidName
	}
	return nil
}
