package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write persists the result as a single 2-space-indented JSON document at
// path, creating the parent directory when needed. Writes replace the whole
// file; for concurrent writers to the same path the last one wins.
func Write(path string, result *EvaluationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}

// Read loads a stored result back from path.
func Read(path string) (*EvaluationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}

	var result EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding result %s: %w", path, err)
	}

	return &result, nil
}
