package batch

import (
	"github.com/okhramov/impact-matcher/internal/extract"
)

type supportedTypesFilter struct{}

// NewSupportedTypes creates a filter that keeps only files the extractor
// can read.
func NewSupportedTypes() Filter {
	return &supportedTypesFilter{}
}

func (f *supportedTypesFilter) Name() string { return "supported_types" }

func (f *supportedTypesFilter) IsEnabled() bool { return true }

func (f *supportedTypesFilter) Apply(files []string) ([]string, Step, error) {
	initial := len(files)
	kept := make([]string, 0, len(files))
	for _, file := range files {
		if extract.Supported(file) {
			kept = append(kept, file)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
