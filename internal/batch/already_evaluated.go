package batch

import (
	"github.com/okhramov/impact-matcher/internal/results"
)

type alreadyEvaluatedFilter struct {
	store *results.Store
	force bool
}

// NewAlreadyEvaluated creates a filter that skips resumes which already have
// a saved result. The force flag disables it, so every file is re-evaluated.
func NewAlreadyEvaluated(store *results.Store, force bool) Filter {
	return &alreadyEvaluatedFilter{store: store, force: force}
}

func (f *alreadyEvaluatedFilter) Name() string { return "already_evaluated" }

func (f *alreadyEvaluatedFilter) IsEnabled() bool { return !f.force }

func (f *alreadyEvaluatedFilter) Apply(files []string) ([]string, Step, error) {
	initial := len(files)
	kept := make([]string, 0, len(files))
	for _, file := range files {
		if !f.store.Exists(file) {
			kept = append(kept, file)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}
