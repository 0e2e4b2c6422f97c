// Package evaluator runs the resume evaluation pipeline: extract the resume
// text, build the scoring prompt, call the model backend, and normalize the
// response into a structured result.
package evaluator

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/backend"
	"github.com/okhramov/impact-matcher/internal/extract"
	"github.com/okhramov/impact-matcher/internal/logger"
	"github.com/okhramov/impact-matcher/internal/prompt"
	"github.com/okhramov/impact-matcher/internal/report"
)

// ExtractionError reports a resume that yielded no usable text. It is
// returned before any backend call is made.
type ExtractionError struct {
	Path string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no text could be extracted from %s", e.Path)
}

// Deps carries the collaborators an Evaluator needs.
type Deps struct {
	Completer backend.Completer
	Extractor *extract.Extractor
	MaxTokens int
	Logger    *zap.Logger
}

// Input identifies one evaluation: the resume to score and the optional
// job description and role type to score it against.
type Input struct {
	ResumePath         string
	JobDescriptionPath string
	RoleType           string
}

type Evaluator struct {
	completer backend.Completer
	extractor *extract.Extractor
	maxTokens int
	logger    *zap.Logger
}

func New(deps Deps) *Evaluator {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ext := deps.Extractor
	if ext == nil {
		ext = extract.New(log)
	}
	return &Evaluator{
		completer: deps.Completer,
		extractor: ext,
		maxTokens: deps.MaxTokens,
		logger:    log,
	}
}

// Run evaluates a single resume. A resume with no extractable text fails
// with ExtractionError without spending a backend call. Out-of-range values
// in the model response are clamped and logged, never fatal.
func (e *Evaluator) Run(ctx context.Context, in Input) (*report.EvaluationResult, error) {
	e.logger.Info("evaluating resume", zap.String("resume", filepath.Base(in.ResumePath)))

	text := e.extractor.Text(in.ResumePath)
	if text == "" {
		return nil, &ExtractionError{Path: in.ResumePath}
	}
	e.logger.Debug("extracted resume text", zap.Int("characters", len(text)))

	system, user := prompt.Build(prompt.Request{
		ResumeText:     text,
		JobDescription: prompt.LoadJobDescription(in.JobDescriptionPath, e.logger),
		RoleType:       in.RoleType,
	})

	raw, err := e.completer.Complete(ctx, system, user, e.maxTokens)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("received model response", zap.Int("characters", len(raw)))

	result, err := report.Normalize(raw)
	if err != nil {
		return nil, err
	}

	for _, c := range report.Finalize(result) {
		e.logger.Warn("corrected out-of-range value",
			zap.String("field", c.Field),
			zap.Float64("from", c.From),
			zap.Float64("to", c.To),
		)
	}

	e.logger.Info("evaluation complete",
		logger.ResultFields(result.Name, string(result.Verdict), result.OverallScore)...)
	return result, nil
}
