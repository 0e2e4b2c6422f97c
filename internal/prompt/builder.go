// Package prompt composes the system/user instruction pair sent to an
// evaluation backend.
package prompt

import (
	_ "embed"
	"os"
	"strings"

	"go.uber.org/zap"
)

// DefaultRoleType is the role the scoring rubric was originally written for.
const DefaultRoleType = "Head of Sales"

//go:embed scoring_prompt.md
var scoringTemplate string

//go:embed impact_v_template.md
var reportTemplate string

//go:embed default_job_description.md
var defaultJobDescription string

const systemTemplate = `You are an expert HR recruitment specialist with expertise in evaluating resumes for {{ROLE_TYPE}} positions.

You will analyze a resume and compare it to a job description to determine the candidate's fit.
Use the IMPACT-V scoring framework to evaluate the candidate thoroughly.`

// Request carries the inputs of one evaluation. It is assembled once per
// invocation and never mutated afterwards.
type Request struct {
	ResumeText     string
	JobDescription string
	RoleType       string
}

// Build composes the system and user prompts for req. It is pure string
// composition with no I/O: an empty job description falls back to the
// built-in default and an empty role type falls back to DefaultRoleType.
func Build(req Request) (system, user string) {
	roleType := strings.TrimSpace(req.RoleType)
	if roleType == "" {
		roleType = DefaultRoleType
	}

	jobDescription := req.JobDescription
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = DefaultJobDescription()
	}

	system = strings.ReplaceAll(systemTemplate, "{{ROLE_TYPE}}", roleType)

	user = strings.ReplaceAll(scoringTemplate, "{{RESUME_TEXT}}", req.ResumeText)
	user = strings.ReplaceAll(user, "{{JOB_DESCRIPTION}}", jobDescription)
	user = strings.ReplaceAll(user, "{{ROLE_TYPE}}", roleType)
	user = strings.ReplaceAll(user, "{{REPORT_TEMPLATE}}", Template())

	return system, user
}

// Template returns the report template the backend is asked to fill in and
// echo back as report_markdown.
func Template() string {
	return reportTemplate
}

// DefaultJobDescription returns the built-in Head of Sales job description
// used when none is supplied.
func DefaultJobDescription() string {
	return defaultJobDescription
}

// LoadJobDescription reads the job description file at path. An empty path
// selects the built-in default. An unreadable file is not an error either:
// the default is substituted and the fallback logged.
func LoadJobDescription(path string, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(path) == "" {
		return DefaultJobDescription()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("job description file is not readable, using the built-in default",
			zap.String("file", path), zap.Error(err))

		return DefaultJobDescription()
	}

	return string(data)
}
