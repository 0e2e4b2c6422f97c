package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Display thresholds for coloring a 0-100 score.
const (
	goodScoreThreshold = 75
	warnScoreThreshold = 50
)

const (
	excerptLines = 10
	ruleWidth    = 80
)

// Render writes the human-readable report to w: a header with the candidate
// name and role, the candidate information block with the overall score and
// verdict colored, one colored line per dimension, and the first 10 lines of
// the markdown report as an excerpt.
func Render(w io.Writer, result *EvaluationResult) {
	rule := strings.Repeat("=", ruleWidth)
	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgBlue, color.Bold)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	header.Fprintf(w, "Resume Analysis: %s - %s\n", result.Name, result.CurrentRole)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	section.Fprintln(w, "Candidate Information:")
	fmt.Fprintf(w, "- Location: %s\n", result.Location)
	fmt.Fprintf(w, "- Years of Experience: %v\n", result.YearsOfExperience)
	fmt.Fprintf(w, "- Overall Score: %s\n",
		scoreColor(result.OverallScore).Add(color.Bold).Sprintf("%d/100", result.OverallScore))
	fmt.Fprintf(w, "- Verdict: %s\n",
		verdictColor(result.Verdict).Add(color.Bold).Sprint(DisplayVerdict(result.Verdict)))
	fmt.Fprintln(w)

	section.Fprintln(w, "IMPACT-V Scores:")
	for _, dim := range result.ImpactScores.Dimensions() {
		fmt.Fprintf(w, "- %s: %s\n", dim.Label,
			scoreColor(dim.Score.Score).Sprintf("%d/100", dim.Score.Score))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	section.Fprintln(w, "Summary Assessment:")
	lines := strings.Split(strings.TrimSpace(result.ReportMarkdown), "\n")
	for i, line := range lines {
		if i >= excerptLines {
			fmt.Fprintln(w, "...")
			break
		}
		fmt.Fprintln(w, line)
	}
}

// DisplayVerdict renders the canonical verdict with spaces for reading.
func DisplayVerdict(v Verdict) string {
	return strings.ReplaceAll(string(MapVerdict(string(v))), "_", " ")
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= goodScoreThreshold:
		return color.New(color.FgGreen)
	case score >= warnScoreThreshold:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// verdictColor derives the display color from the shared verdict mapping, so
// the renderer can never disagree with the engine about what a verdict means.
func verdictColor(v Verdict) *color.Color {
	switch MapVerdict(string(v)) {
	case VerdictQualified:
		return color.New(color.FgGreen)
	case VerdictQualifiedUnavailable:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
