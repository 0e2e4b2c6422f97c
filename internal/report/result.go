// Package report defines the canonical evaluation result schema and the
// machinery around it: tolerant normalization of backend replies, score and
// verdict finalization, JSON persistence, and terminal rendering.
package report

// Verdict is the final qualification category.
type Verdict string

const (
	VerdictQualified            Verdict = "QUALIFIED"
	VerdictQualifiedUnavailable Verdict = "QUALIFIED_BUT_UNAVAILABLE"
	VerdictNotQualified         Verdict = "NOT_QUALIFIED"
)

// DimensionScore is one scored IMPACT-V axis.
type DimensionScore struct {
	Score    int    `json:"score"`
	Evidence string `json:"evidence"`
}

// ImpactScores holds the six IMPACT-V dimensions. The set is fixed and
// exhaustive; the field order is the canonical serialization order.
type ImpactScores struct {
	IndustryFit       DimensionScore `json:"industry_fit"`
	MarketKnowledge   DimensionScore `json:"market_knowledge"`
	PerformanceRecord DimensionScore `json:"performance_record"`
	ApproachSolutions DimensionScore `json:"approach_solutions"`
	CapabilityLead    DimensionScore `json:"capability_lead"`
	TimeValue         DimensionScore `json:"time_value"`
}

// EvaluationResult is the canonical outcome of one evaluation. It is written
// once per resume and never mutated in place; a re-run overwrites the stored
// file wholesale.
type EvaluationResult struct {
	Name              string       `json:"name"`
	CurrentRole       string       `json:"current_role"`
	Location          string       `json:"location"`
	YearsOfExperience float64      `json:"years_of_experience"`
	Summary           string       `json:"summary"`
	ImpactScores      ImpactScores `json:"impact_scores"`
	OverallScore      int          `json:"overall_score"`
	Verdict           Verdict      `json:"verdict"`
	ReportMarkdown    string       `json:"report_markdown"`
}

// DimensionNames lists the six dimension keys in canonical order.
var DimensionNames = []string{
	"industry_fit",
	"market_knowledge",
	"performance_record",
	"approach_solutions",
	"capability_lead",
	"time_value",
}

// NamedDimension pairs one dimension score with its key and display label.
type NamedDimension struct {
	Key   string
	Label string
	Score *DimensionScore
}

// Dimensions returns the six dimension scores in canonical order. The
// returned entries point into the receiver so callers can iterate and update
// them uniformly.
func (s *ImpactScores) Dimensions() []NamedDimension {
	return []NamedDimension{
		{Key: "industry_fit", Label: "Industry Fit", Score: &s.IndustryFit},
		{Key: "market_knowledge", Label: "Market Knowledge", Score: &s.MarketKnowledge},
		{Key: "performance_record", Label: "Performance Record", Score: &s.PerformanceRecord},
		{Key: "approach_solutions", Label: "Approach Solutions", Score: &s.ApproachSolutions},
		{Key: "capability_lead", Label: "Capability Lead", Score: &s.CapabilityLead},
		{Key: "time_value", Label: "Time Value", Score: &s.TimeValue},
	}
}
