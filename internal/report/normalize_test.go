package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const validPayload = `{
  "name": "Jane Doe",
  "current_role": "Head of Sales",
  "location": "Austin, TX",
  "years_of_experience": 12,
  "summary": "Seasoned sales leader.",
  "impact_scores": {
    "industry_fit": {"score": 80, "evidence": "Ran enterprise SaaS sales."},
    "market_knowledge": {"score": 75, "evidence": "Ten years in the territory."},
    "performance_record": {"score": 85, "evidence": "140% of quota three years running."},
    "approach_solutions": {"score": 70, "evidence": "Consultative selling background."},
    "capability_lead": {"score": 78, "evidence": "Built a 15-person team."},
    "time_value": {"score": 65, "evidence": "Existing regional network."}
  },
  "overall_score": 76,
  "verdict": "QUALIFIED",
  "report_markdown": "# Jane Doe - Head of Sales\n## Assessment\nStrong fit for the role."
}`

func TestNormalizeValidPayload(t *testing.T) {
	result, err := Normalize(validPayload)
	if err != nil {
		t.Fatalf("Normalize() returned error: %v", err)
	}

	if result.Name != "Jane Doe" {
		t.Errorf("name = %q", result.Name)
	}
	if result.YearsOfExperience != 12 {
		t.Errorf("years_of_experience = %v, want 12", result.YearsOfExperience)
	}
	if result.OverallScore != 76 {
		t.Errorf("overall_score = %d, want 76", result.OverallScore)
	}
	if result.Verdict != VerdictQualified {
		t.Errorf("verdict = %q, want %q", result.Verdict, VerdictQualified)
	}
	if got := result.ImpactScores.TimeValue; got.Score != 65 || got.Evidence != "Existing regional network." {
		t.Errorf("time_value = %+v", got)
	}
	if got := result.ImpactScores.IndustryFit.Score; got != 80 {
		t.Errorf("industry_fit score = %d, want 80", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first, err := Normalize(validPayload)
	if err != nil {
		t.Fatalf("first Normalize() returned error: %v", err)
	}

	encoded, err := json.MarshalIndent(first, "", "  ")
	if err != nil {
		t.Fatalf("encoding first result: %v", err)
	}

	second, err := Normalize(string(encoded))
	if err != nil {
		t.Fatalf("second Normalize() returned error: %v", err)
	}

	reencoded, err := json.MarshalIndent(second, "", "  ")
	if err != nil {
		t.Fatalf("encoding second result: %v", err)
	}

	if !bytes.Equal(encoded, reencoded) {
		t.Errorf("normalization is not idempotent:\nfirst:  %s\nsecond: %s", encoded, reencoded)
	}
}

func TestNormalizeFencedPayload(t *testing.T) {
	raw := "```json\n" + validPayload + "\n```"

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() returned error: %v", err)
	}
	if result.Name != "Jane Doe" {
		t.Errorf("name = %q", result.Name)
	}
}

func TestNormalizePayloadInProse(t *testing.T) {
	raw := "Here is my analysis of the candidate:\n\n" + validPayload + "\n\nLet me know if you need more detail."

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() returned error: %v", err)
	}
	if result.OverallScore != 76 {
		t.Errorf("overall_score = %d, want 76", result.OverallScore)
	}
}

func TestNormalizeTrailingSeparators(t *testing.T) {
	raw := `{
  "name": "Jane Doe",
  "current_role": "Head of Sales",
  "location": "Austin, TX",
  "years_of_experience": 12,
  "summary": "Seasoned sales leader.",
  "impact_scores": {
    "industry_fit": {"score": 80, "evidence": "a",},
    "market_knowledge": {"score": 75, "evidence": "b",},
    "performance_record": {"score": 85, "evidence": "c",},
    "approach_solutions": {"score": 70, "evidence": "d",},
    "capability_lead": {"score": 78, "evidence": "e",},
    "time_value": {"score": 65, "evidence": "f",},
  },
  "overall_score": 76,
  "verdict": "QUALIFIED",
  "report_markdown": "report",
}`

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() should repair trailing separators, got: %v", err)
	}
	if result.ImpactScores.CapabilityLead.Score != 78 {
		t.Errorf("capability_lead score = %d, want 78", result.ImpactScores.CapabilityLead.Score)
	}
}

func TestNormalizeTruncatedPayload(t *testing.T) {
	// Cut inside the last dimension's evidence string, as a token-limited
	// reply would be.
	cut := strings.Index(validPayload, "Existing regional") + len("Existing")
	raw := validPayload[:cut]

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() should repair a truncated payload, got: %v", err)
	}

	if result.ImpactScores.TimeValue.Score != 65 {
		t.Errorf("time_value score = %d, want 65", result.ImpactScores.TimeValue.Score)
	}
	if result.ImpactScores.TimeValue.Evidence != "Existing" {
		t.Errorf("time_value evidence = %q, want the surviving prefix", result.ImpactScores.TimeValue.Evidence)
	}
}

func TestNormalizeWeakTyping(t *testing.T) {
	raw := strings.Replace(validPayload, `"years_of_experience": 12`, `"years_of_experience": "12.5"`, 1)
	raw = strings.Replace(raw, `"score": 80`, `"score": "80"`, 1)

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() returned error: %v", err)
	}

	if result.YearsOfExperience != 12.5 {
		t.Errorf("years_of_experience = %v, want coerced 12.5", result.YearsOfExperience)
	}
	if result.ImpactScores.IndustryFit.Score != 80 {
		t.Errorf("industry_fit score = %d, want coerced 80", result.ImpactScores.IndustryFit.Score)
	}
}

func TestNormalizeMissingDimension(t *testing.T) {
	raw := `{
  "name": "Jane Doe",
  "impact_scores": {
    "industry_fit": {"score": 80, "evidence": "a"},
    "market_knowledge": {"score": 75, "evidence": "b"},
    "performance_record": {"score": 85, "evidence": "c"},
    "approach_solutions": {"score": 70, "evidence": "d"},
    "capability_lead": {"score": 78, "evidence": "e"}
  },
  "overall_score": 76,
  "verdict": "QUALIFIED"
}`

	_, err := Normalize(raw)
	if err == nil {
		t.Fatal("Normalize() should reject a payload missing a dimension")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error should be *ParseError, got %T", err)
	}
	if !strings.Contains(parseErr.Message, "time_value") {
		t.Errorf("message should name the missing dimension, got %q", parseErr.Message)
	}
	if parseErr.Raw != raw {
		t.Error("raw response should be preserved verbatim")
	}
}

func TestNormalizeNoObject(t *testing.T) {
	raw := "I cannot evaluate this resume."

	_, err := Normalize(raw)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error should be *ParseError, got %T", err)
	}
	if parseErr.Raw != raw {
		t.Error("raw response should be preserved verbatim")
	}
}

func TestNormalizeBeyondRepair(t *testing.T) {
	raw := `{"name": @@@ not json at all`

	_, err := Normalize(raw)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error should be *ParseError, got %T", err)
	}
	if parseErr.Raw != raw {
		t.Error("raw response should be preserved verbatim")
	}
	if parseErr.Cause == nil {
		t.Error("unrecoverable payload should carry the parser cause")
	}
}

func TestNormalizeSpacedVerdict(t *testing.T) {
	raw := strings.Replace(validPayload, `"verdict": "QUALIFIED"`, `"verdict": "QUALIFIED BUT UNAVAILABLE"`, 1)

	result, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() returned error: %v", err)
	}
	if result.Verdict != VerdictQualifiedUnavailable {
		t.Errorf("verdict = %q, want canonical %q", result.Verdict, VerdictQualifiedUnavailable)
	}
}
