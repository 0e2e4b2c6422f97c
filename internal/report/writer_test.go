package report

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// sampleResult returns a fully populated in-range result shared by the
// package tests.
func sampleResult() *EvaluationResult {
	return &EvaluationResult{
		Name:              "Jane Doe",
		CurrentRole:       "Head of Sales",
		Location:          "Dubai, UAE",
		YearsOfExperience: 12,
		Summary:           "Seasoned sales leader with regional market experience.",
		ImpactScores: ImpactScores{
			IndustryFit:       DimensionScore{Score: 85, Evidence: "Led B2B SaaS sales teams."},
			MarketKnowledge:   DimensionScore{Score: 80, Evidence: "Ten years in the target market."},
			PerformanceRecord: DimensionScore{Score: 88, Evidence: "Grew revenue 3x in four years."},
			ApproachSolutions: DimensionScore{Score: 74, Evidence: "Built consultative sales playbooks."},
			CapabilityLead:    DimensionScore{Score: 79, Evidence: "Managed a team of 25."},
			TimeValue:         DimensionScore{Score: 70, Evidence: "Available within one month."},
		},
		OverallScore:   82,
		Verdict:        VerdictQualified,
		ReportMarkdown: "# IMPACT-V Assessment\n\nStrong candidate overall.",
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jane_doe_result.json")
	want := sampleResult()

	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestWriteIndentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := Write(path, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  \"name\"") {
		t.Errorf("output is not indented with two spaces:\n%s", text)
	}
	if strings.Contains(text, "\t") {
		t.Errorf("output contains tabs:\n%s", text)
	}
}

func TestWriteCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "nested", "result.json")
	if err := Write(path, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Stat: %v", err)
	}
}

func TestWriteFieldOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := Write(path, sampleResult()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	keys := []string{
		`"name"`,
		`"current_role"`,
		`"location"`,
		`"years_of_experience"`,
		`"summary"`,
		`"impact_scores"`,
		`"industry_fit"`,
		`"market_knowledge"`,
		`"performance_record"`,
		`"approach_solutions"`,
		`"capability_lead"`,
		`"time_value"`,
		`"overall_score"`,
		`"verdict"`,
		`"report_markdown"`,
	}
	text := string(data)
	last := -1
	for _, key := range keys {
		idx := strings.Index(text, key)
		if idx < 0 {
			t.Fatalf("key %s missing from output", key)
		}
		if idx <= last {
			t.Errorf("key %s out of order", key)
		}
		last = idx
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
