package report

import "strings"

const maxScore = 100

// MapVerdict maps a backend-supplied verdict string onto the closed verdict
// set. A value containing "QUALIFIED" without "NOT" is the qualified family,
// split by the presence of "UNAVAILABLE"; everything else is NOT_QUALIFIED.
// This is the only verdict interpretation in the program. Every consumer of
// a verdict goes through it, and it is idempotent over canonical values.
func MapVerdict(raw string) Verdict {
	v := strings.ToUpper(raw)

	if strings.Contains(v, "QUALIFIED") && !strings.Contains(v, "NOT") {
		if strings.Contains(v, "UNAVAILABLE") {
			return VerdictQualifiedUnavailable
		}

		return VerdictQualified
	}

	return VerdictNotQualified
}

// Correction records one out-of-range value clamped by Finalize.
type Correction struct {
	Field string
	From  float64
	To    float64
}

// Finalize validates the backend-supplied numbers and verdict in place.
// overall_score and each dimension score are clamped to [0,100] and
// years_of_experience to >= 0; every clamp is returned so the caller can log
// it. The verdict is canonicalized through MapVerdict. overall_score is taken
// as reported and never recomputed from the dimension scores.
func Finalize(result *EvaluationResult) []Correction {
	var corrections []Correction

	if clamped, changed := clampScore(result.OverallScore); changed {
		corrections = append(corrections, Correction{
			Field: "overall_score",
			From:  float64(result.OverallScore),
			To:    float64(clamped),
		})
		result.OverallScore = clamped
	}

	for _, dim := range result.ImpactScores.Dimensions() {
		clamped, changed := clampScore(dim.Score.Score)
		if !changed {
			continue
		}

		corrections = append(corrections, Correction{
			Field: "impact_scores." + dim.Key + ".score",
			From:  float64(dim.Score.Score),
			To:    float64(clamped),
		})
		dim.Score.Score = clamped
	}

	if result.YearsOfExperience < 0 {
		corrections = append(corrections, Correction{
			Field: "years_of_experience",
			From:  result.YearsOfExperience,
			To:    0,
		})
		result.YearsOfExperience = 0
	}

	result.Verdict = MapVerdict(string(result.Verdict))

	return corrections
}

func clampScore(score int) (int, bool) {
	switch {
	case score < 0:
		return 0, true
	case score > maxScore:
		return maxScore, true
	default:
		return score, false
	}
}
