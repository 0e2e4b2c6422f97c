package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseError reports a failure to recover a structured result from a backend
// reply. Raw carries the reply verbatim for operator diagnosis; it is never
// discarded.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}

	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

type wireDimension struct {
	Score    int    `mapstructure:"score"`
	Evidence string `mapstructure:"evidence"`
}

type wireResult struct {
	Name              string                    `mapstructure:"name"`
	CurrentRole       string                    `mapstructure:"current_role"`
	Location          string                    `mapstructure:"location"`
	YearsOfExperience float64                   `mapstructure:"years_of_experience"`
	Summary           string                    `mapstructure:"summary"`
	ImpactScores      map[string]*wireDimension `mapstructure:"impact_scores"`
	OverallScore      int                       `mapstructure:"overall_score"`
	Verdict           string                    `mapstructure:"verdict"`
	ReportMarkdown    string                    `mapstructure:"report_markdown"`
}

// Normalize recovers the canonical result from a backend reply. Backends are
// instructed to return a JSON object but are not trusted to do so exactly:
// replies arrive fenced, wrapped in prose, with trailing separators, or cut
// off at the token limit. Parsing is two-stage: a strict parse of the
// extracted object first, then a repair pass (separators stripped, delimiters
// balanced) only when the strict parse fails. All six dimension keys must be
// present. Failures return a *ParseError carrying the reply verbatim; missing
// values are never invented.
func Normalize(raw string) (*EvaluationResult, error) {
	candidate := extractJSON(raw)
	if candidate == "" {
		return nil, &ParseError{Message: "no JSON object in response", Raw: raw}
	}

	payload, err := parseObject(candidate)
	if err != nil {
		payload, err = parseObject(repairJSON(candidate))
		if err != nil {
			return nil, &ParseError{Message: "response is not recoverable JSON", Raw: raw, Cause: err}
		}
	}

	return decodeResult(payload, raw)
}

func parseObject(s string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// decodeResult converts the parsed payload into the canonical result. The
// decode is weakly typed, so numeric strings in score fields coerce instead
// of failing the whole reply.
func decodeResult(payload map[string]any, raw string) (*EvaluationResult, error) {
	var wire wireResult

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &wire,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, &ParseError{Message: "building payload decoder", Raw: raw, Cause: err}
	}

	if err := decoder.Decode(payload); err != nil {
		return nil, &ParseError{Message: "response does not match the result schema", Raw: raw, Cause: err}
	}

	var missing []string
	for _, name := range DimensionNames {
		if wire.ImpactScores[name] == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{
			Message: "response is missing dimensions: " + strings.Join(missing, ", "),
			Raw:     raw,
		}
	}

	result := &EvaluationResult{
		Name:              wire.Name,
		CurrentRole:       wire.CurrentRole,
		Location:          wire.Location,
		YearsOfExperience: wire.YearsOfExperience,
		Summary:           wire.Summary,
		OverallScore:      wire.OverallScore,
		Verdict:           MapVerdict(wire.Verdict),
		ReportMarkdown:    wire.ReportMarkdown,
	}

	for _, dim := range result.ImpactScores.Dimensions() {
		src := wire.ImpactScores[dim.Key]
		dim.Score.Score = src.Score
		dim.Score.Evidence = src.Evidence
	}

	return result, nil
}

// extractJSON strips markdown fences and cuts the first complete JSON object
// out of surrounding prose. The scan is string-aware so braces inside string
// values do not unbalance it. A payload with no closing brace (truncated at
// the token limit) is returned from the opening brace onward for the repair
// pass.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
	}

	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}

	return raw[start:]
}

// repairJSON applies the minimal mechanical fixes for near-valid model
// output: separators dangling before a closing delimiter (or the truncation
// point) are dropped, an unterminated string is closed, and missing closing
// delimiters are appended from a delimiter stack. The result still has to
// survive a strict parse, so a payload this cannot fix fails normalization.
func repairJSON(s string) string {
	s = strings.TrimSpace(s)

	var builder strings.Builder
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == ',':
			if next := nextNonSpace(s, i+1); next == -1 || s[next] == '}' || s[next] == ']' {
				continue
			}
		case c == '{' || c == '[':
			stack = append(stack, c)
		case c == '}' || c == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}

		builder.WriteByte(c)
	}

	if inString {
		builder.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			builder.WriteByte('}')
		} else {
			builder.WriteByte(']')
		}
	}

	return builder.String()
}

func nextNonSpace(s string, from int) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return i
		}
	}

	return -1
}
