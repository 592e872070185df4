package score

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ppiankov/veriwiki/internal/model"
)

const neutralScore = 4

// NeutralVerdict is the fixed fallback used when the reasoning service's
// response cannot be parsed. The pipeline continues instead of failing.
func NeutralVerdict() model.Verdict {
	return model.Verdict{
		Score:     neutralScore,
		Reasoning: "Unable to parse verification result",
	}
}

type rawVerdict struct {
	Score     any    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// ParseVerdict isolates the first brace-delimited JSON object in the
// response text (the service may wrap it in commentary) and normalizes it
// into a Verdict. The second return value is false when no object can be
// isolated or decoded; callers map that to the neutral verdict.
func ParseVerdict(text string) (model.Verdict, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return model.Verdict{}, false
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return model.Verdict{}, false
	}

	return model.Verdict{
		Score:     clampScore(normalizeScore(raw.Score)),
		Reasoning: raw.Reasoning,
	}, true
}

// normalizeScore coerces whatever the service returned into an integer.
// Missing, zero, or non-numeric values become the neutral score.
func normalizeScore(v any) int {
	switch s := v.(type) {
	case float64:
		if s == 0 {
			return neutralScore
		}
		return int(s)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n == 0 {
			return neutralScore
		}
		return n
	default:
		return neutralScore
	}
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
