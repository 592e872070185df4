// Package score turns a claim batch into a structured credibility verdict
// via the external reasoning service.
package score

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/veriwiki/internal/llm"
	"github.com/ppiankov/veriwiki/internal/model"
)

// Scorer scores a claim batch holistically (one verdict per batch, not
// per claim)
type Scorer struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewScorer creates a scorer backed by the given reasoning provider
func NewScorer(provider llm.Provider, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scorer{
		provider: provider,
		logger:   logger,
	}
}

// Score sends the claims to the reasoning service and parses its verdict.
// An unparsable response degrades to the neutral verdict rather than
// failing the request; provider errors (rate limit, quota, upstream
// failure) propagate to the caller.
func (s *Scorer) Score(ctx context.Context, articleTitle string, claims []string) (model.Verdict, error) {
	prompt := buildVerificationPrompt(articleTitle, claims)

	text, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("score claims: %w", err)
	}

	verdict, ok := ParseVerdict(text)
	if !ok {
		s.logger.Warn("unparsable verification response, using neutral verdict",
			"article", articleTitle,
			"response_len", len(text),
		)
		return NeutralVerdict(), nil
	}

	return verdict, nil
}

// buildVerificationPrompt enumerates the claims under a fixed 1-5 grading
// rubric and instructs the service to answer with a bare JSON object.
func buildVerificationPrompt(articleTitle string, claims []string) string {
	var list strings.Builder
	for i, claim := range claims {
		fmt.Fprintf(&list, "%d. %s\n", i+1, claim)
	}

	return fmt.Sprintf(`You are a fact-checker. Analyze these claims from a Wikipedia article about %q:

%s
Rate the overall authenticity of these claims on a scale of 1-5:
- 5: Highly accurate, well-established facts
- 4: Mostly accurate with minor uncertainties
- 3: Mixed accuracy, some concerns
- 2: Significant inaccuracies or outdated info
- 1: Mostly inaccurate or misleading

Respond with ONLY a JSON object in this exact format:
{
  "score": <number 1-5>,
  "reasoning": "<brief explanation of the score>"
}`, articleTitle, list.String())
}
