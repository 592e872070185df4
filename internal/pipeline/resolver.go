package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/veriwiki/internal/llm"
	"github.com/ppiankov/veriwiki/internal/model"
)

// Resolver decides whether the original article text passes through or
// gets rewritten by the reasoning service
type Resolver struct {
	provider llm.Provider
	logger   *slog.Logger
}

// NewResolver creates a content resolver
func NewResolver(provider llm.Provider, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		provider: provider,
		logger:   logger,
	}
}

// Resolve returns the final article content. Passing verdicts keep the
// original text. Failing verdicts request a rewrite; if the rewrite call
// fails, the original text is kept and the failure is logged rather
// than surfaced.
func (r *Resolver) Resolve(ctx context.Context, originalText string, verdict model.Verdict, articleTitle string) (content string, isOriginal bool) {
	if verdict.Passes() {
		return originalText, true
	}

	rewritten, err := r.provider.Complete(ctx, buildRewritePrompt(originalText, verdict, articleTitle))
	if err != nil {
		r.logger.Warn("rewrite failed, keeping original content",
			"article", articleTitle,
			"score", verdict.Score,
			"error", err,
		)
		return originalText, false
	}

	return rewritten, false
}

// buildRewritePrompt asks the service to correct accuracy concerns while
// preserving the original's length, structure, and plain-language style
func buildRewritePrompt(originalText string, verdict model.Verdict, articleTitle string) string {
	return fmt.Sprintf(`The following Wikipedia content about %q has authenticity concerns (score: %d/5).

Original content:
%s

Verification notes: %s

Please rewrite this content to address accuracy concerns while maintaining:
1. Clear, accessible language
2. Well-structured information
3. Factual accuracy based on widely accepted knowledge
4. Similar length and depth

Provide the updated content in plain text (no markdown formatting).`,
		articleTitle, verdict.Score, originalText, verdict.Reasoning)
}
