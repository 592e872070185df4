// Package pipeline orchestrates the verification flow: article lookup,
// claim extraction, credibility scoring, conditional rewrite, assembly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/veriwiki/internal/extract"
	"github.com/ppiankov/veriwiki/internal/llm"
	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/score"
)

// ArticleService abstracts the encyclopedia lookup so tests can
// substitute deterministic fakes
type ArticleService interface {
	// Search resolves a query to the first-ranked article title;
	// found is false when the search yields nothing
	Search(ctx context.Context, query string) (title string, found bool, err error)

	// Summary fetches the plain-text extract for a title
	Summary(ctx context.Context, title string) (*model.ArticleSummary, error)
}

// Result is the terminal outcome of one verification request.
// Exactly one of the two fields is set.
type Result struct {
	Verified *model.VerificationResult
	NotFound *model.NotFoundResult
}

// Pipeline sequences the verification stages for one request at a time.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	articles  ArticleService
	extractor *extract.ClaimExtractor
	scorer    *score.Scorer
	resolver  *Resolver
	assembler *Assembler
	logger    *slog.Logger
}

// New creates a pipeline from configuration and the two external
// capabilities
func New(cfg *model.Config, articles ArticleService, provider llm.Provider, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		articles:  articles,
		extractor: extract.NewClaimExtractor(cfg.Extract.MaxClaims, cfg.Extract.MinSentence),
		scorer:    score.NewScorer(provider, logger),
		resolver:  NewResolver(provider, logger),
		assembler: NewAssembler(cfg.Wikipedia.ArticleBaseURL),
		logger:    logger,
	}
}

// Verify runs the full pipeline for one search term. The term must
// already be validated. A missing article is a valid empty result;
// every other failure is terminal for the request.
func (p *Pipeline) Verify(ctx context.Context, searchTerm string) (*Result, error) {
	title, found, err := p.articles.Search(ctx, searchTerm)
	if err != nil {
		return nil, fmt.Errorf("article lookup: %w", err)
	}
	if !found {
		p.logger.Info("no article found", "term", searchTerm)
		return &Result{NotFound: &model.NotFoundResult{
			Found:   false,
			Message: fmt.Sprintf("No Wikipedia article found for %q", searchTerm),
		}}, nil
	}

	summary, err := p.articles.Summary(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}

	claims := p.extractor.Extract(summary.Extract)
	p.logger.Debug("extracted claims", "article", title, "claims", len(claims))

	verdict, err := p.scorer.Score(ctx, title, claims)
	if err != nil {
		return nil, err
	}
	p.logger.Info("scored article", "article", title, "score", verdict.Score)

	content, isOriginal := p.resolver.Resolve(ctx, summary.Extract, verdict, title)

	return &Result{
		Verified: p.assembler.Assemble(content, title, isOriginal, verdict.Score),
	}, nil
}
