package model

// ArticleSummary is the plain-text body of the canonical article
type ArticleSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Verdict is the structured credibility judgment for a claim batch
type Verdict struct {
	Score     int    `json:"score"`     // Always within [1,5]
	Reasoning string `json:"reasoning"` // Brief rationale from the reasoning service
}

// Passes reports whether the verdict lets the original text through unchanged
func (v Verdict) Passes() bool {
	return v.Score >= 4
}

// Source is a single provenance entry attached to a result
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// VerificationResult is the externally visible artifact for a verified article
type VerificationResult struct {
	Found       bool     `json:"found"`
	Score       int      `json:"score"`
	Title       string   `json:"title"`
	Content     string   `json:"content"` // Paragraph-wrapped HTML
	IsOriginal  bool     `json:"isOriginal"`
	Attribution string   `json:"attribution"`
	Sources     []Source `json:"sources"`
}

// NotFoundResult is returned when no article matches the query.
// It is a valid empty result, not an error.
type NotFoundResult struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}
