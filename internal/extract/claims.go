// Package extract pulls candidate factual statements out of article text.
package extract

import (
	"strings"
	"unicode/utf8"
)

// ClaimExtractor splits summary text into a bounded set of claims
type ClaimExtractor struct {
	maxClaims   int
	minSentence int
}

// NewClaimExtractor creates a claim extractor. maxClaims caps the result
// size; fragments of minSentence characters or fewer are discarded.
func NewClaimExtractor(maxClaims, minSentence int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 8
	}
	if minSentence <= 0 {
		minSentence = 20
	}

	return &ClaimExtractor{
		maxClaims:   maxClaims,
		minSentence: minSentence,
	}
}

// Extract splits text on sentence-terminal punctuation and returns up to
// maxClaims non-trivial sentences in original order. Short fragments (list
// items, abbreviations, noise) are filtered out. Deterministic.
func (e *ClaimExtractor) Extract(text string) []string {
	fragments := strings.FieldsFunc(text, isSentenceTerminal)

	claims := make([]string, 0, e.maxClaims)
	for _, fragment := range fragments {
		sentence := strings.TrimSpace(fragment)
		if utf8.RuneCountInString(sentence) <= e.minSentence {
			continue
		}

		claims = append(claims, sentence)
		if len(claims) == e.maxClaims {
			break
		}
	}

	return claims
}

func isSentenceTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
