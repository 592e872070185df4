package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/veriwiki/internal/model"
)

// Attribution templates, selected by provenance
const (
	originalAttribution = "Content sourced from Wikipedia, licensed under Creative Commons Attribution-ShareAlike 4.0"
	updatedAttribution  = "Content has been updated and verified. Original Wikipedia article scored %d/5."
)

// Assembler formats final text into paragraphs and attaches provenance
// metadata. It performs no I/O and cannot fail.
type Assembler struct {
	articleBaseURL string
}

// NewAssembler creates an assembler. articleBaseURL is the public article
// URL prefix, e.g. "https://en.wikipedia.org/wiki/".
func NewAssembler(articleBaseURL string) *Assembler {
	return &Assembler{articleBaseURL: articleBaseURL}
}

// Assemble wraps content paragraphs in <p> containers and attaches the
// attribution line and the single canonical source entry
func (a *Assembler) Assemble(content, articleTitle string, isOriginal bool, score int) *model.VerificationResult {
	attribution := originalAttribution
	if !isOriginal {
		attribution = fmt.Sprintf(updatedAttribution, score)
	}

	return &model.VerificationResult{
		Found:       true,
		Score:       score,
		Title:       articleTitle,
		Content:     wrapParagraphs(content),
		IsOriginal:  isOriginal,
		Attribution: attribution,
		Sources: []model.Source{
			{
				URL:   a.articleBaseURL + url.PathEscape(strings.ReplaceAll(articleTitle, " ", "_")),
				Title: "Wikipedia",
			},
		},
	}
}

// wrapParagraphs splits on blank-line boundaries, drops empty segments,
// and wraps each remaining segment in a paragraph container. This is the
// only structural transform applied to the content.
func wrapParagraphs(content string) string {
	segments := strings.Split(content, "\n\n")

	paragraphs := make([]string, 0, len(segments))
	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			continue
		}
		paragraphs = append(paragraphs, "<p>"+trimmed+"</p>")
	}

	return strings.Join(paragraphs, "\n")
}
