package validate

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxSearchTermLen = 200

// Validation failure messages are part of the public API surface and
// returned verbatim in 400 responses.
var (
	ErrSearchTermRequired = errors.New("Search term is required")
	ErrSearchTermTooLong  = errors.New("Search term too long")
)

// SearchTerm validates and normalizes a user-supplied search term.
// The term is trimmed; after trimming it must be 1-200 characters.
func SearchTerm(raw string) (string, error) {
	if raw == "" {
		return "", ErrSearchTermRequired
	}
	if utf8.RuneCountInString(raw) > maxSearchTermLen {
		return "", ErrSearchTermTooLong
	}

	term := strings.TrimSpace(raw)
	if term == "" {
		return "", ErrSearchTermRequired
	}

	return term, nil
}
