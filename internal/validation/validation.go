// Package validation checks request parameters before they reach the services.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxSearchTermLength bounds the director search parameter.
const MaxSearchTermLength = 200

// ParseVideoID parses a canonical UUID path parameter.
func ParseVideoID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("video id is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid video id format: %s", raw)
	}

	return id, nil
}

// NormalizeSearchTerm trims term and rejects invalid UTF-8, control characters and oversized input.
// An empty term is allowed and matches every director.
func NormalizeSearchTerm(term string) (string, error) {
	if !utf8.ValidString(term) {
		return "", fmt.Errorf("search term is not valid UTF-8")
	}

	term = strings.TrimSpace(term)

	if utf8.RuneCountInString(term) > MaxSearchTermLength {
		return "", fmt.Errorf("search term exceeds maximum length of %d characters", MaxSearchTermLength)
	}

	if strings.IndexFunc(term, unicode.IsControl) >= 0 {
		return "", fmt.Errorf("search term contains control characters")
	}

	return term, nil
}
