package service

import (
	"github.com/silis/backend/internal/security"
)

// Page size bounds shared by every list operation.
const (
	MinPageLimit = 1
	MaxPageLimit = 100
)

// clampPage forces skip >= 0 and limit into [MinPageLimit, MaxPageLimit].
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < MinPageLimit {
		limit = MinPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return skip, limit
}

// cleanText checks the trimmed length of raw, sanitizes it, and checks the
// length again since sanitizing can only shorten the text.
func cleanText(field, raw string, min, max int) (string, error) {
	v, err := security.CheckLength(field, raw, min, max)
	if err != nil {
		return "", err
	}
	return security.CheckLength(field, security.SanitizeText(v, max), min, max)
}
