// Package security holds the input-safety rules shared by the contact form
// and the admin content endpoints: text sanitization, field validation and
// the news update whitelist.
package security

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/silis/backend/internal/apperr"
)

// Length caps applied by the sanitizer.
const (
	DefaultMaxLength = 1000
	MaxKeyLength     = 100
	MaxIDLength      = 50
)

// dangerousPatterns are document-query operators and script/eval markers.
// They are removed case-insensitively, in this order.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$where`),
	regexp.MustCompile(`(?i)\$regex`),
	regexp.MustCompile(`(?i)\$ne`),
	regexp.MustCompile(`(?i)\$gt`),
	regexp.MustCompile(`(?i)\$lt`),
	regexp.MustCompile(`(?i)\$in`),
	regexp.MustCompile(`(?i)\$nin`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)eval\(`),
	regexp.MustCompile(`(?i)function\(`),
}

var markupChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// SanitizeText removes injection patterns, then angle brackets and quotes,
// then truncates to maxLength runes and trims surrounding whitespace.
// The removal steps repeat until the text is stable so that deleting one
// fragment cannot splice a new pattern together. maxLength <= 0 disables
// truncation.
func SanitizeText(value string, maxLength int) string {
	cleaned := value
	for {
		next := cleaned
		for _, p := range dangerousPatterns {
			next = p.ReplaceAllString(next, "")
		}
		next = markupChars.Replace(next)
		if next == cleaned {
			break
		}
		cleaned = next
	}

	if maxLength > 0 {
		if r := []rune(cleaned); len(r) > maxLength {
			cleaned = string(r[:maxLength])
		}
	}
	return strings.TrimSpace(cleaned)
}

// SanitizeValue is SanitizeText for values of unknown type.
// It fails with apperr.ErrInvalidInput unless v is a string.
func SanitizeValue(v any, maxLength int) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w (got %T)", apperr.ErrInvalidInput, v)
	}
	return SanitizeText(s, maxLength), nil
}

// SanitizeStructure applies SanitizeText to every string leaf of a nested
// map/slice structure. Map keys are sanitized with MaxKeyLength; strings
// with DefaultMaxLength. Other scalars pass through unchanged.
func SanitizeStructure(v any) any {
	switch t := v.(type) {
	case string:
		return SanitizeText(t, DefaultMaxLength)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[SanitizeText(k, MaxKeyLength)] = SanitizeStructure(val)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[SanitizeText(k, MaxKeyLength)] = SanitizeText(val, DefaultMaxLength)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = SanitizeStructure(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, val := range t {
			out[i] = SanitizeText(val, DefaultMaxLength)
		}
		return out
	default:
		return v
	}
}

// SanitizeJSON runs SanitizeStructure over the JSON form of v and decodes
// the result back into a fresh T. It is how typed documents such as
// model.Contacts get the same treatment as free-form maps.
func SanitizeJSON[T any](v T) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("sanitize: encode: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return out, fmt.Errorf("sanitize: decode: %w", err)
	}
	clean, err := json.Marshal(SanitizeStructure(generic))
	if err != nil {
		return out, fmt.Errorf("sanitize: re-encode: %w", err)
	}
	if err := json.Unmarshal(clean, &out); err != nil {
		return out, fmt.Errorf("sanitize: re-decode: %w", err)
	}
	return out, nil
}
