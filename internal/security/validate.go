package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/silis/backend/internal/apperr"
)

// Field limits, counted in runes after trimming.
const (
	MaxEmailLength        = 254
	MaxPhoneLength        = 20
	MinPhoneDigits        = 10
	MinNameLength         = 2
	MaxNameLength         = 100
	MaxOrganizationLength = 200
	MaxCommentLength      = 2000
	MinTitleLength        = 5
	MaxTitleLength        = 200
	MinExcerptLength      = 10
	MaxExcerptLength      = 500
	MinContentLength      = 50
	MaxContentLength      = 10000
	MaxAuthorLength       = 100
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStrip   = regexp.MustCompile(`[^\d+\-\s()]`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// ValidateEmail sanitizes raw, checks it against a strict address pattern
// and returns it lower-cased.
func ValidateEmail(raw string) (string, error) {
	email := SanitizeText(raw, MaxEmailLength)
	if !emailPattern.MatchString(email) {
		return "", apperr.Validation("email", "Некорректный email адрес")
	}
	return strings.ToLower(email), nil
}

// ValidatePhone sanitizes raw, keeps digits, '+', '-', spaces and
// parentheses, and requires at least MinPhoneDigits digits. The cleaned
// string is returned, not the bare digits.
func ValidatePhone(raw string) (string, error) {
	phone := SanitizeText(raw, MaxPhoneLength)
	cleaned := strings.TrimSpace(phoneStrip.ReplaceAllString(phone, ""))
	if len(nonDigits.ReplaceAllString(cleaned, "")) < MinPhoneDigits {
		return "", apperr.Validation("phone", "Некорректный номер телефона")
	}
	return cleaned, nil
}

// CheckLength trims value and enforces max (and min when > 0) in runes.
// The trimmed value is returned.
func CheckLength(field, value string, min, max int) (string, error) {
	v := strings.TrimSpace(value)
	n := utf8.RuneCountInString(v)
	if min > 0 && n == 0 {
		return "", apperr.Validation(field, "поле %s не может быть пустым", field)
	}
	if min > 0 && n < min {
		return "", apperr.Validation(field, "поле %s должно содержать не менее %d символов", field, min)
	}
	if max > 0 && n > max {
		return "", apperr.Validation(field, "поле %s должно содержать не более %d символов", field, max)
	}
	return v, nil
}

// RequireConsent fails unless the data-processing consent flag is true.
func RequireConsent(agree bool) error {
	if !agree {
		return apperr.Validation("agree", "Необходимо согласие на обработку данных")
	}
	return nil
}
