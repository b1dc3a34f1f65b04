package security

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silis/backend/internal/apperr"
)

func TestValidateEmail(t *testing.T) {
	valid := map[string]string{
		"a@b.com":                      "a@b.com",
		"  Ann.Smith+news@Mail.RU ":    "ann.smith+news@mail.ru",
		"x_y%z@sub-domain.example.org": "x_y%z@sub-domain.example.org",
		"<user@example.com>":           "user@example.com",
	}
	for in, want := range valid {
		got, err := ValidateEmail(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	invalid := []string{"", "plain", "a@b", "a@b.c", "a b@c.com", "a@b.c0m", "анна@почта.рф"}
	for _, in := range invalid {
		_, err := ValidateEmail(in)
		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve), "expected ValidationError for %q", in)
		assert.Equal(t, "email", ve.Field)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := map[string]string{
		"89142870753":         "89142870753",
		"8 (914) 287-07-53":   "8 (914) 287-07-53",
		"+7 914 287 0753":     "+7 914 287 0753",
		"tel: 8 914 287 0753": "8 914 287 0753",
	}
	for in, want := range valid {
		got, err := ValidatePhone(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	invalid := []string{"", "12345", "+7 (914) 28", "phone number please"}
	for _, in := range invalid {
		_, err := ValidatePhone(in)
		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve), "expected ValidationError for %q", in)
	}
}

func TestValidatePhone_TruncatesBeforeCounting(t *testing.T) {
	// ten digits overall, but the first 20 characters only hold seven
	_, err := ValidatePhone("1--2--3--4--5--6--7--8--9--0")
	assert.Error(t, err)
}

func TestValidatePhone_FewDigitsProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("fewer than 10 digits always fails", prop.ForAll(
		func(digits int, noise string) bool {
			var b strings.Builder
			for i := 0; i < digits; i++ {
				b.WriteByte(byte('0' + i%10))
				if i < len(noise) {
					b.WriteByte(noise[i])
				}
			}
			b.WriteString(noise)
			_, err := ValidatePhone(b.String())
			return err != nil
		},
		gen.IntRange(0, MinPhoneDigits-1),
		gen.AlphaString(),
	))

	properties.Property("10 to 20 bare digits always pass", prop.ForAll(
		func(n int) bool {
			phone := strings.Repeat("7", n)
			got, err := ValidatePhone(phone)
			return err == nil && got == phone
		},
		gen.IntRange(MinPhoneDigits, MaxPhoneLength),
	))

	properties.TestingRun(t)
}

func TestCheckLength(t *testing.T) {
	got, err := CheckLength("name", "  Ann  ", MinNameLength, MaxNameLength)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got)

	_, err = CheckLength("name", "   ", MinNameLength, MaxNameLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "не может быть пустым")

	_, err = CheckLength("name", "A", MinNameLength, MaxNameLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2")

	_, err = CheckLength("comment", strings.Repeat("ы", MaxCommentLength+1), 0, MaxCommentLength)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2000")

	got, err = CheckLength("comment", strings.Repeat("ы", MaxCommentLength), 0, MaxCommentLength)
	require.NoError(t, err)
	assert.Len(t, []rune(got), MaxCommentLength)

	got, err = CheckLength("organization", "", 0, MaxOrganizationLength)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequireConsent(t *testing.T) {
	assert.NoError(t, RequireConsent(true))
	err := RequireConsent(false)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "agree", ve.Field)
}

func TestFilterFields(t *testing.T) {
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Новый курс",
		"published": false,
		"author": null,
		"id": "hijack",
		"created_at": "2020-01-01"
	}`), &raw))

	kept, dropped, err := FilterFields(raw, NewsUpdateFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at", "id"}, dropped)
	assert.Len(t, kept, 3)
	assert.Contains(t, kept, "title")
	assert.Contains(t, kept, "published")
	assert.Contains(t, kept, "author")
}

func TestFilterFields_NonTextValue(t *testing.T) {
	raw := map[string]json.RawMessage{"title": json.RawMessage(`{"$ne": ""}`)}
	_, _, err := FilterFields(raw, NewsUpdateFields)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}
