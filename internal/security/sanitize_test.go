package security

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silis/backend/internal/apperr"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"script and operator", "<script>$where</script>", 100, "/script"},
		{"case insensitive", "a$WHERE b $Regex c", 100, "a b  c"},
		{"operators", `{"$gt": 1, "$ne": null}`, 100, "{: 1, : null}"},
		{"javascript scheme", "JavaScript:alert(1)", 100, "alert(1)"},
		{"eval and function", "eval(x) function(y)", 100, "x) y)"},
		{"quotes and brackets", `O'Reilly "quoted" <b>`, 100, "OReilly quoted b"},
		{"truncate then trim", "abcdef   ghi", 8, "abcdef"},
		{"runes not bytes", "Якутск", 3, "Яку"},
		{"no limit", strings.Repeat("x", 2000), 0, strings.Repeat("x", 2000)},
		{"spliced pattern", "$wh$whereere", 100, ""},
		{"spliced by markup", "$wh<ere", 100, ""},
		{"spliced by quote", "$w'here", 100, ""},
		{"plain", "  Анна  ", 100, "Анна"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeText(tc.in, tc.max))
		})
	}
}

func TestSanitizeText_ScriptWithOperator(t *testing.T) {
	out := SanitizeText("<script>$where</script>", 100)
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, "$where")
}

func TestSanitizeValue_RejectsNonText(t *testing.T) {
	_, err := SanitizeValue(42, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	s, err := SanitizeValue("<ok>", 10)
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
}

func TestSanitizeStructure(t *testing.T) {
	in := map[string]any{
		"name<script": "Анна <b>",
		"$where":      "x",
		"count":       3.0,
		"flag":        true,
		"nested": map[string]any{
			"list": []any{"'a'", 1.0, map[string]any{"k": "$ne"}, []any{"<x>"}},
		},
		"social": map[string]string{"vk'": "https://vk.com/\"x\""},
		"phones": []string{"<8 914>"},
	}

	out, ok := SanitizeStructure(in).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "Анна b", out["name"])
	assert.Equal(t, "x", out[""])
	assert.Equal(t, 3.0, out["count"])
	assert.Equal(t, true, out["flag"])

	nested := out["nested"].(map[string]any)
	list := nested["list"].([]any)
	assert.Equal(t, "a", list[0])
	assert.Equal(t, 1.0, list[1])
	assert.Equal(t, map[string]any{"k": ""}, list[2])
	assert.Equal(t, []any{"x"}, list[3])

	assert.Equal(t, map[string]string{"vk": "https://vk.com/x"}, out["social"])
	assert.Equal(t, []string{"8 914"}, out["phones"])
}

func TestSanitizeStructure_KeyCap(t *testing.T) {
	long := strings.Repeat("k", 150)
	out := SanitizeStructure(map[string]any{long: "v"}).(map[string]any)
	for k := range out {
		assert.Equal(t, MaxKeyLength, utf8.RuneCountInString(k))
	}
}

func TestSanitizeJSON_Typed(t *testing.T) {
	type contact struct {
		Email  string            `json:"email"`
		Phones []string          `json:"phones"`
		Social map[string]string `json:"social"`
		ID     int               `json:"id"`
	}
	out, err := SanitizeJSON(contact{
		Email:  "<x@y.com>",
		Phones: []string{"javascript:8 914"},
		Social: map[string]string{"tele<gram>": "'@silis'"},
		ID:     7,
	})
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", out.Email)
	assert.Equal(t, []string{"8 914"}, out.Phones)
	assert.Equal(t, map[string]string{"telegram": "@silis"}, out.Social)
	assert.Equal(t, 7, out.ID)
}

var leakPattern = regexp.MustCompile(`(?i)\$where|\$regex|\$ne|\$gt|\$lt|\$in|\$nin|javascript:|<script|eval\(|function\(`)

func TestSanitizeText_Properties(t *testing.T) {
	fragments := []string{"$", "wh", "ere", "$where", "<", ">", "script", "'", `"`, "ev", "al(", "$n", "e", "in", "java", "script:", "x", " ", "Я"}

	properties := gopter.NewProperties(nil)

	properties.Property("no markup or operator survives", prop.ForAll(
		func(idx []int, max int) bool {
			var b strings.Builder
			for _, i := range idx {
				b.WriteString(fragments[i])
			}
			out := SanitizeText(b.String(), max)
			return !strings.ContainsAny(out, `<>"'`) && !leakPattern.MatchString(out)
		},
		gen.SliceOf(gen.IntRange(0, len(fragments)-1)),
		gen.IntRange(1, 200),
	))

	properties.Property("length never exceeds the cap", prop.ForAll(
		func(s string, max int) bool {
			return utf8.RuneCountInString(SanitizeText(s, max)) <= max
		},
		gen.AnyString(),
		gen.IntRange(1, 50),
	))

	properties.Property("sanitizing twice changes nothing", prop.ForAll(
		func(s string) bool {
			once := SanitizeText(s, DefaultMaxLength)
			return SanitizeText(once, DefaultMaxLength) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
