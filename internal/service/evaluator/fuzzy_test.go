package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "namaste", normalize("  Namaste "))
	assert.Equal(t, "main thik hoon", normalize("Main  Thik Hoon"))
}

func TestSimplifyRomanization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"naam", "nam"},
		{"theek", "tik"},
		{"achchha", "achcha"},
		{"khushi", "kusi"},
		{"ghar", "gar"},
		{"bhai", "bai"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, simplifyRomanization(tt.in), "input %q", tt.in)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"kitten", "sitting", 3},
		{"pani", "paani", 1},
		{"ghar", "ghar", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance(tt.s1, tt.s2), "%q vs %q", tt.s1, tt.s2)
	}
}

func TestFuzzyMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		answer   string
		expected string
		want     bool
	}{
		{"exact match", "namaste", "namaste", true},
		{"case and whitespace", " Namaste ", "namaste", true},
		{"romanization variant", "chota", "chhota", true},
		{"long vowel variant", "pani", "paani", true},
		{"one typo on short word", "ghal", "ghar", true},
		{"two typos on short word", "gcal", "ghar", false},
		{"two typos on long word", "mausame acha", "mausam achha hai", false},
		{"unrelated", "kutta", "billi", false},
		{"one typo on short devanagari word", "छोटी", "छोटा", true},
		{"two typos on short devanagari word", "छाटी", "छोटा", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fuzzyMatch(tt.answer, tt.expected))
		})
	}
}
