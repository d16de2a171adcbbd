package evaluator

import (
	"strings"
	"unicode/utf8"
)

// romanizationPairs maps common romanization variants to a canonical
// spelling. Order matters: "chh" must collapse before "ch" would be split
// by the "h"-digraph rules, and long vowels before their short forms.
var romanizationPairs = []struct {
	from string
	to   string
}{
	{"aa", "a"},
	{"ee", "i"},
	{"oo", "u"},
	{"sh", "s"},
	{"th", "t"},
	{"dh", "d"},
	{"bh", "b"},
	{"ph", "f"},
	{"kh", "k"},
	{"gh", "g"},
	{"chh", "ch"},
}

// normalize prepares text for comparison: lowercase, trimmed, with
// doubled spaces collapsed.
func normalize(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(text)), "  ", " ")
}

// simplifyRomanization folds aspirated consonants and long vowels to a
// canonical form so "chhota" and "chota" compare equal.
func simplifyRomanization(text string) string {
	result := text
	for _, pair := range romanizationPairs {
		result = strings.ReplaceAll(result, pair.from, pair.to)
	}
	return result
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) < len(r2) {
		r1, r2 = r2, r1
	}
	if len(r2) == 0 {
		return len(r1)
	}

	previous := make([]int, len(r2)+1)
	for j := range previous {
		previous[j] = j
	}

	for i, c1 := range r1 {
		current := make([]int, 0, len(r2)+1)
		current = append(current, i+1)
		for j, c2 := range r2 {
			insertions := previous[j+1] + 1
			deletions := current[j] + 1
			substitutions := previous[j]
			if c1 != c2 {
				substitutions++
			}
			current = append(current, min(insertions, deletions, substitutions))
		}
		previous = current
	}

	return previous[len(r2)]
}

// fuzzyMatch reports whether the answer matches the expected text allowing
// for romanization variants and minor typos. Short expected answers get a
// tighter edit-distance budget than long ones.
func fuzzyMatch(answer, expected string) bool {
	answerNorm := normalize(answer)
	expectedNorm := normalize(expected)

	if answerNorm == expectedNorm {
		return true
	}

	if simplifyRomanization(answerNorm) == simplifyRomanization(expectedNorm) {
		return true
	}

	// Character count, not byte count: Devanagari answers are multi-byte
	// and must get the same budget as equally short romanized ones.
	if utf8.RuneCountInString(expectedNorm) <= 6 {
		return levenshteinDistance(answerNorm, expectedNorm) <= 1
	}
	return levenshteinDistance(answerNorm, expectedNorm) <= 2
}
