package usecase

import (
	"strings"
	"unicode"
)

// cleanUtterance lowercases the text and strips punctuation, keeping letters,
// digits and spaces. Transcripts arrive with stray punctuation that would
// defeat whole-word matching.
func cleanUtterance(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
