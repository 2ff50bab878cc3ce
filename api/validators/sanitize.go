package validators

import "strings"

// SanitizeString trims input, collapses internal whitespace runs to one space
// and caps the result at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	clean := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 {
		return clean
	}
	runes := []rune(clean)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return clean
}
