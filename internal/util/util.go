// internal/util/util.go
package util

import (
	"unicode/utf8"
)

// TitleBool renders a boolean in the "True"/"False" form the benchmark
// entrypoint script expects.
func TitleBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}
