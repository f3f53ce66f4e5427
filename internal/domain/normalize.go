package domain

import (
	"strings"
)

// NormalizeText prepares text for storage keys and case-insensitive
// comparison: trims whitespace, lowercases, and compresses runs of spaces.
// Umlauts and ß are preserved — "Äpfel" and "äpfel" normalize to the same
// key, but "Äpfel" and "Apfel" stay distinct.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	if !strings.Contains(text, "  ") {
		return text
	}
	return strings.Join(strings.Fields(text), " ")
}
