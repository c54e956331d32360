package utils

// Snippet returns s truncated to maxLen characters with "..." appended when
// truncated. Newlines are flattened to spaces so the result fits on one line.
// Truncation counts runes, not bytes, so multi-byte text is never split
// mid-character. If maxLen is 0 or negative, s is returned unchanged
// (newlines still flattened).
func Snippet(s string, maxLen int) string {
	flat := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		flat = append(flat, r)
	}
	if maxLen <= 0 || len(flat) <= maxLen {
		return string(flat)
	}
	return string(flat[:maxLen]) + "..."
}
