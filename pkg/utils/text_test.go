package utils

import "testing"

func TestSnippet(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"newlines flattened", "a\nb\tc", 10, "a b c"},
		{"zero maxLen keeps all", "a\nb", 0, "a b"},
		{"multi-byte truncated on rune boundary", "réunion à midi", 9, "réunion à..."},
		{"multi-byte unchanged", "café", 4, "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snippet(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("Snippet(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}
