package discount

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		occasion string
		want     float64
	}{
		{"empty", "", 0},
		{"no match", "business trip", 0},
		{"honeymoon", "honeymoon", 15},
		{"honeymoon embedded", "our Honeymoon getaway", 15},
		{"birthday", "birthday", 10},
		{"anniversary", "10th anniversary", 12},
		{"wedding", "wedding night", 20},
		{"special", "something special", 8},
		{"celebration", "family celebration", 8},
		{"case insensitive", "BIRTHDAY", 10},
		{"first match wins", "honeymoon and birthday", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.occasion); got != tt.want {
				t.Errorf("Percent(%q) = %v, want %v", tt.occasion, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	q := Preview(300, "honeymoon")
	if q.Percent != 15 {
		t.Errorf("percent = %v, want 15", q.Percent)
	}
	if q.Amount != 45 {
		t.Errorf("amount = %v, want 45", q.Amount)
	}
	if q.FinalPrice != 255 {
		t.Errorf("final = %v, want 255", q.FinalPrice)
	}
}

func TestPreviewNoFloorClamp(t *testing.T) {
	// Preview intentionally ignores the room's price floor; only Book clamps.
	q := Preview(300, "wedding")
	if q.FinalPrice != 240 {
		t.Errorf("final = %v, want 240", q.FinalPrice)
	}
}
