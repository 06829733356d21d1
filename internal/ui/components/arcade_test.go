package components

import (
	"strings"
	"testing"
)

func TestContentWidth(t *testing.T) {
	tests := []struct {
		frame, want int
	}{
		{10, minContentWidth},
		{50, 44},
		{200, maxContentWidth},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.frame); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}

func TestArcadeCardTitle(t *testing.T) {
	out := ArcadeCard("Day 2026-03-01", "body", 40)
	if !strings.Contains(out, "Day 2026-03-01") || !strings.Contains(out, "body") {
		t.Errorf("card missing title or body: %q", out)
	}
}

func TestArcadeButtonMarksSelection(t *testing.T) {
	if !strings.Contains(ArcadeButton("PRACTICE", true, 22), "▸") {
		t.Error("selected button should carry the marker")
	}
	if strings.Contains(ArcadeButton("PRACTICE", false, 22), "▸") {
		t.Error("idle button should not carry the marker")
	}
}
