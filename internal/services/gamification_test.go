package services

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp        int
		wantLevel int
		wantTitle string
		wantNext  int
	}{
		{0, 1, "Novice", 50},
		{40, 1, "Novice", 50},
		{50, 2, "Viewer", 150},
		{149, 2, "Viewer", 150},
		{150, 3, "Enthusiast", 300},
		{600, 5, "Expert", 1000},
		{1000, 6, "Legend", 1000},
		{5000, 6, "Legend", 5000},
	}
	for _, tc := range cases {
		got := levelForXP(tc.xp)
		if got.Level != tc.wantLevel || got.Title != tc.wantTitle {
			t.Fatalf("xp=%d: expected level %d (%s), got %d (%s)", tc.xp, tc.wantLevel, tc.wantTitle, got.Level, got.Title)
		}
		if got.NextLevelXP != tc.wantNext {
			t.Fatalf("xp=%d: expected next threshold %d, got %d", tc.xp, tc.wantNext, got.NextLevelXP)
		}
		if got.CurrentXP != tc.xp {
			t.Fatalf("xp=%d: CurrentXP mismatch: %d", tc.xp, got.CurrentXP)
		}
	}
}
