package core

import "testing"

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        float64
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{1, 2, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 11, 9.09},
		{1, 8, 12.5},
		{1, 16, 6.25},
		{1, 200, 0.5},
		{1, 400, 0.25},
		{1, 800, 0.13}, // 0.125 rounds half-up
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}
