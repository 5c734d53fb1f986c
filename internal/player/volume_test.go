package player

import (
	"math"
	"testing"
)

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level      float64
		wantVolume float64
		wantSilent bool
	}{
		{1, 0, false},
		{1.5, 0, false},
		{0.5, -1, false},
		{0.25, -2, false},
		{0, -10, true},
		{-1, -10, true},
	}

	for _, tt := range tests {
		vol, silent := levelToVolume(tt.level)
		if math.Abs(vol-tt.wantVolume) > 1e-9 || silent != tt.wantSilent {
			t.Errorf("levelToVolume(%v) = %v, %v; want %v, %v",
				tt.level, vol, silent, tt.wantVolume, tt.wantSilent)
		}
	}
}

func TestClampLevel(t *testing.T) {
	for in, want := range map[float64]float64{-0.5: 0, 0.3: 0.3, 2: 1} {
		if got := clampLevel(in); got != want {
			t.Errorf("clampLevel(%v) = %v, want %v", in, got, want)
		}
	}
}
