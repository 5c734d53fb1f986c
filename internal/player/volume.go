package player

import "math"

// clampLevel bounds a volume level to [0, 1].
func clampLevel(level float64) float64 {
	return math.Min(math.Max(level, 0), 1)
}

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume value.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> silent.
func levelToVolume(level float64) (volume float64, silent bool) {
	if level <= 0 {
		return -10, true
	}
	if level >= 1 {
		return 0, false
	}
	return math.Log2(level), false
}
