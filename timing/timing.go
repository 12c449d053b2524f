// Package timing converts between ticks, tempo and wall-clock time.
package timing

import "math"

// Millis converts ticks to milliseconds at the given tempo and resolution
// (ticks per quarter note), truncating toward negative infinity. Distinct
// tick counts can land in the same millisecond.
//
// bpm and resolution must be positive; Millis does not check.
func Millis(bpm float64, resolution int, ticks int64) int64 {
	return int64(math.Floor(60_000 * float64(ticks) / (bpm * float64(resolution))))
}

func BPM(mpqn uint32) float64 {
	return 60_000_000 / float64(mpqn)
}

func MPQN(bpm float64) uint32 {
	return uint32(math.Round(60_000_000 / bpm))
}

// Valid reports whether Millis is defined for bpm and resolution.
func Valid(bpm float64, resolution int) bool {
	return bpm > 0 && resolution > 0 && !math.IsInf(bpm, 0) && !math.IsNaN(bpm)
}
