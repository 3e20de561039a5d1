package services

import "time"

// IntervalsOverlap reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. The comparisons are strict, so a shift ending
// exactly when another begins does not overlap it.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
