package domain

import "github.com/avdmit/MDC-AvailabilityService/pkg/types"

// MinuteRange is a half-open [Start, End) interval of minutes from midnight.
// All interval arithmetic in the availability engine happens on this type.
type MinuteRange struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals actually intersect.
// Touching intervals ([a,b) and [b,c)) do NOT overlap.
func (r MinuteRange) Overlaps(other MinuteRange) bool {
	return r.Start < other.End && r.End > other.Start
}

// Contains reports whether other lies fully inside r
func (r MinuteRange) Contains(other MinuteRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Duration returns the interval length in minutes
func (r MinuteRange) Duration() int {
	return r.End - r.Start
}

// IsValid reports whether the interval is non-empty and within a single day
func (r MinuteRange) IsValid() bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= 24*60
}

// NewMinuteRange builds a MinuteRange from two times of day
func NewMinuteRange(start, end types.TimeString) (MinuteRange, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return MinuteRange{}, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return MinuteRange{}, err
	}
	return MinuteRange{Start: startMin, End: endMin}, nil
}

// BusyInterval is an occupied time range on a professional's day, derived
// from an active appointment or a manual block. Read-only for the engine.
type BusyInterval struct {
	Range MinuteRange
}

// MaxOverlappingEnd returns the latest end among busy intervals overlapping
// the candidate range, and whether any overlap was found. The scanner jumps
// the cursor to this value to skip past an obstruction in one step.
func MaxOverlappingEnd(candidate MinuteRange, busy []BusyInterval) (int, bool) {
	maxEnd := 0
	found := false
	for _, b := range busy {
		if candidate.Overlaps(b.Range) && b.Range.End > maxEnd {
			maxEnd = b.Range.End
			found = true
		}
	}
	return maxEnd, found
}

// OverlapsAny reports whether the candidate range intersects any busy interval
func OverlapsAny(candidate MinuteRange, busy []BusyInterval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b.Range) {
			return true
		}
	}
	return false
}
