package domain

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// AvailabilityWindow is one open interval in a professional's weekly schedule.
// A professional may have several windows on the same weekday (split shifts).
type AvailabilityWindow struct {
	ID             int64
	ProfessionalID int64
	Weekday        time.Weekday
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// Range converts the window to minute-of-day interval form
func (w *AvailabilityWindow) Range() (MinuteRange, error) {
	return NewMinuteRange(w.StartTime, w.EndTime)
}

// IsValid reports whether the window has a positive length
func (w *AvailabilityWindow) IsValid() bool {
	return !w.StartTime.IsZero() && !w.EndTime.IsZero() && w.StartTime.IsBefore(w.EndTime)
}

// SpecialSchedule is a date-specific override of the regular weekly windows
// (holiday hours, one-off exceptions). When at least one entry exists for a
// date, the entries are authoritative for booking-time validation on that
// date and the weekly windows are ignored.
type SpecialSchedule struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
}

// Range converts the entry to minute-of-day interval form
func (s *SpecialSchedule) Range() (MinuteRange, error) {
	return NewMinuteRange(s.StartTime, s.EndTime)
}
