package domain

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// CandidateSlot represents a bookable time window of exactly the service's
// effective duration. Computed fresh per query, never persisted.
type CandidateSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       bool
}

// SlotQuery identifies one availability question: which slots can this
// professional offer for this service on this date. ExcludeAppointmentID
// lets an in-progress edit ignore its own prior occupancy.
type SlotQuery struct {
	ProfessionalID       int64
	ServiceID            int64
	Date                 time.Time
	ExcludeAppointmentID *int64
}

// ValidationReason explains why a candidate slot was rejected at booking time
type ValidationReason string

const (
	// ReasonConflict - кандидат пересекается с существующей активной записью
	ReasonConflict ValidationReason = "CONFLICT"
	// ReasonOutsideHours - кандидат не покрыт ни одним рабочим окном
	ReasonOutsideHours ValidationReason = "OUTSIDE_HOURS"
)
