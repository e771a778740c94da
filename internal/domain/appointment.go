package domain

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled          AppointmentStatus = "scheduled"
	StatusConfirmed          AppointmentStatus = "confirmed"
	StatusCompleted          AppointmentStatus = "completed"
	StatusCancelledByPatient AppointmentStatus = "cancelled_by_patient"
	StatusCancelledByClinic  AppointmentStatus = "cancelled_by_clinic"
	StatusNoShow             AppointmentStatus = "no_show"
)

// Appointment represents a booked visit of a patient to a professional
type Appointment struct {
	ID              int64
	PatientID       int64
	ProfessionalID  int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	PatientName  *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByPatient &&
		a.Status != StatusCancelledByClinic &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByPatient || a.Status == StatusCancelledByClinic
}

// BusyRange converts the appointment to its occupied minute interval
func (a *Appointment) BusyRange() (MinuteRange, error) {
	start, err := a.StartTime.Minutes()
	if err != nil {
		return MinuteRange{}, err
	}
	return MinuteRange{Start: start, End: start + a.DurationMinutes}, nil
}

// ProfessionalAppointmentsFilter фильтр для выборки записей специалиста
type ProfessionalAppointmentsFilter struct {
	ProfessionalID  int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	ExcludeID       *int64             // Исключить запись по ID (для редактирования своей записи)
	IncludeInactive bool               // Включать ли отменённые и no-show записи
}
