package validate_slot

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	validateSlot "github.com/avdmit/MDC-AvailabilityService/internal/usecase/validate_slot"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// ValidateSlotRequest HTTP request model
type ValidateSlotRequest struct {
	ProfessionalID       int64  `json:"professionalId"`
	ServiceID            int64  `json:"serviceId"`
	Date                 string `json:"date"`      // "2026-09-08"
	StartTime            string `json:"startTime"` // "10:00"
	ExcludeAppointmentID *int64 `json:"excludeAppointmentId,omitempty"`
}

// ValidateSlotResponse HTTP response model
type ValidateSlotResponse struct {
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateSlotRequest) ToUseCaseRequest() (*validateSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &validateSlot.Request{
		ProfessionalID:       r.ProfessionalID,
		ServiceID:            r.ServiceID,
		Date:                 date,
		StartTime:            startTime,
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateSlot.Response) *ValidateSlotResponse {
	return &ValidateSlotResponse{
		Available:       resp.Available,
		Reason:          string(resp.Reason),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
	}
}
