package create_appointment

import (
	"fmt"
	"time"
)

const maxNotesLength = 1000

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professionalID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, maxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата приёма не в прошлом.
// Сравниваются календарные даты, запись на сегодня разрешена
func validateDate(date, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	requested := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if requested.Before(today) {
		return ErrPastDate
	}

	return nil
}
