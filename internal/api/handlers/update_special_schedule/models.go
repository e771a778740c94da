package update_special_schedule

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/internal/service/schedule/models"
)

// UpdateSpecialScheduleRequest HTTP request model.
// Пустой список entries закрывает день для записи
type UpdateSpecialScheduleRequest struct {
	Date    string                     `json:"date"` // "2026-09-08"
	Entries []models.SpecialEntryInput `json:"entries"`
}

// ToServiceRequest собирает запрос сервиса, добавляя идентификаторы из URL и контекста
func (r *UpdateSpecialScheduleRequest) ToServiceRequest(userID, professionalID int64) (*models.UpdateSpecialScheduleRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.UpdateSpecialScheduleRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
		Date:           date,
		Entries:        r.Entries,
	}, nil
}
