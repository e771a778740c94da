package update_schedule

import (
	"github.com/avdmit/MDC-AvailabilityService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model.
// Список окон полностью заменяет текущее недельное расписание
type UpdateScheduleRequest struct {
	Windows []models.WindowInput `json:"windows"`
}

// ToServiceRequest собирает запрос сервиса, добавляя идентификаторы из URL и контекста
func (r *UpdateScheduleRequest) ToServiceRequest(userID, professionalID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:         userID,
		ProfessionalID: professionalID,
		Windows:        r.Windows,
	}
}
