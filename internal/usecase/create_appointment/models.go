package create_appointment

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание записи на приём
type Request struct {
	PatientID      int64            // ID пациента
	ProfessionalID int64            // ID специалиста
	ServiceID      int64            // ID услуги
	Date           time.Time        // Дата приёма (без времени)
	StartTime      types.TimeString // Время начала приёма
	Notes          *string          // Комментарий пациента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            `json:"id"`
	PatientID       int64            `json:"patient_id"`
	ProfessionalID  int64            `json:"professional_id"`
	ServiceID       int64            `json:"service_id"`
	Date            time.Time        `json:"date"`
	StartTime       types.TimeString `json:"start_time"`
	EndTime         types.TimeString `json:"end_time"`
	DurationMinutes int              `json:"duration_minutes"`
	Status          string           `json:"status"`
	ServiceName     string           `json:"service_name"`
	ServicePrice    float64          `json:"service_price"`
	PatientName     *string          `json:"patient_name,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
