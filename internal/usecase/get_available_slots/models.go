package get_available_slots

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID       int64     // ID специалиста
	ServiceID            int64     // ID услуги
	Date                 time.Time // Дата для получения слотов (без времени)
	ExcludeAppointmentID *int64    // Исключить запись из занятости (редактирование своей записи)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ProfessionalID  int64     // ID специалиста
	ServiceID       int64     // ID услуги
	DurationMinutes int       // Эффективная длительность услуги
	Slots           []Slot    // Список слотов по возрастанию времени начала
}

// Slot модель кандидатного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания слота
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Слот свободен (генератор выдает только свободные)
}
