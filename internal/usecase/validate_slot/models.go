package validate_slot

import (
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// Request модель запроса на проверку доступности слота
type Request struct {
	ProfessionalID       int64            // ID специалиста
	ServiceID            int64            // ID услуги
	Date                 time.Time        // Дата слота (без времени)
	StartTime            types.TimeString // Время начала слота
	ExcludeAppointmentID *int64           // Исключить запись из занятости (редактирование своей записи)
}

// Response модель результата проверки слота
type Response struct {
	Available       bool                    // Слот доступен для записи
	Reason          domain.ValidationReason // Причина отказа (пустая при Available=true)
	StartTime       types.TimeString        // Время начала проверенного слота
	EndTime         types.TimeString        // Время окончания проверенного слота
	DurationMinutes int                     // Эффективная длительность услуги
}
