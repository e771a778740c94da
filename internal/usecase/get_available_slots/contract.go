package get_available_slots

import (
	"context"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
)

// AppointmentRepository интерфейс репозитория записей (Occupancy Loader)
type AppointmentRepository interface {
	// GetActiveForProfessionalOnDate получает снимок занятости специалиста на дату
	GetActiveForProfessionalOnDate(ctx context.Context, professionalID int64, date time.Time, excludeID *int64) ([]*domain.Appointment, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	// GetWindowsForWeekday получает рабочие окна специалиста на день недели, отсортированные по началу
	GetWindowsForWeekday(ctx context.Context, professionalID int64, weekday time.Weekday) ([]*domain.AvailabilityWindow, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	GetOffering(ctx context.Context, professionalID, serviceID int64) (*domain.ServiceOffering, error)
}

// DirectoryClient интерфейс клиента справочника специалистов
type DirectoryClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*directory.Professional, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
