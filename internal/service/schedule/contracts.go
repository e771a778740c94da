package schedule

import (
	"context"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetAllWindows(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error)
	ReplaceWindows(ctx context.Context, professionalID int64, windows []*domain.AvailabilityWindow) error
	GetSpecialForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.SpecialSchedule, error)
	ReplaceSpecialForDate(ctx context.Context, professionalID int64, date time.Time, entries []*domain.SpecialSchedule) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
