package create_appointment

import (
	"context"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	"github.com/avdmit/MDC-AvailabilityService/internal/usecase/validate_slot"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// SlotValidator интерфейс финальной проверки слота.
// Вызывается внутри сериализуемой транзакции: снимок занятости читается
// с блокировкой строк, и два конкурентных бронирования одного слота
// не могут пройти проверку одновременно
type SlotValidator interface {
	Execute(ctx context.Context, req *validate_slot.Request) (*validate_slot.Response, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
	GetOffering(ctx context.Context, professionalID, serviceID int64) (*domain.ServiceOffering, error)
}

// DirectoryClient интерфейс клиента справочника платформы
type DirectoryClient interface {
	GetProfessional(ctx context.Context, professionalID int64) (*directory.Professional, error)
	GetPatientWithGracefulDegradation(ctx context.Context, patientID int64) (*directory.Patient, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
