package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	catalogRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/catalog"
	directoryClient "github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// UseCase use case для получения доступных слотов записи к специалисту.
// Конвейер: резолв рабочих окон -> снимок занятости -> генератор слотов.
// Полностью read-only, безопасен для конкурентных вызовов - снимок занятости
// строится заново на каждый запрос и нигде не кешируется.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	directory       DirectoryClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	directory DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		directory:       directory,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: professional=%d, service=%d, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование специалиста
	if _, err := uc.directory.GetProfessional(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, directoryClient.ErrProfessionalNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Получаем услугу и её привязку к специалисту
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	offering, err := uc.catalogRepo.GetOffering(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOfferingNotFound) {
			uc.logger.Warn("GetAvailableSlots: professional id=%d does not offer service id=%d",
				req.ProfessionalID, req.ServiceID)
			return nil, ErrServiceNotOffered
		}
		uc.logger.Error("GetAvailableSlots: failed to get offering: %v", err)
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	// 4. Вычисляем эффективную длительность (переопределение или дефолт услуги)
	duration := offering.EffectiveDuration(service)
	if duration <= 0 {
		uc.logger.Warn("GetAvailableSlots: non-positive effective duration %d for professional=%d, service=%d",
			duration, req.ProfessionalID, req.ServiceID)
		return nil, fmt.Errorf("%w: effective duration must be positive", ErrInvalidInput)
	}

	// 5. Резолвим рабочие окна на дату
	windows, err := uc.resolveWindows(ctx, req, offering)
	if err != nil {
		return nil, err
	}

	// Специалист не работает в этот день или не оказывает услугу по этому дню
	// недели - валидный пустой результат, не ошибка
	if len(windows) == 0 {
		uc.logger.Info("GetAvailableSlots: no windows for professional=%d, service=%d, date=%s",
			req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, duration), nil
	}

	// 6. Загружаем снимок занятости (один раз на запрос)
	appointments, err := uc.appointmentRepo.GetActiveForProfessionalOnDate(
		ctx, req.ProfessionalID, req.Date, req.ExcludeAppointmentID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	busy := busyIntervalsFromAppointments(appointments)

	// 7. Генерируем слоты
	ranges := scanWindows(windows, duration, busy)

	slots, err := rangesToSlots(ranges, duration)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to convert slot ranges: %v", err)
		return nil, fmt.Errorf("%w: failed to convert slot ranges: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for professional=%d, service=%d, date=%s",
		len(slots), req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}

// resolveWindows возвращает упорядоченный набор базовых рабочих окон на дату:
// недельное расписание, отфильтрованное маской дней недели услуги.
// Пустой результат - валидный ответ "в этот день запись невозможна".
func (uc *UseCase) resolveWindows(ctx context.Context, req *Request, offering *domain.ServiceOffering) ([]*domain.AvailabilityWindow, error) {
	weekday := req.Date.Weekday()

	// Услуга не оказывается по этому дню недели
	if !offering.Weekdays.OfferedOn(weekday) {
		return nil, nil
	}

	windows, err := uc.scheduleRepo.GetWindowsForWeekday(ctx, req.ProfessionalID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get windows for professional=%d, weekday=%d: %v",
			req.ProfessionalID, weekday, err)
		return nil, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	return windows, nil
}

func (uc *UseCase) emptyResponse(req *Request, duration int) *Response {
	return &Response{
		Date:            req.Date,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}
}

// rangesToSlots конвертирует минутные интервалы в слоты с временем HH:MM
func rangesToSlots(ranges []domain.MinuteRange, duration int) ([]Slot, error) {
	slots := make([]Slot, 0, len(ranges))

	for _, r := range ranges {
		start, err := types.NewTimeStringFromMinutes(r.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromMinutes(r.End)
		if err != nil {
			return nil, err
		}
		slots = append(slots, Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
			Available:       true,
		})
	}

	return slots, nil
}
