package validate_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	catalogRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/catalog"
	directoryClient "github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

// UseCase use case для проверки доступности конкретного слота.
// Вызывается и как отдельная read-only операция, и как финальная проверка
// внутри транзакции создания записи - в транзакции снимок занятости читается
// с блокировкой строк, что закрывает гонку между показом и бронированием слота.
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

// Execute выполняет use case проверки слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateSlot: professional=%d, service=%d, date=%s, start=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование специалиста
	if _, err := uc.directory.GetProfessional(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, directoryClient.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("ValidateSlot: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Резолвим эффективную длительность услуги
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Строим кандидатный интервал [start, start+duration)
	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	candidate := domain.MinuteRange{Start: startMinutes, End: startMinutes + duration}

	// Слот, выходящий за полночь, не может попасть ни в одно окно
	if candidate.End > 24*60 {
		return uc.reject(req, candidate, duration, domain.ReasonOutsideHours)
	}

	// 5. Проверка пересечения с существующими записями
	overlaps, err := uc.overlapsExistingAppointments(ctx, req, candidate)
	if err != nil {
		return nil, err
	}
	if overlaps {
		uc.logger.Info("ValidateSlot: slot %s conflicts with an existing appointment", req.StartTime)
		return uc.reject(req, candidate, duration, domain.ReasonConflict)
	}

	// 6. Проверка попадания в рабочие часы
	within, err := uc.withinWorkingHours(ctx, req, candidate)
	if err != nil {
		return nil, err
	}
	if !within {
		uc.logger.Info("ValidateSlot: slot %s is outside working hours", req.StartTime)
		return uc.reject(req, candidate, duration, domain.ReasonOutsideHours)
	}

	return &Response{
		Available:       true,
		StartTime:       req.StartTime,
		EndTime:         renderSlotEnd(candidate),
		DurationMinutes: duration,
	}, nil
}

// resolveDuration возвращает эффективную длительность услуги для пары
// специалист-услуга: переопределение из привязки либо дефолт услуги
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("ValidateSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	offering, err := uc.catalogRepo.GetOffering(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOfferingNotFound) {
			return 0, ErrServiceNotOffered
		}
		uc.logger.Error("ValidateSlot: failed to get offering: %v", err)
		return 0, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	duration := offering.EffectiveDuration(service)
	if duration <= 0 {
		return 0, fmt.Errorf("%w: effective duration must be positive", ErrInvalidInput)
	}

	return duration, nil
}

// overlapsExistingAppointments проверяет пересечение кандидата с активными
// записями специалиста на дату
func (uc *UseCase) overlapsExistingAppointments(ctx context.Context, req *Request, candidate domain.MinuteRange) (bool, error) {
	appointments, err := uc.appointmentRepo.GetActiveForProfessionalOnDate(
		ctx, req.ProfessionalID, req.Date, req.ExcludeAppointmentID)
	if err != nil {
		uc.logger.Error("ValidateSlot: failed to get appointments: %v", err)
		return false, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		busyRange, rangeErr := appt.BusyRange()
		if rangeErr != nil {
			continue
		}
		if candidate.Overlaps(busyRange) {
			return true, nil
		}
	}

	return false, nil
}

// withinWorkingHours проверяет, что кандидат целиком лежит в рабочих часах.
// Особое расписание на дату имеет приоритет: если на дату есть хотя бы одна
// запись особого расписания, недельные окна игнорируются полностью.
func (uc *UseCase) withinWorkingHours(ctx context.Context, req *Request, candidate domain.MinuteRange) (bool, error) {
	special, err := uc.scheduleRepo.GetSpecialForDate(ctx, req.ProfessionalID, req.Date)
	if err != nil {
		uc.logger.Error("ValidateSlot: failed to get special schedule: %v", err)
		return false, fmt.Errorf("%w: failed to get special schedule: %v", ErrInternal, err)
	}

	if len(special) > 0 {
		for _, entry := range special {
			entryRange, rangeErr := entry.Range()
			if rangeErr != nil {
				continue
			}
			if entryRange.Contains(candidate) {
				return true, nil
			}
		}
		return false, nil
	}

	windows, err := uc.scheduleRepo.GetWindowsForWeekday(ctx, req.ProfessionalID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("ValidateSlot: failed to get availability windows: %v", err)
		return false, fmt.Errorf("%w: failed to get availability windows: %v", ErrInternal, err)
	}

	for _, window := range windows {
		windowRange, rangeErr := window.Range()
		if rangeErr != nil {
			continue
		}
		if windowRange.Contains(candidate) {
			return true, nil
		}
	}

	return false, nil
}

func (uc *UseCase) reject(req *Request, candidate domain.MinuteRange, duration int, reason domain.ValidationReason) (*Response, error) {
	return &Response{
		Available:       false,
		Reason:          reason,
		StartTime:       req.StartTime,
		EndTime:         renderSlotEnd(candidate),
		DurationMinutes: duration,
	}, nil
}

// renderSlotEnd возвращает время окончания кандидата в формате HH:MM.
// Для кандидата, выходящего за полночь, возвращает пустое значение,
// такой слот в любом случае отклоняется
func renderSlotEnd(candidate domain.MinuteRange) types.TimeString {
	end, err := types.NewTimeStringFromMinutes(candidate.End)
	if err != nil {
		return ""
	}
	return end
}
