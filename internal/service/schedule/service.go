package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/avdmit/MDC-AvailabilityService/internal/service/schedule/models"
)

// Service сервис для управления расписаниями специалистов.
// Недельные окна и особые расписания - конфигурация движка доступности:
// генератор слотов и проверка конфликтов читают их, этот сервис их изменяет
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule получает недельное расписание специалиста
// Публичный метод - расписание видно всем для выбора времени записи
func (s *Service) GetSchedule(ctx context.Context, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for professional=%d", professionalID)

	windows, err := s.scheduleRepo.GetAllWindows(ctx, professionalID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched %d windows for professional=%d", len(windows), professionalID)
	return models.FromDomainWindows(professionalID, windows), nil
}

// UpdateSchedule полностью заменяет недельное расписание специалиста.
// Замена выполняется в сериализуемой транзакции: конкурентное создание записи
// не увидит наполовину заменённое расписание.
// Специалист изменяет только собственное расписание
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: replacing schedule for professional=%d with %d windows by user=%d",
		req.ProfessionalID, len(req.Windows), req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to professional=%d schedule",
			req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	windows, err := req.ToDomainWindows()
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid windows for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWindows(txCtx, req.ProfessionalID, windows)
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully replaced schedule for professional=%d", req.ProfessionalID)
	return s.GetSchedule(ctx, req.ProfessionalID)
}

// GetSpecialSchedule получает особое расписание специалиста на дату
// Публичный метод
func (s *Service) GetSpecialSchedule(ctx context.Context, professionalID int64, date time.Time) (*models.SpecialScheduleResponse, error) {
	s.logger.Info("GetSpecialSchedule: fetching special schedule for professional=%d, date=%s",
		professionalID, date.Format("2006-01-02"))

	entries, err := s.scheduleRepo.GetSpecialForDate(ctx, professionalID, date)
	if err != nil {
		s.logger.Error("GetSpecialSchedule: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetSpecialSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSpecialSchedule: successfully fetched %d entries for professional=%d",
		len(entries), professionalID)
	return models.FromDomainSpecialSchedules(professionalID, date, entries), nil
}

// UpdateSpecialSchedule полностью заменяет особое расписание специалиста на дату.
// Пустой список окон означает "в этот день приёма нет" - при проверке слота
// особое расписание авторитетно и перекрывает недельные окна.
// Специалист изменяет только собственное расписание
func (s *Service) UpdateSpecialSchedule(ctx context.Context, req *models.UpdateSpecialScheduleRequest) (*models.SpecialScheduleResponse, error) {
	s.logger.Info("UpdateSpecialSchedule: replacing special schedule for professional=%d, date=%s, entries=%d by user=%d",
		req.ProfessionalID, req.Date.Format("2006-01-02"), len(req.Entries), req.UserID)

	if req.UserID != req.ProfessionalID {
		s.logger.Warn("UpdateSpecialSchedule: access denied for user=%d to professional=%d schedule",
			req.UserID, req.ProfessionalID)
		return nil, ErrAccessDenied
	}

	if req.Date.IsZero() {
		s.logger.Warn("UpdateSpecialSchedule: missing date for professional=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	entries, err := req.ToDomainEntries()
	if err != nil {
		s.logger.Warn("UpdateSpecialSchedule: invalid entries for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceSpecialForDate(txCtx, req.ProfessionalID, req.Date, entries)
	})
	if err != nil {
		s.logger.Error("UpdateSpecialSchedule: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: UpdateSpecialSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSpecialSchedule: successfully replaced special schedule for professional=%d, date=%s",
		req.ProfessionalID, req.Date.Format("2006-01-02"))

	return s.GetSpecialSchedule(ctx, req.ProfessionalID, req.Date)
}
