package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	catalogRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/catalog"
	directoryClient "github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	"github.com/avdmit/MDC-AvailabilityService/internal/usecase/validate_slot"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotValidator   SlotValidator
	catalogRepo     CatalogRepository
	directory       DirectoryClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotValidator SlotValidator,
	catalogRepo CatalogRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotValidator:   slotValidator,
		catalogRepo:     catalogRepo,
		directory:       directory,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи на приём.
// Финальная проверка слота и вставка выполняются в одной сериализуемой
// транзакции: из двух конкурентных бронирований одного слота фиксируется
// ровно одно, второе получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, professional=%d, service=%d, date=%s, time=%s",
		req.PatientID, req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись на прошедшую дату не создаём
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование специалиста
	if _, err := uc.directory.GetProfessional(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, directoryClient.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 4. Получаем услугу и привязку для денормализации имени, цены и длительности
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	offering, err := uc.catalogRepo.GetOffering(ctx, req.ProfessionalID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOfferingNotFound) {
			uc.logger.Warn("CreateAppointment: professional id=%d does not offer service id=%d",
				req.ProfessionalID, req.ServiceID)
			return nil, ErrServiceNotOffered
		}
		uc.logger.Error("CreateAppointment: failed to get offering: %v", err)
		return nil, fmt.Errorf("%w: failed to get offering: %v", ErrInternal, err)
	}

	// 5. Получаем имя пациента с graceful degradation: при недоступности
	// справочника запись создаётся без денормализованного имени
	patientName, err := uc.resolvePatientName(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	var result *domain.Appointment

	// 6. Проверка слота и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Финальная проверка: снимок занятости читается с блокировкой строк
		verdict, err := uc.slotValidator.Execute(txCtx, &validate_slot.Request{
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			Date:           req.Date,
			StartTime:      req.StartTime,
		})
		if err != nil {
			return uc.mapValidatorError(err)
		}

		if !verdict.Available {
			uc.logger.Warn("CreateAppointment: slot %s rejected, reason=%s", req.StartTime, verdict.Reason)
			switch verdict.Reason {
			case domain.ReasonConflict:
				return ErrSlotConflict
			case domain.ReasonOutsideHours:
				return ErrOutsideWorkingHours
			default:
				return fmt.Errorf("%w: unexpected validation reason %q", ErrInternal, verdict.Reason)
			}
		}

		// 6.2. Создаём запись с денормализацией данных услуги и пациента
		appointment := &domain.Appointment{
			PatientID:       req.PatientID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: verdict.DurationMinutes,
			Status:          domain.StatusScheduled,
			ServiceName:     service.Name,
			ServicePrice:    offering.EffectivePrice(service),
			PatientName:     patientName,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	endTime, err := result.StartTime.AddMinutes(result.DurationMinutes)
	if err != nil {
		// Слот прошёл проверку рабочих часов, конец не может выйти за сутки
		uc.logger.Error("CreateAppointment: failed to render end time for appointment id=%d: %v", result.ID, err)
		return nil, fmt.Errorf("%w: failed to render end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		PatientID:       result.PatientID,
		ProfessionalID:  result.ProfessionalID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		PatientName:     result.PatientName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolvePatientName возвращает имя пациента из справочника.
// При недоступности справочника возвращает nil без ошибки
func (uc *UseCase) resolvePatientName(ctx context.Context, patientID int64) (*string, error) {
	patient, err := uc.directory.GetPatientWithGracefulDegradation(ctx, patientID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", patientID)
			return nil, ErrPatientNotFound
		}
		if errors.Is(err, directoryClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateAppointment: directory degraded, creating appointment without patient name")
			return nil, nil
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	return &patient.FullName, nil
}

// mapValidatorError транслирует ошибки проверки слота в ошибки этого usecase
func (uc *UseCase) mapValidatorError(err error) error {
	switch {
	case errors.Is(err, validate_slot.ErrProfessionalNotFound):
		return ErrProfessionalNotFound
	case errors.Is(err, validate_slot.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, validate_slot.ErrServiceNotOffered):
		return ErrServiceNotOffered
	case errors.Is(err, validate_slot.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: slot validation failed: %v", err)
		return fmt.Errorf("%w: slot validation failed: %v", ErrInternal, err)
	}
}
