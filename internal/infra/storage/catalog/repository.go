package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/pkg/dbmetrics"
	"github.com/avdmit/MDC-AvailabilityService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога: услуги и их привязки к специалистам.
// Для движка доступности каталог read-only - управление им живет
// в административном сервисе платформы.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"default_duration_minutes",
		"base_price",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DefaultDurationMinutes,
		&service.BasePrice,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetOffering получает привязку услуги к специалисту.
// Возвращает ErrOfferingNotFound, если специалист не оказывает услугу -
// это бизнес-ошибка "not configured", а не внутренняя.
func (r *Repository) GetOffering(ctx context.Context, professionalID, serviceID int64) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"service_id",
		"duration_minutes",
		"price",
		"monday",
		"tuesday",
		"wednesday",
		"thursday",
		"friday",
		"saturday",
		"sunday",
		"created_at",
		"updated_at",
	).
		From("service_offerings").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOffering - build select query: %v", ErrBuildQuery, err)
	}

	var offering domain.ServiceOffering
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offering.ID,
		&offering.ProfessionalID,
		&offering.ServiceID,
		&offering.DurationMinutes,
		&offering.Price,
		&offering.Weekdays.Monday,
		&offering.Weekdays.Tuesday,
		&offering.Weekdays.Wednesday,
		&offering.Weekdays.Thursday,
		&offering.Weekdays.Friday,
		&offering.Weekdays.Saturday,
		&offering.Weekdays.Sunday,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffering - scan offering: %v", ErrScanRow, err)
	}

	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time

	return &offering, nil
}
