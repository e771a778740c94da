package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/pkg/dbmetrics"
	"github.com/avdmit/MDC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий расписаний: еженедельные рабочие окна специалистов
// и разовые особые графики на конкретные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWindowsForWeekday получает рабочие окна специалиста на день недели,
// отсортированные по времени начала. Порядок детерминирован - от него зависит
// порядок слотов в выдаче генератора.
func (r *Repository) GetWindowsForWeekday(ctx context.Context, professionalID int64, weekday time.Weekday) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"weekday",
		"start_time",
		"end_time",
	).
		From("availability_windows").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"weekday": int(weekday)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsForWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsForWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// GetAllWindows получает все рабочие окна специалиста за неделю
func (r *Repository) GetAllWindows(ctx context.Context, professionalID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"weekday",
		"start_time",
		"end_time",
	).
		From("availability_windows").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// ReplaceWindows атомарно заменяет недельное расписание специалиста.
// Вызывается внутри транзакции (менеджер транзакций кладет её в контекст),
// иначе удаление и вставка выполнятся отдельными запросами.
func (r *Repository) ReplaceWindows(ctx context.Context, professionalID int64, windows []*domain.AvailabilityWindow) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, w := range windows {
		if !w.IsValid() {
			return fmt.Errorf("%w: weekday=%d start=%s end=%s", ErrInvalidWindow, w.Weekday, w.StartTime, w.EndTime)
		}
	}

	delQuery, delArgs, err := psqlbuilder.Delete("availability_windows").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute delete: %v", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_windows").
		Columns("professional_id", "weekday", "start_time", "end_time")

	for _, w := range windows {
		insertBuilder = insertBuilder.Values(professionalID, int(w.Weekday), w.StartTime, w.EndTime)
	}

	insQuery, insArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWindows - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWindows - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSpecialForDate получает особые графики специалиста на конкретную дату,
// отсортированные по времени начала. Пустой результат означает, что на дату
// действует обычное недельное расписание.
func (r *Repository) GetSpecialForDate(ctx context.Context, professionalID int64, date time.Time) ([]*domain.SpecialSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"schedule_date",
		"start_time",
		"end_time",
	).
		From("special_schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"schedule_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSpecialSchedules(rows)
}

// ReplaceSpecialForDate атомарно заменяет особый график специалиста на дату.
// Пустой entries удаляет особый график (дата возвращается к недельному расписанию).
func (r *Repository) ReplaceSpecialForDate(ctx context.Context, professionalID int64, date time.Time, entries []*domain.SpecialSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, e := range entries {
		if e.StartTime.IsZero() || e.EndTime.IsZero() || !e.StartTime.IsBefore(e.EndTime) {
			return fmt.Errorf("%w: date=%s start=%s end=%s", ErrInvalidWindow, date.Format(domain.DateFormat), e.StartTime, e.EndTime)
		}
	}

	delQuery, delArgs, err := psqlbuilder.Delete("special_schedules").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"schedule_date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSpecialForDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSpecialForDate - execute delete: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("special_schedules").
		Columns("professional_id", "schedule_date", "start_time", "end_time")

	for _, e := range entries {
		insertBuilder = insertBuilder.Values(professionalID, date, e.StartTime, e.EndTime)
	}

	insQuery, insArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSpecialForDate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insQuery, insArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSpecialForDate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		var w domain.AvailabilityWindow
		var weekday int

		if err := rows.Scan(&w.ID, &w.ProfessionalID, &weekday, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		w.Weekday = time.Weekday(weekday)
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

func (r *Repository) scanSpecialSchedules(rows *sql.Rows) ([]*domain.SpecialSchedule, error) {
	entries := make([]*domain.SpecialSchedule, 0)

	for rows.Next() {
		var e domain.SpecialSchedule

		if err := rows.Scan(&e.ID, &e.ProfessionalID, &e.Date, &e.StartTime, &e.EndTime); err != nil {
			return nil, fmt.Errorf("%w: scanSpecialSchedules - scan row: %v", ErrScanRow, err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSpecialSchedules - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
