package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/internal/service/schedule/models"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

type repoMock struct {
	windows    []*domain.AvailabilityWindow
	special    []*domain.SpecialSchedule
	getErr     error
	replaceErr error

	replacedWindows []*domain.AvailabilityWindow
	replacedSpecial []*domain.SpecialSchedule
	replacedDate    time.Time
}

func (m *repoMock) GetAllWindows(_ context.Context, _ int64) ([]*domain.AvailabilityWindow, error) {
	return m.windows, m.getErr
}

func (m *repoMock) ReplaceWindows(_ context.Context, _ int64, windows []*domain.AvailabilityWindow) error {
	m.replacedWindows = windows
	m.windows = windows
	return m.replaceErr
}

func (m *repoMock) GetSpecialForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.SpecialSchedule, error) {
	return m.special, m.getErr
}

func (m *repoMock) ReplaceSpecialForDate(_ context.Context, _ int64, date time.Time, entries []*domain.SpecialSchedule) error {
	m.replacedSpecial = entries
	m.replacedDate = date
	m.special = entries
	return m.replaceErr
}

type txManagerMock struct {
	called bool
}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.called = true
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetSchedule(t *testing.T) {
	repo := &repoMock{
		windows: []*domain.AvailabilityWindow{
			{ID: 1, Weekday: time.Monday, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("13:00")},
			{ID: 2, Weekday: time.Monday, StartTime: types.TimeString("14:00"), EndTime: types.TimeString("18:00")},
		},
	}
	svc := NewService(repo, &txManagerMock{}, nopLogger{})

	resp, err := svc.GetSchedule(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, 1, resp.Windows[0].Weekday)
	assert.Equal(t, "09:00", resp.Windows[0].StartTime)
}

func TestUpdateSchedule_ReplacesInsideTransaction(t *testing.T) {
	repo := &repoMock{}
	tx := &txManagerMock{}
	svc := NewService(repo, tx, nopLogger{})

	resp, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		UserID:         10,
		ProfessionalID: 10,
		Windows: []models.WindowInput{
			{Weekday: 1, StartTime: "09:00", EndTime: "13:00"},
			{Weekday: 3, StartTime: "10:00", EndTime: "14:00"},
		},
	})

	require.NoError(t, err)
	assert.True(t, tx.called)
	require.Len(t, repo.replacedWindows, 2)
	assert.Equal(t, time.Wednesday, repo.replacedWindows[1].Weekday)
	assert.Len(t, resp.Windows, 2)
}

func TestUpdateSchedule_ForeignScheduleDenied(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, &txManagerMock{}, nopLogger{})

	_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
		UserID:         99,
		ProfessionalID: 10,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.replacedWindows)
}

func TestUpdateSchedule_InvalidWindows(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, &txManagerMock{}, nopLogger{})

	tests := []struct {
		name   string
		window models.WindowInput
	}{
		{"bad weekday", models.WindowInput{Weekday: 7, StartTime: "09:00", EndTime: "13:00"}},
		{"bad start time", models.WindowInput{Weekday: 1, StartTime: "9:00", EndTime: "13:00"}},
		{"start after end", models.WindowInput{Weekday: 1, StartTime: "14:00", EndTime: "13:00"}},
		{"zero length", models.WindowInput{Weekday: 1, StartTime: "13:00", EndTime: "13:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSchedule(context.Background(), &models.UpdateScheduleRequest{
				UserID:         10,
				ProfessionalID: 10,
				Windows:        []models.WindowInput{tt.window},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateSpecialSchedule_EmptyEntriesClosesDay(t *testing.T) {
	repo := &repoMock{}
	tx := &txManagerMock{}
	svc := NewService(repo, tx, nopLogger{})

	date := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	resp, err := svc.UpdateSpecialSchedule(context.Background(), &models.UpdateSpecialScheduleRequest{
		UserID:         10,
		ProfessionalID: 10,
		Date:           date,
		Entries:        nil,
	})

	require.NoError(t, err)
	assert.True(t, tx.called)
	assert.Empty(t, resp.Entries)
	assert.Equal(t, date, repo.replacedDate)
}

func TestUpdateSpecialSchedule_ReplacesEntries(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, &txManagerMock{}, nopLogger{})

	resp, err := svc.UpdateSpecialSchedule(context.Background(), &models.UpdateSpecialScheduleRequest{
		UserID:         10,
		ProfessionalID: 10,
		Date:           time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		Entries: []models.SpecialEntryInput{
			{StartTime: "09:00", EndTime: "12:00"},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "09:00", resp.Entries[0].StartTime)
	assert.Equal(t, "12:00", resp.Entries[0].EndTime)
}

func TestUpdateSpecialSchedule_MissingDate(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, &txManagerMock{}, nopLogger{})

	_, err := svc.UpdateSpecialSchedule(context.Background(), &models.UpdateSpecialScheduleRequest{
		UserID:         10,
		ProfessionalID: 10,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
