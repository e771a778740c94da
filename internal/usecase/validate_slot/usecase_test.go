package validate_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	catalogRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/catalog"
	directoryClient "github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	"github.com/avdmit/MDC-AvailabilityService/pkg/ptr"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

type appointmentRepoMock struct {
	appointments []*domain.Appointment
	err          error

	gotExcludeID *int64
}

func (m *appointmentRepoMock) GetActiveForProfessionalOnDate(_ context.Context, _ int64, _ time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	m.gotExcludeID = excludeID
	return m.appointments, m.err
}

type scheduleRepoMock struct {
	windows    []*domain.AvailabilityWindow
	windowsErr error
	special    []*domain.SpecialSchedule
	specialErr error

	windowsCalled bool
}

func (m *scheduleRepoMock) GetWindowsForWeekday(_ context.Context, _ int64, _ time.Weekday) ([]*domain.AvailabilityWindow, error) {
	m.windowsCalled = true
	return m.windows, m.windowsErr
}

func (m *scheduleRepoMock) GetSpecialForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.SpecialSchedule, error) {
	return m.special, m.specialErr
}

type catalogRepoMock struct {
	service     *domain.Service
	serviceErr  error
	offering    *domain.ServiceOffering
	offeringErr error
}

func (m *catalogRepoMock) GetService(_ context.Context, _ int64) (*domain.Service, error) {
	return m.service, m.serviceErr
}

func (m *catalogRepoMock) GetOffering(_ context.Context, _, _ int64) (*domain.ServiceOffering, error) {
	return m.offering, m.offeringErr
}

type directoryClientMock struct {
	professional *directoryClient.Professional
	err          error
}

func (m *directoryClientMock) GetProfessional(_ context.Context, _ int64) (*directoryClient.Professional, error) {
	return m.professional, m.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return date
}

func defaultFixtures() (*appointmentRepoMock, *scheduleRepoMock, *catalogRepoMock, *directoryClientMock) {
	appointments := &appointmentRepoMock{}
	schedule := &scheduleRepoMock{
		windows: []*domain.AvailabilityWindow{
			{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("17:00")},
		},
	}
	catalog := &catalogRepoMock{
		service:  &domain.Service{ID: 5, Name: "Осмотр", DefaultDurationMinutes: 30, BasePrice: 1500},
		offering: &domain.ServiceOffering{ID: 1, ProfessionalID: 10, ServiceID: 5},
	}
	dir := &directoryClientMock{
		professional: &directoryClient.Professional{ID: 10, FullName: "Петров С. Н.", IsActive: true},
	}
	return appointments, schedule, catalog, dir
}

func baseRequest(t *testing.T, start string) *Request {
	t.Helper()
	return &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
		StartTime:      types.TimeString(start),
	}
}

func TestExecute_AvailableSlot(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "10:00"))

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestExecute_ConflictWithExistingAppointment(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	appointments.appointments = []*domain.Appointment{
		{ID: 3, StartTime: types.TimeString("10:15"), DurationMinutes: 30, Status: domain.StatusConfirmed},
	}
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "10:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonConflict, resp.Reason)
}

func TestExecute_TouchingAppointmentDoesNotConflict(t *testing.T) {
	// Полуинтервалы: запись 09:30-10:00 не мешает слоту 10:00-10:30
	appointments, schedule, catalog, dir := defaultFixtures()
	appointments.appointments = []*domain.Appointment{
		{ID: 3, StartTime: types.TimeString("09:30"), DurationMinutes: 30, Status: domain.StatusScheduled},
	}
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "10:00"))

	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_ExcludedAppointmentIgnored(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	req := baseRequest(t, "10:00")
	req.ExcludeAppointmentID = ptr.Ptr(int64(3))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Available)
	require.NotNil(t, appointments.gotExcludeID)
	assert.Equal(t, int64(3), *appointments.gotExcludeID)
}

func TestExecute_OutsideRegularHours(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "18:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonOutsideHours, resp.Reason)
}

func TestExecute_SlotMustBeFullyContainedInWindow(t *testing.T) {
	// Начало внутри окна, конец за его пределами: 16:45 + 30 минут > 17:00
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "16:45"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonOutsideHours, resp.Reason)
}

func TestExecute_SpecialScheduleOverridesRegularWindows(t *testing.T) {
	// Обычное окно 09:00-17:00, особое расписание на дату только 09:00-12:00.
	// Кандидат 14:00 лежит в обычных часах, но особое расписание авторитетно
	appointments, schedule, catalog, dir := defaultFixtures()
	schedule.special = []*domain.SpecialSchedule{
		{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00")},
	}
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "14:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonOutsideHours, resp.Reason)
	assert.False(t, schedule.windowsCalled, "weekly windows must be ignored when a special schedule exists")
}

func TestExecute_SpecialScheduleAllowsSlotInsideIt(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	schedule.special = []*domain.SpecialSchedule{
		{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00")},
	}
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "11:00"))

	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_ConflictTakesPrecedenceOverHoursCheck(t *testing.T) {
	// Слот и занят, и вне часов: причина CONFLICT, проверка часов не выполняется
	appointments, schedule, catalog, dir := defaultFixtures()
	appointments.appointments = []*domain.Appointment{
		{ID: 3, StartTime: types.TimeString("18:00"), DurationMinutes: 30, Status: domain.StatusScheduled},
	}
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "18:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonConflict, resp.Reason)
}

func TestExecute_SlotCrossingMidnightRejected(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	catalog.offering.DurationMinutes = ptr.Ptr(90)
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest(t, "23:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, domain.ReasonOutsideHours, resp.Reason)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	dir.professional = nil
	dir.err = directoryClient.ErrProfessionalNotFound
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), baseRequest(t, "10:00"))

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	catalog.offering = nil
	catalog.offeringErr = catalogRepo.ErrOfferingNotFound
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), baseRequest(t, "10:00"))

	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_InvalidStartTime(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	for _, start := range []string{"", "9:00", "25:00", "10:60", "garbage"} {
		_, err := uc.Execute(context.Background(), baseRequest(t, start))
		assert.ErrorIsf(t, err, ErrInvalidInput, "start=%q", start)
	}
}
