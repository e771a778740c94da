package get_available_slots

import (
	"context"
	"errors"
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

	gotProfessionalID int64
	gotDate           time.Time
	gotExcludeID      *int64
}

func (m *appointmentRepoMock) GetActiveForProfessionalOnDate(_ context.Context, professionalID int64, date time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	m.gotProfessionalID = professionalID
	m.gotDate = date
	m.gotExcludeID = excludeID
	return m.appointments, m.err
}

type scheduleRepoMock struct {
	windows []*domain.AvailabilityWindow
	err     error

	gotWeekday time.Weekday
}

func (m *scheduleRepoMock) GetWindowsForWeekday(_ context.Context, _ int64, weekday time.Weekday) ([]*domain.AvailabilityWindow, error) {
	m.gotWeekday = weekday
	return m.windows, m.err
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

// 2026-09-07 - понедельник, 2026-09-08 - вторник и так далее
func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return date
}

func allWeekdays() domain.WeekdayMask {
	return domain.WeekdayMask{
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true,
		Friday: true, Saturday: true, Sunday: true,
	}
}

func defaultFixtures() (*appointmentRepoMock, *scheduleRepoMock, *catalogRepoMock, *directoryClientMock) {
	appointments := &appointmentRepoMock{}
	schedule := &scheduleRepoMock{
		windows: []*domain.AvailabilityWindow{
			{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00")},
		},
	}
	catalog := &catalogRepoMock{
		service:  &domain.Service{ID: 5, Name: "Консультация", DefaultDurationMinutes: 60, BasePrice: 2500},
		offering: &domain.ServiceOffering{ID: 1, ProfessionalID: 10, ServiceID: 5, Weekdays: allWeekdays()},
	}
	dir := &directoryClientMock{
		professional: &directoryClient.Professional{ID: 10, FullName: "Иванова А. П.", IsActive: true},
	}
	return appointments, schedule, catalog, dir
}

func TestExecute_EmptyDayPacksSlotsBackToBack(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0].EndTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)
	assert.True(t, resp.Slots[0].Available)
}

func TestExecute_BusyIntervalShiftsFollowingSlots(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	appointments.appointments = []*domain.Appointment{
		{ID: 77, StartTime: types.TimeString("10:00"), DurationMinutes: 30, Status: domain.StatusScheduled},
	}
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[1].EndTime)
}

func TestExecute_DurationOverrideFromOffering(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	catalog.offering.DurationMinutes = ptr.Ptr(90)
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[1].StartTime)
}

func TestExecute_NoWindowsForWeekday(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	schedule.windows = nil
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_ServiceNotOfferedOnWeekday(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	mask := allWeekdays()
	mask.Tuesday = false
	catalog.offering.Weekdays = mask
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	// 2026-09-08 - вторник
	resp, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ExcludeAppointmentIDPassedToOccupancyLoad(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID:       10,
		ServiceID:            5,
		Date:                 testDate(t, "2026-09-08"),
		ExcludeAppointmentID: ptr.Ptr(int64(42)),
	})

	require.NoError(t, err)
	require.NotNil(t, appointments.gotExcludeID)
	assert.Equal(t, int64(42), *appointments.gotExcludeID)
	assert.Equal(t, int64(10), appointments.gotProfessionalID)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	dir.professional = nil
	dir.err = directoryClient.ErrProfessionalNotFound
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 999,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	catalog.service = nil
	catalog.serviceErr = catalogRepo.ErrServiceNotFound
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      999,
		Date:           testDate(t, "2026-09-08"),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	catalog.offering = nil
	catalog.offeringErr = catalogRepo.ErrOfferingNotFound
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_InvalidInput(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero professional id", &Request{ServiceID: 5, Date: testDate(t, "2026-09-08")}},
		{"negative service id", &Request{ProfessionalID: 10, ServiceID: -1, Date: testDate(t, "2026-09-08")}},
		{"zero date", &Request{ProfessionalID: 10, ServiceID: 5}},
		{"non-positive exclude id", &Request{ProfessionalID: 10, ServiceID: 5, Date: testDate(t, "2026-09-08"), ExcludeAppointmentID: ptr.Ptr(int64(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_RepositoryFailureWrapsInternal(t *testing.T) {
	appointments, schedule, catalog, dir := defaultFixtures()
	appointments.err = errors.New("connection refused")
	uc := NewUseCase(appointments, schedule, catalog, dir, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
	})

	assert.ErrorIs(t, err, ErrInternal)
}
