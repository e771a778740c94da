package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	appointmentRepo "github.com/avdmit/MDC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/avdmit/MDC-AvailabilityService/internal/service/appointments/models"
	"github.com/avdmit/MDC-AvailabilityService/pkg/ptr"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

type repoMock struct {
	appointment  *domain.Appointment
	appointments []*domain.Appointment
	getErr       error
	listErr      error
	cancelErr    error

	cancelledID     int64
	cancelledStatus domain.AppointmentStatus
	cancelledReason string
	gotFilter       domain.ProfessionalAppointmentsFilter
}

func (m *repoMock) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return m.appointment, m.getErr
}

func (m *repoMock) GetByPatientID(_ context.Context, _ int64, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return m.appointments, m.listErr
}

func (m *repoMock) GetByProfessionalWithFilter(_ context.Context, filter domain.ProfessionalAppointmentsFilter) ([]*domain.Appointment, error) {
	m.gotFilter = filter
	return m.appointments, m.listErr
}

func (m *repoMock) Cancel(_ context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	m.cancelledID = id
	m.cancelledStatus = status
	m.cancelledReason = reason
	return m.cancelErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		PatientID:       7,
		ProfessionalID:  10,
		ServiceID:       5,
		Date:            time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
		ServiceName:     "Осмотр",
		ServicePrice:    1500,
	}
}

func TestGetByID_PatientSeesOwnAppointment(t *testing.T) {
	repo := &repoMock{appointment: sampleAppointment()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "2026-09-08", resp.Date)
}

func TestGetByID_ProfessionalSeesOwnAppointment(t *testing.T) {
	repo := &repoMock{appointment: sampleAppointment()}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 10)

	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &repoMock{appointment: sampleAppointment()}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &repoMock{getErr: appointmentRepo.ErrAppointmentNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 7)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ByPatient(t *testing.T) {
	repo := &repoMock{appointment: sampleAppointment()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             7,
		CancellationReason: "не смогу прийти",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByPatient, repo.cancelledStatus)
	assert.Equal(t, "не смогу прийти", repo.cancelledReason)
}

func TestCancel_ByProfessional(t *testing.T) {
	repo := &repoMock{appointment: sampleAppointment()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 10})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClinic, repo.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	repo := &repoMock{appointment: sampleAppointment()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 99})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	appt := sampleAppointment()
	appt.Status = domain.StatusCompleted
	repo := &repoMock{appointment: appt}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestGetPatientAppointments_InvalidStatus(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{
		PatientID: 7,
		Status:    ptr.Ptr("unknown"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPatientAppointments_EmptyListIsValid(t *testing.T) {
	repo := &repoMock{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetPatientAppointments(context.Background(), &models.GetPatientAppointmentsRequest{PatientID: 7})

	require.NoError(t, err)
	assert.Empty(t, resp.Appointments)
	assert.NotNil(t, resp.Appointments)
}

func TestGetProfessionalAppointments_OwnScheduleOnly(t *testing.T) {
	repo := &repoMock{appointments: []*domain.Appointment{sampleAppointment()}}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetProfessionalAppointments(context.Background(), &models.GetProfessionalAppointmentsRequest{
		UserID:         99,
		ProfessionalID: 10,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetProfessionalAppointments_FilterPassedThrough(t *testing.T) {
	repo := &repoMock{appointments: []*domain.Appointment{sampleAppointment()}}
	svc := NewService(repo, nopLogger{})

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetProfessionalAppointments(context.Background(), &models.GetProfessionalAppointmentsRequest{
		UserID:          10,
		ProfessionalID:  10,
		StartDate:       &start,
		EndDate:         &end,
		Status:          ptr.Ptr("scheduled"),
		IncludeInactive: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(10), repo.gotFilter.ProfessionalID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusScheduled, *repo.gotFilter.Status)
	assert.True(t, repo.gotFilter.IncludeInactive)
}

func TestGetByID_RepositoryErrorWrapped(t *testing.T) {
	repo := &repoMock{getErr: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrInternal)
}
