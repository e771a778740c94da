package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	directoryClient "github.com/avdmit/MDC-AvailabilityService/internal/integrations/directory"
	"github.com/avdmit/MDC-AvailabilityService/internal/usecase/validate_slot"
	"github.com/avdmit/MDC-AvailabilityService/pkg/ptr"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

type txMarkerKey struct{}

// txManagerMock помечает контекст транзакции, чтобы проверить,
// что валидация и вставка выполняются внутри неё
type txManagerMock struct {
	err    error
	called bool
}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.called = true
	if m.err != nil {
		return m.err
	}
	return fn(context.WithValue(ctx, txMarkerKey{}, true))
}

type appointmentRepoMock struct {
	created *domain.Appointment
	err     error

	gotAppointment *domain.Appointment
	inTx           bool
}

func (m *appointmentRepoMock) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	m.gotAppointment = appointment
	m.inTx, _ = ctx.Value(txMarkerKey{}).(bool)
	if m.err != nil {
		return nil, m.err
	}
	if m.created != nil {
		return m.created, nil
	}
	created := *appointment
	created.ID = 101
	return &created, nil
}

type slotValidatorMock struct {
	response *validate_slot.Response
	err      error

	gotRequest *validate_slot.Request
	inTx       bool
}

func (m *slotValidatorMock) Execute(ctx context.Context, req *validate_slot.Request) (*validate_slot.Response, error) {
	m.gotRequest = req
	m.inTx, _ = ctx.Value(txMarkerKey{}).(bool)
	return m.response, m.err
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
	professional    *directoryClient.Professional
	professionalErr error
	patient         *directoryClient.Patient
	patientErr      error
}

func (m *directoryClientMock) GetProfessional(_ context.Context, _ int64) (*directoryClient.Professional, error) {
	return m.professional, m.professionalErr
}

func (m *directoryClientMock) GetPatientWithGracefulDegradation(_ context.Context, _ int64) (*directoryClient.Patient, error) {
	return m.patient, m.patientErr
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
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

type fixtures struct {
	appointments *appointmentRepoMock
	validator    *slotValidatorMock
	catalog      *catalogRepoMock
	directory    *directoryClientMock
	txManager    *txManagerMock
	uc           *UseCase
}

func newFixtures() *fixtures {
	f := &fixtures{
		appointments: &appointmentRepoMock{},
		validator: &slotValidatorMock{
			response: &validate_slot.Response{
				Available:       true,
				StartTime:       types.TimeString("10:00"),
				EndTime:         types.TimeString("10:30"),
				DurationMinutes: 30,
			},
		},
		catalog: &catalogRepoMock{
			service:  &domain.Service{ID: 5, Name: "Осмотр", DefaultDurationMinutes: 30, BasePrice: 1500},
			offering: &domain.ServiceOffering{ID: 1, ProfessionalID: 10, ServiceID: 5},
		},
		directory: &directoryClientMock{
			professional: &directoryClient.Professional{ID: 10, FullName: "Петров С. Н.", IsActive: true},
			patient:      &directoryClient.Patient{ID: 7, FullName: "Сидорова М. И."},
		},
		txManager: &txManagerMock{},
	}
	f.uc = NewUseCase(f.appointments, f.validator, f.catalog, f.directory, f.txManager, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return f
}

func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		PatientID:      7,
		ProfessionalID: 10,
		ServiceID:      5,
		Date:           testDate(t, "2026-09-08"),
		StartTime:      types.TimeString("10:00"),
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	f := newFixtures()

	resp, err := f.uc.Execute(context.Background(), baseRequest(t))

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, types.TimeString("10:30"), resp.EndTime)
	assert.Equal(t, 30, resp.DurationMinutes)

	// Денормализация данных услуги и пациента
	require.NotNil(t, f.appointments.gotAppointment)
	assert.Equal(t, "Осмотр", f.appointments.gotAppointment.ServiceName)
	assert.Equal(t, 1500.0, f.appointments.gotAppointment.ServicePrice)
	require.NotNil(t, f.appointments.gotAppointment.PatientName)
	assert.Equal(t, "Сидорова М. И.", *f.appointments.gotAppointment.PatientName)
}

func TestExecute_ValidationAndInsertRunInsideTransaction(t *testing.T) {
	f := newFixtures()

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	require.NoError(t, err)
	assert.True(t, f.txManager.called)
	assert.True(t, f.validator.inTx, "slot validation must run inside the serializable transaction")
	assert.True(t, f.appointments.inTx, "insert must run inside the serializable transaction")
}

func TestExecute_OfferingPriceOverrideDenormalized(t *testing.T) {
	f := newFixtures()
	f.catalog.offering.Price = ptr.Ptr(2000.0)

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	require.NoError(t, err)
	assert.Equal(t, 2000.0, f.appointments.gotAppointment.ServicePrice)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixtures()
	f.validator.response = &validate_slot.Response{
		Available: false,
		Reason:    domain.ReasonConflict,
	}

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, f.appointments.gotAppointment, "no insert after failed validation")
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixtures()
	f.validator.response = &validate_slot.Response{
		Available: false,
		Reason:    domain.ReasonOutsideHours,
	}

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_ConcurrentLoserGetsConflict(t *testing.T) {
	// Проигравший гонку видит запись победителя при повторном чтении
	// снимка занятости внутри своей транзакции
	f := newFixtures()
	f.validator.response = &validate_slot.Response{
		Available: false,
		Reason:    domain.ReasonConflict,
	}

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixtures()
	req := baseRequest(t)
	req.Date = testDate(t, "2026-08-31")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPastDate)
	assert.False(t, f.txManager.called)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	f := newFixtures()
	req := baseRequest(t)
	req.Date = testDate(t, "2026-09-01")

	_, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_PatientNotFound(t *testing.T) {
	f := newFixtures()
	f.directory.patient = nil
	f.directory.patientErr = directoryClient.ErrPatientNotFound

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestExecute_DirectoryDegradedCreatesWithoutPatientName(t *testing.T) {
	f := newFixtures()
	f.directory.patient = nil
	f.directory.patientErr = directoryClient.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), baseRequest(t))

	require.NoError(t, err)
	assert.Nil(t, resp.PatientName)
	assert.Nil(t, f.appointments.gotAppointment.PatientName)
}

func TestExecute_ProfessionalNotFound(t *testing.T) {
	f := newFixtures()
	f.directory.professional = nil
	f.directory.professionalErr = directoryClient.ErrProfessionalNotFound

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestExecute_TransactionFailureSurfaced(t *testing.T) {
	f := newFixtures()
	f.txManager.err = errors.New("serialization failure, retries exhausted")

	_, err := f.uc.Execute(context.Background(), baseRequest(t))

	assert.Error(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixtures()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero patient id", func(r *Request) { r.PatientID = 0 }},
		{"negative professional id", func(r *Request) { r.ProfessionalID = -1 }},
		{"zero service id", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"bad start time", func(r *Request) { r.StartTime = "9am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(t)
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
