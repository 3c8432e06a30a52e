package ingest_appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-BarberBooking/internal/service/notifications"
	"github.com/m04kA/SMC-BarberBooking/pkg/shoptime"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appt)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Appointment) *domain.Appointment); ok {
		return fn(ctx, appt), args.Error(1)
	}
	if res := args.Get(0); res != nil {
		return res.(*domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBooked(ctx context.Context, appt *domain.Appointment) notifications.Report {
	args := m.Called(ctx, appt)
	return args.Get(0).(notifications.Report)
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockLogger struct{}

func (mockLogger) Info(string, ...interface{})  {}
func (mockLogger) Warn(string, ...interface{})  {}
func (mockLogger) Error(string, ...interface{}) {}

func newUseCase(t *testing.T, repo *mockAppointmentRepo, notifier *mockNotifier) (*UseCase, *time.Location) {
	t.Helper()
	normalizer, err := shoptime.Load(domain.ShopTimezone)
	require.NoError(t, err)
	return NewUseCase(repo, normalizer, notifier, passthroughTx{}, nil, mockLogger{}), normalizer.Location()
}

// created имитирует RETURNING id из БД
func created(id int64) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*domain.Appointment).ID = id
	}
}

func TestExecute_ConfirmedOutsideHours(t *testing.T) {
	repo := new(mockAppointmentRepo)
	notifier := new(mockNotifier)
	uc, loc := newUseCase(t, repo, notifier)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.Status == domain.StatusConfirmed &&
			a.ClientName == "Jane Doe" &&
			a.Service == "Beard Trim" &&
			a.Date.Equal(time.Date(2024, 6, 10, 20, 0, 0, 0, loc))
	})).Run(created(42)).Return(func(_ context.Context, a *domain.Appointment) *domain.Appointment { return a }, nil).Once()
	notifier.On("NotifyBooked", mock.Anything, mock.Anything).Return(notifications.Report{}).Once()

	// 20:00 по времени салона: для доверенной системы рабочие часы не проверяются
	resp, err := uc.Execute(context.Background(), &Request{
		FirstName: " Jane ",
		LastName:  "Doe",
		Email:     "jane@x.com",
		DateTime:  "2024-06-11T03:00:00Z",
		Type:      "Beard Trim",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.NoError(t, resp.NotificationError)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExecute_NotificationFailureIsSoft(t *testing.T) {
	repo := new(mockAppointmentRepo)
	notifier := new(mockNotifier)
	uc, _ := newUseCase(t, repo, notifier)

	repo.On("Create", mock.Anything, mock.Anything).Run(created(1)).
		Return(func(_ context.Context, a *domain.Appointment) *domain.Appointment { return a }, nil)
	notifier.On("NotifyBooked", mock.Anything, mock.Anything).
		Return(notifications.Report{AdminErr: notifications.ErrNotificationFailure})

	resp, err := uc.Execute(context.Background(), &Request{Email: "a@x.com", DateTime: "2024-06-10T10:00:00"})

	require.NoError(t, err)
	assert.ErrorIs(t, resp.NotificationError, notifications.ErrNotificationFailure)
	assert.Equal(t, DefaultServiceLabel, resp.Service)
}

func TestExecute_DuplicateDate(t *testing.T) {
	repo := new(mockAppointmentRepo)
	notifier := new(mockNotifier)
	uc, _ := newUseCase(t, repo, notifier)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, appointmentRepo.ErrDuplicateDate)

	_, err := uc.Execute(context.Background(), &Request{Email: "a@x.com", DateTime: "2024-06-10T10:00:00"})

	assert.ErrorIs(t, err, ErrSlotTaken)
	notifier.AssertNotCalled(t, "NotifyBooked", mock.Anything, mock.Anything)
}

func TestExecute_PersistenceError(t *testing.T) {
	repo := new(mockAppointmentRepo)
	notifier := new(mockNotifier)
	uc, _ := newUseCase(t, repo, notifier)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, appointmentRepo.ErrExecQuery)

	_, err := uc.Execute(context.Background(), &Request{Email: "a@x.com", DateTime: "2024-06-10T10:00:00"})

	assert.ErrorIs(t, err, ErrPersistence)
}

func TestExecute_InvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "missing email", req: Request{DateTime: "2024-06-10T10:00:00"}, wantErr: ErrInvalidInput},
		{name: "bad email", req: Request{Email: "nope", DateTime: "2024-06-10T10:00:00"}, wantErr: ErrInvalidInput},
		{name: "missing datetime", req: Request{Email: "a@x.com"}, wantErr: ErrInvalidInput},
		{name: "malformed datetime", req: Request{Email: "a@x.com", DateTime: "10/06/2024"}, wantErr: ErrMalformedTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockAppointmentRepo)
			uc, _ := newUseCase(t, repo, new(mockNotifier))

			req := tt.req
			_, err := uc.Execute(context.Background(), &req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestClientNameAndLabel(t *testing.T) {
	assert.Equal(t, "Jane Doe", clientName(&Request{FirstName: "Jane", LastName: " Doe "}))
	assert.Equal(t, "", clientName(&Request{}))
	assert.Equal(t, DefaultServiceLabel, serviceLabel(&Request{Type: "  "}))
	assert.Len(t, []rune(serviceLabel(&Request{Type: strings.Repeat("x", 150)})), domain.MaxServiceNameLength)
}
