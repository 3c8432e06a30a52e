package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockLogger struct{}

func (mockLogger) Info(string, ...interface{})  {}
func (mockLogger) Warn(string, ...interface{})  {}
func (mockLogger) Error(string, ...interface{}) {}

type recorder struct {
	mu     sync.Mutex
	result map[string]error
}

func (r *recorder) RecordNotification(kind string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.result == nil {
		r.result = make(map[string]error)
	}
	r.result[kind] = err
}

func testAppointment(t *testing.T) *domain.Appointment {
	t.Helper()
	loc, err := time.LoadLocation(domain.ShopTimezone)
	require.NoError(t, err)

	return &domain.Appointment{
		ID:          7,
		ClientName:  "Alice",
		ClientEmail: "a@x.com",
		Service:     "Classic Haircut",
		Date:        time.Date(2024, 6, 10, 10, 0, 0, 0, loc),
		Status:      domain.StatusPending,
	}
}

func toRecipient(addr string) interface{} {
	return mock.MatchedBy(func(msg mailer.Message) bool { return msg.To == addr })
}

func TestNotifyBooked_BothDelivered(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, toRecipient("a@x.com")).Return(nil).Once()
	sender.On("Send", mock.Anything, toRecipient("admin@stylishcuts.com")).Return(nil).Once()

	rec := &recorder{}
	svc := NewService(sender, Options{AdminEmail: "admin@stylishcuts.com", Timeout: time.Second}, rec, mockLogger{})

	report := svc.NotifyBooked(context.Background(), testAppointment(t))

	assert.True(t, report.Delivered())
	assert.NoError(t, report.Err())
	sender.AssertExpectations(t)
	assert.Len(t, rec.result, 2)
	assert.NoError(t, rec.result[KindCustomer])
	assert.NoError(t, rec.result[KindAdmin])
}

func TestNotifyBooked_CustomerFailsAdminStillSent(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, toRecipient("a@x.com")).Return(errors.New("smtp down")).Once()
	sender.On("Send", mock.Anything, toRecipient("admin@stylishcuts.com")).Return(nil).Once()

	svc := NewService(sender, Options{AdminEmail: "admin@stylishcuts.com"}, nil, mockLogger{})

	report := svc.NotifyBooked(context.Background(), testAppointment(t))

	assert.False(t, report.Delivered())
	assert.ErrorIs(t, report.CustomerErr, ErrNotificationFailure)
	assert.NoError(t, report.AdminErr)
	assert.ErrorIs(t, report.Err(), ErrNotificationFailure)
	sender.AssertExpectations(t)
}

func TestNotifyBooked_BothFail(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("boom")).Twice()

	svc := NewService(sender, Options{AdminEmail: "admin@stylishcuts.com"}, nil, mockLogger{})

	report := svc.NotifyBooked(context.Background(), testAppointment(t))

	assert.Error(t, report.CustomerErr)
	assert.Error(t, report.AdminErr)
	assert.Contains(t, report.Err().Error(), "customer")
	assert.Contains(t, report.Err().Error(), "admin")
}

type blockingSender struct{}

func (blockingSender) Send(ctx context.Context, _ mailer.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNotifyCustomer_Timeout(t *testing.T) {
	svc := NewService(blockingSender{}, Options{AdminEmail: "admin@stylishcuts.com", Timeout: 20 * time.Millisecond}, nil, mockLogger{})

	start := time.Now()
	err := svc.NotifyCustomer(context.Background(), testAppointment(t))

	assert.ErrorIs(t, err, ErrNotificationFailure)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNotifyAdmin_MissingRecipient(t *testing.T) {
	sender := new(mockSender)
	svc := NewService(sender, Options{}, nil, mockLogger{})

	err := svc.NotifyAdmin(context.Background(), testAppointment(t))

	assert.ErrorIs(t, err, ErrNotificationFailure)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestTemplates(t *testing.T) {
	appt := testAppointment(t)

	customer, err := render(customerTemplate, appt)
	require.NoError(t, err)
	assert.Contains(t, customer, "Dear Alice,")
	assert.Contains(t, customer, "Service: Classic Haircut")
	assert.Contains(t, customer, "Date: June 10, 2024")
	assert.Contains(t, customer, "Time: 10:00 AM")

	admin, err := render(adminTemplate, appt)
	require.NoError(t, err)
	assert.Contains(t, admin, "Client: Alice")
	assert.Contains(t, admin, "Email: a@x.com")
}

func TestNotifyCustomer_Subject(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.Subject == "Appointment Confirmation - Stylish Cuts"
	})).Return(nil).Once()

	svc := NewService(sender, Options{AdminEmail: "admin@stylishcuts.com"}, nil, mockLogger{})

	require.NoError(t, svc.NotifyCustomer(context.Background(), testAppointment(t)))
	sender.AssertExpectations(t)
}
