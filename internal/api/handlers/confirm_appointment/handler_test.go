package confirm_appointment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.AppointmentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLogger struct{}

func (mockLogger) Info(string, ...interface{})  {}
func (mockLogger) Warn(string, ...interface{})  {}
func (mockLogger) Error(string, ...interface{}) {}

func patch(svc AppointmentService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/admin/appointments/{appointmentId}/confirm", NewHandler(svc, mockLogger{}).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("Confirm", mock.Anything, int64(1)).Return(&models.AppointmentResponse{ID: 1, Status: "confirmed"}, nil)
	svc.On("Confirm", mock.Anything, int64(2)).Return(nil, fmt.Errorf("%w: confirmed -> confirmed", appointments.ErrCannotConfirm))
	svc.On("Confirm", mock.Anything, int64(3)).Return(nil, appointments.ErrAppointmentNotFound)
	svc.On("Confirm", mock.Anything, int64(4)).Return(nil, errors.New("db down"))

	rec := patch(svc, "/admin/appointments/1/confirm")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)

	assert.Equal(t, http.StatusConflict, patch(svc, "/admin/appointments/2/confirm").Code)
	assert.Equal(t, http.StatusNotFound, patch(svc, "/admin/appointments/3/confirm").Code)
	assert.Equal(t, http.StatusInternalServerError, patch(svc, "/admin/appointments/4/confirm").Code)
	assert.Equal(t, http.StatusBadRequest, patch(svc, "/admin/appointments/x/confirm").Code)
}
