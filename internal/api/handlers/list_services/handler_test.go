package list_services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context) (*models.ServiceListResponse, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*models.ServiceListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockLogger struct{}

func (mockLogger) Info(string, ...interface{})  {}
func (mockLogger) Warn(string, ...interface{})  {}
func (mockLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything).Return(&models.ServiceListResponse{
		Services: []models.ServiceResponse{{ID: 1, Name: "Classic Haircut", Price: 30, DurationMinutes: 30}},
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, mockLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"services":[{"id":1,"name":"Classic Haircut","description":"","price":30,"durationMinutes":30}]}`,
		rec.Body.String())
}

func TestHandle_Error(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything).Return(nil, errors.New("db down"))

	rec := httptest.NewRecorder()
	NewHandler(svc, mockLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
