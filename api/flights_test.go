package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightListItem), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, flight *domain.Flight) (*domain.FlightDetail, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightUseCase) Update(ctx context.Context, flight *domain.Flight) (*domain.FlightDetail, error) {
	args := m.Called(ctx, flight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/?source=bory&departure=2030-05-01", nil)

	day := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	filter := domain.FlightFilter{Source: "bory", Departure: &day}
	flights := []domain.FlightListItem{
		{ID: 1, Source: "Boryspil", Destination: "Heathrow", Airplane: "Boeing 737", Crews: []string{"Amelia Earhart"}, TicketsAvailable: 57},
	}

	mockService.On("List", c.Request.Context(), filter).Return(flights, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(57), body[0]["tickets_available"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_BadDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/?arrival=01.05.2030", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"arrival"`)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	flight := &domain.FlightDetail{ID: 1, TakenPlaces: []domain.Place{{Row: 1, Seat: 1}}}
	mockService.On("GetByID", c.Request.Context(), int64(1)).Return(flight, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"taken_places"`)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	mockService.On("GetByID", c.Request.Context(), int64(999)).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_InvalidID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
