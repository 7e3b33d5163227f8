package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRouter_OrdersRequireAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &MockAuthenticator{}
	orderService := &MockOrderUseCase{}
	router := NewRouter(RouterDeps{Log: zap.NewNop(), Auth: auth, Orders: orderService})

	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"tickets":[{"row":1,"seat":1,"flight":1}]}`)
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/airport/orders/", body))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	orderService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_CreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &MockAuthenticator{}
	orderService := &MockOrderUseCase{}
	router := NewRouter(RouterDeps{Log: zap.NewNop(), Auth: auth, Orders: orderService})

	identity := domain.Identity{UserID: 5}
	specs := []domain.TicketSpec{{Row: 1, Seat: 1, FlightID: 1}}
	auth.On("Identity", "token").Return(identity, nil)
	orderService.On("Create", mock.Anything, identity, specs).Return(&domain.Order{ID: 1}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/airport/orders/", bytes.NewBufferString(`{"tickets":[{"row":1,"seat":1,"flight":1}]}`))
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	orderService.AssertExpectations(t)
}

func TestRouter_CatalogWritesRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &MockAuthenticator{}
	flightService := &MockFlightUseCase{}
	router := NewRouter(RouterDeps{Log: zap.NewNop(), Auth: auth, Flights: flightService})

	auth.On("Identity", "token").Return(domain.Identity{UserID: 5}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/airport/flights/1", nil)
	req.Header.Set("Authorization", "Bearer token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	flightService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRouter_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(RouterDeps{Log: zap.NewNop(), Auth: &MockAuthenticator{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
