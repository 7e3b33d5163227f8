package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Identity(raw string) (domain.Identity, error) {
	args := m.Called(raw)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(handlers...)
	ok := func(c *gin.Context) {
		identity, _ := identityFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID})
	}
	engine.GET("/resource", ok)
	engine.POST("/resource", ok)
	return engine
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Token abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestAuthenticate(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Identity", "good").Return(domain.Identity{UserID: 3}, nil)
	auth.On("Identity", "bad").Return(domain.Identity{}, domain.ErrInvalidToken)
	engine := newTestEngine(Authenticate(auth))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/resource", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestStaffForWrites(t *testing.T) {
	auth := &MockAuthenticator{}
	auth.On("Identity", "user").Return(domain.Identity{UserID: 1}, nil)
	auth.On("Identity", "staff").Return(domain.Identity{UserID: 2, IsStaff: true}, nil)
	engine := newTestEngine(Authenticate(auth), StaffForWrites())

	tests := []struct {
		method, token string
		status        int
	}{
		{"GET", "user", http.StatusOK},
		{"POST", "user", http.StatusForbidden},
		{"POST", "staff", http.StatusOK},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tt.method, "/resource", nil)
		req.Header.Set("Authorization", "Bearer "+tt.token)
		engine.ServeHTTP(w, req)
		assert.Equal(t, tt.status, w.Code, tt.method+" as "+tt.token)
	}
}

func TestRequestID(t *testing.T) {
	engine := newTestEngine(RequestID(), RequestLogger(zap.NewNop()))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/resource", nil))
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/resource", nil)
	req.Header.Set(requestIDHeader, "given-id")
	engine.ServeHTTP(w, req)
	assert.Equal(t, "given-id", w.Header().Get(requestIDHeader))
}
