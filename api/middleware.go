package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	identityKey     = "identity"
)

// Authenticator turns a bearer token into the caller identity.
type Authenticator interface {
	Identity(raw string) (domain.Identity, error)
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if identity, ok := identityFrom(c); ok {
			fields = append(fields, zap.Int64("user_id", identity.UserID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// Authenticate rejects requests without a valid bearer access token.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			writeError(c, domain.ErrUnauthorized)
			return
		}
		identity, err := auth.Identity(raw)
		if err != nil {
			writeError(c, domain.ErrUnauthorized)
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// StaffForWrites lets any authenticated user read but only staff modify.
func StaffForWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		identity, ok := identityFrom(c)
		if !ok {
			writeError(c, domain.ErrUnauthorized)
			return
		}
		if !identity.IsStaff {
			writeError(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func identityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// currentIdentity returns the caller or the zero identity, which services
// reject as unauthenticated.
func currentIdentity(c *gin.Context) domain.Identity {
	identity, _ := identityFrom(c)
	return identity
}
