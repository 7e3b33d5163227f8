package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airport-service/config"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID    int64     `json:"user_id"`
	IsStaff   bool      `json:"is_staff"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is returned on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.Issuer,
		accessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTTLHours) * time.Hour,
		now:        time.Now,
	}
}

func (m *TokenManager) IssuePair(user *domain.User) (*TokenPair, error) {
	access, err := m.issue(user, AccessToken, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.issue(user, RefreshToken, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (m *TokenManager) IssueAccess(user *domain.User) (string, error) {
	return m.issue(user, AccessToken, m.accessTTL)
}

func (m *TokenManager) issue(user *domain.User, typ TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    user.ID,
		IsStaff:   user.IsStaff,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates raw and checks that it is of the expected type.
// Any failure is reported as domain.ErrInvalidToken.
func (m *TokenManager) Parse(raw string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, errors.Join(domain.ErrInvalidToken, err)
	}
	if claims.TokenType != want {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Identity parses an access token into the caller identity.
func (m *TokenManager) Identity(raw string) (domain.Identity, error) {
	claims, err := m.Parse(raw, AccessToken)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: claims.UserID, IsStaff: claims.IsStaff}, nil
}
