package users

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/airport-service/internal/auth"
	"github.com/Domenick1991/airport-service/internal/domain"
	"github.com/Domenick1991/airport-service/internal/repository"
	"github.com/Domenick1991/airport-service/internal/validation"
)

type UserUseCase interface {
	Register(ctx context.Context, input Credentials) (*domain.User, error)
	Login(ctx context.Context, input Credentials) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Verify(ctx context.Context, token string) error
	Me(ctx context.Context, identity domain.Identity) (*domain.User, error)
	UpdateMe(ctx context.Context, identity domain.Identity, input UpdateInput) (*domain.User, error)
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=5"`
}

// UpdateInput carries optional profile changes. Nil fields are left as is.
type UpdateInput struct {
	Email    *string `json:"email" validate:"omitnil,required,email"`
	Password *string `json:"password" validate:"omitnil,min=5"`
}

type Tokens interface {
	IssuePair(user *domain.User) (*auth.TokenPair, error)
	IssueAccess(user *domain.User) (string, error)
	Parse(raw string, want auth.TokenType) (*auth.Claims, error)
}

type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) (bool, error)
}

type UserService struct {
	repo   repository.UserRepository
	tokens Tokens
	hasher Hasher
}

func NewUserService(repo repository.UserRepository, tokens Tokens, hasher Hasher) *UserService {
	return &UserService{repo: repo, tokens: tokens, hasher: hasher}
}

func (s *UserService) Register(ctx context.Context, input Credentials) (*domain.User, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Email: input.Email, PasswordHash: hash}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.NewValidationError("email", domain.ErrEmailTaken.Error())
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, input Credentials) (*auth.TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user)
}

// Refresh issues a new access token. The user is reloaded so a revoked staff
// flag takes effect.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return "", err
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", err
	}
	return s.tokens.IssueAccess(user)
}

func (s *UserService) Verify(_ context.Context, token string) error {
	if _, err := s.tokens.Parse(token, auth.AccessToken); err == nil {
		return nil
	}
	_, err := s.tokens.Parse(token, auth.RefreshToken)
	return err
}

func (s *UserService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.GetByID(ctx, identity.UserID)
}

func (s *UserService) UpdateMe(ctx context.Context, identity domain.Identity, input UpdateInput) (*domain.User, error) {
	user, err := s.Me(ctx, identity)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.NewValidationError("email", domain.ErrEmailTaken.Error())
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ UserUseCase = (*UserService)(nil)
