package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"gorm.io/gorm"
)

// AuthService implements registration, login, token refresh with
// rotation, and profile lookup.
type AuthService struct {
	users     *repositories.UserRepository
	tokens    *auth.Manager
	blacklist *auth.Blacklist
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.Manager, blacklist *auth.Blacklist) *AuthService {
	return &AuthService{users: users, tokens: tokens, blacklist: blacklist}
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username             string `json:"username" validate:"required,alpha_dash,min=3,max=150"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// Register creates a new customer account. There is no auto-login; the
// caller logs in separately.
func (s *AuthService) Register(in RegisterInput) (models.User, error) {
	if err := auth.ValidatePassword(in.Password, in.Username, in.Email); err != nil {
		return models.User{}, NewValidationError("password", err.Error())
	}

	if taken, err := s.users.EmailTaken(in.Email); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, NewValidationError("email", "A user with this email already exists.")
	}
	if taken, err := s.users.UsernameTaken(in.Username); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, NewValidationError("username", "A user with this username already exists.")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}

	metrics.UsersRegistered.Inc()
	return user, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(email, password string) (auth.TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user.ID, user.Role)
}

// Refresh rotates a refresh token: the old token is blacklisted for the
// remainder of its lifetime and a brand-new pair is issued. A replayed
// refresh token is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	claims, err := s.tokens.ParseTyped(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return auth.TokenPair{}, err
	}
	if revoked {
		return auth.TokenPair{}, ErrInvalidCredentials
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return auth.TokenPair{}, err
	}

	return s.tokens.IssuePair(claims.UserID, claims.Role)
}

// Profile returns the account for the current token's subject.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}
