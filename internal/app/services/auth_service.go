package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ekurt/campusreg/internal/app/models"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/pkg/apperrors"
	"github.com/ekurt/campusreg/internal/pkg/auth"
	"github.com/ekurt/campusreg/internal/pkg/logger"
	"github.com/ekurt/campusreg/internal/pkg/validation"
)

// AuthService handles login, signup and session identity lookups
type AuthService struct {
	userRepo UserStore
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserStore) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Login verifies the credentials and returns the authenticated user.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	var errs []string
	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, "username is required")
	}
	if req.Password == "" {
		errs = append(errs, "password is required")
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn().Str("username", user.Username).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// Signup validates and registers a new user
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	errs := validation.ValidateSignupFields(req)

	if req.Password != "" {
		errs = append(errs, auth.ValidatePasswordStrength(req.Password)...)
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username != "" {
		taken, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, "Username already exists. Please choose a different username.")
		}
	}

	if email != "" {
		taken, err := s.userRepo.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs = append(errs, "Email already exists. Please use a different email address.")
		}
	}

	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUsernameExists):
			return nil, apperrors.NewValidationError([]string{"Username already exists. Please choose a different username."})
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return nil, apperrors.NewValidationError([]string{"Email already exists. Please use a different email address."})
		default:
			return nil, err
		}
	}

	logger.Info().Str("username", user.Username).Msg("User account created")
	return user, nil
}

// GetUser looks up the user behind a session's user id. Used by the status
// endpoint, which must treat a stale id as "not authenticated" rather than
// an error.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
