package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
	"github.com/fintraq/budget_tracker_app/internal/platform/config"
	"github.com/fintraq/budget_tracker_app/internal/utils"
)

// AuthService implements registration, login and token issuance.
type AuthService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) *AuthService {
	return &AuthService{
		BaseService: BaseService{UserRepo: userRepo},
		cfg:         cfg,
	}
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// Register creates a new user. New users always start as active employees;
// roles are only promoted by an existing admin.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
		IsActive:     true,
		Department:   req.Department,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "self-registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "self-registration",
		},
	}

	if err := s.UserRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login verifies credentials. A missing user and a wrong password produce
// the same error, so the endpoint never leaks which emails exist.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	user, err := s.UserRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrForbidden)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, nil
}

// GenerateAccessToken mints a signed JWT for the user.
func (s *AuthService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}
