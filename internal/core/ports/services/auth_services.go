package services

import (
	"context"
	"time"

	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// AuthSvcFacade defines registration, login and token operations.
type AuthSvcFacade interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and returns the user on success.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error)

	// GenerateAccessToken mints a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
