package services

import (
	"context"
	"log/slog"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	"github.com/fintraq/budget_tracker_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	UserRepo portsrepo.UserRepositoryFacade
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// IsAdminUser reports whether the requesting user holds the admin role.
func (s *BaseService) IsAdminUser(ctx context.Context, userID string) (bool, error) {
	user, err := s.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// AuthorizeOwnerOrAdmin permits access when the requesting user owns the
// resource or is an admin; otherwise it returns ErrForbidden.
func (s *BaseService) AuthorizeOwnerOrAdmin(ctx context.Context, ownerID, requestingUserID string) error {
	if ownerID == requestingUserID {
		return nil
	}
	isAdmin, err := s.IsAdminUser(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// AuthorizeAdmin permits access only to admins.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, requestingUserID string) error {
	isAdmin, err := s.IsAdminUser(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}
