package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/fintraq/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/fintraq/budget_tracker_app/internal/core/ports/services"
	"github.com/fintraq/budget_tracker_app/internal/dto"
)

// UserService implements user profile reads and updates.
type UserService struct {
	BaseService
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{BaseService: BaseService{UserRepo: userRepo}}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.UserRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.UserRepo.FindUserByEmail(ctx, email)
}

// ListUsers retrieves a paginated list of users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, requestingUserID string, limit, offset int) ([]domain.User, error) {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}
	users, err := s.UserRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateUser updates a user's profile. Users may update their own name,
// department and avatar; only admins may change roles or active status, and
// only admins may touch other users at all.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.UserRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeOwnerOrAdmin(ctx, user.UserID, requestingUserID); err != nil {
		return nil, err
	}

	if req.Role != nil || req.IsActive != nil {
		isAdmin, err := s.IsAdminUser(ctx, requestingUserID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, fmt.Errorf("%w: only admins may change role or active status", apperrors.ErrForbidden)
		}
		if req.Role != nil {
			if *req.Role != domain.RoleAdmin && *req.Role != domain.RoleEmployee {
				return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
			}
			user.Role = *req.Role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.UserRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}

// DeleteUser removes a user. Admin only; admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := s.AuthorizeAdmin(ctx, requestingUserID); err != nil {
		return err
	}
	if userID == requestingUserID {
		return fmt.Errorf("%w: cannot delete your own account", apperrors.ErrValidation)
	}

	if err := s.UserRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}
