package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/flotaops/fleet-finance-backend/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RequireAdmin verifies that the user exists and holds the administrative role.
func (s *userService) RequireAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: acting user %s", apperrors.ErrNotFound, userID)
		}
		return err
	}
	if !user.IsAdmin() {
		return fmt.Errorf("%w: user %s lacks the administrative role", apperrors.ErrForbidden, userID)
	}
	return nil
}

// CreateUser creates a new user with a hashed password. Defaults to OPERATOR
// when no role is supplied.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Self-registration cannot choose a role, and only an administrator can
	// grant the administrative role.
	role := domain.RoleOperator
	if creatorUserID != "" && req.Role != "" {
		role = domain.UserRole(req.Role)
		if role == domain.RoleAdmin {
			if err := s.RequireAdmin(ctx, creatorUserID); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	userID := uuid.NewString()
	// Self-registration has no acting user; attribute the audit fields to the
	// new user itself.
	if creatorUserID == "" {
		creatorUserID = userID
	}
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser applies partial updates to a user.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		// Role changes are an administrative capability.
		if err := s.RequireAdmin(ctx, updaterUserID); err != nil {
			return nil, err
		}
		user.Role = domain.UserRole(*req.Role)
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user. Admin only.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleterUserID string) error {
	if err := s.RequireAdmin(ctx, deleterUserID); err != nil {
		return err
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.userRepo.DeleteUser(ctx, userID, deleterUserID, time.Now()); err != nil {
		return err
	}
	logger.Info("User deleted", slog.String("user_id", userID), slog.String("deleted_by", deleterUserID))
	return nil
}
