package services

import (
	"context"

	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
)

// AdminAuthorizerSvc supplies the administrative capability check consumed by
// the settlement and adjustment flows.
type AdminAuthorizerSvc interface {
	// RequireAdmin returns apperrors.ErrForbidden when the user does not hold
	// the administrative role, apperrors.ErrNotFound when the user id does not
	// resolve.
	RequireAdmin(ctx context.Context, userID string) error
}

// UserSvcFacade defines the user service surface.
type UserSvcFacade interface {
	AdminAuthorizerSvc

	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error
}
