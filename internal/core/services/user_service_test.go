package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/core/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- RequireAdmin ---

func (suite *UserServiceTestSuite) TestRequireAdmin_Admin() {
	ctx := context.Background()
	adminID := uuid.NewString()
	admin := &domain.User{UserID: adminID, Role: domain.RoleAdmin}

	suite.mockRepo.On("FindUserByID", ctx, adminID).Return(admin, nil).Once()

	err := suite.service.RequireAdmin(ctx, adminID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRequireAdmin_Operator() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	operator := &domain.User{UserID: operatorID, Role: domain.RoleOperator}

	suite.mockRepo.On("FindUserByID", ctx, operatorID).Return(operator, nil).Once()

	err := suite.service.RequireAdmin(ctx, operatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestRequireAdmin_DeletedAdmin() {
	ctx := context.Background()
	adminID := uuid.NewString()
	deletedAt := time.Now()
	admin := &domain.User{UserID: adminID, Role: domain.RoleAdmin, DeletedAt: &deletedAt}

	suite.mockRepo.On("FindUserByID", ctx, adminID).Return(admin, nil).Once()

	err := suite.service.RequireAdmin(ctx, adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestRequireAdmin_UnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequireAdmin(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- CreateUser ---

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsToOperator() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateUserRequest{
		Name:     "Maria Lopez",
		Username: "mlopez",
		Password: "supersecret1",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == req.Username &&
			user.Role == domain.RoleOperator &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			user.CreatedBy == creatorUserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleOperator, user.Role)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SelfRegistration() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Pedro Gomez",
		Username: "pgomez",
		Password: "supersecret1",
	}

	// Self-registration carries no creator; the audit trail points at the new
	// user itself.
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.CreatedBy == user.UserID && user.LastUpdatedBy == user.UserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(user.UserID, user.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_SelfRegistrationIgnoresRequestedRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Pedro Gomez",
		Username: "pgomez",
		Password: "supersecret1",
		Role:     "ADMIN",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleOperator
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.RoleOperator, user.Role)
	suite.False(user.IsAdmin())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_AdminRoleRequiresAdminCreator() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	operator := &domain.User{UserID: operatorID, Role: domain.RoleOperator}
	req := dto.CreateUserRequest{
		Name:     "Maria Lopez",
		Username: "mlopez",
		Password: "supersecret1",
		Role:     "ADMIN",
	}

	suite.mockRepo.On("FindUserByID", ctx, operatorID).Return(operator, nil).Once()

	user, err := suite.service.CreateUser(ctx, req, operatorID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_AdminCreatorGrantsAdmin() {
	ctx := context.Background()
	adminID := uuid.NewString()
	admin := &domain.User{UserID: adminID, Role: domain.RoleAdmin}
	req := dto.CreateUserRequest{
		Name:     "Maria Lopez",
		Username: "mlopez",
		Password: "supersecret1",
		Role:     "ADMIN",
	}

	suite.mockRepo.On("FindUserByID", ctx, adminID).Return(admin, nil).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleAdmin
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.RoleAdmin, user.Role)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateUserRequest{
		Name:     "Maria Lopez",
		Username: "mlopez",
		Password: "supersecret1",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- UpdateUser ---

func (suite *UserServiceTestSuite) TestUpdateUser_RoleChangeRequiresAdmin() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	targetID := uuid.NewString()
	operator := &domain.User{UserID: operatorID, Role: domain.RoleOperator}
	target := &domain.User{UserID: targetID, Role: domain.RoleOperator}
	newRole := "ADMIN"

	suite.mockRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()
	suite.mockRepo.On("FindUserByID", ctx, operatorID).Return(operator, nil).Once()

	user, err := suite.service.UpdateUser(ctx, targetID, dto.UpdateUserRequest{Role: &newRole}, operatorID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AdminChangesRole() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	admin := &domain.User{UserID: adminID, Role: domain.RoleAdmin}
	target := &domain.User{UserID: targetID, Role: domain.RoleOperator}
	newRole := "ADMIN"

	suite.mockRepo.On("FindUserByID", ctx, targetID).Return(target, nil).Once()
	suite.mockRepo.On("FindUserByID", ctx, adminID).Return(admin, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == targetID &&
			user.Role == domain.RoleAdmin &&
			user.LastUpdatedBy == adminID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, targetID, dto.UpdateUserRequest{Role: &newRole}, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(domain.RoleAdmin, user.Role)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeleteUser ---

func (suite *UserServiceTestSuite) TestDeleteUser_AdminOnly() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	targetID := uuid.NewString()
	operator := &domain.User{UserID: operatorID, Role: domain.RoleOperator}

	suite.mockRepo.On("FindUserByID", ctx, operatorID).Return(operator, nil).Once()

	err := suite.service.DeleteUser(ctx, targetID, operatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetID := uuid.NewString()
	admin := &domain.User{UserID: adminID, Role: domain.RoleAdmin}

	suite.mockRepo.On("FindUserByID", ctx, adminID).Return(admin, nil).Once()
	suite.mockRepo.On("DeleteUser", ctx, targetID, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, targetID, adminID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
