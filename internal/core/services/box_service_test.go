package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/core/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockOperatingBoxRepository is a mock type for the OperatingBoxRepositoryWithTx interface
type MockOperatingBoxRepository struct {
	mock.Mock
}

func (m *MockOperatingBoxRepository) SaveBox(ctx context.Context, box domain.OperatingBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockOperatingBoxRepository) FindBoxByID(ctx context.Context, boxID string) (*domain.OperatingBox, error) {
	args := m.Called(ctx, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingBox), args.Error(1)
}

func (m *MockOperatingBoxRepository) FindActiveBoxByBusinessID(ctx context.Context, businessID string) (*domain.OperatingBox, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingBox), args.Error(1)
}

func (m *MockOperatingBoxRepository) FindAnyActiveBox(ctx context.Context) (*domain.OperatingBox, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingBox), args.Error(1)
}

func (m *MockOperatingBoxRepository) ListBoxes(ctx context.Context, limit, offset int) ([]domain.OperatingBox, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperatingBox), args.Error(1)
}

func (m *MockOperatingBoxRepository) DeactivateBox(ctx context.Context, boxID string, userID string, now time.Time) error {
	args := m.Called(ctx, boxID, userID, now)
	return args.Error(0)
}

func (m *MockOperatingBoxRepository) SaveMovement(ctx context.Context, movement domain.BoxMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockOperatingBoxRepository) ListMovementsByBoxID(ctx context.Context, boxID string, limit int, nextToken *string) ([]domain.BoxMovement, *string, error) {
	args := m.Called(ctx, boxID, limit, nextToken)
	var movements []domain.BoxMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.BoxMovement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockOperatingBoxRepository) SumMovementAmounts(ctx context.Context, boxID string) (decimal.Decimal, error) {
	args := m.Called(ctx, boxID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOperatingBoxRepository) FindBoxByIDForUpdate(ctx context.Context, tx pgx.Tx, boxID string) (*domain.OperatingBox, error) {
	args := m.Called(ctx, tx, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperatingBox), args.Error(1)
}

func (m *MockOperatingBoxRepository) UpdateBoxBalanceInTx(ctx context.Context, tx pgx.Tx, boxID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, boxID, delta, userID, now)
	return args.Error(0)
}

func (m *MockOperatingBoxRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.BoxMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

func (m *MockOperatingBoxRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOperatingBoxRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOperatingBoxRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockBusinessRepository is a mock type for the BusinessRepository interface
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) DeactivateBusiness(ctx context.Context, businessID string, userID string, now time.Time) error {
	args := m.Called(ctx, businessID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type BoxServiceTestSuite struct {
	suite.Suite
	mockBoxRepo      *MockOperatingBoxRepository
	mockBusinessRepo *MockBusinessRepository
	mockAuthorizer   *MockAdminAuthorizer
	service          portssvc.BoxSvcFacade
}

func (suite *BoxServiceTestSuite) SetupTest() {
	suite.mockBoxRepo = new(MockOperatingBoxRepository)
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.mockAuthorizer = new(MockAdminAuthorizer)
	suite.service = services.NewBoxService(suite.mockBoxRepo, suite.mockBusinessRepo, suite.mockAuthorizer, true)
}

// newServiceWithoutFallback rebuilds the service with the global fallback
// policy disabled.
func (suite *BoxServiceTestSuite) newServiceWithoutFallback() portssvc.BoxSvcFacade {
	return services.NewBoxService(suite.mockBoxRepo, suite.mockBusinessRepo, suite.mockAuthorizer, false)
}

// --- CreateBox ---

func (suite *BoxServiceTestSuite) TestCreateBox_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	businessID := uuid.NewString()
	req := dto.CreateBoxRequest{
		BusinessID:  &businessID,
		Name:        "Caja Norte",
		Description: "Caja operativa de la sucursal norte",
	}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(&domain.Business{BusinessID: businessID, Name: "Norte"}, nil).Once()
	suite.mockBoxRepo.On("SaveBox", ctx, mock.MatchedBy(func(box domain.OperatingBox) bool {
		return box.Name == req.Name &&
			box.BusinessID != nil && *box.BusinessID == businessID &&
			box.Balance.IsZero() &&
			box.IsActive &&
			box.CreatedBy == creatorUserID
	})).Return(nil).Once()

	box, err := suite.service.CreateBox(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(box)
	suite.NotEmpty(box.BoxID)
	suite.True(box.Balance.IsZero())

	suite.mockBoxRepo.AssertExpectations(suite.T())
	suite.mockBusinessRepo.AssertExpectations(suite.T())
}

func (suite *BoxServiceTestSuite) TestCreateBox_BusinessNotFound() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	businessID := uuid.NewString()
	req := dto.CreateBoxRequest{BusinessID: &businessID, Name: "Caja"}

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(nil, apperrors.ErrNotFound).Once()

	box, err := suite.service.CreateBox(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(box)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "SaveBox", mock.Anything, mock.Anything)
}

// --- ResolveBox ---

func (suite *BoxServiceTestSuite) TestResolveBox_BusinessBoxWins() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	businessID := uuid.NewString()
	ownBox := &domain.OperatingBox{
		BoxID:      uuid.NewString(),
		BusinessID: &businessID,
		Name:       "Caja Norte",
		Balance:    decimal.NewFromInt(200),
		IsActive:   true,
	}

	suite.mockBoxRepo.On("FindActiveBoxByBusinessID", ctx, businessID).Return(ownBox, nil).Once()

	box, err := suite.service.ResolveBox(ctx, &businessID, actingUserID)

	suite.Require().NoError(err)
	suite.Equal(ownBox, box)

	suite.mockBoxRepo.AssertExpectations(suite.T())
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "FindAnyActiveBox", mock.Anything)
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "SaveBox", mock.Anything, mock.Anything)
}

func (suite *BoxServiceTestSuite) TestResolveBox_GlobalFallback() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	businessID := uuid.NewString()
	fallbackBox := &domain.OperatingBox{
		BoxID:    uuid.NewString(),
		Name:     "Caja Central",
		Balance:  decimal.NewFromInt(900),
		IsActive: true,
	}

	suite.mockBoxRepo.On("FindActiveBoxByBusinessID", ctx, businessID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBoxRepo.On("FindAnyActiveBox", ctx).Return(fallbackBox, nil).Once()

	box, err := suite.service.ResolveBox(ctx, &businessID, actingUserID)

	suite.Require().NoError(err)
	suite.Equal(fallbackBox, box)

	suite.mockBoxRepo.AssertExpectations(suite.T())
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "SaveBox", mock.Anything, mock.Anything)
}

func (suite *BoxServiceTestSuite) TestResolveBox_FallbackDisabledCreatesLazily() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	businessID := uuid.NewString()
	service := suite.newServiceWithoutFallback()

	suite.mockBoxRepo.On("FindActiveBoxByBusinessID", ctx, businessID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, businessID).Return(&domain.Business{BusinessID: businessID, Name: "Transportes Sur"}, nil).Once()
	suite.mockBoxRepo.On("SaveBox", ctx, mock.MatchedBy(func(box domain.OperatingBox) bool {
		return box.Name == "Caja Transportes Sur" &&
			box.BusinessID != nil && *box.BusinessID == businessID &&
			box.Balance.IsZero() &&
			box.IsActive &&
			box.CreatedBy == actingUserID
	})).Return(nil).Once()

	box, err := service.ResolveBox(ctx, &businessID, actingUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(box)
	suite.Equal("Caja Transportes Sur", box.Name)
	suite.True(box.Balance.IsZero())

	suite.mockBoxRepo.AssertExpectations(suite.T())
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "FindAnyActiveBox", mock.Anything)
}

func (suite *BoxServiceTestSuite) TestResolveBox_NoBusinessCreatesGeneralBox() {
	ctx := context.Background()
	actingUserID := uuid.NewString()

	suite.mockBoxRepo.On("FindAnyActiveBox", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBoxRepo.On("SaveBox", ctx, mock.MatchedBy(func(box domain.OperatingBox) bool {
		return box.Name == "Caja General" &&
			box.BusinessID == nil &&
			box.Balance.IsZero() &&
			box.CreatedBy == actingUserID
	})).Return(nil).Once()

	box, err := suite.service.ResolveBox(ctx, nil, actingUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(box)
	suite.Equal("Caja General", box.Name)

	suite.mockBoxRepo.AssertExpectations(suite.T())
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "FindActiveBoxByBusinessID", mock.Anything, mock.Anything)
}

func (suite *BoxServiceTestSuite) TestResolveBox_RepoError() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	businessID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockBoxRepo.On("FindActiveBoxByBusinessID", ctx, businessID).Return(nil, expectedErr).Once()

	box, err := suite.service.ResolveBox(ctx, &businessID, actingUserID)

	suite.Require().Error(err)
	suite.Nil(box)
	suite.ErrorIs(err, expectedErr)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "FindAnyActiveBox", mock.Anything)
}

// --- RecordMovement ---

func (suite *BoxServiceTestSuite) TestRecordMovement_DefaultsToCurrentBalance() {
	ctx := context.Background()
	actingUserID := uuid.NewString()
	boxID := uuid.NewString()
	balance := decimal.NewFromInt(340)
	box := &domain.OperatingBox{BoxID: boxID, Balance: balance, IsActive: true}

	params := dto.RecordMovementParams{
		BoxID:        boxID,
		Amount:       decimal.NewFromInt(50),
		Kind:         domain.MovementIncome,
		Description:  "Deposito registrado fuera de caja",
		ActingUserID: actingUserID,
	}

	suite.mockBoxRepo.On("FindBoxByID", ctx, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("SaveMovement", ctx, mock.MatchedBy(func(mv domain.BoxMovement) bool {
		return mv.BalanceBefore.Equal(balance) && mv.BalanceAfter.Equal(balance)
	})).Return(nil).Once()

	movement, err := suite.service.RecordMovement(ctx, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.True(movement.BalanceBefore.Equal(balance))
	suite.True(movement.BalanceAfter.Equal(balance))
	suite.Equal(actingUserID, movement.UserID)

	suite.mockBoxRepo.AssertExpectations(suite.T())
}

func (suite *BoxServiceTestSuite) TestRecordMovement_ComputesAfterFromBefore() {
	ctx := context.Background()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(500), IsActive: true}
	before := decimal.NewFromInt(200)

	params := dto.RecordMovementParams{
		BoxID:         boxID,
		Amount:        decimal.NewFromInt(-80),
		Kind:          domain.MovementExpense,
		BalanceBefore: &before,
		ActingUserID:  uuid.NewString(),
	}

	suite.mockBoxRepo.On("FindBoxByID", ctx, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.BoxMovement")).Return(nil).Once()

	movement, err := suite.service.RecordMovement(ctx, params)

	suite.Require().NoError(err)
	suite.True(movement.BalanceBefore.Equal(before))
	suite.True(movement.BalanceAfter.Equal(decimal.NewFromInt(120)))

	suite.mockBoxRepo.AssertExpectations(suite.T())
}

func (suite *BoxServiceTestSuite) TestRecordMovement_AfterWithoutBefore() {
	ctx := context.Background()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(500), IsActive: true}
	after := decimal.NewFromInt(120)

	params := dto.RecordMovementParams{
		BoxID:        boxID,
		Amount:       decimal.NewFromInt(-80),
		Kind:         domain.MovementExpense,
		BalanceAfter: &after,
		ActingUserID: uuid.NewString(),
	}

	suite.mockBoxRepo.On("FindBoxByID", ctx, boxID).Return(box, nil).Once()

	movement, err := suite.service.RecordMovement(ctx, params)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything)
}

// --- AdjustBox ---

func (suite *BoxServiceTestSuite) TestAdjustBox_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(300), IsActive: true}
	req := dto.AdjustBoxRequest{
		Amount:      decimal.NewFromInt(-45),
		Description: "Arqueo de caja",
	}

	suite.mockAuthorizer.On("RequireAdmin", ctx, adminID).Return(nil).Once()
	suite.mockBoxRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockBoxRepo.On("FindBoxByIDForUpdate", ctx, mock.Anything, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("UpdateBoxBalanceInTx", ctx, mock.Anything, boxID, req.Amount, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBoxRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.MatchedBy(func(mv domain.BoxMovement) bool {
		return mv.Kind == domain.MovementAdjustment &&
			mv.Amount.Equal(req.Amount) &&
			mv.BalanceBefore.Equal(decimal.NewFromInt(300)) &&
			mv.BalanceAfter.Equal(decimal.NewFromInt(255)) &&
			mv.UserID == adminID
	})).Return(nil).Once()
	suite.mockBoxRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockBoxRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	movement, err := suite.service.AdjustBox(ctx, boxID, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(movement)
	suite.True(movement.BalanceAfter.Equal(decimal.NewFromInt(255)))

	suite.mockBoxRepo.AssertExpectations(suite.T())
}

func (suite *BoxServiceTestSuite) TestAdjustBox_ZeroAmount() {
	ctx := context.Background()
	adminID := uuid.NewString()
	boxID := uuid.NewString()
	req := dto.AdjustBoxRequest{Amount: decimal.Zero, Description: "Nada"}

	suite.mockAuthorizer.On("RequireAdmin", ctx, adminID).Return(nil).Once()

	movement, err := suite.service.AdjustBox(ctx, boxID, req, adminID)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BoxServiceTestSuite) TestAdjustBox_OverdrawRejected() {
	ctx := context.Background()
	adminID := uuid.NewString()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(100), IsActive: true}
	req := dto.AdjustBoxRequest{
		Amount:      decimal.NewFromInt(-400),
		Description: "Retiro de caja",
	}

	suite.mockAuthorizer.On("RequireAdmin", ctx, adminID).Return(nil).Once()
	suite.mockBoxRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockBoxRepo.On("FindBoxByIDForUpdate", ctx, mock.Anything, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	movement, err := suite.service.AdjustBox(ctx, boxID, req, adminID)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Contains(err.Error(), "holds 100")

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "UpdateBoxBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *BoxServiceTestSuite) TestAdjustBox_FractionalAmount() {
	ctx := context.Background()
	adminID := uuid.NewString()
	boxID := uuid.NewString()
	req := dto.AdjustBoxRequest{
		Amount:      decimal.RequireFromString("10.123"),
		Description: "Ajuste",
	}

	suite.mockAuthorizer.On("RequireAdmin", ctx, adminID).Return(nil).Once()

	movement, err := suite.service.AdjustBox(ctx, boxID, req, adminID)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BoxServiceTestSuite) TestAdjustBox_Forbidden() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	boxID := uuid.NewString()
	req := dto.AdjustBoxRequest{Amount: decimal.NewFromInt(10), Description: "Ajuste"}
	forbiddenErr := fmt.Errorf("%w: user %s lacks the administrative role", apperrors.ErrForbidden, operatorID)

	suite.mockAuthorizer.On("RequireAdmin", ctx, operatorID).Return(forbiddenErr).Once()

	movement, err := suite.service.AdjustBox(ctx, boxID, req, operatorID)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BoxServiceTestSuite) TestAdjustBox_SaveFailureRollsBack() {
	ctx := context.Background()
	adminID := uuid.NewString()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(300), IsActive: true}
	req := dto.AdjustBoxRequest{Amount: decimal.NewFromInt(25), Description: "Ajuste"}
	expectedErr := assert.AnError

	suite.mockAuthorizer.On("RequireAdmin", ctx, adminID).Return(nil).Once()
	suite.mockBoxRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockBoxRepo.On("FindBoxByIDForUpdate", ctx, mock.Anything, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("UpdateBoxBalanceInTx", ctx, mock.Anything, boxID, req.Amount, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBoxRepo.On("SaveMovementInTx", ctx, mock.Anything, mock.AnythingOfType("domain.BoxMovement")).Return(expectedErr).Once()
	suite.mockBoxRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	movement, err := suite.service.AdjustBox(ctx, boxID, req, adminID)

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, expectedErr)

	suite.mockBoxRepo.AssertExpectations(suite.T())
	suite.mockBoxRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- DeactivateBox ---

func (suite *BoxServiceTestSuite) TestDeactivateBox_Success() {
	ctx := context.Background()
	adminID := uuid.NewString()
	boxID := uuid.NewString()

	suite.mockAuthorizer.On("RequireAdmin", ctx, adminID).Return(nil).Once()
	suite.mockBoxRepo.On("DeactivateBox", ctx, boxID, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateBox(ctx, boxID, adminID)

	suite.Require().NoError(err)
	suite.mockBoxRepo.AssertExpectations(suite.T())
}

func (suite *BoxServiceTestSuite) TestDeactivateBox_Forbidden() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	boxID := uuid.NewString()
	forbiddenErr := fmt.Errorf("%w: user %s lacks the administrative role", apperrors.ErrForbidden, operatorID)

	suite.mockAuthorizer.On("RequireAdmin", ctx, operatorID).Return(forbiddenErr).Once()

	err := suite.service.DeactivateBox(ctx, boxID, operatorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "DeactivateBox", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- CheckBalance ---

func (suite *BoxServiceTestSuite) TestCheckBalance_Consistent() {
	ctx := context.Background()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(340), IsActive: true}

	suite.mockBoxRepo.On("FindBoxByID", ctx, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("SumMovementAmounts", ctx, boxID).Return(decimal.NewFromInt(340), nil).Once()

	check, err := suite.service.CheckBalance(ctx, boxID)

	suite.Require().NoError(err)
	suite.Require().NotNil(check)
	suite.True(check.Consistent)
	suite.True(check.StoredBalance.Equal(check.MovementSum))

	suite.mockBoxRepo.AssertExpectations(suite.T())
}

func (suite *BoxServiceTestSuite) TestCheckBalance_Drift() {
	ctx := context.Background()
	boxID := uuid.NewString()
	box := &domain.OperatingBox{BoxID: boxID, Balance: decimal.NewFromInt(340), IsActive: true}

	suite.mockBoxRepo.On("FindBoxByID", ctx, boxID).Return(box, nil).Once()
	suite.mockBoxRepo.On("SumMovementAmounts", ctx, boxID).Return(decimal.NewFromInt(315), nil).Once()

	check, err := suite.service.CheckBalance(ctx, boxID)

	suite.Require().NoError(err)
	suite.False(check.Consistent)
	suite.True(check.MovementSum.Equal(decimal.NewFromInt(315)))
}

// --- ListMovements ---

func (suite *BoxServiceTestSuite) TestListMovements_BoxNotFound() {
	ctx := context.Background()
	boxID := uuid.NewString()

	suite.mockBoxRepo.On("FindBoxByID", ctx, boxID).Return(nil, apperrors.ErrNotFound).Once()

	movements, token, err := suite.service.ListMovements(ctx, boxID, 20, nil)

	suite.Require().Error(err)
	suite.Nil(movements)
	suite.Nil(token)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockBoxRepo.AssertNotCalled(suite.T(), "ListMovementsByBoxID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestBoxService(t *testing.T) {
	suite.Run(t, new(BoxServiceTestSuite))
}
