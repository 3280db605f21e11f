package services_test

import (
	"context"
	"testing"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/core/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCategoryRepository is a mock type for the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockPaymentMethodRepository is a mock type for the PaymentMethodRepository interface
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, methodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, methodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListPaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

// MockTransactionStateRepository is a mock type for the TransactionStateRepository interface
type MockTransactionStateRepository struct {
	mock.Mock
}

func (m *MockTransactionStateRepository) SaveTransactionState(ctx context.Context, state domain.TransactionState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockTransactionStateRepository) FindTransactionStateByID(ctx context.Context, stateID string) (*domain.TransactionState, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionState), args.Error(1)
}

func (m *MockTransactionStateRepository) ListTransactionStates(ctx context.Context) ([]domain.TransactionState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionState), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockBusinessRepo *MockBusinessRepository
	mockCategoryRepo *MockCategoryRepository
	mockMethodRepo   *MockPaymentMethodRepository
	mockStateRepo    *MockTransactionStateRepository
	service          portssvc.TransactionSvcFacade

	businessID string
	categoryID string
	methodID   string
	stateID    string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBusinessRepo = new(MockBusinessRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockMethodRepo = new(MockPaymentMethodRepository)
	suite.mockStateRepo = new(MockTransactionStateRepository)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockBusinessRepo,
		suite.mockCategoryRepo,
		suite.mockMethodRepo,
		suite.mockStateRepo,
	)

	suite.businessID = uuid.NewString()
	suite.categoryID = uuid.NewString()
	suite.methodID = uuid.NewString()
	suite.stateID = uuid.NewString()
}

// expectLookups wires the existence checks that every successful creation
// performs.
func (suite *TransactionServiceTestSuite) expectLookups(ctx context.Context) {
	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(&domain.Business{BusinessID: suite.businessID, Name: "Transportes Sur"}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(&domain.Category{CategoryID: suite.categoryID, Name: "Combustible"}, nil).Once()
	suite.mockMethodRepo.On("FindPaymentMethodByID", ctx, suite.methodID).Return(&domain.PaymentMethod{PaymentMethodID: suite.methodID, Name: "Efectivo"}, nil).Once()
	suite.mockStateRepo.On("FindTransactionStateByID", ctx, suite.stateID).Return(&domain.TransactionState{StateID: suite.stateID, Name: "Registrada"}, nil).Once()
}

func (suite *TransactionServiceTestSuite) baseRequest(amount decimal.Decimal) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		BusinessID:      suite.businessID,
		CategoryID:      suite.categoryID,
		PaymentMethodID: suite.methodID,
		StateID:         suite.stateID,
		Amount:          amount,
		Description:     "Flete semanal",
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FullyCollected() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := suite.baseRequest(decimal.NewFromInt(500))

	suite.expectLookups(ctx)
	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.MatchedBy(func(txn domain.FinancialTransaction) bool {
			return txn.Amount.Equal(req.Amount) &&
				txn.CollectedAmount.Equal(req.Amount) &&
				txn.ExcessAmount.IsZero() &&
				txn.CreatedBy == creatorUserID
		}),
		mock.MatchedBy(func(mb *domain.MovementsBox) bool {
			return mb != nil && mb.Amount.Equal(req.Amount) && mb.ExcessAmount.IsZero()
		}),
		(*domain.PendingPayment)(nil),
	).Return(nil).Once()

	txn, pending, err := suite.service.CreateTransaction(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Nil(pending)
	suite.True(txn.CollectedAmount.Equal(req.Amount))
	suite.True(txn.ExcessAmount.IsZero())

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ShortfallOpensPendingPayment() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	driverID := uuid.NewString()
	collected := decimal.NewFromInt(300)
	req := suite.baseRequest(decimal.NewFromInt(500))
	req.CollectedAmount = &collected
	req.DriverID = &driverID

	expectedExcess := decimal.NewFromInt(200)

	suite.expectLookups(ctx)
	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.MatchedBy(func(txn domain.FinancialTransaction) bool {
			return txn.CollectedAmount.Equal(collected) && txn.ExcessAmount.Equal(expectedExcess)
		}),
		mock.MatchedBy(func(mb *domain.MovementsBox) bool {
			return mb != nil && mb.Amount.Equal(collected) && mb.ExcessAmount.Equal(expectedExcess)
		}),
		mock.MatchedBy(func(p *domain.PendingPayment) bool {
			return p != nil &&
				p.Amount.Equal(expectedExcess) &&
				p.Status == domain.PaymentPending &&
				p.BusinessID != nil && *p.BusinessID == suite.businessID &&
				p.DriverID != nil && *p.DriverID == driverID &&
				p.TransactionID != nil
		}),
	).Return(nil).Once()

	txn, pending, err := suite.service.CreateTransaction(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Require().NotNil(pending)
	suite.True(pending.Amount.Equal(expectedExcess))
	suite.Equal(domain.PaymentPending, pending.Status)
	suite.Require().NotNil(pending.TransactionID)
	suite.Equal(txn.TransactionID, *pending.TransactionID)
	suite.Contains(pending.Description, txn.TransactionID)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FractionalAmount() {
	ctx := context.Background()
	req := suite.baseRequest(decimal.RequireFromString("10.123"))

	txn, pending, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "two decimal places")

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.baseRequest(decimal.Zero)

	txn, pending, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativeCollected() {
	ctx := context.Background()
	collected := decimal.NewFromInt(-10)
	req := suite.baseRequest(decimal.NewFromInt(100))
	req.CollectedAmount = &collected

	txn, pending, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CollectedExceedsAmount() {
	ctx := context.Background()
	collected := decimal.NewFromInt(600)
	req := suite.baseRequest(decimal.NewFromInt(500))
	req.CollectedAmount = &collected

	txn, pending, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockBusinessRepo.AssertNotCalled(suite.T(), "FindBusinessByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownCategory() {
	ctx := context.Background()
	req := suite.baseRequest(decimal.NewFromInt(100))

	suite.mockBusinessRepo.On("FindBusinessByID", ctx, suite.businessID).Return(&domain.Business{BusinessID: suite.businessID}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(nil, apperrors.ErrNotFound).Once()

	txn, pending, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.Nil(pending)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
