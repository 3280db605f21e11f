package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flotaops/fleet-finance-backend/internal/apperrors"
	"github.com/flotaops/fleet-finance-backend/internal/core/domain"
	portsrepo "github.com/flotaops/fleet-finance-backend/internal/core/ports/repositories"
	portssvc "github.com/flotaops/fleet-finance-backend/internal/core/ports/services"
	"github.com/flotaops/fleet-finance-backend/internal/dto"
	"github.com/flotaops/fleet-finance-backend/internal/handlers"
	"github.com/flotaops/fleet-finance-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PendingPaymentService ---
type MockPendingPaymentService struct {
	mock.Mock
}

func (m *MockPendingPaymentService) Settle(ctx context.Context, paymentID string, actingUserID string) (*domain.SettlementResult, error) {
	args := m.Called(ctx, paymentID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

func (m *MockPendingPaymentService) Cancel(ctx context.Context, paymentID string, actingUserID string) (*domain.PendingPayment, error) {
	args := m.Called(ctx, paymentID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentService) CreatePayment(ctx context.Context, req dto.CreatePendingPaymentRequest, creatorUserID string) (*domain.PendingPayment, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PendingPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingPayment), args.Error(1)
}

func (m *MockPendingPaymentService) ListPayments(ctx context.Context, filter portsrepo.PendingPaymentFilter) ([]domain.PendingPayment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingPayment), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PendingPaymentSvcFacade = (*MockPendingPaymentService)(nil)

// --- Test Suite ---
type PendingPaymentHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockPendingPaymentService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PendingPaymentHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ffb-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PendingPaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockPendingPaymentService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPendingPaymentRoutes(v1, suite.mockService)
}

// --- Test Cases ---

func (suite *PendingPaymentHandlerTestSuite) TestProcessPayment_Success() {
	paymentID := uuid.NewString()
	adminID := uuid.NewString()
	businessID := uuid.NewString()
	paidAt := time.Now()

	result := &domain.SettlementResult{
		Payment: domain.PendingPayment{
			PaymentID:  paymentID,
			BusinessID: &businessID,
			Amount:     decimal.NewFromInt(150),
			Status:     domain.PaymentPaid,
			PaidAt:     &paidAt,
		},
		Box: domain.OperatingBox{
			BoxID:   uuid.NewString(),
			Name:    "Caja Norte",
			Balance: decimal.NewFromInt(350),
		},
		BalanceBefore: decimal.NewFromInt(500),
		BalanceAfter:  decimal.NewFromInt(350),
	}

	suite.mockService.On("Settle", mock.AnythingOfType("*context.valueCtx"), paymentID, adminID).Return(result, nil).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/process", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			PendingPayment struct {
				PaymentID string `json:"paymentID"`
				Status    string `json:"status"`
			} `json:"pending_payment"`
			OperatingBox struct {
				ID            string `json:"id"`
				Nombre        string `json:"nombre"`
				SaldoAnterior string `json:"saldo_anterior"`
				SaldoActual   string `json:"saldo_actual"`
			} `json:"operating_box"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal("success", body.Status)
	suite.Equal(paymentID, body.Data.PendingPayment.PaymentID)
	suite.Equal("PAID", body.Data.PendingPayment.Status)
	suite.Equal(result.Box.BoxID, body.Data.OperatingBox.ID)
	suite.Equal("Caja Norte", body.Data.OperatingBox.Nombre)
	suite.Equal("500", body.Data.OperatingBox.SaldoAnterior)
	suite.Equal("350", body.Data.OperatingBox.SaldoActual)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PendingPaymentHandlerTestSuite) TestProcessPayment_Forbidden() {
	paymentID := uuid.NewString()
	operatorID := uuid.NewString()
	forbiddenErr := fmt.Errorf("%w: user %s lacks the administrative role", apperrors.ErrForbidden, operatorID)

	suite.mockService.On("Settle", mock.AnythingOfType("*context.valueCtx"), paymentID, operatorID).Return(nil, forbiddenErr).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/process", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(operatorID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PendingPaymentHandlerTestSuite) TestProcessPayment_NotPending() {
	paymentID := uuid.NewString()
	adminID := uuid.NewString()
	stateErr := fmt.Errorf("%w: pending payment %s has status PAID", apperrors.ErrInvalidState, paymentID)

	suite.mockService.On("Settle", mock.AnythingOfType("*context.valueCtx"), paymentID, adminID).Return(nil, stateErr).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/process", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *PendingPaymentHandlerTestSuite) TestProcessPayment_InsufficientFunds() {
	paymentID := uuid.NewString()
	adminID := uuid.NewString()
	boxID := uuid.NewString()
	fundsErr := fmt.Errorf("%w: box %s holds 40, settlement requires 1000", apperrors.ErrInsufficientFunds, boxID)

	suite.mockService.On("Settle", mock.AnythingOfType("*context.valueCtx"), paymentID, adminID).Return(nil, fundsErr).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/process", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var body handlers.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Contains(body.Error, "holds 40")
	suite.Contains(body.Error, "requires 1000")
}

func (suite *PendingPaymentHandlerTestSuite) TestProcessPayment_PersistenceFailure() {
	paymentID := uuid.NewString()
	adminID := uuid.NewString()
	persistErr := apperrors.NewPersistenceError("failed to commit settlement transaction", errors.New("connection reset"))
	suite.Require().ErrorIs(persistErr, apperrors.ErrPersistence)

	suite.mockService.On("Settle", mock.AnythingOfType("*context.valueCtx"), paymentID, adminID).Return(nil, persistErr).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/process", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)

	var body handlers.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal("Settlement could not be persisted", body.Error)
}

func (suite *PendingPaymentHandlerTestSuite) TestProcessPayment_NoToken() {
	paymentID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/process", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Settle", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PendingPaymentHandlerTestSuite) TestCancelPayment_Success() {
	paymentID := uuid.NewString()
	adminID := uuid.NewString()
	businessID := uuid.NewString()

	cancelled := &domain.PendingPayment{
		PaymentID:  paymentID,
		BusinessID: &businessID,
		Amount:     decimal.NewFromInt(75),
		Status:     domain.PaymentCancelled,
	}

	suite.mockService.On("Cancel", mock.AnythingOfType("*context.valueCtx"), paymentID, adminID).Return(cancelled, nil).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s/cancel", paymentID)
	req, _ := http.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			PendingPayment struct {
				PaymentID string `json:"paymentID"`
				Status    string `json:"status"`
			} `json:"pending_payment"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err)
	suite.Equal("success", body.Status)
	suite.Equal(paymentID, body.Data.PendingPayment.PaymentID)
	suite.Equal("CANCELLED", body.Data.PendingPayment.Status)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *PendingPaymentHandlerTestSuite) TestGetPayment_NotFound() {
	paymentID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockService.On("GetPaymentByID", mock.AnythingOfType("*context.valueCtx"), paymentID).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/pending-payments/%s", paymentID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Run Test Suite ---
func TestPendingPaymentHandler(t *testing.T) {
	suite.Run(t, new(PendingPaymentHandlerTestSuite))
}
