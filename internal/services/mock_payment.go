package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/models"
)

// MockPaymentService hands out fake session ids when no provider is configured
type MockPaymentService struct {
	logger *zap.Logger
}

// NewPaymentService picks Stripe when a secret key is configured and the mock otherwise
func NewPaymentService(cfg config.StripeConfig, logger *zap.Logger) PaymentService {
	if cfg.SecretKey != "" {
		logger.Info("payment service: using Stripe")
		return NewStripePaymentService(cfg.SecretKey, logger)
	}

	logger.Warn("payment service: using mock (no Stripe key provided)")
	return NewMockPaymentService(logger)
}

// NewMockPaymentService creates a mock payment service
func NewMockPaymentService(logger *zap.Logger) *MockPaymentService {
	return &MockPaymentService{logger: logger}
}

// CreateCheckoutSession returns a session id without contacting any provider
func (s *MockPaymentService) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*models.CheckoutSession, error) {
	var total int64
	for _, item := range req.LineItems {
		total += item.UnitAmount * item.Quantity
	}

	id := "cs_mock_" + uuid.NewString()
	s.logger.Info("mock checkout session created",
		zap.String("session_id", id),
		zap.Int64("amount", total),
		zap.String("currency", req.Currency))

	return &models.CheckoutSession{ID: id, URL: req.SuccessURL}, nil
}
