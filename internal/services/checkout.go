package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/models"
)

var hundred = decimal.NewFromInt(100)

// CheckoutService turns cart lines into a hosted payment session
type CheckoutService struct {
	payments PaymentService
	config   config.CheckoutConfig
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(payments PaymentService, cfg config.CheckoutConfig, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		payments: payments,
		config:   cfg,
		logger:   logger,
	}
}

// CreateSession validates the lines, drops zero-quantity ones and requests one
// payment-mode session. ErrEmptyCart is returned when no line remains.
func (s *CheckoutService) CreateSession(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutSession, error) {
	lineItems, err := BuildLineItems(items)
	if err != nil {
		return nil, err
	}
	if len(lineItems) == 0 {
		return nil, models.ErrEmptyCart
	}

	session, err := s.payments.CreateCheckoutSession(ctx, &CheckoutSessionRequest{
		Currency:           s.config.Currency,
		PaymentMethodTypes: s.config.PaymentMethodTypes,
		SuccessURL:         s.config.SuccessURL,
		CancelURL:          s.config.CancelURL,
		LineItems:          lineItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Debug("checkout session ready", zap.String("session_id", session.ID))
	return session, nil
}

// BuildLineItems converts checkout lines to provider line items
func BuildLineItems(items []models.CheckoutItem) ([]PaymentLineItem, error) {
	lineItems := make([]PaymentLineItem, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("line %d: name is required: %w", i, models.ErrInvalidInput)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("line %d: unit price cannot be negative: %w", i, models.ErrInvalidInput)
		}
		if item.Quantity < 0 {
			return nil, fmt.Errorf("line %d: quantity cannot be negative: %w", i, models.ErrInvalidInput)
		}
		if item.Quantity == 0 {
			continue
		}

		lineItems = append(lineItems, PaymentLineItem{
			Name:        item.Name,
			Description: item.Description,
			UnitAmount:  ToMinorUnits(item.UnitPrice),
			Quantity:    int64(item.Quantity),
		})
	}
	return lineItems, nil
}

// ToMinorUnits converts a price to cents, rounding half away from zero
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(hundred).Round(0).IntPart()
}
