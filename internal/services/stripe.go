package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"theatre-box-office/internal/models"
)

// StripePaymentService creates Stripe Checkout sessions
type StripePaymentService struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripePaymentService creates a Stripe-backed payment service
func NewStripePaymentService(secretKey string, logger *zap.Logger) *StripePaymentService {
	return NewStripePaymentServiceWithBackends(secretKey, nil, logger)
}

// NewStripePaymentServiceWithBackends allows pointing the client at a different API backend
func NewStripePaymentServiceWithBackends(secretKey string, backends *stripe.Backends, logger *zap.Logger) *StripePaymentService {
	return &StripePaymentService{
		api:    client.New(secretKey, backends),
		logger: logger,
	}
}

// CreateCheckoutSession requests a payment-mode session from Stripe
func (s *StripePaymentService) CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*models.CheckoutSession, error) {
	params := buildCheckoutSessionParams(req)
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("stripe checkout session failed",
			zap.Int("line_items", len(req.LineItems)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: stripe: %w", models.ErrPaymentProvider, err)
	}

	s.logger.Info("stripe checkout session created",
		zap.String("session_id", session.ID),
		zap.Int("line_items", len(req.LineItems)))

	return &models.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func buildCheckoutSessionParams(req *CheckoutSessionRequest) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		// Stripe rejects empty strings for optional fields
		if item.Description != "" {
			product.Description = stripe.String(item.Description)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	return &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice(req.PaymentMethodTypes),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
}
