package services

import (
	"context"

	"theatre-box-office/internal/models"
)

// PaymentService creates hosted checkout sessions with a payment provider
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*models.CheckoutSession, error)
}

// CheckoutSessionRequest is a provider-neutral payment-mode session request
type CheckoutSessionRequest struct {
	Currency           string
	PaymentMethodTypes []string
	SuccessURL         string
	CancelURL          string
	LineItems          []PaymentLineItem
}

// PaymentLineItem is one priced line, amounts in minor currency units
type PaymentLineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}
