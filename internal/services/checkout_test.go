package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"theatre-box-office/internal/config"
	"theatre-box-office/internal/models"
)

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		SuccessURL:         "http://localhost:3000/success",
		CancelURL:          "http://localhost:3000",
		Currency:           "usd",
		PaymentMethodTypes: []string{"card"},
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price    string
		expected int64
	}{
		{"7.99", 799},
		{"9.99", 999},
		{"0", 0},
		{"12", 1200},
		{"0.005", 1},
		{"19.994", 1999},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToMinorUnits(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestBuildLineItems(t *testing.T) {
	items := []models.CheckoutItem{
		{Name: "Hamlet Tickets", Description: "General Admission - Fri, Mar 1, 7:30 PM", UnitPrice: decimal.RequireFromString("7.99"), Quantity: 2},
		{Name: "Macbeth Ticket", Description: "Balcony", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 0},
	}

	lines, err := BuildLineItems(items)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, PaymentLineItem{
		Name:        "Hamlet Tickets",
		Description: "General Admission - Fri, Mar 1, 7:30 PM",
		UnitAmount:  799,
		Quantity:    2,
	}, lines[0])
}

func TestBuildLineItems_Invalid(t *testing.T) {
	tests := []struct {
		name string
		item models.CheckoutItem
	}{
		{"missing name", models.CheckoutItem{Name: " ", UnitPrice: decimal.NewFromInt(1), Quantity: 1}},
		{"negative price", models.CheckoutItem{Name: "x", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}},
		{"negative quantity", models.CheckoutItem{Name: "x", UnitPrice: decimal.NewFromInt(1), Quantity: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLineItems([]models.CheckoutItem{tt.item})
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestCheckoutService_CreateSession(t *testing.T) {
	provider := &MockPaymentProvider{}
	service := NewCheckoutService(provider, testCheckoutConfig(), zap.NewNop())

	expected := &models.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}
	provider.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req *CheckoutSessionRequest) bool {
		return req.Currency == "usd" &&
			req.SuccessURL == "http://localhost:3000/success" &&
			req.CancelURL == "http://localhost:3000" &&
			len(req.LineItems) == 1 &&
			req.LineItems[0].UnitAmount == 999 &&
			req.LineItems[0].Quantity == 3
	})).Return(expected, nil)

	session, err := service.CreateSession(context.Background(), []models.CheckoutItem{
		{Name: "Hamlet Tickets + Concessions", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, expected, session)
	provider.AssertExpectations(t)
}

func TestCheckoutService_CreateSession_EmptyCart(t *testing.T) {
	provider := &MockPaymentProvider{}
	service := NewCheckoutService(provider, testCheckoutConfig(), zap.NewNop())

	_, err := service.CreateSession(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	_, err = service.CreateSession(context.Background(), []models.CheckoutItem{
		{Name: "Hamlet Ticket", UnitPrice: decimal.RequireFromString("7.99"), Quantity: 0},
	})
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCheckoutService_CreateSession_ProviderFailure(t *testing.T) {
	provider := &MockPaymentProvider{}
	service := NewCheckoutService(provider, testCheckoutConfig(), zap.NewNop())

	provider.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(nil, errors.Join(models.ErrPaymentProvider, errors.New("card network down")))

	_, err := service.CreateSession(context.Background(), []models.CheckoutItem{
		{Name: "Hamlet Ticket", UnitPrice: decimal.RequireFromString("7.99"), Quantity: 1},
	})
	assert.ErrorIs(t, err, models.ErrPaymentProvider)
}

func TestMockPaymentService(t *testing.T) {
	service := NewPaymentService(config.StripeConfig{}, zap.NewNop())
	require.IsType(t, &MockPaymentService{}, service)

	session, err := service.CreateCheckoutSession(context.Background(), &CheckoutSessionRequest{
		Currency:   "usd",
		SuccessURL: "http://localhost:3000/success",
		LineItems:  []PaymentLineItem{{Name: "Hamlet Ticket", UnitAmount: 799, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Contains(t, session.ID, "cs_mock_")
	assert.Equal(t, "http://localhost:3000/success", session.URL)
}
