package models

import "errors"

// Common errors used throughout the application
var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrPlayNotFound    = errors.New("play not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentProvider = errors.New("payment provider error")
	ErrUnauthorized    = errors.New("unauthorized access")
)
