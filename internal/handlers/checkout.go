package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"theatre-box-office/internal/models"
)

// CheckoutHandler creates payment sessions from a posted cart
type CheckoutHandler struct {
	checkout CheckoutCreator
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout CheckoutCreator, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// CreateSession handles POST /api/checkout with a JSON array of checkout lines
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var items []models.CheckoutItem
	if err := decodeJSON(w, r, &items); err != nil {
		writeError(w, http.StatusBadRequest, "invalid checkout body")
		return
	}

	createSession(w, r, h.checkout, h.logger, items)
}

func createSession(w http.ResponseWriter, r *http.Request, checkout CheckoutCreator, logger *zap.Logger, items []models.CheckoutItem) {
	session, err := checkout.CreateSession(r.Context(), items)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("checkout failed", zap.Int("status", status), zap.Error(err))
		}
		writeError(w, status, messageFor(err, status))
		return
	}

	writeJSON(w, http.StatusOK, session)
}
