package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CatalogHandler serves plays and ticket slots
type CatalogHandler struct {
	catalog CatalogProvider
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogProvider, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListPlays handles GET /api/plays
func (h *CatalogHandler) ListPlays(w http.ResponseWriter, r *http.Request) {
	plays, err := h.catalog.ListPlays(r.Context())
	if err != nil {
		h.logger.Error("failed to list plays", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load plays")
		return
	}

	writeJSON(w, http.StatusOK, plays)
}

// ListTickets handles GET /api/tickets
func (h *CatalogHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.catalog.ListTickets(r.Context())
	if err != nil {
		h.logger.Error("failed to list tickets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load tickets")
		return
	}

	writeJSON(w, http.StatusOK, tickets)
}

// GetPlay handles GET /api/plays/{id}
func (h *CatalogHandler) GetPlay(w http.ResponseWriter, r *http.Request) {
	playID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid play id")
		return
	}

	detail, err := h.catalog.PlayDetail(r.Context(), playID)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("failed to load play", zap.Int("play_id", playID), zap.Error(err))
		}
		writeError(w, status, messageFor(err, status))
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
