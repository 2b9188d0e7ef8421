package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"theatre-box-office/internal/services"
)

// DoorListHandler serves the attendee list for front-of-house staff
type DoorListHandler struct {
	store  services.DoorListStore
	logger *zap.Logger
}

// NewDoorListHandler creates a new door list handler
func NewDoorListHandler(store services.DoorListStore, logger *zap.Logger) *DoorListHandler {
	return &DoorListHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/doorlist with an optional ?eventid= filter
func (h *DoorListHandler) List(w http.ResponseWriter, r *http.Request) {
	var eventID *int
	if raw := r.URL.Query().Get("eventid"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid eventid")
			return
		}
		eventID = &id
	}

	rows, err := h.store.List(r.Context(), eventID)
	if err != nil {
		h.logger.Error("failed to load door list", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
