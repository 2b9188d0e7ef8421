package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"theatre-box-office/internal/models"
)

const maxImageBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// PlayImageHandler accepts poster uploads from staff
type PlayImageHandler struct {
	images PosterUploader
	logger *zap.Logger
}

// NewPlayImageHandler creates a new play image handler
func NewPlayImageHandler(images PosterUploader, logger *zap.Logger) *PlayImageHandler {
	return &PlayImageHandler{
		images: images,
		logger: logger,
	}
}

// UploadPoster handles POST /api/plays/{id}/image with a multipart "image" field
func (h *PlayImageHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	playID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid play id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1024)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	contentType := strings.ToLower(header.Header.Get("Content-Type"))
	if !allowedImageTypes[contentType] {
		writeError(w, http.StatusBadRequest, "unsupported image type")
		return
	}

	variants, err := h.images.UploadPoster(r.Context(), playID, file)
	if err != nil {
		if errors.Is(err, models.ErrPlayNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("poster upload failed", zap.Int("play_id", playID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	writeJSON(w, http.StatusCreated, variants)
}
