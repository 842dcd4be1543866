package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/propview/estate-service/internal/adapter/http/middleware"
	"github.com/propview/estate-service/internal/platform/logger"
)

// maxImageSize caps a single upload at 10 MiB.
const maxImageSize = 10 << 20

// ImageService uploads listing images to object storage.
type ImageService interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	AttachToListing(ctx context.Context, listingID, userID, fileName string, data []byte) (string, error)
}

type ImageHandler struct {
	service ImageService
	logger  *logger.Logger
}

func NewImageHandler(service ImageService, log *logger.Logger) *ImageHandler {
	return &ImageHandler{
		service: service,
		logger:  log.Named("ImageHandler"),
	}
}

// Upload accepts a multipart image. With a listing_id form value the URL is
// also appended to that owned listing; otherwise the caller puts the URL
// into the draft's image step.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form or file too large"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read image file"})
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	listingID := r.FormValue("listing_id")

	var url string
	if listingID != "" {
		url, err = h.service.AttachToListing(r.Context(), listingID, userID, header.Filename, data)
	} else {
		url, err = h.service.Upload(r.Context(), header.Filename, data)
	}
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}
