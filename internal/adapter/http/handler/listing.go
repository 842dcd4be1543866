package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/propview/estate-service/internal/adapter/http/middleware"
	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/propview/estate-service/internal/platform/metrics"
)

// ListingService is the part of the listing usecase the HTTP layer needs.
type ListingService interface {
	Search(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error)
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	Update(ctx context.Context, id, userID string, patch domain.ListingUpdate) (*domain.Listing, error)
	UpdateStatus(ctx context.Context, id, userID string, status domain.ListingStatus) (*domain.Listing, error)
	Delete(ctx context.Context, id, userID string) error
}

type ListingHandler struct {
	service ListingService
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewListingHandler(service ListingService, mm *metrics.MetricsManager, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		metrics: mm,
		logger:  log.Named("ListingHandler"),
	}
}

// Search answers the listings collection query. A store failure with a
// usable snapshot still answers 200: the stale listings are returned next to
// the error message so the client can keep rendering the last-known data.
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	listings, err := h.service.Search(r.Context(), filter)
	if err != nil {
		if listings == nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"listings": toListingViews(listings),
			"error":    storeErrorMessage(err),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": toListingViews(listings),
	})
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingView(listing))
}

type updateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Price       float64  `json:"price"`
	Type        string   `json:"type"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Furnished   *bool    `json:"furnished"`
	Parking     *bool    `json:"parking"`
	ImgURLs     []string `json:"imgUrls"`
	MainImage   string   `json:"mainImage"`
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateListingRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	patch := domain.ListingUpdate{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Price:       req.Price,
		Type:        domain.ListingType(req.Type),
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Furnished:   req.Furnished,
		Parking:     req.Parking,
		ImageURLs:   req.ImgURLs,
		MainImage:   req.MainImage,
	}

	listing, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), middleware.UserIDFromContext(r.Context()), patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingView(listing))
}

func (h *ListingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	listing, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"),
		middleware.UserIDFromContext(r.Context()), domain.ListingStatus(req.Status))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toListingView(listing))
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id, middleware.UserIDFromContext(r.Context())); err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.ListingDeletesTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	filter := domain.Filter{
		Type:   domain.ListingType(q.Get("type")),
		UserID: q.Get("user_id"),
		City:   q.Get("city"),
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}
	return filter
}
