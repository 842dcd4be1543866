package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/propview/estate-service/internal/adapter/http/middleware"
	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/propview/estate-service/internal/platform/metrics"
)

// FavoriteService manages the caller's favourites set.
type FavoriteService interface {
	Toggle(ctx context.Context, userID, listingID string) (bool, error)
	IsFavourite(ctx context.Context, userID, listingID string) (bool, error)
	Favourites(ctx context.Context, userID string) ([]*domain.Listing, error)
}

type FavoriteHandler struct {
	service FavoriteService
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewFavoriteHandler(service FavoriteService, mm *metrics.MetricsManager, log *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		metrics: mm,
		logger:  log.Named("FavoriteHandler"),
	}
}

// Toggle flips favourite membership. The response always carries the state
// the client should render: when the store write fails the flipped state is
// still reported next to the error, matching the optimistic behaviour.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	listingID := chi.URLParam(r, "listingID")

	favourited, err := h.service.Toggle(r.Context(), userID, listingID)
	if err != nil {
		status, body := errorBody(err)
		if status >= http.StatusInternalServerError {
			body["favourited"] = favourited
		}
		respondJSON(w, status, body)
		return
	}

	h.metrics.FavouriteTogglesTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]bool{"favourited": favourited})
}

func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	favourited, err := h.service.IsFavourite(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "listingID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"favourited": favourited})
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.Favourites(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": toListingViews(listings),
	})
}
