package handler

import (
	"context"
	"net/http"

	"github.com/propview/estate-service/internal/adapter/http/middleware"
	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/propview/estate-service/internal/platform/metrics"
)

// DraftService drives the add-property form session.
type DraftService interface {
	Session(ctx context.Context, userID string) (*domain.DraftSession, error)
	SetField(ctx context.Context, userID, key string, value interface{}) (*domain.DraftSession, error)
	NextStep(ctx context.Context, userID string) (*domain.DraftSession, error)
	PrevStep(ctx context.Context, userID string) (*domain.DraftSession, error)
	JumpToStep(ctx context.Context, userID string, step int) (*domain.DraftSession, error)
	Reset(ctx context.Context, userID string) error
	Publish(ctx context.Context, userID string) (string, error)
}

type DraftHandler struct {
	service DraftService
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewDraftHandler(service DraftService, mm *metrics.MetricsManager, log *logger.Logger) *DraftHandler {
	return &DraftHandler{
		service: service,
		metrics: mm,
		logger:  log.Named("DraftHandler"),
	}
}

func (h *DraftHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Session(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// SetField merges one form field into the draft. The value is kept as
// decoded JSON so the domain layer does the type coercion.
func (h *DraftHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string      `json:"field"`
		Value interface{} `json:"value"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	session, err := h.service.SetField(r.Context(), middleware.UserIDFromContext(r.Context()), req.Field, req.Value)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *DraftHandler) NextStep(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.NextStep(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *DraftHandler) PrevStep(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.PrevStep(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *DraftHandler) JumpToStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step int `json:"step"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	session, err := h.service.JumpToStep(r.Context(), middleware.UserIDFromContext(r.Context()), req.Step)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publish commits the draft. On success the client navigates to the new
// listing; on an empty draft the error body carries the step to land on.
func (h *DraftHandler) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Publish(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.ListingsPublishedTotal.Inc()
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}
