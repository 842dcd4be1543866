package handler

import (
	"context"
	"net/http"

	"github.com/propview/estate-service/internal/adapter/http/middleware"
	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/listing/usecase"
	"github.com/propview/estate-service/internal/platform/logger"
)

// UserService exposes the caller's profile.
type UserService interface {
	Profile(ctx context.Context, auth usecase.AuthUser) (*domain.User, error)
	UpdateName(ctx context.Context, userID, name string) error
}

type UserHandler struct {
	service UserService
	logger  *logger.Logger
}

func NewUserHandler(service UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  log.Named("UserHandler"),
	}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auth := usecase.AuthUser{
		ID:    middleware.UserIDFromContext(ctx),
		Email: middleware.UserEmailFromContext(ctx),
		Name:  middleware.UserNameFromContext(ctx),
	}

	user, err := h.service.Profile(ctx, auth)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toUserView(user))
}

func (h *UserHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateName(r.Context(), middleware.UserIDFromContext(r.Context()), req.Name); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
