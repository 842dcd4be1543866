package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const genericErrorMessage = "Could not complete the request"

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError translates domain errors into the HTTP contract. Store errors
// that carry a message surface it; anything unrecognized collapses to a
// generic message so internals never leak to the client.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	respondJSON(w, status, body)
}

func errorBody(err error) (int, map[string]interface{}) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, map[string]interface{}{
			"error":    "sign in to continue",
			"redirect": "/signin",
		}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, map[string]interface{}{"error": "you can only modify your own listings"}
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, map[string]interface{}{"error": err.Error()}
	case errors.Is(err, domain.ErrInvalidListingData), errors.Is(err, domain.ErrUnknownDraftField),
		errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest, map[string]interface{}{"error": err.Error()}
	case errors.Is(err, domain.ErrEmptyDraft):
		// The form was submitted with nothing filled in; the client should
		// land back on the first step.
		return http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
			"step":  domain.StepDetails,
		}
	case errors.Is(err, domain.ErrPublishInFlight):
		return http.StatusConflict, map[string]interface{}{"error": err.Error()}
	}
	return http.StatusInternalServerError, map[string]interface{}{"error": storeErrorMessage(err)}
}

// storeErrorMessage keeps the notification taxonomy: a failure reported by
// the store itself is shown with its native message, everything else gets
// the generic one.
func storeErrorMessage(err error) string {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Message
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && len(writeErr.WriteErrors) > 0 {
		return writeErr.WriteErrors[0].Message
	}
	return genericErrorMessage
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
