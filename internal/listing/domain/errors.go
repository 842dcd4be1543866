package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrInvalidName        = errors.New("name cannot be empty")
	ErrUnknownDraftField  = errors.New("unknown draft field")
	ErrEmptyDraft         = errors.New("draft is empty")
	ErrPublishInFlight    = errors.New("publish already in progress")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("action forbidden")
)
