package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/mailer"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DraftUsecase owns the multi-step form state: one draft session per user,
// mutated through the state-machine operations and committed by Publish.
type DraftUsecase struct {
	store     domain.DraftStore
	listings  domain.ListingRepository
	users     domain.UserRepository
	publisher Publisher
	mailer    mailer.Mailer
	logger    *logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewDraftUsecase(
	store domain.DraftStore,
	listings domain.ListingRepository,
	users domain.UserRepository,
	publisher Publisher,
	m mailer.Mailer,
	log *logger.Logger,
) *DraftUsecase {
	return &DraftUsecase{
		store:     store,
		listings:  listings,
		users:     users,
		publisher: publisher,
		mailer:    m,
		logger:    log.Named("DraftUsecase"),
		inFlight:  make(map[string]struct{}),
	}
}

// Session returns the user's current draft session, creating a fresh one if
// none exists yet.
func (uc *DraftUsecase) Session(ctx context.Context, userID string) (*domain.DraftSession, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.store.Get(ctx, userID)
}

// SetField merges one field into the draft and persists the session.
func (uc *DraftUsecase) SetField(ctx context.Context, userID, key string, value interface{}) (*domain.DraftSession, error) {
	return uc.mutate(ctx, userID, func(s *domain.DraftSession) error {
		return s.Draft.SetField(key, value)
	})
}

func (uc *DraftUsecase) NextStep(ctx context.Context, userID string) (*domain.DraftSession, error) {
	return uc.mutate(ctx, userID, func(s *domain.DraftSession) error {
		s.NextStep()
		return nil
	})
}

func (uc *DraftUsecase) PrevStep(ctx context.Context, userID string) (*domain.DraftSession, error) {
	return uc.mutate(ctx, userID, func(s *domain.DraftSession) error {
		s.PrevStep()
		return nil
	})
}

func (uc *DraftUsecase) JumpToStep(ctx context.Context, userID string, step int) (*domain.DraftSession, error) {
	return uc.mutate(ctx, userID, func(s *domain.DraftSession) error {
		s.JumpToStep(step)
		return nil
	})
}

// Reset destroys the session: the next read yields an empty draft at step 0.
func (uc *DraftUsecase) Reset(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	return uc.store.Delete(ctx, userID)
}

func (uc *DraftUsecase) mutate(ctx context.Context, userID string, op func(*domain.DraftSession) error) (*domain.DraftSession, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := uc.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, userID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Publish commits the draft as a new listing. A second publish for the same
// user while one is running is rejected. An empty draft never reaches the
// store: the session is sent back to the first step instead. On failure the
// draft is preserved so the user does not lose data; on success the session
// is destroyed and the new listing id is returned for navigation.
func (uc *DraftUsecase) Publish(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}

	if !uc.acquire(userID) {
		uc.logger.Warn("Publish: rejected concurrent publish", zap.String("user_id", userID))
		return "", domain.ErrPublishInFlight
	}
	defer uc.release(userID)

	ctx, span := tracer.Start(ctx, "DraftUsecase.Publish")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	session, err := uc.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	if session.Draft.IsEmpty() {
		session.JumpToStep(domain.StepDetails)
		if saveErr := uc.store.Save(ctx, userID, session); saveErr != nil {
			uc.logger.Warn("Publish: failed to persist step redirect", zap.String("user_id", userID), zap.Error(saveErr))
		}
		return "", domain.ErrEmptyDraft
	}

	if err := session.Draft.Validate(); err != nil {
		return "", err
	}

	listing := session.Draft.ToListing(userID)
	if err := uc.listings.Create(ctx, listing); err != nil {
		uc.logger.Error("Publish: create failed, draft preserved", zap.String("user_id", userID), zap.Error(err))
		span.RecordError(err)
		return "", err
	}
	span.SetAttributes(attribute.String("listing_id", listing.ID))

	// The listing exists now; session cleanup and notifications are
	// best-effort and must not fail the publish.
	if err := uc.store.Delete(ctx, userID); err != nil {
		uc.logger.Warn("Publish: failed to clear draft session", zap.String("user_id", userID), zap.Error(err))
	}

	if err := uc.publisher.Publish(ctx, "listing.published", map[string]string{
		"id":      listing.ID,
		"user_id": listing.UserID,
		"type":    string(listing.Type),
	}); err != nil {
		uc.logger.Warn("Publish: event publish failed", zap.String("listing_id", listing.ID), zap.Error(err))
	}

	uc.notifyOwner(ctx, userID, listing.Title)

	uc.logger.Info("Listing published",
		zap.String("listing_id", listing.ID), zap.String("user_id", userID), zap.String("type", string(listing.Type)))
	return listing.ID, nil
}

func (uc *DraftUsecase) notifyOwner(ctx context.Context, userID, title string) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Warn("Publish: owner lookup for email failed", zap.String("user_id", userID), zap.Error(err))
		}
		return
	}
	if user.Email == "" {
		return
	}
	if err := uc.mailer.SendListingPublished(ctx, user.Email, title); err != nil {
		uc.logger.Warn("Publish: notification email failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (uc *DraftUsecase) acquire(userID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, busy := uc.inFlight[userID]; busy {
		return false
	}
	uc.inFlight[userID] = struct{}{}
	return true
}

func (uc *DraftUsecase) release(userID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, userID)
}
