package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("estate-service/usecase")

// Publisher emits listing lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ListingCache caches single listings and the last-known result of each
// collection query.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
	GetSnapshot(ctx context.Context, key string) ([]*domain.Listing, error)
	SetSnapshot(ctx context.Context, key string, listings []*domain.Listing) error
}

type ListingUsecase struct {
	repo      domain.ListingRepository
	cache     ListingCache
	publisher Publisher
	logger    *logger.Logger
}

func NewListingUsecase(repo domain.ListingRepository, cache ListingCache, publisher Publisher, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    log.Named("ListingUsecase"),
	}
}

// SnapshotKey identifies the cached result for a filter. Every field that
// narrows the store query is part of the key, so a stale fallback is always
// the last-known result of the same query.
func SnapshotKey(filter domain.Filter) string {
	return fmt.Sprintf("type=%s;user=%s;city=%s;min=%g;max=%g",
		filter.Type, filter.UserID, filter.City, filter.MinPrice, filter.MaxPrice)
}

// Search fetches the listings collection with an optional filter. When the
// store read fails, the last-known snapshot is returned together with the
// error so the caller can show stale data instead of clearing the view.
func (uc *ListingUsecase) Search(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Search")
	defer span.End()
	span.SetAttributes(attribute.String("filter.type", string(filter.Type)), attribute.String("filter.user", filter.UserID))

	key := SnapshotKey(filter)

	listings, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("Search: store read failed, falling back to snapshot", zap.Error(err))
		cached, cacheErr := uc.cache.GetSnapshot(ctx, key)
		if cacheErr != nil {
			uc.logger.Warn("Search: snapshot read failed", zap.Error(cacheErr))
			return nil, err
		}
		return cached, err
	}

	if cacheErr := uc.cache.SetSnapshot(ctx, key, listings); cacheErr != nil {
		uc.logger.Warn("Search: snapshot write failed", zap.Error(cacheErr))
	}
	return listings, nil
}

func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("listing_id", id))

	if cached, err := uc.cache.GetListing(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := uc.cache.SetListing(ctx, listing); cacheErr != nil {
		uc.logger.Warn("GetByID: cache write failed", zap.String("listing_id", id), zap.Error(cacheErr))
	}
	return listing, nil
}

// Update applies an owner edit. Only the listing owner may mutate it; the
// check happens here, server-side.
func (uc *ListingUsecase) Update(ctx context.Context, id, userID string, patch domain.ListingUpdate) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		uc.logger.Warn("Update: forbidden",
			zap.String("listing_id", id), zap.String("owner_id", listing.UserID), zap.String("user_id", userID))
		return nil, domain.ErrForbidden
	}

	applyUpdate(listing, patch)
	listing.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("Update: store write failed", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	if cacheErr := uc.cache.SetListing(ctx, listing); cacheErr != nil {
		uc.logger.Warn("Update: cache write failed", zap.String("listing_id", id), zap.Error(cacheErr))
	}
	if pubErr := uc.publisher.Publish(ctx, "listing.updated", map[string]string{"id": listing.ID, "user_id": listing.UserID}); pubErr != nil {
		uc.logger.Warn("Update: event publish failed", zap.String("listing_id", id), zap.Error(pubErr))
	}
	return listing, nil
}

func (uc *ListingUsecase) UpdateStatus(ctx context.Context, id, userID string, status domain.ListingStatus) (*domain.Listing, error) {
	if status != domain.StatusActive && status != domain.StatusSold && status != domain.StatusInactive {
		return nil, fmt.Errorf("%w: status %q", domain.ErrInvalidListingData, status)
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, domain.ErrForbidden
	}

	listing.Status = status
	if err := uc.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	if cacheErr := uc.cache.SetListing(ctx, listing); cacheErr != nil {
		uc.logger.Warn("UpdateStatus: cache write failed", zap.String("listing_id", id), zap.Error(cacheErr))
	}
	return listing, nil
}

// Delete removes an owned listing. Favourites pointing at it are left
// behind as weak references; there is no cascading cleanup.
func (uc *ListingUsecase) Delete(ctx context.Context, id, userID string) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return err
		}
		uc.logger.Error("Delete: lookup failed", zap.String("listing_id", id), zap.Error(err))
		return err
	}
	if listing.UserID != userID {
		uc.logger.Warn("Delete: forbidden",
			zap.String("listing_id", id), zap.String("owner_id", listing.UserID), zap.String("user_id", userID))
		return domain.ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	if cacheErr := uc.cache.DeleteListing(ctx, id); cacheErr != nil {
		uc.logger.Warn("Delete: cache invalidation failed", zap.String("listing_id", id), zap.Error(cacheErr))
	}
	if pubErr := uc.publisher.Publish(ctx, "listing.deleted", map[string]string{"id": id, "user_id": userID}); pubErr != nil {
		uc.logger.Warn("Delete: event publish failed", zap.String("listing_id", id), zap.Error(pubErr))
	}
	return nil
}

func applyUpdate(listing *domain.Listing, patch domain.ListingUpdate) {
	if patch.Title != "" {
		listing.Title = patch.Title
	}
	if patch.Description != "" {
		listing.Description = patch.Description
	}
	if patch.Address != "" {
		listing.Address = patch.Address
	}
	if patch.City != "" {
		listing.City = patch.City
	}
	if patch.Price > 0 {
		listing.Price = patch.Price
	}
	if patch.Type.Valid() {
		listing.Type = patch.Type
	}
	if patch.Bedrooms != nil {
		listing.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		listing.Bathrooms = *patch.Bathrooms
	}
	if patch.Furnished != nil {
		listing.Furnished = *patch.Furnished
	}
	if patch.Parking != nil {
		listing.Parking = *patch.Parking
	}
	if len(patch.ImageURLs) > 0 {
		listing.ImageURLs = patch.ImageURLs
	}
	if patch.MainImage != "" {
		listing.MainImage = patch.MainImage
	}
}
