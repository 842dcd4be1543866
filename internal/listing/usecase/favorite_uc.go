package usecase

import (
	"context"
	"errors"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.uber.org/zap"
)

// FavoriteUsecase toggles membership of listing ids in a user's favourites
// set via atomic field updates on the user document.
type FavoriteUsecase struct {
	users    domain.UserRepository
	listings domain.ListingRepository
	logger   *logger.Logger
}

func NewFavoriteUsecase(users domain.UserRepository, listings domain.ListingRepository, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		users:    users,
		listings: listings,
		logger:   log.Named("FavoriteUsecase"),
	}
}

// Toggle flips membership of listingID in the user's favourites. The new
// state is decided from the fetched membership and reported to the caller
// even when the store write fails; the write is not rolled back and no
// mutual exclusion is applied across concurrent toggles. An unauthenticated
// caller never reaches the store.
func (uc *FavoriteUsecase) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUnauthenticated
	}
	if listingID == "" {
		return false, domain.ErrListingNotFound
	}

	isFavourite := false
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		uc.logger.Error("Toggle: user lookup failed", zap.String("user_id", userID), zap.Error(err))
		return false, err
	}
	if user != nil {
		isFavourite = user.HasFavourite(listingID)
	}

	favourited := !isFavourite

	if isFavourite {
		err = uc.users.RemoveFavourite(ctx, userID, listingID)
	} else {
		err = uc.users.AddFavourite(ctx, userID, listingID)
	}
	if err != nil {
		uc.logger.Error("Toggle: favourites update failed",
			zap.String("user_id", userID), zap.String("listing_id", listingID),
			zap.Bool("favourited", favourited), zap.Error(err))
		return favourited, err
	}

	uc.logger.Debug("Favourite toggled",
		zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Bool("favourited", favourited))
	return favourited, nil
}

// IsFavourite resolves the current membership state for one listing.
func (uc *FavoriteUsecase) IsFavourite(ctx context.Context, userID, listingID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUnauthenticated
	}
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasFavourite(listingID), nil
}

// Favourites resolves the user's favourite listings. Ids pointing at
// listings that were deleted since favouriting are skipped silently.
func (uc *FavoriteUsecase) Favourites(ctx context.Context, userID string) ([]*domain.Listing, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []*domain.Listing{}, nil
		}
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(user.Favourites))
	for _, id := range user.Favourites {
		listing, err := uc.listings.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				continue
			}
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
