package usecase

import (
	"context"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
)

// ImageUsecase stores uploaded listing images and attaches their URLs.
type ImageUsecase struct {
	storage domain.Storage
	repo    domain.ListingRepository
}

func NewImageUsecase(storage domain.Storage, repo domain.ListingRepository) *ImageUsecase {
	return &ImageUsecase{storage: storage, repo: repo}
}

// Upload stores the image bytes and returns the public URL. The caller puts
// the URL into the draft's image step.
func (uc *ImageUsecase) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	return uc.storage.Upload(ctx, fileName, data)
}

// AttachToListing uploads an image and appends its URL to an owned,
// already-published listing.
func (uc *ImageUsecase) AttachToListing(ctx context.Context, listingID, userID, fileName string, data []byte) (string, error) {
	listing, err := uc.repo.FindByID(ctx, listingID)
	if err != nil {
		return "", err
	}
	if listing.UserID != userID {
		return "", domain.ErrForbidden
	}

	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		return "", err
	}

	listing.ImageURLs = append(listing.ImageURLs, url)
	listing.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, listing); err != nil {
		return "", err
	}
	return url, nil
}
