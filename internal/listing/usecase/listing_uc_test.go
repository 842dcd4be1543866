package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newListingFixture() (*ListingUsecase, *MockListingRepository, *MockListingCache, *MockPublisher) {
	repo := new(MockListingRepository)
	lcache := new(MockListingCache)
	publisher := new(MockPublisher)
	return NewListingUsecase(repo, lcache, publisher, logger.NewNop()), repo, lcache, publisher
}

func TestListingUsecase_SearchStoresSnapshot(t *testing.T) {
	uc, repo, lcache, _ := newListingFixture()
	ctx := context.Background()

	filter := domain.Filter{Type: domain.TypeRent}
	found := []*domain.Listing{{ID: "a"}, {ID: "b"}}
	repo.On("FindByFilter", mock.Anything, filter).Return(found, nil)
	lcache.On("SetSnapshot", mock.Anything, SnapshotKey(filter), found).Return(nil)

	listings, err := uc.Search(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, found, listings)
	lcache.AssertExpectations(t)
}

func TestListingUsecase_SearchFailureServesStaleSnapshot(t *testing.T) {
	uc, repo, lcache, _ := newListingFixture()
	ctx := context.Background()

	filter := domain.Filter{City: "Almaty"}
	storeErr := errors.New("permission-denied")
	stale := []*domain.Listing{{ID: "stale-1"}}
	repo.On("FindByFilter", mock.Anything, filter).Return(nil, storeErr)
	lcache.On("GetSnapshot", mock.Anything, SnapshotKey(filter)).Return(stale, nil)

	listings, err := uc.Search(ctx, filter)

	// The error is surfaced and the last-known listings come with it, so
	// the caller can show stale data instead of a blank view.
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, stale, listings)
}

func TestSnapshotKeySeparatesPriceBounds(t *testing.T) {
	cheap := domain.Filter{Type: domain.TypeRent, MaxPrice: 500}
	expensive := domain.Filter{Type: domain.TypeRent, MinPrice: 100000}

	assert.NotEqual(t, SnapshotKey(cheap), SnapshotKey(expensive),
		"price-bounded queries must not share a snapshot slot")
	assert.NotEqual(t, SnapshotKey(cheap), SnapshotKey(domain.Filter{Type: domain.TypeRent}))
	assert.Equal(t, SnapshotKey(cheap), SnapshotKey(domain.Filter{Type: domain.TypeRent, MaxPrice: 500}))
}

func TestListingUsecase_SearchFailureFallsBackToSameQuerySnapshot(t *testing.T) {
	uc, repo, lcache, _ := newListingFixture()
	ctx := context.Background()

	cheap := domain.Filter{Type: domain.TypeRent, MaxPrice: 500}
	expensive := domain.Filter{Type: domain.TypeRent, MinPrice: 100000}

	cheapListings := []*domain.Listing{{ID: "cheap-1", Price: 300}}
	repo.On("FindByFilter", mock.Anything, cheap).Return(cheapListings, nil)
	lcache.On("SetSnapshot", mock.Anything, SnapshotKey(cheap), cheapListings).Return(nil)

	_, err := uc.Search(ctx, cheap)
	require.NoError(t, err)

	// The expensive query fails with no snapshot of its own; the cheap
	// query's snapshot must not leak into its result.
	repo.On("FindByFilter", mock.Anything, expensive).Return(nil, errors.New("down"))
	lcache.On("GetSnapshot", mock.Anything, SnapshotKey(expensive)).Return(nil, nil)

	listings, err := uc.Search(ctx, expensive)
	require.Error(t, err)
	assert.Nil(t, listings)
	lcache.AssertNotCalled(t, "GetSnapshot", mock.Anything, SnapshotKey(cheap))
}

func TestListingUsecase_SearchFailureWithoutSnapshot(t *testing.T) {
	uc, repo, lcache, _ := newListingFixture()
	ctx := context.Background()

	filter := domain.Filter{}
	storeErr := errors.New("down")
	repo.On("FindByFilter", mock.Anything, filter).Return(nil, storeErr)
	lcache.On("GetSnapshot", mock.Anything, SnapshotKey(filter)).Return(nil, nil)

	listings, err := uc.Search(ctx, filter)

	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, listings)
}

func TestListingUsecase_GetByIDCacheHitSkipsStore(t *testing.T) {
	uc, repo, lcache, _ := newListingFixture()
	ctx := context.Background()

	cached := &domain.Listing{ID: "listing-1", Title: "Cozy flat"}
	lcache.On("GetListing", mock.Anything, "listing-1").Return(cached, nil)

	listing, err := uc.GetByID(ctx, "listing-1")

	require.NoError(t, err)
	assert.Equal(t, cached, listing)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListingUsecase_GetByIDCacheMissFallsThrough(t *testing.T) {
	uc, repo, lcache, _ := newListingFixture()
	ctx := context.Background()

	stored := &domain.Listing{ID: "listing-1"}
	lcache.On("GetListing", mock.Anything, "listing-1").Return(nil, nil)
	repo.On("FindByID", mock.Anything, "listing-1").Return(stored, nil)
	lcache.On("SetListing", mock.Anything, stored).Return(nil)

	listing, err := uc.GetByID(ctx, "listing-1")

	require.NoError(t, err)
	assert.Equal(t, stored, listing)
}

func TestListingUsecase_UpdateForbiddenForNonOwner(t *testing.T) {
	uc, repo, _, _ := newListingFixture()
	ctx := context.Background()

	repo.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "owner"}, nil)

	_, err := uc.Update(ctx, "listing-1", "intruder", domain.ListingUpdate{Title: "hijacked"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestListingUsecase_UpdateAppliesPatch(t *testing.T) {
	uc, repo, lcache, publisher := newListingFixture()
	ctx := context.Background()

	bedrooms := 4
	repo.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "owner", Title: "Old", Bedrooms: 2}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)
	lcache.On("SetListing", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, "listing.updated", mock.Anything).Return(nil)

	listing, err := uc.Update(ctx, "listing-1", "owner", domain.ListingUpdate{Title: "New", Bedrooms: &bedrooms})

	require.NoError(t, err)
	assert.Equal(t, "New", listing.Title)
	assert.Equal(t, 4, listing.Bedrooms)
}

func TestListingUsecase_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	uc, repo, _, _ := newListingFixture()

	_, err := uc.UpdateStatus(context.Background(), "listing-1", "owner", domain.ListingStatus("archived"))

	assert.ErrorIs(t, err, domain.ErrInvalidListingData)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestListingUsecase_DeleteOwnedListing(t *testing.T) {
	uc, repo, lcache, publisher := newListingFixture()
	ctx := context.Background()

	repo.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "owner"}, nil)
	repo.On("Delete", mock.Anything, "listing-1").Return(nil)
	lcache.On("DeleteListing", mock.Anything, "listing-1").Return(nil)
	publisher.On("Publish", mock.Anything, "listing.deleted", mock.Anything).Return(nil)

	require.NoError(t, uc.Delete(ctx, "listing-1", "owner"))
	repo.AssertExpectations(t)
}

func TestListingUsecase_DeleteForbiddenForNonOwner(t *testing.T) {
	uc, repo, _, _ := newListingFixture()

	repo.On("FindByID", mock.Anything, "listing-1").
		Return(&domain.Listing{ID: "listing-1", UserID: "owner"}, nil)

	err := uc.Delete(context.Background(), "listing-1", "intruder")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
