package usecase

import (
	"context"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]*domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) AddFavourite(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFavourite(ctx context.Context, userID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Get(ctx context.Context, userID string) (*domain.DraftSession, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*domain.DraftSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDraftStore) Save(ctx context.Context, userID string, session *domain.DraftSession) error {
	args := m.Called(ctx, userID, session)
	return args.Error(0)
}

func (m *MockDraftStore) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingCache) DeleteListing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingCache) GetSnapshot(ctx context.Context, key string) ([]*domain.Listing, error) {
	args := m.Called(ctx, key)
	if l := args.Get(0); l != nil {
		return l.([]*domain.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockListingCache) SetSnapshot(ctx context.Context, key string, listings []*domain.Listing) error {
	args := m.Called(ctx, key, listings)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendListingPublished(ctx context.Context, toEmail, listingTitle string) error {
	args := m.Called(ctx, toEmail, listingTitle)
	return args.Error(0)
}
