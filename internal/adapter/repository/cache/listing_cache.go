package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/redis/go-redis/v9"
)

const (
	listingKeyPrefix  = "listing:"
	snapshotKeyPrefix = "listings:"

	listingTTL = 1 * time.Hour
)

// ListingCache caches single listings with a TTL and keeps the last-known
// result of each collection query without one, so a stale snapshot stays
// servable while the primary store is failing.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// GetListing returns nil, nil on a cache miss.
func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, listingKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingKeyPrefix+listing.ID, data, listingTTL).Err()
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, listingKeyPrefix+id).Err()
}

// GetSnapshot returns nil, nil when no snapshot exists for the key.
func (c *ListingCache) GetSnapshot(ctx context.Context, key string) ([]*domain.Listing, error) {
	data, err := c.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listings []*domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// SetSnapshot stores the last-known query result. No TTL: the snapshot is
// kept until replaced so it can be served while the store is unavailable.
func (c *ListingCache) SetSnapshot(ctx context.Context, key string, listings []*domain.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKeyPrefix+key, data, 0).Err()
}
