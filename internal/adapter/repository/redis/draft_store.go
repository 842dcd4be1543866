package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix = "draft:"

	// An abandoned draft survives a day before it expires.
	defaultDraftTTL = 24 * time.Hour
)

// DraftStore keeps one in-progress draft session per user as a JSON blob.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client, ttl: defaultDraftTTL}
}

func (s *DraftStore) draftKey(userID string) string {
	return draftKeyPrefix + userID
}

// Get returns the user's session, or a fresh one if none is stored.
func (s *DraftStore) Get(ctx context.Context, userID string) (*domain.DraftSession, error) {
	val, err := s.client.Get(ctx, s.draftKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewDraftSession(), nil
		}
		return nil, fmt.Errorf("failed to get draft session for user %s: %w", userID, err)
	}

	var session domain.DraftSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft session for user %s: %w", userID, err)
	}
	return &session, nil
}

func (s *DraftStore) Save(ctx context.Context, userID string, session *domain.DraftSession) error {
	if session == nil || userID == "" {
		return errors.New("cannot save nil session or session with empty userID")
	}

	session.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal draft session for user %s: %w", userID, err)
	}

	if err := s.client.Set(ctx, s.draftKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft session for user %s: %w", userID, err)
	}
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft session for user %s: %w", userID, err)
	}
	return nil
}
