package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		logger:     log.Named("UserRepository"),
	}
}

// EnsureUser creates the user document for an externally issued uid if it
// does not exist yet. Existing documents are left untouched.
func (r *UserRepository) EnsureUser(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":      user.Email,
			"name":       user.Name,
			"photo_url":  user.PhotoURL,
			"favourites": []string{},
			"created_at": now,
			"updated_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		r.logger.Error("EnsureUser: upsert failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("FindByID: FindOne failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return toDomainUser(&doc), nil
}

// UpdateName sets the display name as a field-level update, never a whole
// document overwrite.
func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	update := bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("UpdateName: UpdateOne failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddFavourite adds listingID to the favourites set atomically. $addToSet
// keeps the membership invariant (each id at most once) without a
// read-modify-write of the document. The upsert covers a user whose
// document has not been created yet.
func (r *UserRepository) AddFavourite(ctx context.Context, userID, listingID string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$addToSet":    bson.M{"favourites": listingID},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		r.logger.Error("AddFavourite: UpdateOne failed",
			zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Error(err))
	}
	return err
}

// RemoveFavourite removes listingID from the favourites set atomically.
func (r *UserRepository) RemoveFavourite(ctx context.Context, userID, listingID string) error {
	update := bson.M{
		"$pull": bson.M{"favourites": listingID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		r.logger.Error("RemoveFavourite: UpdateOne failed",
			zap.String("user_id", userID), zap.String("listing_id", listingID), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
