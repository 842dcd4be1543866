package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
	"github.com/propview/estate-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	r := &ListingRepository{
		collection: db.Collection("listings"),
		logger:     log.Named("ListingRepository"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		r.logger.Warn("failed to create listing indexes", zap.Error(err))
	}
	return r
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	doc, err := toListingDocument(listing)
	if err != nil {
		return fmt.Errorf("failed to prepare listing for database: %w", err)
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("Create: InsertOne failed", zap.String("user_id", listing.UserID), zap.Error(err))
		return err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		r.logger.Error("Create: InsertOne returned unexpected ID type", zap.Any("inserted_id", res.InsertedID))
		return errors.New("failed to retrieve generated listing ID")
	}
	listing.ID = oid.Hex()
	r.logger.Debug("Listing created", zap.String("listing_id", listing.ID), zap.String("user_id", listing.UserID))
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	listing.UpdatedAt = time.Now().UTC()

	doc, err := toListingDocument(listing)
	if err != nil {
		return fmt.Errorf("failed to prepare listing for database: %w", err)
	}

	res, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": doc})
	if err != nil {
		r.logger.Error("Update: UpdateByID failed", zap.String("listing_id", listing.ID), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Delete: DeleteOne failed", zap.String("listing_id", id), zap.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("FindByID: FindOne failed", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		price := bson.M{}
		if filter.MinPrice > 0 {
			price["$gte"] = filter.MinPrice
		}
		if filter.MaxPrice > 0 {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("FindByFilter: Find failed", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("FindByFilter: cursor decode failed", zap.Error(err))
		return nil, err
	}
	return toDomainListings(docs), nil
}
