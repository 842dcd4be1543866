package mongodb

import (
	"fmt"
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listingDocument is the persisted shape of a Listing. The _id is a
// store-generated ObjectID exposed to the domain as its hex string.
type listingDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	UserID      string               `bson:"user_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description,omitempty"`
	Address     string               `bson:"address,omitempty"`
	City        string               `bson:"city,omitempty"`
	Price       float64              `bson:"price"`
	Type        domain.ListingType   `bson:"type"`
	Bedrooms    int                  `bson:"bedrooms,omitempty"`
	Bathrooms   int                  `bson:"bathrooms,omitempty"`
	Furnished   bool                 `bson:"furnished"`
	Parking     bool                 `bson:"parking"`
	ImageURLs   []string             `bson:"img_urls,omitempty"`
	MainImage   string               `bson:"main_image,omitempty"`
	Status      domain.ListingStatus `bson:"status"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

// userDocument is the persisted shape of a User. Unlike listings, the _id is
// the uid issued by the external auth provider, so it stays a plain string.
type userDocument struct {
	ID         string    `bson:"_id"`
	Email      string    `bson:"email,omitempty"`
	Name       string    `bson:"name,omitempty"`
	PhotoURL   string    `bson:"photo_url,omitempty"`
	Favourites []string  `bson:"favourites,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	if l == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("toListingDocument: invalid listing id %q: %w", l.ID, err)
		}
	}

	return &listingDocument{
		ID:          docID,
		UserID:      l.UserID,
		Title:       l.Title,
		Description: l.Description,
		Address:     l.Address,
		City:        l.City,
		Price:       l.Price,
		Type:        l.Type,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Furnished:   l.Furnished,
		Parking:     l.Parking,
		ImageURLs:   l.ImageURLs,
		MainImage:   l.MainImage,
		Status:      l.Status,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	if d == nil {
		return nil
	}
	return &domain.Listing{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		Address:     d.Address,
		City:        d.City,
		Price:       d.Price,
		Type:        d.Type,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Furnished:   d.Furnished,
		Parking:     d.Parking,
		ImageURLs:   d.ImageURLs,
		MainImage:   d.MainImage,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings
}

func toDomainUser(d *userDocument) *domain.User {
	if d == nil {
		return nil
	}
	return &domain.User{
		ID:         d.ID,
		Email:      d.Email,
		Name:       d.Name,
		PhotoURL:   d.PhotoURL,
		Favourites: d.Favourites,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
