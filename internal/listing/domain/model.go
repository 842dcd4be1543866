package domain

import "time"

// ListingType is the market a property is listed on.
type ListingType string

const (
	TypeRent ListingType = "rent"
	TypeSale ListingType = "sale"
)

// Valid reports whether t is one of the two published market types.
func (t ListingType) Valid() bool {
	return t == TypeRent || t == TypeSale
}

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusSold     ListingStatus = "sold"
	StatusInactive ListingStatus = "inactive"
)

// Listing is a published property advertisement. Type is guaranteed to be
// set once a listing exists; it may only be unset while drafting.
type Listing struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Address     string
	City        string
	Price       float64
	Type        ListingType
	Bedrooms    int
	Bathrooms   int
	Furnished   bool
	Parking     bool
	ImageURLs   []string
	MainImage   string
	Status      ListingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListingUpdate carries the mutable listing fields for an owner edit.
// Zero values mean "leave unchanged".
type ListingUpdate struct {
	Title       string
	Description string
	Address     string
	City        string
	Price       float64
	Type        ListingType
	Bedrooms    *int
	Bathrooms   *int
	Furnished   *bool
	Parking     *bool
	ImageURLs   []string
	MainImage   string
}

// User mirrors the users collection. ID is the uid issued by the external
// auth provider, not a store-generated id. Favourites holds each listing id
// at most once; it may reference listings that no longer exist.
type User struct {
	ID         string
	Email      string
	Name       string
	PhotoURL   string
	Favourites []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasFavourite reports membership of listingID in the favourites set.
func (u *User) HasFavourite(listingID string) bool {
	for _, id := range u.Favourites {
		if id == listingID {
			return true
		}
	}
	return false
}

// Filter narrows a listings scan. Zero values are ignored.
type Filter struct {
	Type     ListingType
	UserID   string
	City     string
	MinPrice float64
	MaxPrice float64
}
