package domain

import "context"

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, error)
}

// UserRepository mutates the favourites set only through atomic field-level
// add/remove operations, never a whole-document overwrite.
type UserRepository interface {
	EnsureUser(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	UpdateName(ctx context.Context, id, name string) error
	AddFavourite(ctx context.Context, userID, listingID string) error
	RemoveFavourite(ctx context.Context, userID, listingID string) error
}

// DraftStore keeps at most one draft session per user. A missing session
// reads back as a fresh one; the draft is owned exclusively by this store
// for the lifetime of the multi-step form.
type DraftStore interface {
	Get(ctx context.Context, userID string) (*DraftSession, error)
	Save(ctx context.Context, userID string, session *DraftSession) error
	Delete(ctx context.Context, userID string) error
}

// Storage persists uploaded image bytes and returns a public URL.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}
