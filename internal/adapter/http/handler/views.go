package handler

import (
	"time"

	"github.com/propview/estate-service/internal/listing/domain"
)

// timestampView matches the seconds/nanoseconds shape the web client reads
// listing timestamps in.
type timestampView struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

func toTimestampView(t time.Time) timestampView {
	return timestampView{
		Seconds:     t.Unix(),
		Nanoseconds: int64(t.Nanosecond()),
	}
}

type listingData struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	Price       float64       `json:"price"`
	Type        string        `json:"type"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	Furnished   bool          `json:"furnished"`
	Parking     bool          `json:"parking"`
	ImgURLs     []string      `json:"imgUrls"`
	MainImage   string        `json:"mainImage"`
	Status      string        `json:"status"`
	UserRef     string        `json:"userRef"`
	Timestamp   timestampView `json:"timestamp"`
}

// listingView wraps the listing fields under "data" the way the client's
// document reads come back: id next to the field payload.
type listingView struct {
	ID   string      `json:"id"`
	Data listingData `json:"data"`
}

func toListingView(l *domain.Listing) listingView {
	imgs := l.ImageURLs
	if imgs == nil {
		imgs = []string{}
	}
	return listingView{
		ID: l.ID,
		Data: listingData{
			Title:       l.Title,
			Description: l.Description,
			Address:     l.Address,
			City:        l.City,
			Price:       l.Price,
			Type:        string(l.Type),
			Bedrooms:    l.Bedrooms,
			Bathrooms:   l.Bathrooms,
			Furnished:   l.Furnished,
			Parking:     l.Parking,
			ImgURLs:     imgs,
			MainImage:   l.MainImage,
			Status:      string(l.Status),
			UserRef:     l.UserID,
			Timestamp:   toTimestampView(l.CreatedAt),
		},
	}
}

func toListingViews(listings []*domain.Listing) []listingView {
	views := make([]listingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, toListingView(l))
	}
	return views
}

type userView struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	PhotoURL   string   `json:"photoUrl,omitempty"`
	Favourites []string `json:"favourites"`
}

func toUserView(u *domain.User) userView {
	favs := u.Favourites
	if favs == nil {
		favs = []string{}
	}
	return userView{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		PhotoURL:   u.PhotoURL,
		Favourites: favs,
	}
}
