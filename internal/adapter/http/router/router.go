package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/propview/estate-service/internal/adapter/http/handler"
	custommw "github.com/propview/estate-service/internal/adapter/http/middleware"
	"github.com/propview/estate-service/internal/platform/logger"
	"github.com/propview/estate-service/internal/platform/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Listings   *handler.ListingHandler
	Drafts     *handler.DraftHandler
	Favourites *handler.FavoriteHandler
	Users      *handler.UserHandler
	Images     *handler.ImageHandler
}

// New assembles the HTTP surface. Collection and single-listing reads are
// public; everything that writes or is per-user sits behind JWT auth.
func New(h Handlers, jwtSecret string, log *logger.Logger, mm *metrics.MetricsManager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(custommw.RequestLogger(log))
	r.Use(custommw.Metrics(mm))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", h.Listings.Search)
		r.Get("/listings/{id}", h.Listings.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(custommw.JWTAuth(jwtSecret, log))

			r.Put("/listings/{id}", h.Listings.Update)
			r.Patch("/listings/{id}/status", h.Listings.UpdateStatus)
			r.Delete("/listings/{id}", h.Listings.Delete)

			r.Get("/draft", h.Drafts.Session)
			r.Patch("/draft", h.Drafts.SetField)
			r.Post("/draft/next", h.Drafts.NextStep)
			r.Post("/draft/prev", h.Drafts.PrevStep)
			r.Post("/draft/step", h.Drafts.JumpToStep)
			r.Post("/draft/reset", h.Drafts.Reset)
			r.Post("/draft/publish", h.Drafts.Publish)

			r.Get("/favourites", h.Favourites.List)
			r.Get("/favourites/{listingID}", h.Favourites.Status)
			r.Post("/favourites/{listingID}/toggle", h.Favourites.Toggle)

			r.Get("/profile", h.Users.Profile)
			r.Patch("/profile", h.Users.UpdateName)

			r.Post("/images", h.Images.Upload)
		})
	})

	return r
}
