package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"theatre-box-office/internal/handlers"
	"theatre-box-office/internal/middleware"
	"theatre-box-office/internal/services"
)

// Dependencies are everything the HTTP surface needs
type Dependencies struct {
	Catalog      handlers.CatalogProvider
	Checkout     handlers.CheckoutCreator
	DoorList     services.DoorListStore
	Images       handlers.PosterUploader
	Sessions     sessions.Store
	DB           handlers.Pinger
	Logger       *zap.Logger
	CORSOrigins  []string
	StaffHash    string
	UploadDir    string
	CheckoutRate *middleware.RateLimiter
}

// NewRouter wires the JSON API
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, logger)
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, logger)
	cartHandler := handlers.NewCartHandler(deps.Catalog, deps.Checkout, deps.Sessions, logger)
	doorListHandler := handlers.NewDoorListHandler(deps.DoorList, logger)
	staffOnly := middleware.RequireStaffToken(deps.StaffHash, logger)

	checkoutLimit := func(next http.Handler) http.Handler { return next }
	if deps.CheckoutRate != nil {
		checkoutLimit = middleware.RateLimit(deps.CheckoutRate)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(deps.CORSOrigins...)))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Get("/health", handlers.Health(deps.DB))

	if deps.UploadDir != "" {
		fileServer := http.FileServer(http.Dir(deps.UploadDir))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/plays", catalogHandler.ListPlays)
		r.Get("/plays/{id}", catalogHandler.GetPlay)
		r.Get("/tickets", catalogHandler.ListTickets)

		r.With(checkoutLimit).Post("/checkout", checkoutHandler.CreateSession)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{id}", cartHandler.UpdateItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.With(checkoutLimit).Post("/checkout", cartHandler.Checkout)
		})

		r.Group(func(r chi.Router) {
			r.Use(staffOnly)
			r.Get("/doorlist", doorListHandler.List)
			if deps.Images != nil {
				r.Post("/plays/{id}/image", handlers.NewPlayImageHandler(deps.Images, logger).UploadPoster)
			}
		})
	})

	return r
}
