package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"homehub/middleware"
	"homehub/navigation"
	"homehub/services"
)

// App is the process-wide set of state containers the routes serve.
type App struct {
	Controller    *navigation.Controller
	Tokens        *services.TokenIssuer
	Listings      *services.ListingService
	Favorites     *services.FavoriteService
	Notifications *services.NotificationService
	Maps          *services.MapService
}

type RouterOptions struct {
	JWTSecret      string
	AllowedOrigins []string
	Logger         *zap.Logger
}

func NewRouter(app App, opts RouterOptions) *mux.Router {
	authHandler := NewAuthHandler(app.Controller, app.Tokens)
	appHandler := NewAppHandler(app.Controller, app.Tokens)
	listingHandler := NewListingHandler(app.Listings, app.Favorites)
	favoriteHandler := NewFavoriteHandler(app.Favorites, app.Listings)
	notificationHandler := NewNotificationHandler(app.Notifications)
	mapHandler := NewMapHandler(app.Maps)

	r := mux.NewRouter()
	r.Use(middleware.ErrorMiddleware())
	if opts.Logger != nil {
		r.Use(middleware.LoggingMiddleware(opts.Logger))
	}
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, map[string]string{"status": "ok"})
	}).Methods("GET")

	// App state routes
	r.HandleFunc("/app/state", appHandler.GetState).Methods("GET", "OPTIONS")
	r.HandleFunc("/app/navigate", appHandler.Navigate).Methods("POST", "OPTIONS")

	requireSession := middleware.JWTMiddleware(opts.JWTSecret, app.Controller)

	// Auth routes
	r.Handle("/auth/logout", requireSession(http.HandlerFunc(authHandler.Logout))).Methods("POST", "OPTIONS")
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Listing routes
	listingRouter := r.PathPrefix("/listings").Subrouter()
	listingRouter.Use(requireSession)
	listingRouter.HandleFunc("", listingHandler.GetListings).Methods("GET", "OPTIONS")
	listingRouter.HandleFunc("/categories", listingHandler.GetCategories).Methods("GET", "OPTIONS")
	listingRouter.HandleFunc("/nearby", listingHandler.GetNearby).Methods("GET", "OPTIONS")
	listingRouter.HandleFunc("/{id:[0-9]+}", listingHandler.GetListing).Methods("GET", "OPTIONS")

	// Favorite routes
	favoriteRouter := r.PathPrefix("/favorites").Subrouter()
	favoriteRouter.Use(requireSession)
	favoriteRouter.HandleFunc("", favoriteHandler.GetFavorites).Methods("GET", "OPTIONS")
	favoriteRouter.HandleFunc("/listings", favoriteHandler.GetFavoriteListings).Methods("GET", "OPTIONS")
	favoriteRouter.HandleFunc("/{id:[0-9]+}/toggle", favoriteHandler.Toggle).Methods("POST", "OPTIONS")

	// Notification routes
	notificationRouter := r.PathPrefix("/notifications").Subrouter()
	notificationRouter.Use(requireSession)
	notificationRouter.HandleFunc("", notificationHandler.GetNotifications).Methods("GET", "OPTIONS")
	notificationRouter.HandleFunc("", notificationHandler.ClearAll).Methods("DELETE")
	notificationRouter.HandleFunc("/mute", notificationHandler.Mute).Methods("POST", "OPTIONS")
	notificationRouter.HandleFunc("/{id}/read", notificationHandler.MarkRead).Methods("POST", "OPTIONS")
	notificationRouter.HandleFunc("/{id}", notificationHandler.Delete).Methods("DELETE", "OPTIONS")

	// Map routes
	mapRouter := r.PathPrefix("/map").Subrouter()
	mapRouter.Use(requireSession)
	mapRouter.HandleFunc("", mapHandler.GetMap).Methods("GET", "OPTIONS")

	return r
}
