package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"homehub/middleware"
	"homehub/models"
	"homehub/services"
	"homehub/utils/errors"
)

type ListingHandler struct {
	listings  *services.ListingService
	favorites *services.FavoriteService
}

// ListingView is a listing plus whether the user bookmarked it.
type ListingView struct {
	models.Property
	Favorite bool `json:"favorite"`
}

type ListingsResponse struct {
	Listings []ListingView `json:"listings"`
	Count    int           `json:"count"`
	Category string        `json:"category"`
	Query    string        `json:"query,omitempty"`
}

type NearbyResponse struct {
	Listings []services.RankedProperty `json:"listings"`
	Count    int                       `json:"count"`
	Lat      float64                   `json:"lat"`
	Lon      float64                   `json:"lon"`
}

func NewListingHandler(listings *services.ListingService, favorites *services.FavoriteService) *ListingHandler {
	return &ListingHandler{listings: listings, favorites: favorites}
}

func (h *ListingHandler) views(props []models.Property) []ListingView {
	out := make([]ListingView, len(props))
	for i, p := range props {
		out[i] = ListingView{Property: p, Favorite: h.favorites.Contains(p.ID)}
	}
	return out
}

func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.CategoryAll
	}
	query := r.URL.Query().Get("q")

	props, err := h.listings.Browse(category, query)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, ListingsResponse{Listings: h.views(props), Count: len(props), Category: category, Query: query})
}

func (h *ListingHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, map[string][]string{"categories": h.listings.Categories()})
}

func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	p, err := h.listings.Get(id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, ListingView{Property: p, Favorite: h.favorites.Contains(p.ID)})
}

func (h *ListingHandler) GetNearby(w http.ResponseWriter, r *http.Request) {
	origin, err := parseCoordinate(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	ranked, err := h.listings.Nearby(origin)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, NearbyResponse{Listings: ranked, Count: len(ranked), Lat: origin.Latitude, Lon: origin.Longitude})
}

func parseCoordinate(r *http.Request) (models.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return models.Coordinate{}, errors.ErrInvalidInput
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		return models.Coordinate{}, errors.ErrInvalidInput
	}
	return models.Coordinate{Latitude: lat, Longitude: lon}, nil
}
