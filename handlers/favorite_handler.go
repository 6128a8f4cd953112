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

type FavoriteHandler struct {
	favorites *services.FavoriteService
	listings  *services.ListingService
}

type FavoritesResponse struct {
	IDs []int `json:"ids"`
}

type FavoriteListingsResponse struct {
	Listings []models.Property `json:"listings"`
	Count    int               `json:"count"`
}

func NewFavoriteHandler(favorites *services.FavoriteService, listings *services.ListingService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, listings: listings}
}

func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, FavoritesResponse{IDs: h.favorites.List()})
}

// GetFavoriteListings backs the Bookmarks tab.
func (h *FavoriteHandler) GetFavoriteListings(w http.ResponseWriter, r *http.Request) {
	props := h.listings.Favorites(h.favorites.List())
	middleware.WriteJSON(w, FavoriteListingsResponse{Listings: props, Count: len(props)})
}

func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	ids, err := h.favorites.Toggle(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, FavoritesResponse{IDs: ids})
}
