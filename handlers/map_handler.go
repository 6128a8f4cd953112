package handlers

import (
	"context"
	"net/http"

	"homehub/middleware"
	"homehub/models"
	"homehub/services"
	"homehub/utils/errors"
)

type MapHandler struct {
	maps *services.MapService
}

func NewMapHandler(maps *services.MapService) *MapHandler {
	return &MapHandler{maps: maps}
}

// requestLocator reads the device position the client attached to the
// request. permission=denied, or no position at all, means the client could
// not get location access.
type requestLocator struct {
	r *http.Request
}

func (l requestLocator) CurrentPosition(context.Context) (models.Coordinate, error) {
	q := l.r.URL.Query()
	if q.Get("permission") == "denied" || (q.Get("lat") == "" && q.Get("lon") == "") {
		return models.Coordinate{}, errors.ErrPermissionDenied
	}
	return parseCoordinate(l.r)
}

func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	view, err := h.maps.View(r.Context(), requestLocator{r: r})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, view)
}
