package services

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"homehub/models"
	"homehub/utils/errors"
	"homehub/utils/logger"
)

// Locator yields the device position. Implementations return
// errors.ErrPermissionDenied when the user refused location access.
type Locator interface {
	CurrentPosition(ctx context.Context) (models.Coordinate, error)
}

type Marker struct {
	PropertyID int      `json:"property_id"`
	Title      string   `json:"title"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// MapView is what the map primitive needs: the user pin and the listing pins.
type MapView struct {
	Origin  models.Coordinate `json:"origin"`
	Markers []Marker          `json:"markers"`
}

type MapService struct {
	listings *ListingService
	log      *zap.Logger
}

func NewMapService(listings *ListingService, log *zap.Logger) *MapService {
	return &MapService{listings: listings, log: logger.OrNop(log)}
}

// View locates the device and returns listing markers nearest first.
// Listings kept without coordinates by the proximity policy get no marker.
func (s *MapService) View(ctx context.Context, locator Locator) (MapView, error) {
	origin, err := locator.CurrentPosition(ctx)
	if stderrors.Is(err, errors.ErrPermissionDenied) || stderrors.Is(err, errors.ErrInvalidInput) {
		return MapView{}, err
	}
	if err != nil {
		s.log.Error("Error getting location", zap.Error(err))
		return MapView{}, errors.ErrLocation
	}

	ranked, err := s.listings.Nearby(origin)
	if err != nil {
		return MapView{}, err
	}

	view := MapView{Origin: origin, Markers: make([]Marker, 0, len(ranked))}
	for _, p := range ranked {
		c, ok := p.Coordinate()
		if !ok {
			if s.listings.policy.Mode != ProximityFallback {
				continue
			}
			c = s.listings.policy.Fallback
		}
		view.Markers = append(view.Markers, Marker{
			PropertyID: p.ID,
			Title:      p.Title,
			Latitude:   c.Latitude,
			Longitude:  c.Longitude,
			DistanceKm: p.DistanceKm,
		})
	}
	return view, nil
}
