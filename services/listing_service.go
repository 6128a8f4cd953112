package services

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"homehub/models"
	"homehub/utils/errors"
	"homehub/utils/geo"
	"homehub/utils/logger"
)

// ProximityMode decides what happens to listings without coordinates when
// sorting by distance.
type ProximityMode string

const (
	// ProximityExclude drops un-located listings from the result.
	ProximityExclude ProximityMode = "exclude"
	// ProximityLast keeps un-located listings after all located ones, in catalog order.
	ProximityLast ProximityMode = "last"
	// ProximityFallback places un-located listings at ProximityPolicy.Fallback.
	ProximityFallback ProximityMode = "fallback"
)

type ProximityPolicy struct {
	Mode     ProximityMode
	Fallback models.Coordinate
}

// DefaultProximityPolicy excludes listings that have no position.
var DefaultProximityPolicy = ProximityPolicy{Mode: ProximityExclude}

// ParseProximityMode accepts the values allowed in PROXIMITY_POLICY.
func ParseProximityMode(s string) (ProximityMode, error) {
	switch m := ProximityMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ProximityExclude, ProximityLast, ProximityFallback:
		return m, nil
	case "":
		return ProximityExclude, nil
	default:
		return "", fmt.Errorf("unknown proximity policy %q", s)
	}
}

// RankedProperty is a listing paired with its distance from the query origin.
// DistanceKm is nil for un-located listings kept by ProximityLast.
type RankedProperty struct {
	models.Property
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// FilterByCategory keeps entries of the given type. CategoryAll returns the catalog as is.
func FilterByCategory(catalog []models.Property, category string) []models.Property {
	if category == models.CategoryAll {
		return catalog
	}
	out := make([]models.Property, 0, len(catalog))
	for _, p := range catalog {
		if p.Type == category {
			out = append(out, p)
		}
	}
	return out
}

// FilterByFavorites keeps entries whose id is in ids, in catalog order.
func FilterByFavorites(catalog []models.Property, ids []int) []models.Property {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]models.Property, 0, len(ids))
	for _, p := range catalog {
		if _, ok := set[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Search matches query case-insensitively against title and location.
func Search(catalog []models.Property, query string) []models.Property {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return catalog
	}
	out := make([]models.Property, 0)
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Location), q) {
			out = append(out, p)
		}
	}
	return out
}

// SortByProximity orders the catalog nearest first from origin. The sort is
// stable so equidistant listings keep catalog order.
func SortByProximity(catalog []models.Property, origin models.Coordinate, policy ProximityPolicy) []RankedProperty {
	located := make([]RankedProperty, 0, len(catalog))
	var unlocated []RankedProperty
	for _, p := range catalog {
		c, ok := p.Coordinate()
		if !ok {
			switch policy.Mode {
			case ProximityFallback:
				c = policy.Fallback
			case ProximityLast:
				unlocated = append(unlocated, RankedProperty{Property: p})
				continue
			default:
				continue
			}
		}
		d := geo.DistanceKm(origin, c)
		located = append(located, RankedProperty{Property: p, DistanceKm: &d})
	}
	sort.SliceStable(located, func(i, j int) bool {
		return *located[i].DistanceKm < *located[j].DistanceKm
	})
	return append(located, unlocated...)
}

// ListingService owns the static catalog.
type ListingService struct {
	catalog []models.Property
	byID    map[int]int
	policy  ProximityPolicy
	log     *zap.Logger
}

func NewListingService(catalog []models.Property, policy ProximityPolicy, log *zap.Logger) (*ListingService, error) {
	byID := make(map[int]int, len(catalog))
	for i, p := range catalog {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate listing id %d", p.ID)
		}
		byID[p.ID] = i
	}
	log = logger.OrNop(log)
	log.Info("Loaded listing catalog", zap.Int("count", len(catalog)), zap.String("proximity_policy", string(policy.Mode)))
	return &ListingService{catalog: catalog, byID: byID, policy: policy, log: log}, nil
}

// All returns the catalog. Callers must not modify it.
func (s *ListingService) All() []models.Property {
	return s.catalog
}

func (s *ListingService) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *ListingService) Get(id int) (models.Property, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Property{}, errors.ErrNotFound
	}
	return s.catalog[i], nil
}

// Categories returns the menu values, CategoryAll first.
func (s *ListingService) Categories() []string {
	return append([]string{models.CategoryAll}, models.Categories...)
}

// ValidCategory reports whether category is CategoryAll or a listing type.
func ValidCategory(category string) bool {
	if category == models.CategoryAll {
		return true
	}
	for _, c := range models.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Browse applies the category menu and the search bar. An empty category means All.
func (s *ListingService) Browse(category, query string) ([]models.Property, error) {
	if category == "" {
		category = models.CategoryAll
	}
	if !ValidCategory(category) {
		return nil, errors.NewAPIError(errors.ErrInvalidInput.Code, "Unknown category", errors.ErrInvalidInput.Status, category)
	}
	return Search(FilterByCategory(s.catalog, category), query), nil
}

func (s *ListingService) Favorites(ids []int) []models.Property {
	return FilterByFavorites(s.catalog, ids)
}

// Nearby sorts the whole catalog by distance from origin using the configured policy.
func (s *ListingService) Nearby(origin models.Coordinate) ([]RankedProperty, error) {
	if !origin.Valid() {
		return nil, errors.ErrInvalidInput
	}
	return SortByProximity(s.catalog, origin, s.policy), nil
}
