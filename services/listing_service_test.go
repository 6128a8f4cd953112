package services

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homehub/models"
	"homehub/utils/errors"
)

func ptr(f float64) *float64 { return &f }

func testCatalog() []models.Property {
	return []models.Property{
		{ID: 1, Title: "Lekki Flat", Type: models.CategoryApartment, Location: "Lekki", Latitude: ptr(6.6), Longitude: ptr(3.4)},
		{ID: 2, Title: "Ikeja House", Type: models.CategoryHouse, Location: "Ikeja", Latitude: ptr(6.5244), Longitude: ptr(3.3792)},
		{ID: 3, Title: "VI Office", Type: models.CategoryOffice, Location: "Victoria Island"},
		{ID: 4, Title: "Yaba Studio", Type: models.CategoryApartment, Location: "Yaba", Latitude: ptr(7.0), Longitude: ptr(3.9)},
	}
}

func ids(props []models.Property) []int {
	out := make([]int, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func rankedIDs(props []RankedProperty) []int {
	out := make([]int, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestFilterByCategory(t *testing.T) {
	catalog := testCatalog()

	t.Run("All returns the catalog in order", func(t *testing.T) {
		assert.Equal(t, catalog, FilterByCategory(catalog, models.CategoryAll))
		assert.Empty(t, FilterByCategory(nil, models.CategoryAll))
	})

	t.Run("type match keeps catalog order", func(t *testing.T) {
		assert.Equal(t, []int{1, 4}, ids(FilterByCategory(catalog, models.CategoryApartment)))
		assert.Equal(t, []int{3}, ids(FilterByCategory(catalog, models.CategoryOffice)))
		assert.Empty(t, FilterByCategory(catalog, models.CategoryLand))
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.Empty(t, FilterByCategory(catalog, "apartment"))
	})
}

func TestFilterByFavorites(t *testing.T) {
	catalog := testCatalog()
	assert.Equal(t, []int{2, 4}, ids(FilterByFavorites(catalog, []int{4, 2, 99})), "catalog order, not favorites order")
	assert.Empty(t, FilterByFavorites(catalog, nil))
}

func TestSearch(t *testing.T) {
	catalog := testCatalog()
	assert.Equal(t, catalog, Search(catalog, "  "))
	assert.Equal(t, []int{3}, ids(Search(catalog, "victoria")))
	assert.Equal(t, []int{1}, ids(Search(catalog, "LEKKI")))
	assert.Empty(t, Search(catalog, "abuja"))
}

func TestSortByProximity(t *testing.T) {
	origin := models.Coordinate{Latitude: 6.5244, Longitude: 3.3792}
	catalog := testCatalog()

	t.Run("origin listing first", func(t *testing.T) {
		got := SortByProximity(catalog[:2], origin, DefaultProximityPolicy)
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].ID)
		assert.InDelta(t, 0, *got[0].DistanceKm, 1e-9)
		assert.Greater(t, *got[1].DistanceKm, 0.0)
	})

	t.Run("exclude drops un-located", func(t *testing.T) {
		got := SortByProximity(catalog, origin, ProximityPolicy{Mode: ProximityExclude})
		assert.Equal(t, []int{2, 1, 4}, rankedIDs(got))
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, *got[i-1].DistanceKm, *got[i].DistanceKm)
		}
	})

	t.Run("last appends un-located", func(t *testing.T) {
		got := SortByProximity(catalog, origin, ProximityPolicy{Mode: ProximityLast})
		assert.Equal(t, []int{2, 1, 4, 3}, rankedIDs(got))
		assert.Nil(t, got[3].DistanceKm)
	})

	t.Run("fallback places un-located at the fallback", func(t *testing.T) {
		policy := ProximityPolicy{Mode: ProximityFallback, Fallback: origin}
		got := SortByProximity(catalog, origin, policy)
		require.Len(t, got, 4)
		assert.Equal(t, []int{2, 3, 1, 4}, rankedIDs(got), "stable among equal distances")
		assert.InDelta(t, 0, *got[1].DistanceKm, 1e-9)
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		before := ids(catalog)
		SortByProximity(catalog, origin, DefaultProximityPolicy)
		assert.Equal(t, before, ids(catalog))
	})
}

func TestParseProximityMode(t *testing.T) {
	m, err := ParseProximityMode("")
	require.NoError(t, err)
	assert.Equal(t, ProximityExclude, m)

	m, err = ParseProximityMode(" Fallback ")
	require.NoError(t, err)
	assert.Equal(t, ProximityFallback, m)

	_, err = ParseProximityMode("nearest")
	assert.Error(t, err)
}

func TestListingService(t *testing.T) {
	svc, err := NewListingService(testCatalog(), DefaultProximityPolicy, nil)
	require.NoError(t, err)

	p, err := svc.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "VI Office", p.Title)

	_, err = svc.Get(42)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	assert.True(t, svc.Exists(1))
	assert.False(t, svc.Exists(42))

	assert.Equal(t, []string{"All", "Apartment", "House", "Office", "Land"}, svc.Categories())

	got, err := svc.Browse("", "")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = svc.Browse(models.CategoryApartment, "yaba")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(got))

	_, err = svc.Browse("Castle", "")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

	_, err = svc.Nearby(models.Coordinate{Latitude: 120})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))

	near, err := svc.Nearby(models.Coordinate{Latitude: 6.5244, Longitude: 3.3792})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 4}, rankedIDs(near))

	assert.Equal(t, []int{1, 3}, ids(svc.Favorites([]int{3, 1})))
}

func TestNewListingService_DuplicateID(t *testing.T) {
	catalog := append(testCatalog(), models.Property{ID: 1})
	_, err := NewListingService(catalog, DefaultProximityPolicy, nil)
	assert.Error(t, err)
}
