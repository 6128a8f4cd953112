package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"

	"go.uber.org/zap"

	"homehub/storage"
	"homehub/utils/errors"
	"homehub/utils/logger"
)

// FavoritesKey is the general-storage key of the bookmarked listing ids.
const FavoritesKey = "favourites"

// FavoriteService is the single bookmark set shared by every screen.
// The in-memory slice is authoritative; storage is a best-effort copy for
// the next launch.
type FavoriteService struct {
	mu     sync.Mutex
	ids    []int
	store  storage.Store
	exists func(id int) bool
	log    *zap.Logger
}

// NewFavoriteService loads the persisted set once. exists guards toggles
// against ids missing from the catalog.
func NewFavoriteService(ctx context.Context, general storage.Store, exists func(id int) bool, log *zap.Logger) *FavoriteService {
	s := &FavoriteService{store: general, exists: exists, log: logger.OrNop(log)}
	s.ids = s.load(ctx)
	return s
}

func (s *FavoriteService) load(ctx context.Context) []int {
	blob, err := s.store.Get(ctx, FavoritesKey)
	if stderrors.Is(err, storage.ErrNotExist) {
		return []int{}
	}
	if err != nil {
		s.log.Error("Error loading favourites from storage", zap.Error(err))
		return []int{}
	}
	var ids []int
	if err := json.Unmarshal(blob, &ids); err != nil {
		s.log.Error("Stored favourites are unreadable", zap.Error(err))
		return []int{}
	}
	if ids == nil {
		ids = []int{}
	}
	s.log.Debug("Loaded favourites", zap.Ints("ids", ids))
	return ids
}

// List returns a copy of the set in insertion order.
func (s *FavoriteService) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int{}, s.ids...)
}

func (s *FavoriteService) Contains(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.ids, id) >= 0
}

// Toggle removes every occurrence of id if present, otherwise appends it,
// then rewrites the whole set. A failed write is logged and the toggle still
// succeeds.
func (s *FavoriteService) Toggle(ctx context.Context, id int) ([]int, error) {
	if s.exists != nil && !s.exists(id) {
		return nil, errors.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.ids, id) >= 0 {
		kept := make([]int, 0, len(s.ids))
		for _, v := range s.ids {
			if v != id {
				kept = append(kept, v)
			}
		}
		s.ids = kept
	} else {
		s.ids = append(s.ids, id)
	}
	s.persistLocked(ctx)
	return append([]int{}, s.ids...), nil
}

func (s *FavoriteService) persistLocked(ctx context.Context) {
	blob, err := json.Marshal(s.ids)
	if err != nil {
		s.log.Error("Error encoding favourites", zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, FavoritesKey, blob); err != nil {
		s.log.Error("Error saving favourites to storage", zap.Error(err))
	}
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
