package services

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"homehub/models"
	"homehub/storage"
)

func newUser(username, email string) models.User {
	return models.User{
		PublicID:     uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealhashnot",
	}
}

var errDisk = stderrors.New("disk unavailable")

// failingStore fails the operations whose flag is set.
type failingStore struct {
	storage.Store
	failGet, failSet, failDelete bool
	sets                         int
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet {
		return nil, errDisk
	}
	return s.Store.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	s.sets++
	if s.failSet {
		return errDisk
	}
	return s.Store.Set(ctx, key, value)
}

func (s *failingStore) Delete(ctx context.Context, key string) error {
	if s.failDelete {
		return errDisk
	}
	return s.Store.Delete(ctx, key)
}
