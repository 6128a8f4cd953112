package services

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"go.uber.org/zap"

	"homehub/models"
	"homehub/storage"
	"homehub/utils/errors"
	"homehub/utils/logger"
)

// SessionKey is the secure-storage key of the logged-in user record.
const SessionKey = "loggedInUser"

// SessionService persists the current user in secure storage.
type SessionService struct {
	store storage.Store
	log   *zap.Logger
}

func NewSessionService(secure storage.Store, log *zap.Logger) *SessionService {
	return &SessionService{store: secure, log: logger.OrNop(log)}
}

// LoadSession returns the stored user, or nil when there is none. Read and
// decode failures are logged and reported as no session.
func (s *SessionService) LoadSession(ctx context.Context) *models.User {
	blob, err := s.store.Get(ctx, SessionKey)
	if stderrors.Is(err, storage.ErrNotExist) {
		return nil
	}
	if err != nil {
		s.log.Error("Error fetching user info", zap.Error(err))
		return nil
	}
	var user models.User
	if err := json.Unmarshal(blob, &user); err != nil {
		s.log.Error("Stored session is unreadable", zap.Error(err))
		return nil
	}
	if user.Email == "" {
		s.log.Warn("Stored session has no email, ignoring")
		return nil
	}
	return &user
}

// SaveSession overwrites the stored user.
func (s *SessionService) SaveSession(ctx context.Context, user models.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return errors.Storage(err, "failed to encode session")
	}
	if err := s.store.Set(ctx, SessionKey, blob); err != nil {
		s.log.Error("Error saving session", zap.String("user_id", user.PublicID), zap.Error(err))
		return errors.Storage(err, "failed to save session")
	}
	return nil
}

// ClearSession removes the stored user.
func (s *SessionService) ClearSession(ctx context.Context) error {
	if err := s.store.Delete(ctx, SessionKey); err != nil {
		s.log.Error("Error clearing session", zap.Error(err))
		return errors.Storage(err, "failed to clear session")
	}
	return nil
}
