package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"homehub/data"
	"homehub/models"
	"homehub/utils/errors"
	"homehub/utils/logger"
)

// TokenTTL is how long an issued JWT stays valid.
const TokenTTL = 24 * time.Hour

// CredentialService validates login attempts and registers new users.
// Callers run form validation first.
type CredentialService struct {
	users UserRepository
	cost  int
	log   *zap.Logger
}

func NewCredentialService(users UserRepository, bcryptCost int, log *zap.Logger) *CredentialService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialService{users: users, cost: bcryptCost, log: logger.OrNop(log)}
}

// FindUser returns the user whose email equals identifier and whose password
// matches. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *CredentialService) FindUser(ctx context.Context, identifier, password string) (models.User, error) {
	user, err := s.users.FindByEmail(ctx, identifier)
	if stderrors.Is(err, errors.ErrNotFound) {
		return models.User{}, errors.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, errors.ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a user unless the email or username is taken.
func (s *CredentialService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	exists, err := s.users.Exists(ctx, email, username)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, errors.ErrConflict
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if stderrors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, errors.Validation("Password must be at most 72 characters long.")
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "HASH_ERROR", "failed to hash password", errors.ErrInternal.Status)
	}

	user, err := s.users.Insert(ctx, models.User{
		PublicID:     uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return models.User{}, err
	}
	s.log.Info("Registered user", zap.String("user_id", user.PublicID), zap.String("username", user.Username))
	return user, nil
}

// SeedDemoUsers registers the embedded demo accounts when the repository is empty.
func (s *CredentialService) SeedDemoUsers(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seeds, err := data.SeedUsers()
	if err != nil {
		return err
	}
	for _, seed := range seeds {
		if _, err := s.Register(ctx, seed.Username, seed.Email, seed.Password); err != nil && !stderrors.Is(err, errors.ErrConflict) {
			return err
		}
	}
	s.log.Info("Seeded demo users", zap.Int("count", len(seeds)))
	return nil
}

// TokenIssuer signs the JWTs handed to the rendering client after login or signup.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

func (t *TokenIssuer) Issue(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":   user.PublicID,
		"username": user.Username,
		"exp":      t.now().Add(TokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "JWT_ERROR", "Failed to generate token", errors.ErrInternal.Status)
	}
	return tokenString, nil
}
