package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"homehub/utils/errors"
)

func newTestCredentials(t *testing.T) (*CredentialService, *MemoryUserRepository) {
	t.Helper()
	repo := NewMemoryUserRepository()
	return NewCredentialService(repo, bcrypt.MinCost, nil), repo
}

func TestCredentialService_FindUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCredentials(t)
	alice, err := svc.Register(ctx, "alice", "a@b.com", "secret1")
	require.NoError(t, err)

	t.Run("matching pair", func(t *testing.T) {
		got, err := svc.FindUser(ctx, "a@b.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	for name, tc := range map[string][2]string{
		"wrong password":  {"a@b.com", "secret2"},
		"unknown email":   {"x@b.com", "secret1"},
		"case sensitive":  {"A@b.com", "secret1"},
		"username is not": {"alice", "secret1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.FindUser(ctx, tc[0], tc[1])
			assert.True(t, stderrors.Is(err, errors.ErrInvalidCredentials), "got %v", err)
		})
	}
}

func TestCredentialService_Register(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestCredentials(t)

	user, err := svc.Register(ctx, "alice", "a@b.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PublicID)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")))

	_, err = svc.Register(ctx, "alice", "other@b.com", "secret1")
	assert.True(t, stderrors.Is(err, errors.ErrConflict), "same username")

	_, err = svc.Register(ctx, "bob", "a@b.com", "secret1")
	assert.True(t, stderrors.Is(err, errors.ErrConflict), "same email")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.Register(ctx, "bob", "bob@b.com", "secret1")
	require.NoError(t, err)
	n, _ = repo.Count(ctx)
	assert.EqualValues(t, 2, n)
}

func TestCredentialService_RegisterLongPassword(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestCredentials(t)

	_, err := svc.Register(ctx, "bob", "bob@x.com", strings.Repeat("a", 80))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrValidation), "got %v", err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryUserRepository_InsertConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	u, err := repo.Insert(ctx, newUser("alice", "a@b.com"))
	require.NoError(t, err)
	assert.Equal(t, u.PublicID, u.ID)

	_, err = repo.Insert(ctx, newUser("alice", "z@b.com"))
	assert.True(t, stderrors.Is(err, errors.ErrConflict))
}

func TestCredentialService_SeedDemoUsers(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestCredentials(t)

	require.NoError(t, svc.SeedDemoUsers(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Greater(t, n, int64(0))

	_, err = svc.FindUser(ctx, "demo@homehub.app", "homehub123")
	assert.NoError(t, err)

	require.NoError(t, svc.SeedDemoUsers(ctx))
	again, _ := repo.Count(ctx)
	assert.Equal(t, n, again, "seeding is skipped when users exist")
}

func TestTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	user := newUser("alice", "a@b.com")

	tokenString, err := issuer.Issue(user)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.PublicID, claims["userID"])
	assert.Equal(t, "alice", claims["username"])
}
