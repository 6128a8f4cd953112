package storage

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "loggedInUser")
	assert.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, s.Set(ctx, "loggedInUser", []byte(`{"username":"alice"}`)))
	got, err := s.Get(ctx, "loggedInUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, string(got))

	require.NoError(t, s.Set(ctx, "loggedInUser", []byte(`{"username":"bob"}`)))
	got, err = s.Get(ctx, "loggedInUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bob"}`, string(got), "Set overwrites")

	require.NoError(t, s.Delete(ctx, "loggedInUser"))
	_, err = s.Get(ctx, "loggedInUser")
	assert.ErrorIs(t, err, ErrNotExist)

	assert.NoError(t, s.Delete(ctx, "loggedInUser"), "deleting a missing key is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	v := []byte("[1,2]")
	require.NoError(t, s.Set(ctx, "favourites", v))
	v[1] = '9'

	got, err := s.Get(ctx, "favourites")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(got))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "favourites", []byte("[3]")))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "favourites")
	require.NoError(t, err)
	assert.Equal(t, "[3]", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Set(context.Background(), "../escape", []byte("x")))
}

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestSecureStore(t *testing.T) {
	s, err := NewSecureStore(NewMemoryStore(), testKey())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSecureStore_EncryptsAtRest(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s, err := NewSecureStore(inner, testKey())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "loggedInUser", []byte("alice@example.com")))
	raw, err := inner.Get(ctx, "loggedInUser")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "alice")

	t.Run("tampered blob", func(t *testing.T) {
		raw[len(raw)-1] ^= 0xff
		require.NoError(t, inner.Set(ctx, "loggedInUser", raw))
		_, err := s.Get(ctx, "loggedInUser")
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("blob moved to another key", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a", []byte("secret")))
		moved, err := inner.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, inner.Set(ctx, "b", moved))
		_, err = s.Get(ctx, "b")
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestSecureStore_BadKey(t *testing.T) {
	_, err := NewSecureStore(NewMemoryStore(), []byte("short"))
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	_, err := ParseKey("00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")
	assert.NoError(t, err)

	_, err = ParseKey("zz")
	assert.Error(t, err)

	_, err = ParseKey("0011")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	client, err := NewRedisClient(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), db)
	require.NoError(t, err)
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, "homehub-test:"+t.Name()+":"))
}

func TestLoadOrCreateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "secure.key")

	first, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrCreateKey(path)
	require.NoError(t, err)
	assert.Equal(t, first, again, "key is reused")

	require.NoError(t, os.WriteFile(path, []byte("not-hex"), 0o600))
	_, err = LoadOrCreateKey(path)
	assert.Error(t, err, "a damaged key file is not silently replaced")
}
