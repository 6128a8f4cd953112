package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrCorrupt is returned when a secure blob fails authentication.
var ErrCorrupt = errors.New("storage: secure blob failed authentication")

// SecureStore encrypts every value with XChaCha20-Poly1305 before handing it
// to the underlying store. The key is bound into the AEAD additional data so
// a blob cannot be moved to another key.
type SecureStore struct {
	inner Store
	key   []byte
}

// NewSecureStore wraps inner with a 32-byte key.
func NewSecureStore(inner Store, key []byte) (*SecureStore, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("secure store key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &SecureStore{inner: inner, key: append([]byte(nil), key...)}, nil
}

// ParseKey decodes a 64-character hex key.
func ParseKey(hexKey string) ([]byte, error) {
	b, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("secure store key hex decode: %w", err)
	}
	if len(b) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("secure store key must be %d bytes (hex %d chars)", chacha20poly1305.KeySize, chacha20poly1305.KeySize*2)
	}
	return b, nil
}

// LoadOrCreateKey reads the hex key at path, generating and saving a new one
// with mode 0600 when the file does not exist.
func LoadOrCreateKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		return ParseKey(strings.TrimSpace(string(raw)))
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read secure store key: %w", err)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		// Lost a race with another process; use its key.
		return LoadOrCreateKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("create secure store key: %w", err)
	}
	if _, err := f.WriteString(hex.EncodeToString(key) + "\n"); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *SecureStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(blob) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrCorrupt
	}
	nonce, ciphertext := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return nil, ErrCorrupt
	}
	return plain, nil
}

func (s *SecureStore) Set(ctx context.Context, key string, value []byte) error {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	return s.inner.Set(ctx, key, aead.Seal(nonce, nonce, value, []byte(key)))
}

func (s *SecureStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
