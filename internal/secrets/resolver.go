// Package secrets resolves named credentials from the secrets KV bucket.
// Values written with Seal are AES-256-GCM sealed with a master key; Get with
// decrypt=true opens them on read.
package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"reacji/internal/config"
	"reacji/internal/core"
	"reacji/internal/nats"
)

var (
	ErrNoMasterKey      = errors.New("no secrets master key configured")
	ErrMalformedSecret  = errors.New("malformed sealed secret")
	ErrInvalidMasterKey = errors.New("secrets master key must be 32 hex-encoded bytes")
)

type Resolver struct {
	Logger *slog.Logger
	Config *config.Config
	NATS   *nats.NATS

	kv  core.KeyValueStore
	key []byte
}

func (r *Resolver) Init(context.Context) error {
	r.Logger = r.Logger.With("component", "secrets.Resolver")
	r.kv = r.NATS.SecretsKV()

	if r.Config.SecretsKey == "" {
		return nil
	}

	key, err := parseMasterKey(r.Config.SecretsKey)
	if err != nil {
		return err
	}
	r.key = key

	return nil
}

func parseMasterKey(encoded string) ([]byte, error) {
	key, err := hex.DecodeString(encoded)
	if err != nil || len(key) != 32 {
		return nil, ErrInvalidMasterKey
	}
	return key, nil
}

// Get fetches the named credential. Absent names surface core.ErrNotFound.
func (r *Resolver) Get(ctx context.Context, name string, decrypt bool) (string, error) {
	value, err := r.kv.Get(ctx, name)
	if err != nil {
		return "", err
	}

	if !decrypt {
		return string(value), nil
	}

	return r.open(string(value))
}

// Seal encrypts a plaintext credential and stores it under name.
func (r *Resolver) Seal(ctx context.Context, name, plaintext string) error {
	if r.key == nil {
		return ErrNoMasterKey
	}

	gcm, err := r.gcm()
	if err != nil {
		return err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return r.kv.Put(ctx, name, []byte(base64.StdEncoding.EncodeToString(sealed)))
}

func (r *Resolver) open(value string) (string, error) {
	if r.key == nil {
		return "", ErrNoMasterKey
	}

	sealed, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSecret, err)
	}

	gcm, err := r.gcm()
	if err != nil {
		return "", err
	}

	if len(sealed) < gcm.NonceSize() {
		return "", ErrMalformedSecret
	}

	plaintext, err := gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedSecret, err)
	}

	return string(plaintext), nil
}

func (r *Resolver) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
