package secrets

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reacji/internal/core"
)

type fakeKV struct {
	values map[string][]byte
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := f.values[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return value, nil
}

func (f *fakeKV) Put(_ context.Context, key string, value []byte) error {
	if f.values == nil {
		f.values = map[string][]byte{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeKV) Create(ctx context.Context, key string, value []byte) error {
	if _, ok := f.values[key]; ok {
		return core.ErrAlreadyExists
	}
	return f.Put(ctx, key, value)
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func newResolver(t *testing.T, key string) *Resolver {
	t.Helper()

	r := &Resolver{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		kv:     &fakeKV{},
	}

	if key != "" {
		parsed, err := parseMasterKey(key)
		require.NoError(t, err)
		r.key = parsed
	}

	return r
}

func testKey() string {
	return hex.EncodeToString([]byte(strings.Repeat("k", 32)))
}

func TestResolver_Get(t *testing.T) {
	t.Parallel()

	t.Run("sealed secrets round-trip", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, testKey())

		require.NoError(t, r.Seal(t.Context(), "slack-token", "xoxb-secret"))

		value, err := r.Get(t.Context(), "slack-token", true)
		require.NoError(t, err)
		require.Equal(t, "xoxb-secret", value)
	})

	t.Run("plaintext values are returned verbatim without decrypt", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "")
		require.NoError(t, r.kv.Put(t.Context(), "approved-senders", []byte("example.com,a@b.c")))

		value, err := r.Get(t.Context(), "approved-senders", false)
		require.NoError(t, err)
		require.Equal(t, "example.com,a@b.c", value)
	})

	t.Run("absent names report not found", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, testKey())

		_, err := r.Get(t.Context(), "missing", true)
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("decrypt without a master key fails", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "")
		require.NoError(t, r.kv.Put(t.Context(), "slack-token", []byte("whatever")))

		_, err := r.Get(t.Context(), "slack-token", true)
		require.ErrorIs(t, err, ErrNoMasterKey)
	})

	t.Run("garbage ciphertext is malformed", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, testKey())
		require.NoError(t, r.kv.Put(t.Context(), "slack-token", []byte("bm90IGEgc2VhbGVkIHNlY3JldA==")))

		_, err := r.Get(t.Context(), "slack-token", true)
		require.ErrorIs(t, err, ErrMalformedSecret)
	})
}

func TestParseMasterKey(t *testing.T) {
	t.Parallel()

	t.Run("accepts 32 hex-encoded bytes", func(t *testing.T) {
		t.Parallel()

		key, err := parseMasterKey(testKey())
		require.NoError(t, err)
		require.Len(t, key, 32)
	})

	t.Run("rejects short keys", func(t *testing.T) {
		t.Parallel()

		_, err := parseMasterKey("deadbeef")
		require.ErrorIs(t, err, ErrInvalidMasterKey)
	})

	t.Run("rejects non-hex input", func(t *testing.T) {
		t.Parallel()

		_, err := parseMasterKey(strings.Repeat("zz", 32))
		require.ErrorIs(t, err, ErrInvalidMasterKey)
	})
}
