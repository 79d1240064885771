package allowlist_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"reacji/internal/allowlist"
	"reacji/internal/config"
	"reacji/internal/core"
)

type fakeSecrets struct {
	values map[string]string
}

func (f *fakeSecrets) Get(_ context.Context, name string, _ bool) (string, error) {
	value, ok := f.values[name]
	if !ok {
		return "", core.ErrNotFound
	}
	return value, nil
}

func newResolver(t *testing.T, value string, present bool) *allowlist.Resolver {
	t.Helper()

	secrets := &fakeSecrets{values: map[string]string{}}
	if present {
		secrets.values["approved-senders"] = value
	}

	r := &allowlist.Resolver{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:  &config.Config{AllowlistParam: "approved-senders"},
		Secrets: secrets,
	}
	require.NoError(t, r.Init(t.Context()))

	return r
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("tokens with @ are emails, the rest are domains", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "example.com, alice@gmail.com,corp.example.org,bob@proton.me", true)

		list, err := r.Resolve(t.Context())
		require.NoError(t, err)
		require.Equal(t, []string{"example.com", "corp.example.org"}, list.Domains)
		require.Equal(t, []string{"alice@gmail.com", "bob@proton.me"}, list.Emails)
	})

	t.Run("empty value yields an empty open-door list", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "", true)

		list, err := r.Resolve(t.Context())
		require.NoError(t, err)
		require.True(t, list.Empty())
	})

	t.Run("absent parameter yields an empty open-door list", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, "", false)

		list, err := r.Resolve(t.Context())
		require.NoError(t, err)
		require.True(t, list.Empty())
	})
}
