package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reacji/internal/config"
	"reacji/internal/core"
)

type fakeIngestor struct {
	resp core.Response
	err  error
	body []byte
}

func (f *fakeIngestor) Ingest(_ context.Context, rawBody []byte) (core.Response, error) {
	f.body = rawBody
	return f.resp, f.err
}

func (f *fakeIngestor) IngestEvent(context.Context, core.ReactionEvent) (core.Response, error) {
	return f.resp, f.err
}

type fakeRegistrar struct {
	resp core.Response
	err  error
}

func (f *fakeRegistrar) Register(context.Context, []byte) (core.Response, error) {
	return f.resp, f.err
}

func newServer(t *testing.T, ingestor *fakeIngestor, registrar *fakeRegistrar) *httptest.Server {
	t.Helper()

	s := &Server{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:    &config.Config{ListenAddr: ":0"},
		Ingestor:  ingestor,
		Registrar: registrar,
	}
	require.NoError(t, s.Init(t.Context()))

	server := httptest.NewServer(s.server.Handler)
	t.Cleanup(server.Close)

	return server
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	t.Run("ingest responses pass through verbatim", func(t *testing.T) {
		t.Parallel()

		ingestor := &fakeIngestor{resp: core.Response{StatusCode: http.StatusOK, Body: "success"}}
		server := newServer(t, ingestor, &fakeRegistrar{})

		resp, err := http.Post(server.URL+"/ingest", "application/json", strings.NewReader("payload"))
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "success", string(body))
		require.Equal(t, "payload", string(ingestor.body))
	})

	t.Run("pipeline errors become an opaque 500", func(t *testing.T) {
		t.Parallel()

		ingestor := &fakeIngestor{err: errors.New("store unavailable")}
		server := newServer(t, ingestor, &fakeRegistrar{})

		resp, err := http.Post(server.URL+"/ingest", "application/json", strings.NewReader("payload"))
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.NotContains(t, string(body), "store unavailable")
	})

	t.Run("registration responses pass through verbatim", func(t *testing.T) {
		t.Parallel()

		registrar := &fakeRegistrar{resp: core.Response{StatusCode: http.StatusNotFound, Body: "no matching channel"}}
		server := newServer(t, &fakeIngestor{}, registrar)

		resp, err := http.Post(server.URL+"/commands/reacji", "application/x-www-form-urlencoded", strings.NewReader("text=tada+general"))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("health endpoint responds without auth", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, &fakeIngestor{}, &fakeRegistrar{})

		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("metrics endpoint serves prometheus text", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, &fakeIngestor{}, &fakeRegistrar{})

		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
