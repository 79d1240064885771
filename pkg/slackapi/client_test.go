package slackapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"reacji/pkg/slackapi"
)

func newClient(t *testing.T, handler http.Handler) *slackapi.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := slackapi.NewClient(&slackapi.ClientConfig{
		BaseURL: server.URL,
		Token:   "xoxb-test",

		TransportSettings: slackapi.DefaultConfig.TransportSettings,
	})
	t.Cleanup(func() { client.Close() }) //nolint:errcheck

	return client
}

// writeJSON responds the way the platform does: a JSON body with the JSON
// content type, which the client relies on to unmarshal the result.
func writeJSON(t *testing.T, w http.ResponseWriter, payload map[string]any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func TestClient_UserInfo(t *testing.T) {
	t.Parallel()

	t.Run("returns the profile email", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/users.info", r.URL.Path)
			require.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))
			require.Equal(t, "U123", r.FormValue("user"))

			writeJSON(t, w, map[string]any{
				"ok": true,
				"user": map[string]any{
					"id":      "U123",
					"profile": map[string]any{"email": "alice@example.com"},
				},
			})
		}))

		info, err := client.UserInfo(t.Context(), "U123")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", info.User.Profile.Email)
	})

	t.Run("ok=false becomes an APIError", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{"ok": false, "error": "user_not_found"})
		}))

		_, err := client.UserInfo(t.Context(), "U404")

		var apiErr *slackapi.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "users.info", apiErr.Method)
		require.Equal(t, "user_not_found", apiErr.Reason)
	})
}

func TestClient_Channels(t *testing.T) {
	t.Parallel()

	t.Run("follows cursor pagination", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/conversations.list", r.URL.Path)
			require.Equal(t, "true", r.URL.Query().Get("exclude_archived"))

			switch r.URL.Query().Get("cursor") {
			case "":
				writeJSON(t, w, map[string]any{
					"ok":                true,
					"channels":          []map[string]any{{"id": "C1", "name": "general"}},
					"response_metadata": map[string]any{"next_cursor": "page2"},
				})
			case "page2":
				writeJSON(t, w, map[string]any{
					"ok":       true,
					"channels": []map[string]any{{"id": "C2", "name": "random"}},
				})
			default:
				t.Errorf("unexpected cursor: %s", r.URL.Query().Get("cursor"))
			}
		}))

		channels, err := client.Channels(t.Context())
		require.NoError(t, err)
		require.Equal(t, []slackapi.Channel{
			{ID: "C1", Name: "general"},
			{ID: "C2", Name: "random"},
		}, channels)
	})

	t.Run("ok=false becomes an APIError", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{"ok": false, "error": "invalid_auth"})
		}))

		_, err := client.Channels(t.Context())

		var apiErr *slackapi.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "invalid_auth", apiErr.Reason)
	})
}

func TestClient_Permalink(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat.getPermalink", r.URL.Path)
		require.Equal(t, "C1", r.URL.Query().Get("channel"))
		require.Equal(t, "1700000000.000100", r.URL.Query().Get("message_ts"))

		writeJSON(t, w, map[string]any{
			"ok":        true,
			"permalink": "https://chat.example.com/archives/C1/p1700000000000100",
		})
	}))

	result, err := client.Permalink(t.Context(), "C1", "1700000000.000100")
	require.NoError(t, err)
	require.Equal(t, "https://chat.example.com/archives/C1/p1700000000000100", result.Permalink)
}

func TestClient_PostMessage(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat.postMessage", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "CDEST", body["channel"])
		require.Equal(t, "hello", body["text"])

		writeJSON(t, w, map[string]any{"ok": true, "channel": "CDEST", "ts": "1700000001.000001"})
	}))

	result, err := client.PostMessage(t.Context(), "CDEST", "hello")
	require.NoError(t, err)
	require.Equal(t, "CDEST", result.Channel)
}

func TestClient_ConnectionsOpen(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/apps.connections.open", r.URL.Path)

		writeJSON(t, w, map[string]any{"ok": true, "url": "wss://socket.example.com/link/abc"})
	}))

	result, err := client.ConnectionsOpen(t.Context())
	require.NoError(t, err)
	require.Equal(t, "wss://socket.example.com/link/abc", result.URL)
}
