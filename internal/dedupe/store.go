// Package dedupe persists event fingerprints so retried webhook deliveries
// are suppressed.
package dedupe

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"

	"reacji/internal/core"
	"reacji/internal/nats"
)

type Store struct {
	Logger *slog.Logger
	NATS   *nats.NATS

	kv core.KeyValueStore
}

func (s *Store) Init(context.Context) error {
	s.Logger = s.Logger.With("component", "dedupe.Store")
	s.kv = s.NATS.DedupeKV()
	return nil
}

// InsertIfAbsent records the fingerprint. Returns core.ErrAlreadyExists when
// the fingerprint was seen within the expiry window.
func (s *Store) InsertIfAbsent(ctx context.Context, fingerprint string, expiresAt int64) error {
	value, err := json.Marshal(core.DedupeRecord{
		Fingerprint: fingerprint,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return err
	}

	return s.kv.Create(ctx, encodeKey(fingerprint), value)
}

func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	return s.kv.Delete(ctx, encodeKey(fingerprint))
}

// encodeKey makes the fingerprint safe as a KV key: emoji names may contain
// characters (e.g. "+1") that JetStream key names reject.
func encodeKey(fingerprint string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(fingerprint))
}
