package core

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// SecretResolver fetches an opaque credential by name. Absent names are
// reported as ErrNotFound.
type SecretResolver interface {
	Get(ctx context.Context, name string, decrypt bool) (string, error)
}

// KeyValueStore is the minimal durable key-value contract the stores build on.
// Create is an atomic insert-if-absent: it returns ErrAlreadyExists when the
// key is present, never overwriting it.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Create(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// DedupeStore guards against duplicate event deliveries. For a given
// fingerprint at most one InsertIfAbsent succeeds within the expiry window.
type DedupeStore interface {
	InsertIfAbsent(ctx context.Context, fingerprint string, expiresAt int64) error
	Delete(ctx context.Context, fingerprint string) error
}

// RuleStore persists emoji routing rules.
type RuleStore interface {
	InsertIfAbsent(ctx context.Context, rule Rule) error
	Get(ctx context.Context, emoji string) (Rule, error)
}

// RelayLog records delivered relays.
type RelayLog interface {
	Record(ctx context.Context, relay Relay) error
}

// ChatClient wraps outbound calls to the chat platform.
type ChatClient interface {
	UserEmail(ctx context.Context, userID string) (string, error)
	Channels(ctx context.Context) ([]Channel, error)
	Permalink(ctx context.Context, channelID, timestamp string) (string, error)
	PostMessage(ctx context.Context, channelID, text string) error
}

// ChatClientFactory builds a ChatClient with a freshly resolved credential.
type ChatClientFactory interface {
	Client(ctx context.Context) (ChatClient, error)
}

// AllowListResolver fetches and parses the approval policy.
type AllowListResolver interface {
	Resolve(ctx context.Context) (AllowList, error)
}

// ApprovalGate decides whether a user may trigger a relay. Infrastructure
// failures are returned as errors, never as an implicit rejection.
type ApprovalGate interface {
	IsApproved(ctx context.Context, client ChatClient, userID string) (bool, error)
}

// EventIngestor handles inbound reaction events. Ingest consumes a raw
// base64-encoded webhook body; IngestEvent consumes an already decoded event.
type EventIngestor interface {
	Ingest(ctx context.Context, rawBody []byte) (Response, error)
	IngestEvent(ctx context.Context, event ReactionEvent) (Response, error)
}

// RuleRegistrar handles inbound slash-command payloads creating rules.
type RuleRegistrar interface {
	Register(ctx context.Context, rawBody []byte) (Response, error)
}

// DB is the gorm-backed database handle shared by repositories.
type DB interface {
	Model(a any) *gorm.DB
	DB() (*sql.DB, error)
}

// Migrator applies schema migrations.
type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}
