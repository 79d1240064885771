package core

import "time"

// Response is the transport-agnostic result of a pipeline run. HTTP handlers
// and the socket subscriber both consume it.
type Response struct {
	StatusCode int
	Body       string
}

// ReactionEvent is a single emoji reaction, decoded once per request.
// Timestamp is the platform's opaque message identifier; it is only ever
// compared for equality.
type ReactionEvent struct {
	UserID    string `validate:"required"`
	Emoji     string `validate:"required"`
	ChannelID string `validate:"required"`
	Timestamp string `validate:"required"`
}

// Fingerprint is the deduplication key for the event.
func (e ReactionEvent) Fingerprint() string {
	return e.Emoji + "-" + e.ChannelID + "-" + e.Timestamp
}

// DedupeRecord marks a fingerprint as seen until ExpiresAt.
type DedupeRecord struct {
	Fingerprint string `json:"fingerprint"`
	ExpiresAt   int64  `json:"expires_at"`
}

// Rule routes an emoji to a destination channel. Rules are created once and
// never updated or deleted.
type Rule struct {
	Emoji     string `gorm:"primaryKey;column:emoji"`
	ChannelID string `gorm:"column:channel_id"`
	CreatedAt time.Time
}

func (Rule) TableName() string {
	return "rules"
}

// Relay is an audit record of one delivered relay.
type Relay struct {
	ID                   int64 `gorm:"primaryKey"`
	Emoji                string
	SourceChannelID      string
	SourceTimestamp      string
	DestinationChannelID string
	Permalink            string
	CreatedAt            time.Time
}

func (Relay) TableName() string {
	return "relays"
}

// Channel is a chat channel as reported by the platform.
type Channel struct {
	ID   string
	Name string
}

// AllowList holds the approved email domains and exact addresses. An empty
// allow-list approves everyone.
type AllowList struct {
	Domains []string
	Emails  []string
}

func (a AllowList) Empty() bool {
	return len(a.Domains) == 0 && len(a.Emails) == 0
}
