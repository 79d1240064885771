package config

import "time"

// Config is built once at process start from CLI flags and passed into
// services by injection. Business logic never reads the environment directly.
type Config struct {
	LogLevel string `flag:"log-level"`

	ListenAddr string `flag:"listen-addr"`

	NATSURL  string `flag:"nats-url"`
	NATSInit bool   `flag:"nats-init"`

	PostgresURL string `flag:"postgres-url"`

	DedupeBucket  string        `flag:"dedupe-bucket"`
	SecretsBucket string        `flag:"secrets-bucket"`
	DedupeTTL     time.Duration `flag:"dedupe-ttl"`

	TokenParam     string `flag:"token-param"`
	AppTokenParam  string `flag:"app-token-param"`
	AllowlistParam string `flag:"allowlist-param"`
	SecretsKey     string `flag:"secrets-key"`

	ChatAPIURL string `flag:"chat-api-url"`
}
