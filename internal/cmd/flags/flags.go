package flags

import (
	"fmt"
	"slices"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var NATSUrl = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var InitNATS = &cli.BoolFlag{
	Name:        "nats-init",
	Aliases:     []string{"i"},
	Usage:       "Initialize NATS: create the dedupe and secrets buckets",
	DefaultText: "false",
	Value:       false,
	Sources:     cli.EnvVars("NATS_INIT"),
}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var ListenAddr = &cli.StringFlag{
	Name:    "listen-addr",
	Usage:   "The address the HTTP server listens on",
	Value:   ":8080",
	Sources: cli.EnvVars("LISTEN_ADDR"),
}

var PostgresURL = &cli.StringFlag{
	Name:    "postgres-url",
	Usage:   "The Postgres connection string for rules and relay audit",
	Sources: cli.EnvVars("POSTGRES_URL", "DATABASE_URL"),
}

var DedupeBucket = &cli.StringFlag{
	Name:    "dedupe-bucket",
	Usage:   "The KV bucket holding deduplication records",
	Value:   "reacji-dedupe",
	Sources: cli.EnvVars("DEDUPE_BUCKET"),
}

var SecretsBucket = &cli.StringFlag{
	Name:    "secrets-bucket",
	Usage:   "The KV bucket holding sealed credentials",
	Value:   "reacji-secrets",
	Sources: cli.EnvVars("SECRETS_BUCKET"),
}

var DedupeTTL = &cli.DurationFlag{
	Name:    "dedupe-ttl",
	Usage:   "How long a fingerprint suppresses duplicate deliveries",
	Value:   10 * time.Minute,
	Sources: cli.EnvVars("DEDUPE_TTL"),
}

var TokenParam = &cli.StringFlag{
	Name:    "token-param",
	Usage:   "The secret name of the chat bot token",
	Value:   "slack-token",
	Sources: cli.EnvVars("TOKEN_PARAM"),
}

var AppTokenParam = &cli.StringFlag{
	Name:    "app-token-param",
	Usage:   "The secret name of the app-level token used for Socket Mode",
	Value:   "slack-app-token",
	Sources: cli.EnvVars("APP_TOKEN_PARAM"),
}

var AllowlistParam = &cli.StringFlag{
	Name:    "allowlist-param",
	Usage:   "The secret name of the comma-separated approval allow-list",
	Value:   "approved-senders",
	Sources: cli.EnvVars("ALLOWLIST_PARAM"),
}

var SecretsKey = &cli.StringFlag{
	Name:    "secrets-key",
	Usage:   "Hex-encoded AES-256 key unsealing encrypted secrets",
	Sources: cli.EnvVars("SECRETS_KEY"),
}

var ChatAPIURL = &cli.StringFlag{
	Name:    "chat-api-url",
	Usage:   "Base URL of the chat platform Web API",
	Value:   "https://slack.com/api",
	Sources: cli.EnvVars("CHAT_API_URL"),
}
