package nats

import (
	"context"
	"log/slog"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"reacji/internal/config"
)

type NATS struct {
	Logger *slog.Logger
	Config *config.Config

	JS jetstream.JetStream

	dedupe  jetstream.KeyValue
	secrets jetstream.KeyValue
}

func (n *NATS) Init(ctx context.Context) error {
	n.Logger = n.Logger.With("component", "nats.NATS")

	nc, err := libnats.Connect(n.Config.NATSURL)
	if err != nil {
		return err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return err
	}

	n.JS = js

	if n.Config.NATSInit {
		if err := n.initNATS(ctx); err != nil {
			return err
		}
	}

	dedupe, err := js.KeyValue(ctx, n.Config.DedupeBucket)
	if err != nil {
		return err
	}
	n.dedupe = dedupe

	secrets, err := js.KeyValue(ctx, n.Config.SecretsBucket)
	if err != nil {
		return err
	}
	n.secrets = secrets

	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.JS.Conn().RTT()
	return err
}

func (n *NATS) Shutdown(context.Context) error {
	return n.JS.Conn().Drain()
}

// DedupeKV is the bucket holding deduplication fingerprints. Expiry is
// enforced by the bucket TTL.
func (n *NATS) DedupeKV() *KV {
	return &KV{kv: n.dedupe}
}

// SecretsKV is the bucket holding sealed credentials.
func (n *NATS) SecretsKV() *KV {
	return &KV{kv: n.secrets}
}

func (n *NATS) initNATS(ctx context.Context) error {
	n.Logger.Info("Initializing NATS")

	_, err := n.JS.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: n.Config.DedupeBucket,
		TTL:    n.Config.DedupeTTL,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("KeyValue created or updated", "name", n.Config.DedupeBucket)

	_, err = n.JS.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: n.Config.SecretsBucket,
	})
	if err != nil {
		return err
	}
	n.Logger.Info("KeyValue created or updated", "name", n.Config.SecretsBucket)

	return nil
}
