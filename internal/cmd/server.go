package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"reacji/internal/allowlist"
	"reacji/internal/api"
	"reacji/internal/approval"
	"reacji/internal/chat"
	"reacji/internal/cmd/flags"
	"reacji/internal/core"
	"reacji/internal/dedupe"
	"reacji/internal/ingest"
	"reacji/internal/nats"
	"reacji/internal/persistence"
	"reacji/internal/persistence/relays"
	"reacji/internal/persistence/rules"
	"reacji/internal/register"
	"reacji/internal/secrets"
)

var serverCmd = &cli.Command{
	Name:  "server",
	Usage: "Serve the ingestion webhook, the rule registration command and metrics",
	Flags: []cli.Flag{
		flags.ListenAddr,
		flags.NATSUrl,
		flags.InitNATS,
		flags.PostgresURL,
		flags.DedupeBucket,
		flags.SecretsBucket,
		flags.DedupeTTL,
		flags.TokenParam,
		flags.AppTokenParam,
		flags.AllowlistParam,
		flags.SecretsKey,
		flags.ChatAPIURL,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, append(coreServices(), pal.Provide(&api.Server{}))...)
	},
}

// coreServices is the shared wiring of both event entrypoints: stores,
// secret resolution, chat client construction and the two pipelines.
func coreServices() []pal.ServiceDef {
	return []pal.ServiceDef{
		pal.Provide(&nats.NATS{}),
		pal.Provide[core.DB](&persistence.DB{}),
		pal.Provide[core.SecretResolver](&secrets.Resolver{}),
		pal.Provide[core.DedupeStore](&dedupe.Store{}),
		pal.Provide[core.RuleStore](&rules.Repository{}),
		pal.Provide[core.RelayLog](&relays.Repository{}),
		pal.Provide[core.AllowListResolver](&allowlist.Resolver{}),
		pal.Provide[core.ApprovalGate](&approval.Gate{}),
		pal.Provide[core.ChatClientFactory](&chat.Factory{}),
		pal.Provide[core.EventIngestor](&ingest.Pipeline{}),
		pal.Provide[core.RuleRegistrar](&register.Pipeline{}),
	}
}
