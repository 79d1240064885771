package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"reacji/internal/chat"
	"reacji/internal/cmd/flags"
	"reacji/internal/socket"
)

var socketCmd = &cli.Command{
	Name:  "socket",
	Usage: "Consume reaction events over Socket Mode instead of the webhook",
	Flags: []cli.Flag{
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
		return run(ctx, c, append(coreServices(),
			pal.Provide(&chat.Factory{}),
			pal.Provide(&socket.Subscriber{}),
		)...)
	},
}
