package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"reacji/internal/cmd/flags"
	"reacji/internal/core"
	"reacji/internal/persistence"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Manage the database schema",
	Commands: []*cli.Command{
		{
			Name:  "up",
			Usage: "Apply all pending migrations",
			Flags: []cli.Flag{flags.PostgresURL},
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c, append(migrationServices(), pal.Provide(&persistence.MigrationUpRunner{}))...)
			},
		},
		{
			Name:  "down",
			Usage: "Roll back the latest migration",
			Flags: []cli.Flag{flags.PostgresURL},
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c, append(migrationServices(), pal.Provide(&persistence.MigrationDownRunner{}))...)
			},
		},
	},
}

func migrationServices() []pal.ServiceDef {
	return []pal.ServiceDef{
		pal.Provide[core.DB](&persistence.DB{}),
		pal.Provide[core.Migrator](&persistence.Migrator{}),
	}
}
