package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/signvault/cmd/app/commands"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunMigrations()
			},
		},
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key for envelope encryption",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateMasterKey(os.Stdout)
			},
		},
	}
}
