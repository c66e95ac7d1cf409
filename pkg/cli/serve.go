/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/dataset-api/pkg/api"
	"github.com/NVIDIA/dataset-api/pkg/config"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the dataset over HTTP",
		Description: `Start the HTTP API and serve until SIGINT or SIGTERM.

Routes:
  GET /          all records, in file order
  GET /{guid}    first record whose "guid" field matches
  GET /health    dataset health (always 200)
  GET /ready     readiness check
  GET /metrics   Prometheus metrics

Every flag falls back to its environment variable, and then to a default.

# Examples

Serve ./data.json on port 3000:
  dsapi serve

Serve another file with the reload endpoint enabled:
  dsapi serve --data-file /srv/items.json --admin-reload`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-file",
				Aliases: []string{"d"},
				Usage:   "Path to the JSON data file (env DATA_FILE_PATH)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (env HOST)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (env PORT)",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Sustained requests per second (env RATE_LIMIT)",
			},
			&cli.IntFlag{
				Name:  "rate-limit-burst",
				Usage: "Rate limiter burst size (env RATE_LIMIT_BURST)",
			},
			&cli.BoolFlag{
				Name:  "admin-reload",
				Usage: "Expose POST /admin/reload (env ADMIN_RELOAD)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p := providerFromCmd(cmd)
			if err := api.Serve(ctx, p); err != nil {
				return fmt.Errorf("serve failed: %w", err)
			}
			return nil
		},
	}
}

// providerFromCmd builds an environment provider with explicitly set flags
// pinned over the environment.
func providerFromCmd(cmd *cli.Command) *config.EnvProvider {
	p := config.NewEnvProvider()

	if cmd.IsSet("log-level") {
		p.Override(config.KeyLogLevel, cmd.String("log-level"))
	}
	if cmd.IsSet("data-file") {
		p.Override(config.KeyDataFilePath, cmd.String("data-file"))
	}
	if cmd.IsSet("host") {
		p.Override(config.KeyHost, cmd.String("host"))
	}
	if cmd.IsSet("port") {
		p.Override(config.KeyPort, cmd.Int("port"))
	}
	if cmd.IsSet("rate-limit") {
		p.Override(config.KeyRateLimit, cmd.Float("rate-limit"))
	}
	if cmd.IsSet("rate-limit-burst") {
		p.Override(config.KeyRateLimitBurst, cmd.Int("rate-limit-burst"))
	}
	if cmd.IsSet("admin-reload") {
		p.Override(config.KeyAdminReload, cmd.Bool("admin-reload"))
	}

	return p
}
