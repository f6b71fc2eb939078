package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/scout/pkg/cli/config"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/infra/scloud"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    types.ServiceName,
		Usage:   "Search and download link proxy for SCloud",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = logging.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdSearch(),
			cmdResolve(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// upstreamClient loads the optional upstream config file and builds the client
func upstreamClient(c *cli.Command, cfg *config.Upstream) (*scloud.Client, error) {
	if err := cfg.Load(c.IsSet); err != nil {
		return nil, err
	}
	return cfg.NewClient()
}
