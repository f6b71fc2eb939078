package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/scout/pkg/cli/config"
	controller "github.com/m-mizutani/scout/pkg/controller/http"
	"github.com/m-mizutani/scout/pkg/usecase"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		upstreamCfg config.Upstream
		sentryCfg   config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, upstreamCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			client, err := upstreamClient(c, &upstreamCfg)
			if err != nil {
				return err
			}

			logger.Info("Starting scout server",
				slog.String("addr", serverCfg.Addr),
				slog.String("upstream", client.BaseURL()),
				slog.Bool("sentry", sentryCfg.Enabled()),
			)

			server, err := controller.NewServer(
				ctx,
				usecase.NewSearch(client),
				usecase.NewDownload(client),
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
