package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/collie-dev/collie/pkg/cli/config"
	controller "github.com/collie-dev/collie/pkg/controller/http"
	githubinfra "github.com/collie-dev/collie/pkg/infra/github"
	slackinfra "github.com/collie-dev/collie/pkg/infra/slack"
	"github.com/collie-dev/collie/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		policyCfg config.Policy
		notifyCfg config.Notify
		sentryCfg config.Sentry
	)

	flags := serverCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if githubCfg.WebhookSecret == "" {
				return goerr.New("github-webhook-secret is required for serve")
			}

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			policy, err := policyCfg.Load()
			if err != nil {
				return goerr.Wrap(err, "failed to load policy")
			}

			privateKey, err := githubCfg.PrivateKey()
			if err != nil {
				return err
			}

			githubClient, err := githubinfra.NewClient(githubCfg.AppID, githubCfg.InstallationID, privateKey)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			triageOpts := []usecase.TriageOption{}
			if len(githubCfg.TrustedActors) > 0 {
				triageOpts = append(triageOpts, usecase.WithTrustedActors(githubCfg.TrustedActors))
			}
			if notifyCfg.Enabled() {
				notifier := slackinfra.NewNotifier(notifyCfg.SlackOAuthToken, notifyCfg.SlackChannel)
				triageOpts = append(triageOpts, usecase.WithNotifier(notifier))
			}

			triageUC := usecase.NewTriage(githubClient, policy, triageOpts...)
			webhookUC := usecase.NewWebhook(triageUC)

			logger.Info("Starting collie server",
				slog.String("addr", serverCfg.Addr),
				slog.String("merge_method", string(policy.MergeMethod)),
				slog.Bool("auto_approve", policy.AutoApprove),
				slog.Bool("auto_merge", policy.AutoMerge),
				slog.Bool("slack_notify", notifyCfg.Enabled()),
			)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
