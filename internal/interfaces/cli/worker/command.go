// Package worker runs the background jobs: outbox delivery and the lapsed
// subscription sweep.
package worker

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bizblocks/bizblocks/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/bizblocks/bizblocks/internal/interfaces/http"
	"github.com/bizblocks/bizblocks/internal/shared/goroutine"
)

var (
	env           string
	configPath    string
	sweepInterval time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs",
		Long:  `Deliver queued notification emails and periodically expire or cancel lapsed subscriptions.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().DurationVar(&sweepInterval, "sweep-interval", time.Hour, "How often to sweep lapsed subscriptions")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if sweepInterval <= 0 {
		return fmt.Errorf("--sweep-interval must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Setup(ctx, bootstrap.Options{Env: env, ConfigPath: configPath, Redis: true})
	if err != nil {
		return err
	}
	defer rt.Close()
	log := rt.Log.Named("worker")

	container, err := httpRouter.NewContainer(rt.DB, rt.Redis, rt.Config, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	log.Infow("worker started",
		"poll_interval", rt.Config.Outbox.PollInterval(),
		"sweep_interval", sweepInterval)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		goroutine.RunEvery(ctx, log, "outbox-relay", rt.Config.Outbox.PollInterval(), func(ctx context.Context) {
			result, err := container.RelayOutbox(ctx)
			if err != nil {
				log.Errorw("outbox relay failed", "error", err)
				return
			}
			if result.Claimed > 0 {
				log.Infow("outbox relay completed",
					"claimed", result.Claimed,
					"delivered", result.Delivered,
					"retried", result.Retried,
					"failed", result.Failed)
			}
		})
	}()

	go func() {
		defer wg.Done()
		goroutine.RunEvery(ctx, log, "subscription-sweep", sweepInterval, func(ctx context.Context) {
			result, err := container.SweepLapsedSubscriptions(ctx)
			if err != nil {
				log.Errorw("subscription sweep failed", "error", err)
				return
			}
			log.Infow("subscription sweep completed",
				"examined", result.Examined,
				"expired", result.Expired,
				"cancelled", result.Cancelled)
		})
	}()

	<-ctx.Done()
	log.Infow("shutting down worker")
	wg.Wait()
	log.Infow("worker stopped")
	return nil
}
