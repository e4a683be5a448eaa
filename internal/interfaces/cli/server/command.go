package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/bizblocks/bizblocks/internal/infrastructure/migration"
	"github.com/bizblocks/bizblocks/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/bizblocks/bizblocks/internal/interfaces/http"
	"github.com/bizblocks/bizblocks/internal/shared/goroutine"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/version"
)

var (
	env         string
	configPath  string
	autoMigrate bool
	withWorker  bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the BizBlocks HTTP API. SIGHUP reloads the block catalog file.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&withWorker, "with-worker", false, "Also relay outbox notifications in this process")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("BIZBLOCKS_ENV"); envVar != "" {
		env = envVar
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Setup(ctx, bootstrap.Options{Env: mapEnvToGinMode(env), ConfigPath: configPath, Redis: true})
	if err != nil {
		return err
	}
	defer rt.Close()
	log := rt.Log
	cfg := rt.Config

	log.Infow("starting server",
		"environment", env,
		"version", version.Current,
		"auto_migrate", autoMigrate,
		"redis", rt.Redis != nil)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		strategy := migration.NewStrategy(cfg.Database.Driver, log)
		if err := strategy.Migrate(ctx, rt.DB); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	router, err := httpRouter.NewRouter(rt.DB, rt.Redis, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()

	if withWorker {
		goroutine.SafeGo(log, "outbox-relay", func() {
			goroutine.RunEvery(ctx, log, "outbox-relay", cfg.Outbox.PollInterval(), func(ctx context.Context) {
				if _, err := router.RelayOutbox(ctx); err != nil {
					log.Errorw("outbox relay failed", "error", err)
				}
			})
		})
	}

	goroutine.SafeGo(log, "catalog-reload", func() {
		watchCatalogReload(ctx, router, log)
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Infow("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func watchCatalogReload(ctx context.Context, router *httpRouter.Router, log logger.Interface) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := router.ReloadCatalog(); err != nil {
				log.Errorw("catalog reload failed, keeping previous catalog", "error", err)
				continue
			}
			log.Infow("catalog reloaded")
		}
	}
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
