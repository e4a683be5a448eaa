// Package bootstrap loads configuration and opens the shared connections
// every command needs.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/infrastructure/config"
	"github.com/bizblocks/bizblocks/internal/infrastructure/database"
	"github.com/bizblocks/bizblocks/internal/shared/biztime"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// Runtime is the process state shared by the commands.
type Runtime struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client // nil when Redis is disabled
	Log    logger.Interface
}

// Options selects which connections Setup opens.
type Options struct {
	Env        string
	ConfigPath string
	Redis      bool
}

// Setup loads configuration, initializes logging and the business timezone
// and connects to the database and, when asked and enabled, Redis.
func Setup(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rt := &Runtime{Config: cfg, DB: database.Get(), Log: log}

	if opts.Redis && cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			_ = database.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
		}
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
		rt.Redis = client
	}

	return rt, nil
}

// Close releases the connections opened by Setup.
func (r *Runtime) Close() {
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			r.Log.Warnw("failed to close redis client", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
}
