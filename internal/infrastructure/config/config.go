package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/bizblocks/bizblocks/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Email    sharedConfig.EmailConfig    `mapstructure:"email"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Billing  sharedConfig.BillingConfig  `mapstructure:"billing"`
	Catalog  sharedConfig.CatalogConfig  `mapstructure:"catalog"`
	Outbox   sharedConfig.OutboxConfig   `mapstructure:"outbox"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// configPath overrides the default search locations when non-empty.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("BIZBLOCKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func validate(cfg *Config) error {
	if cfg.Billing.GracePeriodDays <= 0 {
		return fmt.Errorf("billing.grace_period_days must be positive")
	}
	if cfg.Billing.ReminderCooldownHours <= 0 {
		return fmt.Errorf("billing.reminder_cooldown_hours must be positive")
	}
	if cfg.Outbox.PollIntervalSeconds <= 0 {
		return fmt.Errorf("outbox.poll_interval_seconds must be positive")
	}
	if cfg.Outbox.BatchSize <= 0 {
		return fmt.Errorf("outbox.batch_size must be positive")
	}
	switch cfg.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.checkout_per_minute", 20)
	v.SetDefault("server.rate_limit.webhook_per_minute", 600)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "bizblocks_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "bizblocks")
	v.SetDefault("auth.jwt.access_exp_minutes", 15)

	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_address", "noreply@bizblocks.local")
	v.SetDefault("email.from_name", "BizBlocks")
	v.SetDefault("email.admin_address", "admin@bizblocks.local")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("billing.currency", "USD")
	v.SetDefault("billing.grace_period_days", 7)
	v.SetDefault("billing.reminder_cooldown_hours", 24)
	v.SetDefault("billing.webhook_secret", "change-me-in-production")
	v.SetDefault("billing.success_url", "http://localhost:3000/checkout/success")
	v.SetDefault("billing.cancel_url", "http://localhost:3000/checkout/cancel")
	v.SetDefault("billing.gateway_fail_checkout", false)

	v.SetDefault("catalog.path", "./configs/catalog.yaml")

	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.max_attempts", 5)
	v.SetDefault("outbox.poll_interval_seconds", 10)
}
