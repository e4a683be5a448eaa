package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string          `mapstructure:"host"`
	Port           int             `mapstructure:"port"`
	Mode           string          `mapstructure:"mode"`
	BaseURL        string          `mapstructure:"base_url"`
	Timezone       string          `mapstructure:"timezone"`
	AllowedOrigins []string        `mapstructure:"allowed_origins"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig caps requests per minute on the write endpoints. It only
// applies when Redis is enabled.
type RateLimitConfig struct {
	CheckoutPerMinute int `mapstructure:"checkout_per_minute"`
	WebhookPerMinute  int `mapstructure:"webhook_per_minute"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialector. Driver is "mysql" (default) or
// "sqlite", in which case Database is the sqlite file path.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

func (d *DatabaseConfig) IsSQLite() bool {
	return d.Driver == "sqlite"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type EmailConfig struct {
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	AdminAddress string `mapstructure:"admin_address"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BillingConfig holds the monetization policy knobs.
type BillingConfig struct {
	Currency              string `mapstructure:"currency"`
	GracePeriodDays       int    `mapstructure:"grace_period_days"`
	ReminderCooldownHours int    `mapstructure:"reminder_cooldown_hours"`
	WebhookSecret         string `mapstructure:"webhook_secret"`
	SuccessURL            string `mapstructure:"success_url"`
	CancelURL             string `mapstructure:"cancel_url"`
	// GatewayFailCheckout makes the built-in gateway reject checkout creation.
	// Only useful for local testing of the failure paths.
	GatewayFailCheckout bool `mapstructure:"gateway_fail_checkout"`
}

func (b *BillingConfig) GracePeriod() time.Duration {
	return time.Duration(b.GracePeriodDays) * 24 * time.Hour
}

func (b *BillingConfig) ReminderCooldown() time.Duration {
	return time.Duration(b.ReminderCooldownHours) * time.Hour
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type OutboxConfig struct {
	BatchSize           int `mapstructure:"batch_size"`
	MaxAttempts         int `mapstructure:"max_attempts"`
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds"`
}

func (o *OutboxConfig) PollInterval() time.Duration {
	return time.Duration(o.PollIntervalSeconds) * time.Second
}
