package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Razorpay  RazorpayConfig
	SMTP      SMTPConfig
	RateLimit AuthRateLimitConfig
	Features  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RENTKART_APP_ENV" required:"true"`
	Port         string `envconfig:"RENTKART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RENTKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RENTKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"RENTKART_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"RENTKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RENTKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RENTKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RENTKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RENTKART_REDIS_URL"`
	Address      string        `envconfig:"RENTKART_REDIS_ADDR"`
	Password     string        `envconfig:"RENTKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"RENTKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RENTKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RENTKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RENTKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RENTKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RENTKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RENTKART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RENTKART_JWT_ISSUER" default:"rentkart"`
	ExpirationMinutes int    `envconfig:"RENTKART_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"RENTKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"RENTKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"RENTKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"RENTKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"RENTKART_ARGON_KEY_LEN" default:"32"`
}

// RazorpayConfig carries gateway credentials. KeyID/KeySecret authenticate API
// calls; WebhookSecret signs webhook payloads and falls back to KeySecret when
// unset.
type RazorpayConfig struct {
	KeyID         string        `envconfig:"RENTKART_RAZORPAY_KEY_ID"`
	KeySecret     string        `envconfig:"RENTKART_RAZORPAY_KEY_SECRET"`
	WebhookSecret string        `envconfig:"RENTKART_RAZORPAY_WEBHOOK_SECRET"`
	BaseURL       string        `envconfig:"RENTKART_RAZORPAY_BASE_URL" default:"https://api.razorpay.com"`
	Timeout       time.Duration `envconfig:"RENTKART_RAZORPAY_TIMEOUT" default:"10s"`
}

// Configured reports whether gateway credentials are present.
func (r RazorpayConfig) Configured() bool {
	return r.KeyID != "" && r.KeySecret != ""
}

// EffectiveWebhookSecret returns the webhook signing secret, falling back to
// the API key secret when no dedicated webhook secret is configured.
func (r RazorpayConfig) EffectiveWebhookSecret() string {
	if r.WebhookSecret != "" {
		return r.WebhookSecret
	}
	return r.KeySecret
}

type SMTPConfig struct {
	Host        string        `envconfig:"RENTKART_SMTP_HOST"`
	Port        int           `envconfig:"RENTKART_SMTP_PORT" default:"587"`
	Username    string        `envconfig:"RENTKART_SMTP_USERNAME"`
	Password    string        `envconfig:"RENTKART_SMTP_PASSWORD"`
	From        string        `envconfig:"RENTKART_SMTP_FROM"`
	AdminEmail  string        `envconfig:"RENTKART_ADMIN_EMAIL"`
	DialTimeout time.Duration `envconfig:"RENTKART_SMTP_DIAL_TIMEOUT" default:"10s"`
}

// Configured reports whether outbound mail can be sent.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.From != ""
}

// AuthRateLimitConfig throttles credential-guessing traffic. A zero window or
// zero limits disables the corresponding policy.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"RENTKART_RATE_LIMIT_LOGIN_WINDOW" default:"15m"`
	LoginIPLimit       int           `envconfig:"RENTKART_RATE_LIMIT_LOGIN_IP" default:"20"`
	LoginEmailLimit    int           `envconfig:"RENTKART_RATE_LIMIT_LOGIN_EMAIL" default:"10"`
	RegisterWindow     time.Duration `envconfig:"RENTKART_RATE_LIMIT_REGISTER_WINDOW" default:"1h"`
	RegisterIPLimit    int           `envconfig:"RENTKART_RATE_LIMIT_REGISTER_IP" default:"10"`
	RegisterEmailLimit int           `envconfig:"RENTKART_RATE_LIMIT_REGISTER_EMAIL" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RENTKART_AUTO_MIGRATE" default:"false"`
}
