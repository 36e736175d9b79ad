package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT,default=8080"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`

	DBDriver string `env:"DB_DRIVER,default=mysql"`
	DBDSN    string `env:"DATABASE_DSN,default=user:password@tcp(localhost:3306)/cms?charset=utf8mb4&parseTime=True&loc=UTC"`
	ResetDB  bool   `env:"RESET_DB,default=false"`

	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB,default=0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET,required"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL,default=20m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL,default=720h"`
	ResetTokenTTL      time.Duration `env:"RESET_TOKEN_TTL,default=30m"`
	BcryptCost         int           `env:"BCRYPT_COST,default=10"`

	// UniformForgotPassword answers verify_email identically whether or not
	// the address is registered.
	UniformForgotPassword bool `env:"UNIFORM_FORGOT_PASSWORD,default=false"`
	// RestrictSelfRegistration limits POST /auth/register to the Client role.
	RestrictSelfRegistration bool `env:"RESTRICT_SELF_REGISTRATION,default=false"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE,default=20"`
	// TrustedProxies lists the CIDRs whose X-Forwarded-For header is honoured
	// when resolving the client IP. Empty means the socket peer address.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	AMQPURL     string `env:"AMQP_URL"`
	MailQueue   string `env:"MAIL_QUEUE,default=auth.mail"`
	MailFrom    string `env:"MAIL_FROM,default=no-reply@localhost"`
	SMTPHost    string `env:"SMTP_HOST"`
	SMTPPort    int    `env:"SMTP_PORT,default=587"`
	SMTPUser    string `env:"SMTP_USER"`
	SMTPPass    string `env:"SMTP_PASS"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:4200"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load builds Config from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the auth core cannot run safely with.
func (c *Config) Validate() error {
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 || c.ResetTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if _, err := c.TrustedProxyNets(); err != nil {
		return err
	}
	return nil
}

// TrustedProxyNets parses TrustedProxies.
func (c *Config) TrustedProxyNets() ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, cidr := range c.TrustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		nets = append(nets, ipNet)
	}
	return nets, nil
}
