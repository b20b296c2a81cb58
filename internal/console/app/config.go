package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"8080"`
	DatabaseFile string `env:"CONSOLE_DATABASE_FILE" envDefault:"console.db"`

	// JWTSecret signs session tokens. Must be at least 32 bytes.
	JWTSecret string `env:"JWT_SECRET,required"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	InviteTTL  time.Duration `env:"INVITE_TTL" envDefault:"168h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`

	// ClientURL is the public base URL of the frontend; invite links are
	// built against it.
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// SecureCookies reports whether the session cookie should carry the
// Secure flag. Local development runs over plain HTTP.
func (c Config) SecureCookies() bool {
	return c.Env == "prod" || c.Env == "production"
}
