package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DB    DBConfig    `envPrefix:"DB_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
	JWT   JWTConfig   `envPrefix:"JWT_"`

	BcryptCost      int     `env:"BCRYPT_COST" envDefault:"10"`
	MatchupPoolSize int     `env:"MATCHUP_POOL_SIZE" envDefault:"150"`
	RateLimit       float64 `env:"RATE_LIMIT" envDefault:"10"`
	RateBurst       int     `env:"RATE_BURST" envDefault:"20"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"heroes"`
	Port     string `env:"PORT" envDefault:"5432"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

// RedisConfig configures the hero catalog cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"ADDR"`
	Username string        `env:"USERNAME"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TLS      bool          `env:"TLS" envDefault:"false"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

type JWTConfig struct {
	Secret string        `env:"SECRET" envDefault:"test-secret"`
	TTL    time.Duration `env:"TTL" envDefault:"2h"`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	if err := godotenv.Load(files...); err != nil {
		logger.Warn().Err(err).Msg("file .env not found, using system values")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MatchupPoolSize < 2 {
		return nil, fmt.Errorf("MATCHUP_POOL_SIZE must be at least 2, got %d", cfg.MatchupPoolSize)
	}
	return &cfg, nil
}

// ZerologLevel maps LOG_LEVEL to a zerolog level, defaulting to info.
func (c *Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
