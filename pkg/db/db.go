package db

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/thesrcielos/HeroHigherLower/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB
var Rdb *redis.Client

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "db").Logger()

func Init(ctx context.Context, cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	Rdb, err = redisDBConnection(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	return nil
}

// redisDBConnection returns a nil client when no address is configured.
func redisDBConnection(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info().Msg("REDIS_ADDR not set, hero cache disabled")
		return nil, nil
	}

	var tlsConfig *tls.Config
	if cfg.TLS {
		tlsConfig = &tls.Config{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Username:  cfg.Username,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConfig,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	logger.Info().Str("pong", pong).Msg("redis connected")
	return client, nil
}
