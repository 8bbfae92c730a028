package hero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheKeysSet = "heroes:cached_keys"

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "hero").Logger()

// CachedRepository keeps hero pools and single heroes in redis as JSON.
// Redis failures never fail a read, the call falls through to next.
type CachedRepository struct {
	next HeroRepository
	rdb  redis.Cmdable
	ttl  time.Duration
}

// NewCachedRepository returns next unchanged when rdb is nil.
func NewCachedRepository(next HeroRepository, rdb *redis.Client, ttl time.Duration) HeroRepository {
	if rdb == nil {
		return next
	}
	return &CachedRepository{next: next, rdb: rdb, ttl: ttl}
}

func poolKey(n int) string {
	return fmt.Sprintf("heroes:pool:%d", n)
}

func heroKey(id string) string {
	return fmt.Sprintf("hero:%s", id)
}

func (r *CachedRepository) ListUpTo(ctx context.Context, n int) ([]Hero, error) {
	key := poolKey(n)
	var heroes []Hero
	if r.load(ctx, key, &heroes) {
		return heroes, nil
	}

	heroes, err := r.next.ListUpTo(ctx, n)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, heroes)
	return heroes, nil
}

func (r *CachedRepository) FindByID(ctx context.Context, id string) (*Hero, error) {
	key := heroKey(id)
	var h Hero
	if r.load(ctx, key, &h) {
		return &h, nil
	}

	found, err := r.next.FindByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	r.store(ctx, key, found)
	return found, nil
}

func (r *CachedRepository) Upsert(ctx context.Context, heroes []Hero) (int, error) {
	n, err := r.next.Upsert(ctx, heroes)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx)
	return n, nil
}

func (r *CachedRepository) load(ctx context.Context, key string, dst interface{}) bool {
	val, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("error reading hero cache")
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("error decoding cached heroes")
		return false
	}
	return true
}

func (r *CachedRepository) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("error serializing heroes")
		return
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, r.ttl)
		pipe.SAdd(ctx, cacheKeysSet, key)
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("error writing hero cache")
	}
}

func (r *CachedRepository) invalidate(ctx context.Context) {
	keys, err := r.rdb.SMembers(ctx, cacheKeysSet).Result()
	if err != nil {
		logger.Warn().Err(err).Msg("error listing cached hero keys")
		return
	}
	keys = append(keys, cacheKeysSet)
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Msg("error invalidating hero cache")
		return
	}
	logger.Debug().Int("keys", len(keys)-1).Msg("hero cache invalidated")
}
