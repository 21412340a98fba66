package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write to redis")
		return err
	}
	return nil
}

// Get returns the value for key, or ("", redis.Nil) on a miss.
func Get(ctx context.Context, key string) (string, error) {
	return Rdb.Get(ctx, key).Result()
}

// Nil is re-exported so callers can detect cache misses without importing
// the client package.
var Nil = redis.Nil
