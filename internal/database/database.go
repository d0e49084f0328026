package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bxxf/flight-schema/internal/capture"
	"github.com/bxxf/flight-schema/internal/config"
	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

// DatabaseClient stores captures in redis. It satisfies capture.Store.
type DatabaseClient struct {
	RedisClient *redis.Client
}

func NewDatabaseClient(config config.Config) (*DatabaseClient, error) {
	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &DatabaseClient{
		RedisClient: client,
	}, nil
}

func NewCaptureStore(database *DatabaseClient) capture.Store {
	return database
}

func (d *DatabaseClient) Save(ctx context.Context, key string, raw []byte, ttl time.Duration) error {
	return d.RedisClient.Set(ctx, key, raw, ttl).Err()
}

func (d *DatabaseClient) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := d.RedisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, capture.ErrNotFound
	}
	return raw, err
}

func (d *DatabaseClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	return d.RedisClient.Keys(ctx, pattern).Result()
}

func (d *DatabaseClient) Delete(ctx context.Context, key string) error {
	return d.RedisClient.Del(ctx, key).Err()
}

func RegisterDatabaseHooks(lc fx.Lifecycle, database *DatabaseClient) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.RedisClient.Close()
		},
	})
}
