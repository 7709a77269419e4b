package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"project-task-api/internal/config"
)

var redisClient *redis.Client

// InitRedis connects the shared redis client. A redis:// URL takes
// precedence over host/port settings.
func InitRedis(cfg *config.Config, log *zap.Logger) error {
	var client *redis.Client

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully",
		zap.String("host", cfg.Redis.Host),
		zap.Int("db", cfg.Redis.DB))
	return nil
}

// GetRedis returns the shared redis client, or nil when redis is not
// connected so callers can degrade to uncached reads
func GetRedis() *redis.Client {
	return redisClient
}
