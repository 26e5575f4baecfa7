// Package redis は Redis クライアントの生成を提供します。
package redis

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"indicator_backend/internal/platform/logger"
)

// Config は Redis の接続設定です。
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// ErrNotConfigured is returned when no host is configured; callers run without cache.
var ErrNotConfigured = errors.New("redis host is not configured")

// NewRedisClient connects to Redis and pings it once.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrNotConfigured
	}
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		logger.L().Error().Err(err).Str("address", addr).Msg("redis connection failed")
		return nil, err
	}

	logger.L().Info().Str("address", addr).Msg("redis connection successful")
	return rdb, nil
}
