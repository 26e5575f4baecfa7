package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"indicator_backend/internal/app/di"
	"indicator_backend/internal/platform/config"
	platformdb "indicator_backend/internal/platform/db"
	"indicator_backend/internal/platform/logger"
	platformredis "indicator_backend/internal/platform/redis"
)

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.Open(platformdb.Config{
		User:         cfg.Postgres.User,
		Password:     cfg.Postgres.Password,
		Name:         cfg.Postgres.Name,
		Host:         cfg.Postgres.Host,
		Port:         cfg.Postgres.Port,
		SSLMode:      cfg.Postgres.SSLMode,
		InstanceName: cfg.Postgres.InstanceName,
	}, cfg.Postgres.ConnTimeout)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to connect database")
	}
	if cfg.RunMigrations {
		if err := platformdb.Migrate(db, di.Models()...); err != nil {
			logger.L().Fatal().Err(err).Msg("failed to migrate")
		}
	}

	// Redis（なければキャッシュなしで起動）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, platformredis.Config(cfg.Redis)); err != nil {
		logger.L().Warn().Err(err).Msg("redis unavailable, running without cache")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.L().Error().Err(err).Msg("failed to close redis client")
			}
		}()
	}

	if cfg.JWT.Secret == "" {
		logger.L().Warn().Msg("JWT_SECRET is not set; every authenticated request will fail")
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Server.Port),
		Handler:           di.NewServer(cfg, db, rdb),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.L().Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.L().Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("graceful shutdown failed")
	}
}
