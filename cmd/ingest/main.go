package main

import (
	"context"
	"flag"
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
	"indicator_backend/internal/platform/scheduler"
)

// syncTimeout は1回の同期全体の上限です。
const syncTimeout = 30 * time.Minute

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	schedule := flag.Bool("schedule", false, "run the catalog sync every day at SYNC_AT (Asia/Tokyo) instead of once")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	// 同期後にキャッシュを無効化するため、あれば Redis も使う
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, platformredis.Config(cfg.Redis)); err != nil {
		logger.L().Warn().Err(err).Msg("redis unavailable, cache will not be invalidated")
	} else {
		rdb = tmp
		defer rdb.Close()
	}

	uc := di.NewSyncUsecase(cfg, db, rdb)

	if !*schedule {
		runCtx, cancel := context.WithTimeout(ctx, syncTimeout)
		defer cancel()
		if err := uc.SyncAll(runCtx); err != nil {
			logger.L().Fatal().Err(err).Msg("indicator catalog sync failed")
		}
		logger.L().Info().Msg("indicator catalog sync ok")
		return
	}

	s, err := scheduler.Daily(ctx, "indicator-sync", cfg.Sync.At, scheduler.Tokyo, syncTimeout, uc.SyncAll)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to schedule catalog sync")
	}
	s.StartAsync()
	logger.L().Info().Str("at", cfg.Sync.At).Msg("indicator catalog sync scheduled")

	<-ctx.Done()
	s.Stop()
	logger.L().Info().Msg("scheduler stopped")
}
