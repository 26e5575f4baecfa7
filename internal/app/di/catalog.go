// Package di はアプリケーションの依存関係を組み立てます。
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"indicator_backend/internal/feature/indicator/adapters"
	"indicator_backend/internal/feature/indicator/usecase"
	"indicator_backend/internal/platform/cache"
	"indicator_backend/internal/platform/config"
	"indicator_backend/internal/platform/externalapi/twelvedata"
	platformhttp "indicator_backend/internal/platform/http"
	"indicator_backend/internal/shared/ratelimiter"
)

// NewIndicatorRepository はカタログのリポジトリを返します。
// rdb が nil の場合はキャッシュなしで DB を直接参照します。
func NewIndicatorRepository(db *gorm.DB, rdb *redis.Client) usecase.IndicatorRepository {
	repo := adapters.NewIndicatorRepository(db)
	if rdb == nil {
		return repo
	}
	// TTL 0 = 次回の 08:00 JST 同期まで
	return cache.NewCachingIndicatorRepository(rdb, 0, repo, "indicators")
}

// NewReferenceData は Twelve Data の参照データクライアントを生成します。
func NewReferenceData(cfg config.TwelveDataConfig) *twelvedata.TwelveDataReference {
	return twelvedata.NewTwelveDataReference(twelvedata.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Country: cfg.Country,
	}, platformhttp.NewHTTPClient(cfg.Timeout))
}

// NewSyncUsecase はカタログ同期ジョブを組み立てます。
// Twelve Data の無料枠に合わせ、全タイプで1つのレートリミッターを共有します。
func NewSyncUsecase(cfg config.Config, db *gorm.DB, rdb *redis.Client) *usecase.SyncUsecase {
	limiter := ratelimiter.NewRateLimiter(cfg.TwelveData.RequestsPerMinute, time.Minute)
	return usecase.NewSyncUsecase(
		NewReferenceData(cfg.TwelveData),
		NewIndicatorRepository(db, rdb),
		limiter,
		cfg.Sync.Concurrency,
	)
}
