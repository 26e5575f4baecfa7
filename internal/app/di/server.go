package di

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"indicator_backend/internal/app/router"
	cfadapters "indicator_backend/internal/feature/customforecast/adapters"
	cfhandler "indicator_backend/internal/feature/customforecast/transport/handler"
	cfusecase "indicator_backend/internal/feature/customforecast/usecase"
	indicatoradapters "indicator_backend/internal/feature/indicator/adapters"
	indicatorhandler "indicator_backend/internal/feature/indicator/transport/handler"
	indicatorusecase "indicator_backend/internal/feature/indicator/usecase"
	boardadapters "indicator_backend/internal/feature/indicatorboard/adapters"
	boardhandler "indicator_backend/internal/feature/indicatorboard/transport/handler"
	boardusecase "indicator_backend/internal/feature/indicatorboard/usecase"
	"indicator_backend/internal/platform/config"
	platformdb "indicator_backend/internal/platform/db"
)

// Models は AutoMigrate 対象のテーブル定義です。
func Models() []any {
	return []any{
		&indicatoradapters.IndicatorModel{},
		&boardadapters.IndicatorBoardMetadataModel{},
		&cfadapters.CustomForecastIndicatorModel{},
	}
}

// NewServer は API サーバーのルーターを組み立てます。
func NewServer(cfg config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	// Catalog
	catalogUC := indicatorusecase.NewIndicatorUsecase(NewIndicatorRepository(db, rdb))

	// Custom forecast indicators
	cfUC := cfusecase.NewCustomForecastIndicatorUsecase(cfadapters.NewCustomForecastIndicatorRepository(db), catalogUC)

	// Indicator boards
	boardUC := boardusecase.NewIndicatorBoardUsecase(boardadapters.NewIndicatorBoardMetadataRepository(db), catalogUC, cfUC)

	return router.NewRouter(router.Config{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.JWT.Secret,
		Ready: func(ctx context.Context) error {
			return platformdb.Ping(ctx, db)
		},
		IndicatorBoard:   boardhandler.NewIndicatorBoardHandler(boardUC),
		CustomForecast:   cfhandler.NewCustomForecastIndicatorHandler(cfUC),
		IndicatorCatalog: indicatorhandler.NewIndicatorHandler(catalogUC),
	})
}
