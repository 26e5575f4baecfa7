// Package router はHTTPルーティングを組み立てます。
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	customforecasthandler "indicator_backend/internal/feature/customforecast/transport/handler"
	indicatorhandler "indicator_backend/internal/feature/indicator/transport/handler"
	indicatorboardhandler "indicator_backend/internal/feature/indicatorboard/transport/handler"
	platformhandler "indicator_backend/internal/platform/http/handler"
	jwtmw "indicator_backend/internal/platform/jwt"
	"indicator_backend/internal/platform/middleware"
)

// Config はルーターが必要とするハンドラーと設定です。
type Config struct {
	AllowedOrigins []string
	JWTSecret      string
	Ready          platformhandler.Pinger

	IndicatorBoard   *indicatorboardhandler.IndicatorBoardHandler
	CustomForecast   *customforecasthandler.CustomForecastIndicatorHandler
	IndicatorCatalog *indicatorhandler.IndicatorHandler
}

func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 認証不要
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/readyz", platformhandler.Ready(cfg.Ready))

	// 認証必須のルート
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		api.GET("/indicators", cfg.IndicatorCatalog.List)
		api.GET("/indicators/search", cfg.IndicatorCatalog.Search)

		board := api.Group("/numerical-guidance/indicator-board-metadata")
		board.POST("", cfg.IndicatorBoard.Create)
		board.GET("", cfg.IndicatorBoard.List)
		board.POST("/custom-forecast-indicator/:id", cfg.IndicatorBoard.InsertCustomForecastIndicator)
		board.GET("/:id", cfg.IndicatorBoard.Get)
		board.POST("/:id", cfg.IndicatorBoard.InsertIndicator)
		board.PATCH("/:id", cfg.IndicatorBoard.UpdateName)
		board.DELETE("/:id", cfg.IndicatorBoard.Delete)
		board.PATCH("/:id/sections", cfg.IndicatorBoard.UpdateSections)
		board.DELETE("/:id/indicator/:indicatorId", cfg.IndicatorBoard.DeleteIndicator)
		board.DELETE("/:id/custom-forecast-indicator/:customForecastIndicatorId", cfg.IndicatorBoard.DeleteCustomForecastIndicator)

		cf := api.Group("/numerical-guidance/custom-forecast-indicator")
		cf.POST("", cfg.CustomForecast.Create)
		cf.GET("", cfg.CustomForecast.List)
		cf.GET("/:id", cfg.CustomForecast.Get)
		cf.PATCH("/:id", cfg.CustomForecast.UpdateName)
		cf.PATCH("/:id/source-indicators", cfg.CustomForecast.UpdateSourceIndicators)
		cf.DELETE("/:id", cfg.CustomForecast.Delete)
	}

	return r
}
