// Package handler はindicatorフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/feature/indicator/domain/entity"
	"indicator_backend/internal/feature/indicator/transport/http/dto"
	"indicator_backend/internal/feature/indicator/usecase"
	"indicator_backend/internal/platform/logger"
	"indicator_backend/internal/platform/middleware"
)

// IndicatorUsecase は指標カタログ参照のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type IndicatorUsecase interface {
	ListIndicators(ctx context.Context, indicatorType string, limit, offset int) ([]entity.Indicator, error)
	SearchIndicators(ctx context.Context, symbol string, limit int) ([]entity.Indicator, error)
}

// IndicatorHandler は指標カタログに関するHTTPリクエストを処理します。
type IndicatorHandler struct {
	uc IndicatorUsecase
}

func NewIndicatorHandler(uc IndicatorUsecase) *IndicatorHandler {
	return &IndicatorHandler{uc: uc}
}

// List はタイプ別の指標一覧をシンボル順に返します。
//
// GET /api/indicators?indicatorType=stocks&limit=50&offset=0
func (h *IndicatorHandler) List(c *gin.Context) {
	var params dto.ListIndicatorsParams
	q := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "indicatorType", q, &params.IndicatorType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", q, &params.Offset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.uc.ListIndicators(c.Request.Context(), params.IndicatorType, deref(params.Limit), deref(params.Offset))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIndicatorListRes(out))
}

// Search はシンボルの前方一致で全タイプの指標を検索します。
//
// GET /api/indicators/search?symbol=AAP
func (h *IndicatorHandler) Search(c *gin.Context) {
	var params dto.SearchIndicatorsParams
	q := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "symbol", q, &params.Symbol); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.uc.SearchIndicators(c.Request.Context(), params.Symbol, deref(params.Limit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIndicatorListRes(out))
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidIndicatorType), errors.Is(err, usecase.ErrEmptySearchSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.L().Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("indicator catalog request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
