// Package handler はcustomforecastフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/domain/rule"
	"indicator_backend/internal/feature/customforecast/domain/entity"
	"indicator_backend/internal/feature/customforecast/transport/http/dto"
	"indicator_backend/internal/feature/customforecast/usecase"
	jwtmw "indicator_backend/internal/platform/jwt"
	"indicator_backend/internal/platform/logger"
	"indicator_backend/internal/platform/middleware"
)

// CustomForecastIndicatorUsecase はカスタム予測指標のユースケースインターフェースです。
type CustomForecastIndicatorUsecase interface {
	CreateCustomForecastIndicator(ctx context.Context, memberID uint, name, targetIndicatorID, targetIndicatorType string) (uuid.UUID, error)
	GetCustomForecastIndicator(ctx context.Context, id uuid.UUID) (*entity.CustomForecastIndicator, error)
	ListCustomForecastIndicators(ctx context.Context, memberID uint) ([]*entity.CustomForecastIndicator, error)
	UpdateCustomForecastIndicatorName(ctx context.Context, id uuid.UUID, name string) error
	UpdateSourceIndicatorsInformation(ctx context.Context, id uuid.UUID, infos []entity.SourceIndicatorInformation) error
	DeleteCustomForecastIndicator(ctx context.Context, id uuid.UUID) error
}

type CustomForecastIndicatorHandler struct {
	uc CustomForecastIndicatorUsecase
}

func NewCustomForecastIndicatorHandler(uc CustomForecastIndicatorUsecase) *CustomForecastIndicatorHandler {
	return &CustomForecastIndicatorHandler{uc: uc}
}

// Create はカスタム予測指標を作成します。
//
// POST /api/numerical-guidance/custom-forecast-indicator
func (h *CustomForecastIndicatorHandler) Create(c *gin.Context) {
	memberID, ok := jwtmw.MemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.CreateCustomForecastIndicatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.uc.CreateCustomForecastIndicator(c.Request.Context(), memberID,
		req.CustomForecastIndicatorName, req.TargetIndicatorID, req.TargetIndicatorType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateCustomForecastIndicatorRes{ID: id.String()})
}

func (h *CustomForecastIndicatorHandler) List(c *gin.Context) {
	memberID, ok := jwtmw.MemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	list, err := h.uc.ListCustomForecastIndicators(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CustomForecastIndicatorRes, 0, len(list))
	for _, f := range list {
		out = append(out, dto.NewCustomForecastIndicatorRes(f))
	}
	c.JSON(http.StatusOK, dto.CustomForecastIndicatorListRes{CustomForecastIndicatorList: out})
}

func (h *CustomForecastIndicatorHandler) Get(c *gin.Context) {
	id, ok := indicatorID(c)
	if !ok {
		return
	}
	f, err := h.uc.GetCustomForecastIndicator(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomForecastIndicatorRes(f))
}

func (h *CustomForecastIndicatorHandler) UpdateName(c *gin.Context) {
	id, ok := indicatorID(c)
	if !ok {
		return
	}
	var req dto.UpdateCustomForecastIndicatorNameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.UpdateCustomForecastIndicatorName(c.Request.Context(), id, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateSourceIndicators は材料指標と重みを丸ごと置き換えます。
//
// PATCH /api/numerical-guidance/custom-forecast-indicator/:id/source-indicators
func (h *CustomForecastIndicatorHandler) UpdateSourceIndicators(c *gin.Context) {
	id, ok := indicatorID(c)
	if !ok {
		return
	}
	var req dto.UpdateSourceIndicatorsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.UpdateSourceIndicatorsInformation(c.Request.Context(), id, req.ToEntity()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *CustomForecastIndicatorHandler) Delete(c *gin.Context) {
	id, ok := indicatorID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteCustomForecastIndicator(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func indicatorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid custom forecast indicator id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCorruptedCustomForecastIndicator):
		logger.L().Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("stored custom forecast indicator violates its invariants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	case rule.IsViolation(err), errors.Is(err, shared.ErrInvalidIndicatorType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrCustomForecastIndicatorNotFound),
		errors.Is(err, shared.ErrIndicatorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrCustomForecastIndicatorNameConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.L().Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("custom forecast indicator request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
