// Package handler はindicatorboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shared "indicator_backend/internal/domain/entity"
	"indicator_backend/internal/domain/rule"
	"indicator_backend/internal/feature/indicatorboard/domain/entity"
	"indicator_backend/internal/feature/indicatorboard/transport/http/dto"
	"indicator_backend/internal/feature/indicatorboard/usecase"
	jwtmw "indicator_backend/internal/platform/jwt"
	"indicator_backend/internal/platform/logger"
	"indicator_backend/internal/platform/middleware"
)

// IndicatorBoardUsecase は指標ボード操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IndicatorBoardUsecase interface {
	CreateIndicatorBoardMetadata(ctx context.Context, memberID uint, name string) (uuid.UUID, error)
	GetIndicatorBoardMetadata(ctx context.Context, id uuid.UUID) (*entity.IndicatorBoardMetadata, error)
	ListIndicatorBoardMetadata(ctx context.Context, memberID uint) ([]*entity.IndicatorBoardMetadata, error)
	InsertIndicator(ctx context.Context, id uuid.UUID, indicatorID string, indicatorType string) error
	DeleteIndicator(ctx context.Context, id uuid.UUID, indicatorID string) error
	InsertCustomForecastIndicator(ctx context.Context, id uuid.UUID, customForecastIndicatorID uuid.UUID) error
	DeleteCustomForecastIndicator(ctx context.Context, id uuid.UUID, customForecastIndicatorID string) error
	UpdateIndicatorBoardMetadataName(ctx context.Context, id uuid.UUID, name string) error
	UpdateSections(ctx context.Context, id uuid.UUID, sections entity.Sections) error
	DeleteIndicatorBoardMetadata(ctx context.Context, id uuid.UUID) error
}

// IndicatorBoardHandler は指標ボードのHTTPリクエストを処理します。
type IndicatorBoardHandler struct {
	uc IndicatorBoardUsecase
}

func NewIndicatorBoardHandler(uc IndicatorBoardUsecase) *IndicatorBoardHandler {
	return &IndicatorBoardHandler{uc: uc}
}

// Create は指標ボードを作成します。
//
// POST /api/numerical-guidance/indicator-board-metadata
func (h *IndicatorBoardHandler) Create(c *gin.Context) {
	memberID, ok := jwtmw.MemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.CreateIndicatorBoardMetadataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.uc.CreateIndicatorBoardMetadata(c.Request.Context(), memberID, req.IndicatorBoardMetadataName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateIndicatorBoardMetadataRes{ID: id.String()})
}

// List は会員の指標ボード一覧を返します。
func (h *IndicatorBoardHandler) List(c *gin.Context) {
	memberID, ok := jwtmw.MemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	boards, err := h.uc.ListIndicatorBoardMetadata(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.IndicatorBoardMetadataRes, 0, len(boards))
	for _, b := range boards {
		out = append(out, dto.NewIndicatorBoardMetadataRes(b))
	}
	c.JSON(http.StatusOK, dto.IndicatorBoardMetadataListRes{IndicatorBoardMetadataList: out})
}

func (h *IndicatorBoardHandler) Get(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	m, err := h.uc.GetIndicatorBoardMetadata(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIndicatorBoardMetadataRes(m))
}

// InsertIndicator は指標をボードに登録します。
//
// POST /api/numerical-guidance/indicator-board-metadata/:id
func (h *IndicatorBoardHandler) InsertIndicator(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	var req dto.InsertIndicatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.InsertIndicator(c.Request.Context(), id, req.IndicatorID, req.IndicatorType); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// DeleteIndicator は登録済みの指標をボードから外します。sections は変更しません。
func (h *IndicatorBoardHandler) DeleteIndicator(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteIndicator(c.Request.Context(), id, c.Param("indicatorId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// InsertCustomForecastIndicator は既存のカスタム予測指標をボードに登録します。
//
// POST /api/numerical-guidance/indicator-board-metadata/custom-forecast-indicator/:id
func (h *IndicatorBoardHandler) InsertCustomForecastIndicator(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	var req dto.InsertCustomForecastIndicatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfID, err := uuid.Parse(req.CustomForecastIndicatorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid custom forecast indicator id"})
		return
	}
	if err := h.uc.InsertCustomForecastIndicator(c.Request.Context(), id, cfID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *IndicatorBoardHandler) DeleteCustomForecastIndicator(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteCustomForecastIndicator(c.Request.Context(), id, c.Param("customForecastIndicatorId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *IndicatorBoardHandler) UpdateName(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	var req dto.UpdateIndicatorBoardMetadataNameReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.UpdateIndicatorBoardMetadataName(c.Request.Context(), id, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UpdateSections は sections を丸ごと置き換えます。
//
// PATCH /api/numerical-guidance/indicator-board-metadata/:id/sections
func (h *IndicatorBoardHandler) UpdateSections(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	var req dto.UpdateSectionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.uc.UpdateSections(c.Request.Context(), id, req.Sections); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *IndicatorBoardHandler) Delete(c *gin.Context) {
	id, ok := boardID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteIndicatorBoardMetadata(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// boardID parses the :id path parameter and writes a 400 when it is not a uuid.
func boardID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid indicator board metadata id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps usecase errors to HTTP statuses.
// A corrupted stored board is a server-side failure even though it wraps a rule violation.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCorruptedIndicatorBoardMetadata):
		logger.L().Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("stored indicator board metadata violates its invariants")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	case rule.IsViolation(err), errors.Is(err, shared.ErrInvalidIndicatorType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrIndicatorBoardMetadataNotFound),
		errors.Is(err, usecase.ErrCustomForecastIndicatorNotFound),
		errors.Is(err, shared.ErrIndicatorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.L().Error().Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("indicator board request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
