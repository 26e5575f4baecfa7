// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"indicator_backend/internal/platform/logger"
)

// readyTimeout は readiness チェック1回あたりの上限です。
const readyTimeout = 2 * time.Second

// Health は /healthz の liveness チェックです。プロセスが応答できれば常に成功します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Pinger は依存先への疎通確認です。
type Pinger func(ctx context.Context) error

// Ready は /readyz の readiness チェックを返します。
// データベースに到達できない間は 503 を返し、ロードバランサーから外されます。
func Ready(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.L().Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
