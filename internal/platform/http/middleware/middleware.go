// Package middleware はgin用の共通ミドルウェアを提供します。
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stock_dashboard/internal/platform/logger"
)

// HeaderRequestID はリクエストIDを受け渡すヘッダー名です。
const HeaderRequestID = "X-Request-ID"

// RequestID はX-Request-IDを引き継ぎ、無ければ新規採番してcontextとレスポンスヘッダーに設定します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), rid))
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// RequestLogger はリクエスト毎にメソッド・パス・ステータス・処理時間を記録します。
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		entry := logger.WithContext(c.Request.Context(), log)
		switch {
		case status >= 500:
			entry.Error("HTTP request", fields...)
		case status >= 400:
			entry.Warn("HTTP request", fields...)
		default:
			entry.Info("HTTP request", fields...)
		}
	}
}
