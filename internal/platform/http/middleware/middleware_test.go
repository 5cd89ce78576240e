package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"stock_dashboard/internal/platform/http/middleware"
	"stock_dashboard/internal/platform/logger"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "propagates incoming id", incoming: "abc-123"},
		{name: "generates id when missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			router := gin.New()
			router.Use(middleware.RequestID())
			router.GET("/ping", func(c *gin.Context) {
				seen, _ = logger.RequestID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.HeaderRequestID, tt.incoming)
			}
			router.ServeHTTP(w, req)

			got := w.Header().Get(middleware.HeaderRequestID)
			assert.Equal(t, seen, got)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		path  string
		level zapcore.Level
	}{
		{name: "ok is info", path: "/ok", level: zapcore.InfoLevel},
		{name: "not found is warn", path: "/missing", level: zapcore.WarnLevel},
		{name: "failure is error", path: "/boom", level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			router := gin.New()
			router.Use(middleware.RequestID(), middleware.RequestLogger(zap.New(core)))
			router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
			router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(middleware.HeaderRequestID, "rid-1")
			router.ServeHTTP(w, req)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.path, fields["path"])
			assert.Equal(t, "rid-1", fields["request_id"])
		})
	}
}
