package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_dashboard/internal/platform/http/middleware"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter(Handlers{}, Options{AllowedOrigins: []string{"http://localhost:5173"}})

	tests := []struct {
		name       string
		method     string
		path       string
		origin     string
		expectCode int
		expectCORS bool
	}{
		{"health get", http.MethodGet, "/healthz", "", http.StatusOK, false},
		{"health head", http.MethodHead, "/healthz", "", http.StatusOK, false},
		{"ready without checks", http.MethodGet, "/readyz", "", http.StatusOK, false},
		{"allowed origin", http.MethodGet, "/healthz", "http://localhost:5173", http.StatusOK, true},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectCode, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
			if tt.expectCORS {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
