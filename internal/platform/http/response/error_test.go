package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reached := false
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusConflict, errors.New("symbol already in watchlist"))
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"symbol already in watchlist"}`, w.Body.String())
	assert.False(t, reached, "chain is aborted")
}
