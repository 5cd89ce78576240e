// Package response はフィーチャー間で共有するHTTPレスポンス形式を提供します。
package response

import "github.com/gin-gonic/gin"

// ErrorResponse はエラー時のJSONボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error はステータスコードとエラーメッセージをJSONで返し、以降のハンドラーを中断します。
func Error(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}
