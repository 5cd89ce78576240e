// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/watchlist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/transport/http/dto"
	"stock_dashboard/internal/feature/watchlist/usecase"
	"stock_dashboard/internal/platform/http/response"
)

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	List(ctx context.Context) (entity.View, error)
	Add(ctx context.Context, code string) (entity.View, error)
	Remove(ctx context.Context, code string) (entity.View, error)
	Select(ctx context.Context, code string) (entity.View, error)
}

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List は GET /watchlist を処理します。
func (h *WatchlistHandler) List(c *gin.Context) {
	v, err := h.uc.List(c.Request.Context())
	h.respond(c, http.StatusOK, v, err)
}

// Add は POST /watchlist {code} を処理します。
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errors.New("code is required"))
		return
	}
	v, err := h.uc.Add(c.Request.Context(), req.Code)
	h.respond(c, http.StatusCreated, v, err)
}

// Remove は DELETE /watchlist/:code を処理します。
func (h *WatchlistHandler) Remove(c *gin.Context) {
	v, err := h.uc.Remove(c.Request.Context(), c.Param("code"))
	h.respond(c, http.StatusOK, v, err)
}

// Select は PUT /watchlist/selected {code} を処理します。
func (h *WatchlistHandler) Select(c *gin.Context) {
	var req dto.CodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errors.New("code is required"))
		return
	}
	v, err := h.uc.Select(c.Request.Context(), req.Code)
	h.respond(c, http.StatusOK, v, err)
}

func (h *WatchlistHandler) respond(c *gin.Context, status int, v entity.View, err error) {
	switch {
	case err == nil:
		c.JSON(status, toResponse(v))
	case errors.Is(err, usecase.ErrSymbolNotFound), errors.Is(err, usecase.ErrNotInWatchlist):
		response.Error(c, http.StatusNotFound, err)
	case errors.Is(err, usecase.ErrAlreadyInWatchlist):
		response.Error(c, http.StatusConflict, err)
	default:
		response.Error(c, http.StatusInternalServerError, err)
	}
}

func toResponse(v entity.View) dto.WatchlistResponse {
	out := dto.WatchlistResponse{
		Symbols:  make([]dto.WatchlistItem, 0, len(v.Symbols)),
		Selected: v.Selected,
	}
	for _, s := range v.Symbols {
		out.Symbols = append(out.Symbols, dto.WatchlistItem{
			Code:          s.Code,
			Name:          s.Name,
			Price:         s.Price,
			Change:        s.Change,
			ChangePercent: s.ChangePercent,
		})
	}
	return out
}
