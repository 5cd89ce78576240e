package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/transport/http/dto"
	"stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/platform/http/response"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	Suggest(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
	Lookup(ctx context.Context, code string) (entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄の一覧を取得するAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toItems(symbols))
}

// Suggest は検索バーの入力に対する候補を返します。
//
// エンドポイント例:
// GET /symbols/suggest?q=aa&limit=5
func (h *SymbolHandler) Suggest(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, errors.New("limit must be an integer"))
			return
		}
		limit = n
	}

	symbols, err := h.uc.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toItems(symbols))
}

// Get は1銘柄の詳細（気配値）を返します。未登録の銘柄は404です。
func (h *SymbolHandler) Get(c *gin.Context) {
	s, err := h.uc.Lookup(c.Request.Context(), c.Param("code"))
	if errors.Is(err, usecase.ErrSymbolNotFound) {
		response.Error(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dto.SymbolDetail{
		SymbolItem: toItem(s),
		Market:     s.Market,
		UpdatedAt:  s.UpdatedAt.UnixMilli(),
	})
}

func toItem(s entity.Symbol) dto.SymbolItem {
	return dto.SymbolItem{
		Code:          s.Code,
		Name:          s.Name,
		Price:         s.Price,
		Change:        s.Change,
		ChangePercent: s.ChangePercent,
	}
}

func toItems(symbols []entity.Symbol) []dto.SymbolItem {
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, toItem(s))
	}
	return out
}
