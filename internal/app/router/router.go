package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	charthandler "stock_dashboard/internal/feature/chart/transport/handler"
	symbollisthandler "stock_dashboard/internal/feature/symbollist/transport/handler"
	watchlisthandler "stock_dashboard/internal/feature/watchlist/transport/handler"
	"stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/http/middleware"
	"stock_dashboard/internal/platform/metrics"
)

// Handlers はルーターに登録するフィーチャーハンドラーです。
type Handlers struct {
	Chart     *charthandler.ChartHandler
	Symbol    *symbollisthandler.SymbolHandler
	Watchlist *watchlisthandler.WatchlistHandler
	// Ready は /readyz で確認する依存先です。nil の場合は常に ok を返します。
	Ready map[string]handler.Check
}

// Options はルーター全体の設定です。
type Options struct {
	AllowedOrigins []string
	Log            *zap.Logger
}

// NewRouter はミドルウェアと全エンドポイントを登録したginエンジンを作成します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
	)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(h.Ready))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// チャート
	r.GET("/charts/:code", h.Chart.GetChart)
	r.GET("/intervals", h.Chart.GetIntervals)

	// 銘柄カタログ
	symbols := r.Group("/symbols")
	{
		symbols.GET("", h.Symbol.List)
		symbols.GET("/suggest", h.Symbol.Suggest)
		symbols.GET("/:code", h.Symbol.Get)
	}

	// ウォッチリスト
	watchlist := r.Group("/watchlist")
	{
		watchlist.GET("", h.Watchlist.List)
		watchlist.POST("", h.Watchlist.Add)
		watchlist.PUT("/selected", h.Watchlist.Select)
		watchlist.DELETE("/:code", h.Watchlist.Remove)
	}

	return r
}
