// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/usecase"
)

// likeEscaper はLIKEパターンのワイルドカードをエスケープします。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です（SQLite / PostgreSQL）。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByCode は大文字小文字を区別せずにアクティブな銘柄を1件返します。
// 見つからない場合は usecase.ErrSymbolNotFound を返します。
func (r *symbolGorm) FindByCode(ctx context.Context, code string) (entity.Symbol, error) {
	var s entity.Symbol
	err := r.db.WithContext(ctx).
		Where("UPPER(code) = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Symbol{}, usecase.ErrSymbolNotFound
	}
	if err != nil {
		return entity.Symbol{}, err
	}
	return s, nil
}

// Search はコードの前方一致または銘柄名の部分一致でアクティブな銘柄を検索します。
func (r *symbolGorm) Search(ctx context.Context, query string, limit int) ([]entity.Symbol, error) {
	q := likeEscaper.Replace(strings.ToUpper(query))

	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(`UPPER(code) LIKE ? ESCAPE '\' OR UPPER(name) LIKE ? ESCAPE '\'`, q+"%", "%"+q+"%").
		Order("sort_key ASC").
		Limit(limit).
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// UpdateQuote は銘柄の最新気配値を更新します。
func (r *symbolGorm) UpdateQuote(ctx context.Context, code string, q entity.Quote) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("UPPER(code) = ?", strings.ToUpper(code)).
		Updates(map[string]any{
			"price":          q.Price,
			"change":         q.Change,
			"change_percent": q.ChangePercent,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrSymbolNotFound
	}
	return nil
}

// SeedDefaults はテーブルが空の場合に既定の銘柄一覧を投入します。
// 投入した件数を返します。
func (r *symbolGorm) SeedDefaults(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Symbol{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	defaults := entity.DefaultSymbols()
	if err := r.db.WithContext(ctx).Create(&defaults).Error; err != nil {
		return 0, err
	}
	return len(defaults), nil
}
