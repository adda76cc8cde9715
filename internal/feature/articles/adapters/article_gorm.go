package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/articles/usecase"
)

type articleGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure articleGorm implements ArticleRepository.
var _ usecase.ArticleRepository = (*articleGorm)(nil)

// NewArticleGorm creates a new instance of articleGorm.
func NewArticleGorm(db *gorm.DB) *articleGorm {
	return &articleGorm{db: db}
}

// Create inserts a with a fresh UUID.
func (r *articleGorm) Create(ctx context.Context, a *entity.Article) error {
	m := articleModelFromEntity(a)
	m.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	a.ID = m.ID
	return nil
}

func (r *articleGorm) FindByTicker(ctx context.Context, ticker string) ([]entity.Article, error) {
	return r.find(r.db.WithContext(ctx).Where("ticker = ?", ticker), 0)
}

func (r *articleGorm) FindByUser(ctx context.Context, userID string, limit int) ([]entity.Article, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID), limit)
}

func (r *articleGorm) FindTrending(ctx context.Context, since time.Time, limit int) ([]entity.Article, error) {
	q := r.db.WithContext(ctx)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since.UTC())
	}
	return r.find(q, limit)
}

func (r *articleGorm) find(q *gorm.DB, limit int) ([]entity.Article, error) {
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []ArticleModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Article, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}
