package adapters

import (
	"time"

	"stock_sentiment/internal/feature/articles/domain/entity"
)

// ArticleModel is the articles table.
type ArticleModel struct {
	ID               string    `gorm:"primaryKey;size:36"`
	Ticker           string    `gorm:"size:16;not null;index:idx_articles_ticker_created,priority:1"`
	OverallSentiment string    `gorm:"size:16;not null"`
	Summary          string    `gorm:"type:text"`
	Analysis         string    `gorm:"type:text"`
	UserID           *string   `gorm:"size:64;index:idx_articles_user_created,priority:1"`
	CreatedAt        time.Time `gorm:"not null;index;index:idx_articles_ticker_created,priority:2;index:idx_articles_user_created,priority:2"`
}

func (ArticleModel) TableName() string { return "articles" }

// Models lists the tables owned by this feature for AutoMigrate.
func Models() []any {
	return []any{&ArticleModel{}}
}

func articleModelFromEntity(a *entity.Article) *ArticleModel {
	m := &ArticleModel{
		ID:               a.ID,
		Ticker:           a.Ticker,
		OverallSentiment: string(a.OverallSentiment),
		Summary:          a.Summary,
		Analysis:         a.Analysis,
		CreatedAt:        a.CreatedAt.UTC(),
	}
	if a.UserID != "" {
		uid := a.UserID
		m.UserID = &uid
	}
	return m
}

func (m *ArticleModel) toEntity() entity.Article {
	a := entity.Article{
		ID:               m.ID,
		Ticker:           m.Ticker,
		OverallSentiment: entity.Sentiment(m.OverallSentiment),
		Summary:          m.Summary,
		Analysis:         m.Analysis,
		CreatedAt:        m.CreatedAt.UTC(),
	}
	if m.UserID != nil {
		a.UserID = *m.UserID
	}
	return a
}
