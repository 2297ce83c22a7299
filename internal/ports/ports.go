package ports

import (
	"context"
	"time"

	"NavyNewsWatch/internal/catalog"
	"NavyNewsWatch/internal/domain"
)

// ArticleSource pulls fresh articles for one keyword of a language group.
// Implementations absorb their own failures and return what they got.
type ArticleSource interface {
	FetchForKeyword(ctx context.Context, keyword string, group catalog.Group) []domain.Article
}

// ArticleStore persists articles and serves the read path.
type ArticleStore interface {
	UpsertArticles(ctx context.Context, rows []domain.StoredArticle) error
	ListArticles(ctx context.Context) ([]domain.StoredArticle, error)
}

// Scheduler controls optional recurring pipeline executions.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
