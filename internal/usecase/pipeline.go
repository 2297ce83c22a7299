package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/araddon/dateparse"

	"NavyNewsWatch/internal/catalog"
	"NavyNewsWatch/internal/domain"
	"NavyNewsWatch/internal/ports"
)

const defaultPause = time.Second

// NoArticlesMessage is the soft-failure outcome when every keyword came back
// empty.
const NoArticlesMessage = "no articles found"

// PipelineDeps wires the driven adapters into the ingestion workflow.
type PipelineDeps struct {
	Catalog *catalog.Catalog
	Source  ports.ArticleSource
	Store   ports.ArticleStore
	Pause   time.Duration
	Logger  *slog.Logger
}

// Pipeline runs the keyword-by-keyword ingestion: fetch with pacing,
// accumulate, project and batch-upsert.
type Pipeline struct {
	catalog *catalog.Catalog
	source  ports.ArticleSource
	store   ports.ArticleStore
	pacer   *Pacer
	logger  *slog.Logger
}

// NewPipeline constructs the orchestration component. The inter-request
// pause defaults to one second.
func NewPipeline(deps PipelineDeps) *Pipeline {
	pause := deps.Pause
	if pause <= 0 {
		pause = defaultPause
	}
	return &Pipeline{
		catalog: deps.Catalog,
		source:  deps.Source,
		store:   deps.Store,
		pacer:   NewPacer(pause),
		logger:  deps.Logger,
	}
}

// Run executes one full ingestion. Zero accumulated articles is a soft
// failure reported through the RunReport; storage errors are fatal and
// returned as errors. Rows already upserted before a fatal error stay
// persisted.
func (p *Pipeline) Run(ctx context.Context) (domain.RunReport, error) {
	if p.source == nil || p.catalog == nil {
		return domain.RunReport{}, fmt.Errorf("pipeline source is not configured")
	}

	var collected []domain.Article
	first := true
	for _, group := range p.catalog.Groups() {
		p.debug("process language group", "language", group.Language, "keywords", len(group.Keywords))
		for _, keyword := range group.Keywords {
			if !first {
				if err := p.pacer.Wait(ctx); err != nil {
					return domain.RunReport{}, fmt.Errorf("pacing wait: %w", err)
				}
			}
			first = false

			articles := p.source.FetchForKeyword(ctx, keyword, group)
			collected = append(collected, articles...)
		}
	}

	if len(collected) == 0 {
		p.debug("run produced no articles")
		return domain.RunReport{Success: false, Processed: 0, Message: NoArticlesMessage}, nil
	}

	if p.store != nil {
		if err := p.store.UpsertArticles(ctx, p.projectRows(collected)); err != nil {
			return domain.RunReport{}, fmt.Errorf("upsert articles: %w", err)
		}
	}

	p.debug("run finished", "articles", len(collected))
	return domain.RunReport{
		Success:   true,
		Processed: len(collected),
		Message:   fmt.Sprintf("processed %d articles", len(collected)),
	}, nil
}

// projectRows maps canonical articles onto table rows: link→url,
// snippet→description, date→published_at. Duplicate links within one run are
// collapsed to keep the batched upsert free of intra-batch conflicts.
func (p *Pipeline) projectRows(articles []domain.Article) []domain.StoredArticle {
	rows := make([]domain.StoredArticle, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))
	for _, article := range articles {
		if _, ok := seen[article.Link]; ok {
			continue
		}
		seen[article.Link] = struct{}{}

		rows = append(rows, domain.StoredArticle{
			URL:         article.Link,
			Title:       article.Title,
			Description: article.Snippet,
			ImageURL:    article.Thumbnail,
			PublishedAt: publishedAt(article),
			CreatedAt:   article.CreatedAt,
		})
	}
	return rows
}

// publishedAt parses the API's free-text, locale-dependent date; anything
// unparsable falls back to the ingestion timestamp.
func publishedAt(article domain.Article) time.Time {
	if article.Date == "" {
		return article.CreatedAt
	}
	parsed, err := dateparse.ParseAny(article.Date)
	if err != nil {
		return article.CreatedAt
	}
	return parsed
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
