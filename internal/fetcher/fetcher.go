package fetcher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"NavyNewsWatch/internal/catalog"
	"NavyNewsWatch/internal/domain"
	"NavyNewsWatch/internal/ports"
	"NavyNewsWatch/internal/search"
)

// Fetcher turns one keyword search into normalized articles. Every failure
// is absorbed: a bad keyword logs and contributes nothing, so the rest of a
// run is never blocked.
type Fetcher struct {
	searcher search.Searcher
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.ArticleSource = (*Fetcher)(nil)

// New wires a searcher; the clock defaults to time.Now.
func New(searcher search.Searcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{searcher: searcher, logger: logger, now: time.Now}
}

// FetchForKeyword searches one keyword in the group's locale and normalizes
// the results. Search errors yield an empty slice, never an error.
func (f *Fetcher) FetchForKeyword(ctx context.Context, keyword string, group catalog.Group) []domain.Article {
	results, err := f.searcher.Search(ctx, search.Query{Keyword: keyword, Locale: group.Locale})
	if err != nil {
		f.log(slog.LevelWarn, "keyword search failed",
			"keyword", keyword, "language", group.Language, "error", err)
		return nil
	}

	stamp := f.now().UTC()
	articles := make([]domain.Article, 0, len(results))
	for _, raw := range results {
		if raw.Link == "" {
			f.log(slog.LevelDebug, "result without link dropped",
				"keyword", keyword, "title", raw.Title)
			continue
		}
		articles = append(articles, normalize(raw, stamp))
	}

	f.log(slog.LevelDebug, "keyword fetched",
		"keyword", keyword, "language", group.Language, "count", len(articles))
	return articles
}

func normalize(raw search.RawResult, stamp time.Time) domain.Article {
	source := strings.TrimSpace(raw.Source.Name)
	if source == "" {
		source = domain.UnknownSource
	}

	return domain.Article{
		Title:     strings.TrimSpace(raw.Title),
		Link:      raw.Link,
		Snippet:   stripMarkup(raw.Snippet),
		Date:      strings.TrimSpace(raw.Date),
		Source:    source,
		Thumbnail: raw.Thumbnail,
		CreatedAt: stamp,
	}
}

// stripMarkup drops highlight tags and entities the search API embeds in
// snippets.
func stripMarkup(snippet string) string {
	if !strings.ContainsAny(snippet, "<&") {
		return strings.TrimSpace(snippet)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return strings.TrimSpace(snippet)
	}
	return strings.TrimSpace(doc.Text())
}

func (f *Fetcher) log(level slog.Level, msg string, args ...any) {
	if f.logger != nil {
		f.logger.Log(context.Background(), level, msg, args...)
	}
}
