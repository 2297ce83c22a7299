package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"NavyNewsWatch/internal/domain"
	"NavyNewsWatch/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists ingested articles into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertArticles writes the whole batch in one statement; rows whose url
// already exists are silently ignored.
func (r *PostgresRepository) UpsertArticles(ctx context.Context, rows []domain.StoredArticle) error {
	if r.db == nil || len(rows) == 0 {
		return nil
	}

	builder := psql.Insert("articles").
		Columns("url", "title", "description", "image_url", "published_at", "created_at")
	for _, row := range rows {
		builder = builder.Values(row.URL, row.Title, row.Description, row.ImageURL, row.PublishedAt, row.CreatedAt)
	}
	builder = builder.Suffix("ON CONFLICT (url) DO NOTHING")

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert articles: %w", err)
	}

	return nil
}

// ListArticles returns every stored row, newest ingestion first.
func (r *PostgresRepository) ListArticles(ctx context.Context) ([]domain.StoredArticle, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := psql.Select("id", "url", "title", "description", "image_url", "published_at", "created_at").
		From("articles").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	var result []domain.StoredArticle
	for rows.Next() {
		var (
			article     domain.StoredArticle
			description sql.NullString
			imageURL    sql.NullString
		)
		if err := rows.Scan(&article.ID, &article.URL, &article.Title, &description,
			&imageURL, &article.PublishedAt, &article.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan article: %w", err)
		}
		article.Description = description.String
		article.ImageURL = imageURL.String
		result = append(result, article)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}
